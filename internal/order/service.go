package order

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/shop-system/internal/clients"
)

// UserDirectory is the existence check against the user service.
type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (*clients.User, error)
}

// ProductCatalog is the existence check against the product service.
type ProductCatalog interface {
	GetProduct(ctx context.Context, id int64) (*clients.Product, error)
}

// EventPublisher announces persisted orders. May be absent at runtime.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, o *Order) error
}

// Service orchestrates order creation: it confirms both referenced entities
// exist via the two collaborators, computes the total with exact decimal
// arithmetic, and persists the result in a single insert.
type Service struct {
	repo     Repository
	users    UserDirectory
	products ProductCatalog
	events   EventPublisher
	logger   *log.Logger
}

func NewService(repo Repository, users UserDirectory, products ProductCatalog, events EventPublisher, logger *log.Logger) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		products: products,
		events:   events,
		logger:   logger,
	}
}

// Create turns a creation request into a persisted Order or a classified
// *Error. Input validation happens before any remote call.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	if req.UserID == nil || req.ProductID == nil || req.Quantity == nil {
		return nil, invalidInput("user_id, product_id, and quantity are required")
	}
	if *req.Quantity < 0 {
		return nil, invalidInput("quantity must not be negative")
	}

	// The two lookups are independent, so the product check runs alongside
	// the user check. Both are joined before either result is used; when
	// both fail, the user-side failure wins so responses stay reproducible.
	type productResult struct {
		product *clients.Product
		err     error
	}
	productCh := make(chan productResult, 1)
	go func() {
		p, err := s.products.GetProduct(ctx, *req.ProductID)
		productCh <- productResult{product: p, err: err}
	}()

	_, userErr := s.users.GetUser(ctx, *req.UserID)
	prodRes := <-productCh

	if userErr != nil {
		if errors.Is(userErr, clients.ErrNotFound) {
			return nil, notFound(EntityUser)
		}
		return nil, unavailable(EntityUser, userErr)
	}
	if prodRes.err != nil {
		if errors.Is(prodRes.err, clients.ErrNotFound) {
			return nil, notFound(EntityProduct)
		}
		return nil, unavailable(EntityProduct, prodRes.err)
	}

	o := &Order{
		UserID:     *req.UserID,
		ProductID:  *req.ProductID,
		Quantity:   *req.Quantity,
		TotalPrice: prodRes.product.Price.Mul(decimal.NewFromInt(*req.Quantity)),
	}

	// A write already issued must be allowed to finish even if the caller
	// has gone away, so the insert runs detached from the request context
	// under its own deadline.
	insertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.repo.Create(insertCtx, o); err != nil {
		return nil, storage(err)
	}

	if s.events != nil {
		if err := s.events.PublishOrderCreated(ctx, o); err != nil {
			s.logger.Printf("publish OrderCreated for order %d: %v", o.ID, err)
		}
	}

	return o, nil
}

// Get is a pass-through read; it returns nil when the id is absent.
func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all orders in ascending id order.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}
