package order

import (
	"context"
	"errors"
	"io"
	"log"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/shop-system/internal/clients"
)

type fakeUsers struct {
	user  *clients.User
	err   error
	calls atomic.Int32
}

func (f *fakeUsers) GetUser(ctx context.Context, id int64) (*clients.User, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeProducts struct {
	product *clients.Product
	err     error
	calls   atomic.Int32
}

func (f *fakeProducts) GetProduct(ctx context.Context, id int64) (*clients.Product, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.product, nil
}

type fakeRepo struct {
	createErr error
	created   []*Order
	stored    map[int64]*Order
	nextID    int64
}

func (f *fakeRepo) Create(ctx context.Context, o *Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	o.ID = f.nextID
	o.CreatedAt = time.Unix(1700000000, 0).UTC()
	f.created = append(f.created, o)
	if f.stored == nil {
		f.stored = make(map[int64]*Order)
	}
	f.stored[o.ID] = o
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*Order, error) {
	return f.stored[id], nil
}

func (f *fakeRepo) List(ctx context.Context) ([]Order, error) {
	out := []Order{}
	for _, o := range f.created {
		out = append(out, *o)
	}
	return out, nil
}

type fakePublisher struct {
	err   error
	calls int
}

func (f *fakePublisher) PublishOrderCreated(ctx context.Context, o *Order) error {
	f.calls++
	return f.err
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func ptr(v int64) *int64 { return &v }

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestService(users UserDirectory, products ProductCatalog, repo Repository, pub EventPublisher) *Service {
	return NewService(repo, users, products, pub, testLogger())
}

func TestCreate_Success(t *testing.T) {
	users := &fakeUsers{user: &clients.User{ID: 1, Name: "Alice"}}
	products := &fakeProducts{product: &clients.Product{ID: 2, Price: price("199.99")}}
	repo := &fakeRepo{}

	svc := newTestService(users, products, repo, nil)

	o, err := svc.Create(context.Background(), CreateRequest{
		UserID: ptr(1), ProductID: ptr(2), Quantity: ptr(3),
	})
	require.NoError(t, err)

	assert.True(t, o.TotalPrice.Equal(price("599.97")), "total was %s", o.TotalPrice)
	assert.Equal(t, int64(1), o.UserID)
	assert.Equal(t, int64(2), o.ProductID)
	assert.Equal(t, int64(3), o.Quantity)
	assert.NotZero(t, o.ID)
	assert.False(t, o.CreatedAt.IsZero())

	// read-back yields the identical record
	got, err := svc.Get(context.Background(), o.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, o, got)
}

func TestCreate_MissingFields(t *testing.T) {
	tests := map[string]CreateRequest{
		"missing user_id":    {ProductID: ptr(2), Quantity: ptr(3)},
		"missing product_id": {UserID: ptr(1), Quantity: ptr(3)},
		"missing quantity":   {UserID: ptr(1), ProductID: ptr(2)},
		"empty request":      {},
	}

	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			users := &fakeUsers{user: &clients.User{ID: 1}}
			products := &fakeProducts{product: &clients.Product{ID: 2, Price: price("10")}}
			repo := &fakeRepo{}

			svc := newTestService(users, products, repo, nil)

			_, err := svc.Create(context.Background(), req)
			oe, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, KindInvalidInput, oe.Kind)

			// validation happens before any remote call or write
			assert.Zero(t, users.calls.Load())
			assert.Zero(t, products.calls.Load())
			assert.Empty(t, repo.created)
		})
	}
}

func TestCreate_NegativeQuantityRejected(t *testing.T) {
	users := &fakeUsers{user: &clients.User{ID: 1}}
	products := &fakeProducts{product: &clients.Product{ID: 2, Price: price("10")}}
	repo := &fakeRepo{}

	svc := newTestService(users, products, repo, nil)

	_, err := svc.Create(context.Background(), CreateRequest{
		UserID: ptr(1), ProductID: ptr(2), Quantity: ptr(-1),
	})
	oe, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidInput, oe.Kind)
	assert.Zero(t, users.calls.Load())
	assert.Empty(t, repo.created)
}

func TestCreate_ZeroQuantityAccepted(t *testing.T) {
	users := &fakeUsers{user: &clients.User{ID: 1}}
	products := &fakeProducts{product: &clients.Product{ID: 2, Price: price("42.50")}}
	repo := &fakeRepo{}

	svc := newTestService(users, products, repo, nil)

	o, err := svc.Create(context.Background(), CreateRequest{
		UserID: ptr(1), ProductID: ptr(2), Quantity: ptr(0),
	})
	require.NoError(t, err)
	assert.True(t, o.TotalPrice.IsZero())
}

func TestCreate_UserNotFound(t *testing.T) {
	users := &fakeUsers{err: clients.ErrNotFound}
	products := &fakeProducts{product: &clients.Product{ID: 2, Price: price("10")}}
	repo := &fakeRepo{}

	svc := newTestService(users, products, repo, nil)

	_, err := svc.Create(context.Background(), CreateRequest{
		UserID: ptr(99), ProductID: ptr(2), Quantity: ptr(1),
	})
	oe, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, oe.Kind)
	assert.Equal(t, EntityUser, oe.Entity)
	assert.Empty(t, repo.created)
}

func TestCreate_ProductNotFound(t *testing.T) {
	users := &fakeUsers{user: &clients.User{ID: 1}}
	products := &fakeProducts{err: clients.ErrNotFound}
	repo := &fakeRepo{}

	svc := newTestService(users, products, repo, nil)

	_, err := svc.Create(context.Background(), CreateRequest{
		UserID: ptr(1), ProductID: ptr(999), Quantity: ptr(1),
	})
	oe, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, oe.Kind)
	assert.Equal(t, EntityProduct, oe.Entity)
	assert.Empty(t, repo.created)
}

func TestCreate_ProductUnavailable(t *testing.T) {
	users := &fakeUsers{user: &clients.User{ID: 1}}
	products := &fakeProducts{err: errors.New("product-service unreachable: connection refused")}
	repo := &fakeRepo{}

	svc := newTestService(users, products, repo, nil)

	_, err := svc.Create(context.Background(), CreateRequest{
		UserID: ptr(1), ProductID: ptr(2), Quantity: ptr(1),
	})
	oe, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindUpstreamUnavailable, oe.Kind)
	assert.Equal(t, EntityProduct, oe.Entity)
	assert.Empty(t, repo.created)
}

// When both checks fail the user-side failure is reported, so the response
// does not depend on goroutine timing.
func TestCreate_BothChecksFail_UserReported(t *testing.T) {
	users := &fakeUsers{err: errors.New("user-service unreachable: timeout")}
	products := &fakeProducts{err: clients.ErrNotFound}
	repo := &fakeRepo{}

	svc := newTestService(users, products, repo, nil)

	_, err := svc.Create(context.Background(), CreateRequest{
		UserID: ptr(1), ProductID: ptr(2), Quantity: ptr(1),
	})
	oe, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindUpstreamUnavailable, oe.Kind)
	assert.Equal(t, EntityUser, oe.Entity)

	// both lookups completed before the result was classified
	assert.Equal(t, int32(1), users.calls.Load())
	assert.Equal(t, int32(1), products.calls.Load())
}

func TestCreate_UserNotFoundOverridesProductOutcome(t *testing.T) {
	users := &fakeUsers{err: clients.ErrNotFound}
	products := &fakeProducts{err: errors.New("product-service unreachable")}
	repo := &fakeRepo{}

	svc := newTestService(users, products, repo, nil)

	_, err := svc.Create(context.Background(), CreateRequest{
		UserID: ptr(5), ProductID: ptr(6), Quantity: ptr(1),
	})
	oe, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, oe.Kind)
	assert.Equal(t, EntityUser, oe.Entity)
}

func TestCreate_StorageError(t *testing.T) {
	users := &fakeUsers{user: &clients.User{ID: 1}}
	products := &fakeProducts{product: &clients.Product{ID: 2, Price: price("10")}}
	repo := &fakeRepo{createErr: errors.New("insert order: connection reset")}

	svc := newTestService(users, products, repo, nil)

	_, err := svc.Create(context.Background(), CreateRequest{
		UserID: ptr(1), ProductID: ptr(2), Quantity: ptr(1),
	})
	oe, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindStorage, oe.Kind)
}

func TestCreate_PublishesOrderCreated(t *testing.T) {
	users := &fakeUsers{user: &clients.User{ID: 1}}
	products := &fakeProducts{product: &clients.Product{ID: 2, Price: price("10")}}
	repo := &fakeRepo{}
	pub := &fakePublisher{}

	svc := newTestService(users, products, repo, pub)

	_, err := svc.Create(context.Background(), CreateRequest{
		UserID: ptr(1), ProductID: ptr(2), Quantity: ptr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, pub.calls)
}

func TestCreate_PublishFailureDoesNotFailRequest(t *testing.T) {
	users := &fakeUsers{user: &clients.User{ID: 1}}
	products := &fakeProducts{product: &clients.Product{ID: 2, Price: price("10")}}
	repo := &fakeRepo{}
	pub := &fakePublisher{err: errors.New("broker gone")}

	svc := newTestService(users, products, repo, pub)

	o, err := svc.Create(context.Background(), CreateRequest{
		UserID: ptr(1), ProductID: ptr(2), Quantity: ptr(2),
	})
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Len(t, repo.created, 1)
}

func TestCreate_ListGrowsByOnePerSuccess(t *testing.T) {
	users := &fakeUsers{user: &clients.User{ID: 1}}
	products := &fakeProducts{product: &clients.Product{ID: 2, Price: price("5.25")}}
	repo := &fakeRepo{}

	svc := newTestService(users, products, repo, nil)

	for i := 1; i <= 3; i++ {
		_, err := svc.Create(context.Background(), CreateRequest{
			UserID: ptr(1), ProductID: ptr(2), Quantity: ptr(int64(i)),
		})
		require.NoError(t, err)

		orders, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, orders, i)
	}
}
