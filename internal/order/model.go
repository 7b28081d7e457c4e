package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the durable shape persisted by the order store. TotalPrice is
// fixed at creation time and never recomputed.
type Order struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CreateRequest carries the inbound order-creation fields. Pointers
// distinguish a missing field from a zero value.
type CreateRequest struct {
	UserID    *int64 `json:"user_id"`
	ProductID *int64 `json:"product_id"`
	Quantity  *int64 `json:"quantity"`
}
