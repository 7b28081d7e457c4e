package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderCreated is published after an order is persisted.
type OrderCreated struct {
	EventType  string          `json:"eventType"`
	OrderID    int64           `json:"orderId"`
	UserID     int64           `json:"userId"`
	ProductID  int64           `json:"productId"`
	Quantity   int64           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Timestamp  time.Time       `json:"timestamp"`
}
