package clients

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Product is the record shape served by the product catalog. Price feeds
// the order total and must survive the trip without float drift.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ProductClient struct{ c *Client }

func NewProductClient(c *Client) *ProductClient { return &ProductClient{c: c} }

func (pc *ProductClient) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var p Product
	if err := pc.c.getJSON(ctx, "/products/"+strconv.FormatInt(id, 10), &p); err != nil {
		return nil, err
	}
	return &p, nil
}
