package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the fulfillment status of an order. Valid values are
// configured through a StatusSet, not hard-coded here.
type Status string

type Order struct {
	ID              int64     `json:"id"`
	Slug            string    `json:"slug"`
	Status          Status    `json:"status"`
	ReceptionStatus string    `json:"reception_status"`
	UserID          *string   `json:"user_id,omitempty"`
	UserEmail       string    `json:"user_email,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	Items           []Item    `json:"items"`
}

type Item struct {
	ID           int64           `json:"id"`
	OrderID      int64           `json:"order_id"`
	ProductID    int64           `json:"product_id"`
	ProductTitle string          `json:"product_title"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
}

// LineTotal is UnitPrice * Quantity.
func (it Item) LineTotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
