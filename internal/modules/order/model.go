package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the delivery state of an order.
type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusInTransit  OrderStatus = "In Transit"
	StatusDelivered  OrderStatus = "Delivered"
)

// Order is a completed checkout. Only Status changes after creation.
type Order struct {
	ID        string          `json:"id"` // ORD-YYYYMMDD-XXXX
	Date      string          `json:"date"`
	Total     decimal.Decimal `json:"total"`
	Items     []LineItem      `json:"items"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// LineItem is one purchased product at its price at purchase time.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// UpdateStatusRequest is the payload for advancing an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
