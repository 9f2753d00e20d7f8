package cart

import "github.com/shopspring/decimal"

// Item is one cart entry. Quantity is always positive; an entry whose quantity
// would reach zero is removed.
type Item struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// Line is a priced cart entry.
type Line struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	// Known is false when the id is missing from the catalog; such lines are priced 0.
	Known bool `json:"known"`
}

// Summary is the priced view of a cart.
type Summary struct {
	Lines []Line          `json:"lines"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// AddRequest is the payload for adding a product.
type AddRequest struct {
	ID string `json:"id"`
}

// UpdateQuantityRequest adjusts a quantity by Delta.
type UpdateQuantityRequest struct {
	Delta int `json:"delta"`
}
