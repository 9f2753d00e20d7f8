package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the state of a booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Booking reserves places at an event.
type Booking struct {
	ID          string          `json:"id"`
	EventID     string          `json:"event_id"`
	EventTitle  string          `json:"event_title"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Guests      int             `json:"guests"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      Status          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateRequest is the payload for booking an event. Empty Date and Time take
// the event's own values.
type CreateRequest struct {
	EventID string `json:"event_id"`
	Date    string `json:"date,omitempty"`
	Time    string `json:"time,omitempty"`
	Guests  int    `json:"guests"`
}
