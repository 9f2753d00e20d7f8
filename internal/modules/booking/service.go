package booking

import (
	"context"
	"time"

	"github.com/georgemunganga/fellbacher-shop/internal/modules/catalog"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/storage"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// DefaultPricePerPerson applies when an event price has no positive number in it.
var DefaultPricePerPerson = decimal.NewFromInt(49)

var (
	ErrNotFound          = errors.New("booking not found")
	ErrInvalidGuests     = errors.New("guests must be at least 1")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// validTransitions defines the allowed booking status changes.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {},
}

// Events resolves the event being booked.
type Events interface {
	GetEvent(ctx context.Context, id string) (*catalog.Event, error)
}

// Service defines the per-session event bookings.
type Service interface {
	Create(ctx context.Context, sid string, req CreateRequest) (*Booking, error)
	// Cancel marks a booking cancelled; it stays in the list.
	Cancel(ctx context.Context, sid, id string) (*Booking, error)
	// List returns the bookings newest first.
	List(ctx context.Context, sid string) ([]Booking, error)
	ListByEvent(ctx context.Context, sid, eventID string) ([]Booking, error)
}

type service struct {
	bookings *storage.Collection[[]Booking]
	events   Events
	now      func() time.Time
	log      log.FieldLogger
}

// NewService creates a booking service persisting under "bookings:<sid>".
func NewService(store storage.Store, events Events, logger log.FieldLogger) Service {
	return &service{
		bookings: storage.NewCollection[[]Booking](store, "bookings", logger),
		events:   events,
		now:      time.Now,
		log:      logger.WithField("component", "booking.service"),
	}
}

// PricePerPerson reads the per-person price of an event.
func PricePerPerson(e *catalog.Event) decimal.Decimal {
	if p := catalog.ParsePrice(e.Price); p.IsPositive() {
		return p
	}
	return DefaultPricePerPerson
}

func (s *service) Create(ctx context.Context, sid string, req CreateRequest) (*Booking, error) {
	if req.Guests < 1 {
		return nil, ErrInvalidGuests
	}
	e, err := s.events.GetEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	b := Booking{
		ID:          uuid.NewString(),
		EventID:     e.ID,
		EventTitle:  e.Title,
		Date:        req.Date,
		Time:        req.Time,
		Guests:      req.Guests,
		TotalAmount: PricePerPerson(e).Mul(decimal.NewFromInt(int64(req.Guests))),
		Status:      StatusConfirmed,
		CreatedAt:   s.now().UTC(),
	}
	if b.Date == "" {
		b.Date = e.Date
	}
	if b.Time == "" {
		b.Time = e.Time
	}

	if _, err := s.bookings.Update(ctx, sid, func(bookings []Booking) ([]Booking, error) {
		return append([]Booking{b}, bookings...), nil
	}); err != nil {
		return nil, err
	}
	s.log.WithFields(log.Fields{"session": sid, "event": e.ID, "guests": b.Guests}).Info("event booked")
	return &b, nil
}

func (s *service) Cancel(ctx context.Context, sid, id string) (*Booking, error) {
	var cancelled Booking
	_, err := s.bookings.Update(ctx, sid, func(bookings []Booking) ([]Booking, error) {
		next := append([]Booking(nil), bookings...)
		for i := range next {
			if next[i].ID == id {
				if !canTransition(next[i].Status, StatusCancelled) {
					return nil, errors.Wrapf(ErrInvalidTransition, "cannot cancel a %s booking", next[i].Status)
				}
				next[i].Status = StatusCancelled
				cancelled = next[i]
				return next, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &cancelled, nil
}

func (s *service) List(ctx context.Context, sid string) ([]Booking, error) {
	bookings, err := s.bookings.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []Booking{}
	}
	return bookings, nil
}

func (s *service) ListByEvent(ctx context.Context, sid, eventID string) ([]Booking, error) {
	bookings, err := s.bookings.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	out := []Booking{}
	for _, b := range bookings {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}
	return out, nil
}

func canTransition(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
