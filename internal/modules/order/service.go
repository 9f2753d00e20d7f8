package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/georgemunganga/fellbacher-shop/internal/modules/cart"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/storage"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrUnknownProduct    = errors.New("cart contains a product that is no longer available")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Cart is the checkout source.
type Cart interface {
	Summary(ctx context.Context, sid string) (*cart.Summary, error)
	Clear(ctx context.Context, sid string) error
}

// Service defines the per-session order history.
type Service interface {
	// Checkout turns the session's cart into a Processing order and empties the cart.
	Checkout(ctx context.Context, sid string) (*Order, error)

	// List returns the orders newest first.
	List(ctx context.Context, sid string) ([]Order, error)

	GetOrder(ctx context.Context, sid, id string) (*Order, error)

	// UpdateStatus advances an order to the next delivery status.
	UpdateStatus(ctx context.Context, sid, id string, req UpdateStatusRequest) (*Order, error)

	Clear(ctx context.Context, sid string) error
}

type service struct {
	orders *storage.Collection[[]Order]
	cart   Cart
	now    func() time.Time
	log    log.FieldLogger
}

// NewService creates an order service persisting under "orders:<sid>".
func NewService(store storage.Store, carts Cart, logger log.FieldLogger) Service {
	return &service{
		orders: storage.NewCollection[[]Order](store, "orders", logger),
		cart:   carts,
		now:    time.Now,
		log:    logger.WithField("component", "order.service"),
	}
}

// validTransitions defines the allowed status state machine.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusProcessing: {StatusInTransit},
	StatusInTransit:  {StatusDelivered},
	StatusDelivered:  {},
}

func (s *service) Checkout(ctx context.Context, sid string) (*Order, error) {
	sum, err := s.cart.Summary(ctx, sid)
	if err != nil {
		return nil, err
	}
	if len(sum.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]LineItem, 0, len(sum.Lines))
	for _, l := range sum.Lines {
		if !l.Known {
			return nil, errors.Wrapf(ErrUnknownProduct, "product %s", l.ID)
		}
		items = append(items, LineItem{
			ProductID: l.ID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Price:     l.UnitPrice,
		})
	}

	now := s.now().UTC()
	o := Order{
		ID:        generateOrderNumber(now),
		Date:      now.Format("2006-01-02"),
		Total:     sum.Total.Round(2),
		Items:     items,
		Status:    StatusProcessing,
		CreatedAt: now,
	}

	if _, err := s.orders.Update(ctx, sid, func(orders []Order) ([]Order, error) {
		return append([]Order{o}, orders...), nil
	}); err != nil {
		return nil, err
	}
	if err := s.cart.Clear(ctx, sid); err != nil {
		s.log.WithError(err).WithField("session", sid).Warn("failed to clear cart after checkout")
	}

	s.log.WithFields(log.Fields{"session": sid, "order": o.ID, "total": o.Total}).Info("order placed")
	return &o, nil
}

func (s *service) List(ctx context.Context, sid string) ([]Order, error) {
	orders, err := s.orders.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

func (s *service) GetOrder(ctx context.Context, sid, id string) (*Order, error) {
	orders, err := s.orders.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

func (s *service) UpdateStatus(ctx context.Context, sid, id string, req UpdateStatusRequest) (*Order, error) {
	newStatus := OrderStatus(req.Status)

	var updated Order
	_, err := s.orders.Update(ctx, sid, func(orders []Order) ([]Order, error) {
		next := append([]Order(nil), orders...)
		for i, o := range next {
			if o.ID != id {
				continue
			}
			if !canTransition(o.Status, newStatus) {
				return nil, errors.Wrapf(ErrInvalidTransition, "cannot transition order from %s to %s", o.Status, newStatus)
			}
			next[i].Status = newStatus
			updated = next[i]
			return next, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *service) Clear(ctx context.Context, sid string) error {
	s.orders.Reset(ctx, sid)
	return nil
}

func canTransition(from, to OrderStatus) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ── helpers ───────────────────────────────────────────────────────────────────

// generateOrderNumber creates a human-readable order number: ORD-YYYYMMDD-XXXX
func generateOrderNumber(now time.Time) string {
	date := now.Format("20060102")
	suffix := strings.ToUpper(uuid.New().String()[:4])
	return fmt.Sprintf("ORD-%s-%s", date, suffix)
}

