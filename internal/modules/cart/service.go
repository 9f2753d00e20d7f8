package cart

import (
	"context"

	"github.com/georgemunganga/fellbacher-shop/internal/modules/catalog"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/storage"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ErrMissingID is returned when a product id is empty.
var ErrMissingID = errors.New("product id is required")

// Catalog resolves product ids for pricing.
type Catalog interface {
	Lookup(ctx context.Context, ids ...string) map[string]catalog.Product
}

// Service defines the per-session cart.
type Service interface {
	Items(ctx context.Context, sid string) ([]Item, error)
	// Add inserts id with quantity 1 or increments an existing entry.
	Add(ctx context.Context, sid, id string) ([]Item, error)
	Remove(ctx context.Context, sid, id string) ([]Item, error)
	UpdateQuantity(ctx context.Context, sid, id string, delta int) ([]Item, error)
	Clear(ctx context.Context, sid string) error
	Contains(ctx context.Context, sid, id string) (bool, error)
	// Count is the total number of bottles.
	Count(ctx context.Context, sid string) (int, error)
	Summary(ctx context.Context, sid string) (*Summary, error)
}

type service struct {
	carts   *storage.Collection[[]Item]
	catalog Catalog
	log     log.FieldLogger
}

// NewService creates a cart service persisting under "cart:<sid>".
func NewService(store storage.Store, cat Catalog, logger log.FieldLogger) Service {
	return &service{
		carts:   storage.NewCollection[[]Item](store, "cart", logger),
		catalog: cat,
		log:     logger.WithField("component", "cart.service"),
	}
}

func (s *service) Items(ctx context.Context, sid string) ([]Item, error) {
	items, err := s.carts.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func (s *service) Add(ctx context.Context, sid, id string) ([]Item, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	return s.carts.Update(ctx, sid, func(items []Item) ([]Item, error) {
		return addItem(items, id), nil
	})
}

func (s *service) Remove(ctx context.Context, sid, id string) ([]Item, error) {
	return s.carts.Update(ctx, sid, func(items []Item) ([]Item, error) {
		return removeItem(items, id), nil
	})
}

func (s *service) UpdateQuantity(ctx context.Context, sid, id string, delta int) ([]Item, error) {
	return s.carts.Update(ctx, sid, func(items []Item) ([]Item, error) {
		return adjustItem(items, id, delta), nil
	})
}

func (s *service) Clear(ctx context.Context, sid string) error {
	s.carts.Reset(ctx, sid)
	return nil
}

func (s *service) Contains(ctx context.Context, sid, id string) (bool, error) {
	items, err := s.carts.Get(ctx, sid)
	if err != nil {
		return false, err
	}
	return containsItem(items, id), nil
}

func (s *service) Count(ctx context.Context, sid string) (int, error) {
	items, err := s.carts.Get(ctx, sid)
	if err != nil {
		return 0, err
	}
	return countItems(items), nil
}

func (s *service) Summary(ctx context.Context, sid string) (*Summary, error) {
	items, err := s.carts.Get(ctx, sid)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	products := s.catalog.Lookup(ctx, ids...)

	sum := &Summary{Lines: make([]Line, 0, len(items)), Total: decimal.Zero}
	for _, it := range items {
		line := Line{ID: it.ID, Quantity: it.Quantity, UnitPrice: decimal.Zero}
		if p, ok := products[it.ID]; ok {
			line.Known = true
			line.Name = p.Title()
			line.UnitPrice = unitPrice(p)
		} else {
			s.log.WithField("product", it.ID).Warn("cart item not in catalog")
		}
		line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		sum.Lines = append(sum.Lines, line)
		sum.Count += it.Quantity
		sum.Total = sum.Total.Add(line.LineTotal)
	}
	return sum, nil
}

func unitPrice(p catalog.Product) decimal.Decimal {
	if p.Kind == catalog.KindWine {
		return decimal.NewFromFloat(p.Wine.Price)
	}
	return catalog.ParsePrice(p.Event.Price)
}
