package catalog

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned when no product matches an identifier.
var ErrNotFound = errors.New("product not found")

// Source labels of a Listing.
const (
	ListingUpstream = "upstream"
	ListingFallback = "fallback"
)

// Listing is a filtered view of the catalog.
type Listing struct {
	Source string    `json:"source"`
	Count  int       `json:"count"`
	Items  []Product `json:"items"`
}

// Service defines catalog business logic.
type Service interface {
	// FetchUpstream runs one fetch cycle, bypassing the store.
	FetchUpstream(ctx context.Context) FetchResult
	// List filters the cached catalog, or the bundled sample when it is empty.
	List(ctx context.Context, q Query) Listing
	GetProduct(ctx context.Context, id string) (Product, error)
	// Lookup resolves several ids against one catalog snapshot. Unknown ids are absent.
	Lookup(ctx context.Context, ids ...string) map[string]Product
	GetWine(ctx context.Context, id string) (*Wine, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	Facets(ctx context.Context) Facets
	Refresh(ctx context.Context, force bool) State
	Status() State
}

type service struct {
	fetcher *Fetcher
	store   *Store
	log     log.FieldLogger
}

// NewService creates a catalog service.
func NewService(fetcher *Fetcher, store *Store, logger log.FieldLogger) Service {
	return &service{fetcher: fetcher, store: store, log: logger.WithField("component", "catalog.service")}
}

func (s *service) FetchUpstream(ctx context.Context) FetchResult {
	return s.fetcher.Fetch(ctx)
}

// current lazily refreshes the store and falls back to the bundled sample.
func (s *service) current(ctx context.Context) ([]Product, string) {
	s.store.FetchProducts(ctx, false)
	if products := s.store.Products(); len(products) > 0 {
		return products, ListingUpstream
	}
	fallback, err := Fallback()
	if err != nil {
		s.log.WithError(err).Error("fallback catalog unavailable")
		return nil, ListingFallback
	}
	return fallback, ListingFallback
}

func (s *service) List(ctx context.Context, q Query) Listing {
	products, source := s.current(ctx)
	items := Apply(products, q)
	return Listing{Source: source, Count: len(items), Items: items}
}

func (s *service) GetProduct(ctx context.Context, id string) (Product, error) {
	products, _ := s.current(ctx)
	if p, ok := findProduct(products, id); ok {
		return p, nil
	}
	return Product{}, ErrNotFound
}

func (s *service) Lookup(ctx context.Context, ids ...string) map[string]Product {
	products, _ := s.current(ctx)
	found := make(map[string]Product, len(ids))
	for _, id := range ids {
		if p, ok := findProduct(products, id); ok {
			found[id] = p
		}
	}
	return found
}

func (s *service) GetWine(ctx context.Context, id string) (*Wine, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Kind != KindWine {
		return nil, ErrNotFound
	}
	return p.Wine, nil
}

func (s *service) GetEvent(ctx context.Context, id string) (*Event, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Kind != KindEvent {
		return nil, ErrNotFound
	}
	return p.Event, nil
}

func (s *service) Facets(ctx context.Context) Facets {
	products, _ := s.current(ctx)
	return BuildFacets(products)
}

func (s *service) Refresh(ctx context.Context, force bool) State {
	s.store.FetchProducts(ctx, force)
	return s.store.Snapshot()
}

func (s *service) Status() State {
	return s.store.Snapshot()
}
