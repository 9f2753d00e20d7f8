package catalog

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultTTL is how long a non-empty catalog is considered fresh.
const DefaultTTL = 5 * time.Minute

// State is a snapshot of the Store.
type State struct {
	Products    []Product  `json:"-"`
	Count       int        `json:"count"`
	Loading     bool       `json:"loading"`
	Error       string     `json:"error,omitempty"`
	LastFetched *time.Time `json:"last_fetched,omitempty"`
}

// Store caches the last fetched catalog.
type Store struct {
	source  Source
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time
	log     log.FieldLogger

	mu          sync.RWMutex
	products    []Product
	loading     bool
	err         string
	lastFetched time.Time
}

// NewStore creates a catalog store. ttl <= 0 uses DefaultTTL; loadTimeout <= 0
// leaves a load unbounded.
func NewStore(source Source, ttl, loadTimeout time.Duration, logger log.FieldLogger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		source:  source,
		ttl:     ttl,
		timeout: loadTimeout,
		now:     time.Now,
		log:     logger.WithField("component", "catalog.store"),
	}
}

// FetchProducts reloads the catalog unless a load is in flight or, without force,
// the cache is fresh and non-empty. A failed load keeps the previous products.
// It reports whether a load was performed. The load is shared by every caller, so
// cancelling ctx does not abort it; only the store's load timeout does.
func (s *Store) FetchProducts(ctx context.Context, force bool) bool {
	s.mu.Lock()
	if !force && !s.lastFetched.IsZero() && s.now().Sub(s.lastFetched) < s.ttl && len(s.products) > 0 {
		s.mu.Unlock()
		return false
	}
	if s.loading {
		s.mu.Unlock()
		return false
	}
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	loadCtx := context.WithoutCancel(ctx)
	if s.timeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(loadCtx, s.timeout)
		defer cancel()
	}
	products, err := s.source.Load(loadCtx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.log.WithError(err).Error("failed to load catalog")
		s.err = err.Error()
		return true
	}
	s.products = products
	s.lastFetched = s.now()
	if len(products) == 0 {
		s.err = ErrNoProducts.Error()
	}
	return true
}

// Snapshot returns the current state. Products must not be mutated.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State{
		Products: s.products,
		Count:    len(s.products),
		Loading:  s.loading,
		Error:    s.err,
	}
	if !s.lastFetched.IsZero() {
		t := s.lastFetched
		st.LastFetched = &t
	}
	return st
}

// Products returns the cached catalog.
func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// GetByID finds a product by id, or a wine by slug.
func (s *Store) GetByID(id string) (Product, bool) {
	return findProduct(s.Products(), id)
}

// GetWine finds a wine by id or slug.
func (s *Store) GetWine(id string) (*Wine, bool) {
	p, ok := s.GetByID(id)
	if !ok || p.Kind != KindWine {
		return nil, false
	}
	return p.Wine, true
}

// GetEvent finds an event by id.
func (s *Store) GetEvent(id string) (*Event, bool) {
	p, ok := s.GetByID(id)
	if !ok || p.Kind != KindEvent {
		return nil, false
	}
	return p.Event, true
}

func findProduct(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID() == id || (p.Kind == KindWine && p.Wine.Slug == id) {
			return p, true
		}
	}
	return Product{}, false
}
