package catalog

import (
	"context"
	"sync"

	"github.com/georgemunganga/fellbacher-shop/internal/modules/woocommerce"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// FetchStatus classifies the outcome of one fetch cycle.
type FetchStatus string

const (
	FetchOK             FetchStatus = "ok"
	FetchEmpty          FetchStatus = "empty"
	FetchConfigError    FetchStatus = "config_error"
	FetchTransportError FetchStatus = "transport_error"
)

// ErrMissingCredentials is the Err of a FetchConfigError result.
var ErrMissingCredentials = errors.New("catalog: upstream credentials missing")

// FetchResult is the outcome of one fetch cycle. Products is empty unless Status is FetchOK.
type FetchResult struct {
	Status   FetchStatus
	Products []Product
	Err      error
}

// Lister is the upstream listing endpoint.
type Lister interface {
	Credentials() woocommerce.Credentials
	ListProducts(ctx context.Context, page, perPage int) (*woocommerce.Page, error)
}

// FetchOptions tune pagination.
type FetchOptions struct {
	PerPage        int
	Concurrent     bool
	MaxConcurrency int
}

// Fetcher pages through the upstream catalog and normalizes every record.
type Fetcher struct {
	lister     Lister
	normalizer *Normalizer
	opts       FetchOptions
	log        log.FieldLogger
}

// NewFetcher creates a fetch orchestrator.
func NewFetcher(lister Lister, normalizer *Normalizer, opts FetchOptions, logger log.FieldLogger) *Fetcher {
	if opts.PerPage <= 0 {
		opts.PerPage = 100
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = 4
	}
	return &Fetcher{
		lister:     lister,
		normalizer: normalizer,
		opts:       opts,
		log:        logger.WithField("component", "catalog.fetcher"),
	}
}

// Fetch runs one fetch cycle. It never mixes partial data with fallback data:
// the caller decides what to show for a non-ok result.
func (f *Fetcher) Fetch(ctx context.Context) FetchResult {
	if missing := f.lister.Credentials().Missing(); len(missing) > 0 {
		f.log.WithField("missing", missing).Error("woocommerce credentials missing")
		return FetchResult{Status: FetchConfigError, Err: ErrMissingCredentials}
	}

	var (
		raw []woocommerce.Product
		err error
	)
	if f.opts.Concurrent {
		raw, err = f.fetchConcurrent(ctx)
	} else {
		raw, err = f.fetchSequential(ctx)
	}
	if err != nil {
		f.log.WithError(err).Error("failed to load products from woocommerce")
		return FetchResult{Status: FetchTransportError, Err: err}
	}

	products := f.normalizeAll(raw)
	f.log.WithField("count", len(products)).Info("loaded products from woocommerce")
	if len(products) == 0 {
		return FetchResult{Status: FetchEmpty}
	}
	return FetchResult{Status: FetchOK, Products: products}
}

func (f *Fetcher) fetchSequential(ctx context.Context) ([]woocommerce.Product, error) {
	first, err := f.lister.ListProducts(ctx, 1, f.opts.PerPage)
	if err != nil {
		return nil, err
	}
	all := first.Products
	total := first.TotalPages

	for page := 2; page <= total && len(all) > 0; page++ {
		next, err := f.lister.ListProducts(ctx, page, f.opts.PerPage)
		if err != nil {
			f.log.WithError(err).WithField("page", page).Warn("failed to load page")
			break
		}
		if len(next.Products) == 0 {
			break
		}
		all = append(all, next.Products...)
	}
	return all, nil
}

func (f *Fetcher) fetchConcurrent(ctx context.Context) ([]woocommerce.Product, error) {
	first, err := f.lister.ListProducts(ctx, 1, f.opts.PerPage)
	if err != nil {
		return nil, err
	}
	if first.TotalPages <= 1 {
		return first.Products, nil
	}

	pages := make([][]woocommerce.Product, first.TotalPages+1)
	pages[1] = first.Products

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.opts.MaxConcurrency)
	for page := 2; page <= first.TotalPages; page++ {
		page := page
		g.Go(func() error {
			res, err := f.lister.ListProducts(gctx, page, f.opts.PerPage)
			if err != nil {
				f.log.WithError(err).WithFields(log.Fields{
					"page":        page,
					"total_pages": first.TotalPages,
				}).Warn("failed to load page")
				return nil
			}
			mu.Lock()
			pages[page] = res.Products
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	var all []woocommerce.Product
	for _, p := range pages {
		all = append(all, p...)
	}
	return all, nil
}

// normalizeAll maps records in page order, dropping id-less records and
// later duplicates of an id already seen in this cycle.
func (f *Fetcher) normalizeAll(raw []woocommerce.Product) []Product {
	seen := make(map[int64]bool, len(raw))
	out := make([]Product, 0, len(raw))
	for _, r := range raw {
		if r.ID == 0 {
			f.log.WithField("name", r.Name).Warn("skipping record without id")
			continue
		}
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, f.normalizer.Normalize(r))
	}
	return out
}
