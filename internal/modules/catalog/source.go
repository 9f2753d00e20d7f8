package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// Source loads the unified catalog for the Store.
type Source interface {
	Load(ctx context.Context) ([]Product, error)
}

// ErrNoProducts reports a successful load that returned nothing.
var ErrNoProducts = errors.New("no products found")

type directSource struct{ fetcher *Fetcher }

// NewDirectSource loads in-process through the fetch orchestrator.
func NewDirectSource(f *Fetcher) Source { return &directSource{fetcher: f} }

func (s *directSource) Load(ctx context.Context) ([]Product, error) {
	res := s.fetcher.Fetch(ctx)
	switch res.Status {
	case FetchOK:
		return res.Products, nil
	case FetchEmpty:
		return nil, nil
	}
	return nil, res.Err
}

type boundarySource struct {
	url    string
	client *http.Client
}

// NewBoundarySource loads from a GET /api/products endpoint.
func NewBoundarySource(url string, client *http.Client) Source {
	if client == nil {
		client = http.DefaultClient
	}
	return &boundarySource{url: url, client: client}
}

func (s *boundarySource) Load(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: build request")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: request products")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: read products")
	}

	// Errors and explanatory empty results come back as an object.
	var payload errorPayload
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return nil, errors.New(payload.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("catalog: products endpoint returned %d", resp.StatusCode)
	}

	var products []Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, errors.Wrap(err, "catalog: decode products")
	}
	return products, nil
}

type errorPayload struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Message string `json:"message,omitempty"`
}
