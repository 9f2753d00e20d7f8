package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/georgemunganga/fellbacher-shop/internal/modules/woocommerce"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(l Lister) *chi.Mux {
	logger, _ := test.NewNullLogger()
	fetcher := newTestFetcher(l, true)
	store := NewStore(NewDirectSource(fetcher), time.Minute, 0, logger)
	r := chi.NewRouter()
	NewHandler(NewService(fetcher, store, logger)).RegisterRoutes(r)
	return r
}

func serve(r http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestUpstreamProductsOK(t *testing.T) {
	l := &fakeLister{creds: validCreds, total: 1, pages: map[int][]woocommerce.Product{
		1: append(wines(1), woocommerce.Product{ID: 2, Name: "Weinprobe", Categories: cats("weinproben")}),
	}}
	rec := serve(newTestRouter(l), http.MethodGet, "/api/products")

	require.Equal(t, http.StatusOK, rec.Code)
	var products []Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 2)
	assert.Equal(t, KindWine, products[0].Kind)
	assert.Equal(t, KindEvent, products[1].Kind)
}

func TestUpstreamProductsTransportError(t *testing.T) {
	l := &fakeLister{creds: validCreds, fail: map[int]error{1: errors.New("connection refused")}}
	rec := serve(newTestRouter(l), http.MethodGet, "/api/products")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
	assert.Equal(t, "connection refused", body["message"])
}

func TestUpstreamProductsExplainsEmptyResult(t *testing.T) {
	for name, l := range map[string]*fakeLister{
		"missing credentials": {},
		"empty catalog":       {creds: validCreds, total: 1},
	} {
		t.Run(name, func(t *testing.T) {
			rec := serve(newTestRouter(l), http.MethodGet, "/api/products")

			assert.Equal(t, http.StatusOK, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
			assert.NotEmpty(t, body["details"])
		})
	}
}

func TestUpstreamWines(t *testing.T) {
	l := &fakeLister{creds: validCreds, total: 1, pages: map[int][]woocommerce.Product{
		1: append(wines(1), woocommerce.Product{ID: 2, Name: "Weinprobe", Categories: cats("weinproben")}),
	}}
	rec := serve(newTestRouter(l), http.MethodGet, "/api/wines")

	require.Equal(t, http.StatusOK, rec.Code)
	var got []Wine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	rec = serve(newTestRouter(&fakeLister{}), http.MethodGet, "/api/wines")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	failing := &fakeLister{creds: validCreds, fail: map[int]error{1: errors.New("timeout")}}
	rec = serve(newTestRouter(failing), http.MethodGet, "/api/wines")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListFallsBackToSample(t *testing.T) {
	rec := serve(newTestRouter(&fakeLister{}), http.MethodGet, "/api/v1/catalog/products?kind=event")

	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Source string    `json:"source"`
		Count  int       `json:"count"`
		Items  []Product `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Equal(t, ListingFallback, listing.Source)
	assert.Equal(t, 5, listing.Count)
}

func TestListUpstream(t *testing.T) {
	l := &fakeLister{creds: validCreds, total: 1, pages: map[int][]woocommerce.Product{1: wines(1, 2)}}
	rec := serve(newTestRouter(l), http.MethodGet, "/api/v1/catalog/products?q=wein+2")

	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Source string    `json:"source"`
		Items  []Product `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Equal(t, ListingUpstream, listing.Source)
	assert.Equal(t, []string{"2"}, ids(listing.Items))
}

func TestGetEndpoints(t *testing.T) {
	r := newTestRouter(&fakeLister{})

	tests := []struct {
		target string
		status int
	}{
		{"/api/v1/catalog/products/1", http.StatusOK},
		{"/api/v1/catalog/products/laemmler-merlot-p", http.StatusOK},
		{"/api/v1/catalog/products/missing", http.StatusNotFound},
		{"/api/v1/catalog/wines/1", http.StatusOK},
		{"/api/v1/catalog/wines/kellerblicke", http.StatusNotFound},
		{"/api/v1/catalog/events/kellerblicke", http.StatusOK},
		{"/api/v1/catalog/events/1", http.StatusNotFound},
		{"/api/v1/catalog/facets", http.StatusOK},
		{"/api/v1/catalog/status", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, tt.status, serve(r, http.MethodGet, tt.target).Code)
		})
	}
}

func TestRefresh(t *testing.T) {
	l := &fakeLister{creds: validCreds, total: 1, pages: map[int][]woocommerce.Product{1: wines(1, 2, 3)}}
	r := newTestRouter(l)

	rec := serve(r, http.MethodPost, "/api/v1/catalog/refresh?force=true")
	require.Equal(t, http.StatusOK, rec.Code)
	var st State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 3, st.Count)
	assert.NotNil(t, st.LastFetched)

	serve(r, http.MethodPost, "/api/v1/catalog/refresh")
	assert.Len(t, l.sortedCalls(), 1)
}
