package woocommerce

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "ck_key", user)
		assert.Equal(t, "cs_secret", pass)
		assert.Equal(t, "/wp-json/wc/v3/products", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "publish", r.URL.Query().Get("status"))

		w.Header().Set(TotalPagesHeader, "3")
		w.Write([]byte(`[{"id":42,"name":"Merlot","stock_quantity":null,
			"categories":[{"id":1,"name":"Rotwein","slug":"rotwein"}],
			"attributes":[{"name":"Jahrgang","options":["2022"]}]}]`))
	}))
	defer srv.Close()

	c := NewClient(Credentials{BaseURL: srv.URL + "/", ConsumerKey: "ck_key", ConsumerSecret: "cs_secret"}, srv.Client(), 0)
	page, err := c.ListProducts(context.Background(), 2, 100)
	require.NoError(t, err)

	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Products, 1)
	p := page.Products[0]
	assert.Equal(t, int64(42), p.ID)
	assert.Nil(t, p.StockQuantity)
	assert.Equal(t, "rotwein", p.Categories[0].Slug)
	assert.Equal(t, []string{"2022"}, p.Attributes[0].Options)
}

func TestListProductsDefaultsTotalPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(Credentials{BaseURL: srv.URL, ConsumerKey: "k", ConsumerSecret: "s"}, nil, time.Second)
	page, err := c.ListProducts(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalPages)
	assert.Empty(t, page.Products)
}

func TestListProductsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"woocommerce_rest_cannot_view"}`))
	}))
	defer srv.Close()

	c := NewClient(Credentials{BaseURL: srv.URL, ConsumerKey: "k", ConsumerSecret: "s"}, srv.Client(), 0)
	_, err := c.ListProducts(context.Background(), 1, 100)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Status)
	assert.Contains(t, statusErr.Body, "cannot_view")
}

func TestCredentialsMissing(t *testing.T) {
	assert.Empty(t, Credentials{BaseURL: "u", ConsumerKey: "k", ConsumerSecret: "s"}.Missing())
	assert.Equal(t,
		[]string{"WC_STORE_URL/NEXT_PUBLIC_WC_URL", "WC_CONSUMER_KEY", "WC_CONSUMER_SECRET"},
		Credentials{}.Missing())
	assert.Equal(t, []string{"WC_CONSUMER_SECRET"}, Credentials{BaseURL: "u", ConsumerKey: "k"}.Missing())
}
