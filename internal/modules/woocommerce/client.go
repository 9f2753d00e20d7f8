package woocommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// TotalPagesHeader declares the page count of a listing.
const TotalPagesHeader = "X-WP-TotalPages"

// Credentials identify the shop and authorise REST calls.
type Credentials struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
}

// Missing lists the environment names of absent credential parts.
func (c Credentials) Missing() []string {
	var missing []string
	if c.BaseURL == "" {
		missing = append(missing, "WC_STORE_URL/NEXT_PUBLIC_WC_URL")
	}
	if c.ConsumerKey == "" {
		missing = append(missing, "WC_CONSUMER_KEY")
	}
	if c.ConsumerSecret == "" {
		missing = append(missing, "WC_CONSUMER_SECRET")
	}
	return missing
}

// StatusError is returned for a non-2xx upstream response.
type StatusError struct {
	Page   int
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("woocommerce: page %d: status %d: %s", e.Page, e.Status, e.Body)
}

// Page is one decoded page of the product listing.
type Page struct {
	Products   []Product
	TotalPages int
}

// Client talks to the WooCommerce product listing endpoint.
type Client struct {
	creds Credentials
	http  *http.Client
}

// NewClient creates a client. A nil httpClient gets a client with the given timeout.
func NewClient(creds Credentials, httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	creds.BaseURL = strings.TrimRight(creds.BaseURL, "/")
	return &Client{creds: creds, http: httpClient}
}

// Credentials returns the configured credentials.
func (c *Client) Credentials() Credentials { return c.creds }

// ListProducts fetches one page of published products.
func (c *Client) ListProducts(ctx context.Context, page, perPage int) (*Page, error) {
	url := fmt.Sprintf("%s/wp-json/wc/v3/products?per_page=%d&page=%d&status=publish",
		c.creds.BaseURL, perPage, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "woocommerce: build request")
	}
	req.SetBasicAuth(c.creds.ConsumerKey, c.creds.ConsumerSecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "woocommerce: page %d", page)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Page: page, Status: resp.StatusCode, Body: string(body)}
	}

	var products []Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, errors.Wrapf(err, "woocommerce: decode page %d", page)
	}

	total := 1
	if h := resp.Header.Get(TotalPagesHeader); h != "" {
		if n, err := strconv.Atoi(h); err == nil && n > 0 {
			total = n
		}
	}
	return &Page{Products: products, TotalPages: total}, nil
}
