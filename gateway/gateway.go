// Package gateway is the single outbound HTTP client for the storefront
// API. It attaches the current credential as a bearer token on every
// request and exposes resource-oriented calls; it never mutates the
// credential store or session state itself.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/earthen/shopctl/credentials"
)

const (
	contentTypeJSON = "application/json"
	requestIDHeader = "X-Request-ID"
)

// Gateway issues authenticated requests against a fixed base URL. The
// credential store is consulted on every call, so a login or logout in
// between calls takes effect immediately.
type Gateway struct {
	baseURL    string
	store      credentials.Store
	httpClient *http.Client
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient overrides the underlying HTTP client (primarily for
// tests and custom timeouts).
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) {
		g.httpClient = client
	}
}

// New creates a Gateway for the given base URL. Requests carry a bearer
// header only when the store holds a credential at call time.
func New(baseURL string, store credentials.Store, options ...Option) *Gateway {
	g := &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		httpClient: http.DefaultClient,
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

// Login exchanges a username (or email, the server resolves either) and
// password for a credential pair. The result is not persisted here.
func (g *Gateway) Login(ctx context.Context, username, password string) (*credentials.Credential, error) {
	payload := map[string]string{"username": username, "password": password}

	var cred credentials.Credential
	if err := g.do(ctx, http.MethodPost, "/token/", payload, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

// Register creates a new account. The server also provisions an empty
// cart for the user.
func (g *Gateway) Register(ctx context.Context, form RegistrationForm) error {
	return g.do(ctx, http.MethodPost, "/register/", form, nil)
}

// ListProducts returns the full catalog. No authentication required.
func (g *Gateway) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := g.do(ctx, http.MethodGet, "/products/", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns a single catalog entry.
func (g *Gateway) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := g.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// GetCart returns the user's active cart, or nil when the server holds
// no cart for the user. The endpoint returns a collection; the first
// element is the active cart.
func (g *Gateway) GetCart(ctx context.Context) (*Cart, error) {
	var carts []Cart
	if err := g.do(ctx, http.MethodGet, "/cart/", nil, &carts); err != nil {
		return nil, err
	}
	if len(carts) == 0 {
		return nil, nil
	}
	return &carts[0], nil
}

// AddCartItem adds quantity of a product to the cart. Adding a product
// already in the cart increments its line quantity server-side.
func (g *Gateway) AddCartItem(ctx context.Context, productID int64, quantity int) (*CartItem, error) {
	payload := map[string]any{"product_id": productID, "quantity": quantity}

	var item CartItem
	if err := g.do(ctx, http.MethodPost, "/cart-items/", payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItem sets the quantity of an existing cart line.
func (g *Gateway) UpdateCartItem(ctx context.Context, itemID int64, quantity int) (*CartItem, error) {
	payload := map[string]any{"quantity": quantity}

	var item CartItem
	if err := g.do(ctx, http.MethodPatch, fmt.Sprintf("/cart-items/%d/", itemID), payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteCartItem removes a cart line.
func (g *Gateway) DeleteCartItem(ctx context.Context, itemID int64) error {
	return g.do(ctx, http.MethodDelete, fmt.Sprintf("/cart-items/%d/", itemID), nil, nil)
}

// Checkout places an order from the current cart contents. The server
// empties the cart as part of the same transaction.
func (g *Gateway) Checkout(ctx context.Context, form CheckoutForm) (*Order, error) {
	var order Order
	if err := g.do(ctx, http.MethodPost, "/checkout/", form, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the user's order history, newest first.
func (g *Gateway) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := g.do(ctx, http.MethodGet, "/orders/", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// do performs a single request/response cycle. Every failure surfaces
// as a *RequestError (or *ValidationError) for the caller to interpret.
func (g *Gateway) do(ctx context.Context, method, path string, payload, out any) error {
	url := g.baseURL + path

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set(requestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	// Read-before-write on every call: the store is the source of truth
	// for the current credential, not any cached copy.
	if cred, _ := g.store.Load(); !cred.Empty() {
		req.Header.Set("Authorization", "Bearer "+cred.Access)
	}

	log.Debug().Str("method", method).Str("url", url).Str("request_id", requestID).Msg("api request")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return &RequestError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Method: method, URL: url, Status: resp.StatusCode, Err: err}
	}

	log.Debug().Str("request_id", requestID).Int("status", resp.StatusCode).Msg("api response")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newStatusError(method, url, resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response from %s %s: %w", method, url, err)
		}
	}
	return nil
}
