package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/desistore/storefront/internal/domain"
	"github.com/desistore/storefront/pkg/httpclient"
	"github.com/desistore/storefront/pkg/logger"
)

// Doer executes an HTTP request. Satisfied by both httpclient.Client
// and httpclient.CircuitBreakerClient.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client is the HTTP implementation of Gateway. Each RPC method maps to
// POST {baseURL}/rpc/{method} with a JSON argument object; results come
// back wrapped in a {"data": ...} envelope. Caller identity is
// forwarded via the X-User-ID header taken from the request context.
type Client struct {
	baseURL string
	http    Doer
	logger  *slog.Logger
}

// NewClient creates a gateway client against the given backend base URL.
func NewClient(baseURL string, doer Doer, log *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    doer,
		logger:  log,
	}
}

var _ Gateway = (*Client)(nil)

// call performs one RPC round-trip. args may be nil for zero-argument
// methods; out may be nil for void methods.
func (c *Client) call(ctx context.Context, method string, args, out any) error {
	start := time.Now()

	var body io.Reader
	if args != nil {
		b, err := json.Marshal(args)
		if err != nil {
			return fmt.Errorf("marshal %s args: %w", method, err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader([]byte("{}"))
	}

	url := c.baseURL + "/rpc/" + method
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID := logger.UserIDFromContext(ctx); userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if corrID := logger.CorrelationIDFromContext(ctx); corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("call backend %s: %w", method, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, "backend")
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.DebugContext(ctx, "backend rpc completed",
		slog.String("method", method),
		slog.Duration("duration", time.Since(start)),
	)

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

func (c *Client) GetCart(ctx context.Context) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if err := c.call(ctx, "getCart", nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (c *Client) AddItemToCart(ctx context.Context, productID, quantity int64) error {
	args := map[string]int64{"product_id": productID, "quantity": quantity}
	return c.call(ctx, "addItemToCart", args, nil)
}

func (c *Client) UpdateCartItem(ctx context.Context, productID, quantity int64) error {
	args := map[string]int64{"product_id": productID, "quantity": quantity}
	return c.call(ctx, "updateCartItem", args, nil)
}

func (c *Client) RemoveCartItem(ctx context.Context, productID int64) error {
	args := map[string]int64{"product_id": productID}
	return c.call(ctx, "removeCartItem", args, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.call(ctx, "clearCart", nil, nil)
}

func (c *Client) ListAllProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.call(ctx, "listAllProducts", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var products []domain.Product
	args := map[string]string{"category": category}
	if err := c.call(ctx, "listProductsByCategory", args, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) SearchProducts(ctx context.Context, keyword string) ([]domain.Product, error) {
	var products []domain.Product
	args := map[string]string{"keyword": keyword}
	if err := c.call(ctx, "searchProducts", args, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProductByID(ctx context.Context, id int64) (domain.Product, error) {
	var product domain.Product
	args := map[string]int64{"id": id}
	if err := c.call(ctx, "getProductById", args, &product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (c *Client) GetSupportedCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.call(ctx, "getSupportedCategories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) PlaceOrder(ctx context.Context, shippingAddress string, method domain.PaymentMethod, country string) (int64, error) {
	args := map[string]string{
		"shipping_address": shippingAddress,
		"payment_method":   string(method),
		"country":          country,
	}
	var orderID int64
	if err := c.call(ctx, "placeOrder", args, &orderID); err != nil {
		return 0, err
	}
	return orderID, nil
}

func (c *Client) ListMyOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.call(ctx, "listMyOrders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	var order domain.Order
	args := map[string]int64{"id": id}
	if err := c.call(ctx, "getOrder", args, &order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (c *Client) AddProduct(ctx context.Context, in domain.ProductInput) (int64, error) {
	var productID int64
	if err := c.call(ctx, "addProduct", in, &productID); err != nil {
		return 0, err
	}
	return productID, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) error {
	args := struct {
		ID int64 `json:"id"`
		domain.ProductInput
	}{ID: id, ProductInput: in}
	return c.call(ctx, "updateProduct", args, nil)
}

func (c *Client) UpdateStock(ctx context.Context, productID, stock int64) error {
	args := map[string]int64{"product_id": productID, "stock": stock}
	return c.call(ctx, "updateStock", args, nil)
}

func (c *Client) GetCallerUserRole(ctx context.Context) (UserRole, error) {
	var role UserRole
	if err := c.call(ctx, "getCallerUserRole", nil, &role); err != nil {
		return "", err
	}
	return role, nil
}

func (c *Client) IsCallerAdmin(ctx context.Context) (bool, error) {
	var admin bool
	if err := c.call(ctx, "isCallerAdmin", nil, &admin); err != nil {
		return false, err
	}
	return admin, nil
}

func (c *Client) GetCallerUserProfile(ctx context.Context) (UserProfile, error) {
	var profile UserProfile
	if err := c.call(ctx, "getCallerUserProfile", nil, &profile); err != nil {
		return UserProfile{}, err
	}
	return profile, nil
}

func (c *Client) SaveCallerUserProfile(ctx context.Context, p UserProfile) error {
	return c.call(ctx, "saveCallerUserProfile", p, nil)
}
