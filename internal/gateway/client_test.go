package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desistore/storefront/internal/domain"
	apperrors "github.com/desistore/storefront/pkg/errors"
	"github.com/desistore/storefront/pkg/httpclient"
	"github.com/desistore/storefront/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	c := NewClient(srv.URL, httpclient.New(cfg), slog.New(slog.NewTextHandler(io.Discard, nil)))
	return c, srv
}

func TestClient_GetCart(t *testing.T) {
	var gotPath, gotUserID string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUserID = r.Header.Get("X-User-ID")
		assert.Equal(t, http.MethodPost, r.Method)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []domain.CartLine{{ProductID: 7, Quantity: 2}},
		})
	})

	ctx := logger.WithUserID(context.Background(), "user-1")
	lines, err := c.GetCart(ctx)

	require.NoError(t, err)
	assert.Equal(t, "/rpc/getCart", gotPath)
	assert.Equal(t, "user-1", gotUserID)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(7), lines[0].ProductID)
	assert.Equal(t, int64(2), lines[0].Quantity)
}

func TestClient_AddItemToCart_SendsArgs(t *testing.T) {
	var gotArgs map[string]int64
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotArgs))
		_ = json.NewEncoder(w).Encode(map[string]any{"data": nil})
	})

	err := c.AddItemToCart(context.Background(), 42, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(42), gotArgs["product_id"])
	assert.Equal(t, int64(3), gotArgs["quantity"])
}

func TestClient_PlaceOrder(t *testing.T) {
	var gotArgs map[string]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rpc/placeOrder", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotArgs))
		_ = json.NewEncoder(w).Encode(map[string]any{"data": 1001})
	})

	orderID, err := c.PlaceOrder(context.Background(), "addr", domain.PaymentMethodCOD, "India")

	require.NoError(t, err)
	assert.Equal(t, int64(1001), orderID)
	assert.Equal(t, "addr", gotArgs["shipping_address"])
	assert.Equal(t, "cod", gotArgs["payment_method"])
	assert.Equal(t, "India", gotArgs["country"])
}

func TestClient_GetProductByID_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"code": "NOT_FOUND", "message": "product not found"},
		})
	})

	_, err := c.GetProductByID(context.Background(), 999)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClient_InvalidInputPropagated(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"code": "INVALID_INPUT", "message": "quantity must be positive"},
		})
	})

	err := c.UpdateCartItem(context.Background(), 1, -1)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestClient_AddProduct_RatingSerialization(t *testing.T) {
	var raw map[string]json.RawMessage
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_ = json.NewEncoder(w).Encode(map[string]any{"data": 5})
	})

	in := domain.ProductInput{Title: "Mug", Price: 19900, Stock: 3}
	id, err := c.AddProduct(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.Equal(t, "null", string(raw["rating"]))
}

func TestClient_GetCallerUserRole(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": "admin"})
	})

	role, err := c.GetCallerUserRole(context.Background())

	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)
}
