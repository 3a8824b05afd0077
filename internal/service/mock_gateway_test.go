package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"github.com/desistore/storefront/internal/cache"
	"github.com/desistore/storefront/internal/domain"
	"github.com/desistore/storefront/internal/event"
	"github.com/desistore/storefront/internal/gateway"
	pkgkafka "github.com/desistore/storefront/pkg/kafka"
	"github.com/desistore/storefront/pkg/logger"
)

// --- Mock Gateway ---

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) GetCart(ctx context.Context) ([]domain.CartLine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartLine), args.Error(1)
}

func (m *mockGateway) AddItemToCart(ctx context.Context, productID, quantity int64) error {
	return m.Called(ctx, productID, quantity).Error(0)
}

func (m *mockGateway) UpdateCartItem(ctx context.Context, productID, quantity int64) error {
	return m.Called(ctx, productID, quantity).Error(0)
}

func (m *mockGateway) RemoveCartItem(ctx context.Context, productID int64) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *mockGateway) ClearCart(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockGateway) ListAllProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockGateway) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockGateway) SearchProducts(ctx context.Context, keyword string) ([]domain.Product, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockGateway) GetProductByID(ctx context.Context, id int64) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockGateway) GetSupportedCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockGateway) PlaceOrder(ctx context.Context, shippingAddress string, method domain.PaymentMethod, country string) (int64, error) {
	args := m.Called(ctx, shippingAddress, method, country)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockGateway) ListMyOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockGateway) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *mockGateway) AddProduct(ctx context.Context, in domain.ProductInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockGateway) UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *mockGateway) UpdateStock(ctx context.Context, productID, stock int64) error {
	return m.Called(ctx, productID, stock).Error(0)
}

func (m *mockGateway) GetCallerUserRole(ctx context.Context) (gateway.UserRole, error) {
	args := m.Called(ctx)
	return args.Get(0).(gateway.UserRole), args.Error(1)
}

func (m *mockGateway) IsCallerAdmin(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *mockGateway) GetCallerUserProfile(ctx context.Context) (gateway.UserProfile, error) {
	args := m.Called(ctx)
	return args.Get(0).(gateway.UserProfile), args.Error(1)
}

func (m *mockGateway) SaveCallerUserProfile(ctx context.Context, p gateway.UserProfile) error {
	return m.Called(ctx, p).Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCache(t *testing.T) *cache.QueryCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewQueryCache(client, time.Minute, newTestLogger())
}

// newTestProducer returns an event producer with no reachable broker;
// publishes fail and services must treat that as non-fatal.
func newTestProducer() *event.Producer {
	log := newTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, log), log)
}

func userContext(userID string) context.Context {
	return logger.WithUserID(context.Background(), userID)
}
