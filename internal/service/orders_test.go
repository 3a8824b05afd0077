package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/desistore/storefront/internal/domain"
	apperrors "github.com/desistore/storefront/pkg/errors"
)

func newOrderTestService(t *testing.T, gw *mockGateway) *OrderService {
	t.Helper()
	return NewOrderService(gw, newTestCache(t), newTestLogger())
}

func sampleOrder(id int64) domain.Order {
	return domain.Order{
		ID:              id,
		UserID:          "user-1",
		Items:           []domain.CartLine{{ProductID: 1, Quantity: 2}},
		Total:           100000,
		PaymentMethod:   domain.PaymentMethodCOD,
		ShippingAddress: "Asha Rao\n9876543210\n12 MG Road\nBengaluru, Karnataka - 560001\nIndia",
		Timestamp:       time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestOrderService_ListOrders(t *testing.T) {
	gw := &mockGateway{}
	svc := newOrderTestService(t, gw)
	ctx := userContext("user-1")

	orders := []domain.Order{sampleOrder(1), sampleOrder(2)}
	gw.On("ListMyOrders", mock.Anything).Return(orders, nil).Once()

	got, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, orders, got)

	// Second read hits the cache.
	got, err = svc.ListOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, orders, got)
	gw.AssertNumberOfCalls(t, "ListMyOrders", 1)
}

func TestOrderService_ListOrders_Anonymous(t *testing.T) {
	gw := &mockGateway{}
	svc := newOrderTestService(t, gw)

	_, err := svc.ListOrders(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestOrderService_GetOrder(t *testing.T) {
	gw := &mockGateway{}
	svc := newOrderTestService(t, gw)
	ctx := userContext("user-1")

	order := sampleOrder(5)
	gw.On("GetOrder", mock.Anything, int64(5)).Return(order, nil).Once()

	got, err := svc.GetOrder(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, order, got)

	got, err = svc.GetOrder(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, order, got)
	gw.AssertNumberOfCalls(t, "GetOrder", 1)
}

func TestOrderService_GetOrder_InvalidID(t *testing.T) {
	gw := &mockGateway{}
	svc := newOrderTestService(t, gw)

	_, err := svc.GetOrder(userContext("user-1"), 0)

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	gw := &mockGateway{}
	svc := newOrderTestService(t, gw)

	gw.On("GetOrder", mock.Anything, int64(99)).
		Return(domain.Order{}, apperrors.NotFound("order", "99"))

	_, err := svc.GetOrder(userContext("user-1"), 99)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
