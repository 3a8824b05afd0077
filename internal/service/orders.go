package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/desistore/storefront/internal/cache"
	"github.com/desistore/storefront/internal/domain"
	"github.com/desistore/storefront/internal/gateway"
	apperrors "github.com/desistore/storefront/pkg/errors"
	"github.com/desistore/storefront/pkg/logger"
)

// OrderService serves the calling user's order history through the
// query cache.
type OrderService struct {
	gw     gateway.Gateway
	cache  *cache.QueryCache
	logger *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(gw gateway.Gateway, qc *cache.QueryCache, logger *slog.Logger) *OrderService {
	return &OrderService{
		gw:     gw,
		cache:  qc,
		logger: logger,
	}
}

// ListOrders returns the calling user's order history.
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	userID := logger.UserIDFromContext(ctx)
	if userID == "" {
		return nil, apperrors.Unauthorized("user id is required")
	}

	key := cache.OrdersKey(userID)
	var orders []domain.Order
	if hit, err := s.cache.Get(ctx, key, &orders); err != nil {
		s.logger.WarnContext(ctx, "cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	} else if hit {
		return orders, nil
	}

	orders, err := s.gw.ListMyOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	if err := s.cache.Set(ctx, key, orders); err != nil {
		s.logger.WarnContext(ctx, "cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return orders, nil
}

// GetOrder returns one of the calling user's orders by id.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	userID := logger.UserIDFromContext(ctx)
	if userID == "" {
		return domain.Order{}, apperrors.Unauthorized("user id is required")
	}
	if id <= 0 {
		return domain.Order{}, apperrors.InvalidInput("order id must be positive")
	}

	key := cache.OrderKey(userID, id)
	var order domain.Order
	if hit, err := s.cache.Get(ctx, key, &order); err != nil {
		s.logger.WarnContext(ctx, "cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	} else if hit {
		return order, nil
	}

	order, err := s.gw.GetOrder(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("get order %d: %w", id, err)
	}

	if err := s.cache.Set(ctx, key, order); err != nil {
		s.logger.WarnContext(ctx, "cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return order, nil
}
