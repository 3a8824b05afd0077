package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/desistore/storefront/internal/cache"
	"github.com/desistore/storefront/internal/domain"
	"github.com/desistore/storefront/internal/event"
	"github.com/desistore/storefront/internal/gateway"
	apperrors "github.com/desistore/storefront/pkg/errors"
	"github.com/desistore/storefront/pkg/logger"
)

// MaxQuantityPerItem is the maximum quantity allowed for a single cart line.
const MaxQuantityPerItem = 100

// CartService implements the cart view and mutation operations. The
// cart itself lives in the commerce backend; this service aggregates
// raw lines against the catalog for display and keeps the query cache
// coherent after every mutation.
type CartService struct {
	gw       gateway.Gateway
	catalog  *CatalogService
	cache    *cache.QueryCache
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(gw gateway.Gateway, catalog *CatalogService, qc *cache.QueryCache, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		gw:       gw,
		catalog:  catalog,
		cache:    qc,
		producer: producer,
		logger:   logger,
	}
}

// GetCart returns the priced cart view for the calling user: raw lines
// fetched from the backend, joined against the catalog, with lines
// whose product disappeared dropped silently.
func (s *CartService) GetCart(ctx context.Context) (domain.PricedCart, error) {
	userID := logger.UserIDFromContext(ctx)
	if userID == "" {
		return domain.PricedCart{}, apperrors.Unauthorized("user id is required")
	}

	key := cache.CartKey(userID)
	var cached domain.PricedCart
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.WarnContext(ctx, "cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	} else if hit {
		return cached, nil
	}

	lines, err := s.gw.GetCart(ctx)
	if err != nil {
		return domain.PricedCart{}, fmt.Errorf("get cart: %w", err)
	}

	catalog, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return domain.PricedCart{}, fmt.Errorf("resolve cart products: %w", err)
	}

	cart := domain.AggregateCart(lines, catalog)

	if err := s.cache.Set(ctx, key, cart); err != nil {
		s.logger.WarnContext(ctx, "cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return cart, nil
}

// AddItem adds a quantity of a product to the cart.
func (s *CartService) AddItem(ctx context.Context, productID, quantity int64) error {
	userID := logger.UserIDFromContext(ctx)
	if userID == "" {
		return apperrors.Unauthorized("user id is required")
	}
	if productID <= 0 {
		return apperrors.InvalidInput("product id must be positive")
	}
	if quantity <= 0 {
		return apperrors.InvalidInput("quantity must be greater than 0")
	}
	if quantity > MaxQuantityPerItem {
		return apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	if err := s.gw.AddItemToCart(ctx, productID, quantity); err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}

	s.afterCartMutation(ctx, userID, "add", productID, quantity)
	return nil
}

// UpdateItem sets the quantity of an existing cart line. Quantity 0
// removes the line.
func (s *CartService) UpdateItem(ctx context.Context, productID, quantity int64) error {
	userID := logger.UserIDFromContext(ctx)
	if userID == "" {
		return apperrors.Unauthorized("user id is required")
	}
	if productID <= 0 {
		return apperrors.InvalidInput("product id must be positive")
	}
	if quantity < 0 {
		return apperrors.InvalidInput("quantity must not be negative")
	}
	if quantity > MaxQuantityPerItem {
		return apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	if quantity == 0 {
		if err := s.gw.RemoveCartItem(ctx, productID); err != nil {
			return fmt.Errorf("remove cart item: %w", err)
		}
		s.afterCartMutation(ctx, userID, "remove", productID, 0)
		return nil
	}

	if err := s.gw.UpdateCartItem(ctx, productID, quantity); err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}

	s.afterCartMutation(ctx, userID, "update", productID, quantity)
	return nil
}

// RemoveItem removes a cart line.
func (s *CartService) RemoveItem(ctx context.Context, productID int64) error {
	userID := logger.UserIDFromContext(ctx)
	if userID == "" {
		return apperrors.Unauthorized("user id is required")
	}
	if productID <= 0 {
		return apperrors.InvalidInput("product id must be positive")
	}

	if err := s.gw.RemoveCartItem(ctx, productID); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}

	s.afterCartMutation(ctx, userID, "remove", productID, 0)
	return nil
}

// ClearCart removes every line from the cart.
func (s *CartService) ClearCart(ctx context.Context) error {
	userID := logger.UserIDFromContext(ctx)
	if userID == "" {
		return apperrors.Unauthorized("user id is required")
	}

	if err := s.gw.ClearCart(ctx); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	s.afterCartMutation(ctx, userID, "clear", 0, 0)
	return nil
}

// afterCartMutation invalidates the user's cached cart view and emits
// a cart.updated event. Neither step can fail the mutation itself.
func (s *CartService) afterCartMutation(ctx context.Context, userID, action string, productID, quantity int64) {
	if err := s.cache.Invalidate(ctx, cache.CartPrefix(userID)); err != nil {
		s.logger.ErrorContext(ctx, "failed to invalidate cart cache",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishCartUpdated(ctx, userID, action, productID, quantity); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart mutated",
		slog.String("user_id", userID),
		slog.String("action", action),
		slog.Int64("product_id", productID),
		slog.Int64("quantity", quantity),
	)
}
