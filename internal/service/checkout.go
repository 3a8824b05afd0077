package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/desistore/storefront/internal/cache"
	"github.com/desistore/storefront/internal/domain"
	"github.com/desistore/storefront/internal/event"
	"github.com/desistore/storefront/internal/gateway"
	"github.com/desistore/storefront/internal/repository"
	apperrors "github.com/desistore/storefront/pkg/errors"
	"github.com/desistore/storefront/pkg/logger"
)

var ordersPlacedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_orders_placed_total",
		Help: "Total number of successfully placed orders",
	},
	[]string{"payment_method"},
)

func init() {
	prometheus.MustRegister(ordersPlacedTotal)
}

// CheckoutService drives the checkout flow: session lifecycle, address
// and payment capture, precondition validation and order placement
// against the commerce backend.
type CheckoutService struct {
	gw       gateway.Gateway
	sessions repository.CheckoutSessionRepository
	cache    *cache.QueryCache
	producer *event.Producer
	logger   *slog.Logger
	now      func() time.Time
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(gw gateway.Gateway, sessions repository.CheckoutSessionRepository, qc *cache.QueryCache, producer *event.Producer, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		gw:       gw,
		sessions: sessions,
		cache:    qc,
		producer: producer,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// StartCheckout begins a fresh checkout session for the calling user,
// replacing any existing one.
func (s *CheckoutService) StartCheckout(ctx context.Context) (*domain.CheckoutSession, error) {
	userID := logger.UserIDFromContext(ctx)
	if userID == "" {
		return nil, apperrors.Unauthorized("user id is required")
	}

	now := s.now()
	session := &domain.CheckoutSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		State:     domain.StateComposingAddress,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save checkout session: %w", err)
	}

	s.logger.InfoContext(ctx, "checkout started",
		slog.String("user_id", userID),
		slog.String("session_id", session.ID),
	)

	return session, nil
}

// GetSession returns the user's active checkout session.
func (s *CheckoutService) GetSession(ctx context.Context) (*domain.CheckoutSession, error) {
	userID := logger.UserIDFromContext(ctx)
	if userID == "" {
		return nil, apperrors.Unauthorized("user id is required")
	}

	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get checkout session: %w", err)
	}
	return session, nil
}

// SetAddress records the shipping address on the active session. The
// address must be complete; the country gate is not applied here so a
// user can fill the form fully before being told about shipping
// eligibility at review time.
func (s *CheckoutService) SetAddress(ctx context.Context, addr domain.AddressForm) (*domain.CheckoutSession, error) {
	if !addr.IsComplete() {
		return nil, apperrors.InvalidInput("all address fields are required")
	}

	session, err := s.GetSession(ctx)
	if err != nil {
		return nil, err
	}

	session.SetAddress(addr, s.now())

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save checkout session: %w", err)
	}
	return session, nil
}

// PaymentOption is one selectable payment method with its display label.
type PaymentOption struct {
	Method domain.PaymentMethod `json:"method"`
	Label  string               `json:"label"`
}

// PaymentOptions lists the selectable payment methods.
func (s *CheckoutService) PaymentOptions() []PaymentOption {
	methods := domain.PaymentMethods()
	opts := make([]PaymentOption, len(methods))
	for i, m := range methods {
		opts[i] = PaymentOption{Method: m, Label: m.Label()}
	}
	return opts
}

// SelectPaymentMethod records the chosen payment method on the active
// session.
func (s *CheckoutService) SelectPaymentMethod(ctx context.Context, raw string) (*domain.CheckoutSession, error) {
	method, err := domain.ParsePaymentMethod(raw)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	session, err := s.GetSession(ctx)
	if err != nil {
		return nil, err
	}

	session.SetPaymentMethod(method, s.now())

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save checkout session: %w", err)
	}
	return session, nil
}

// PlaceOrder validates the placement preconditions and submits the
// order to the backend. The empty-cart check happens before any
// placement call reaches the backend, and the session's submitting
// state makes a concurrent second submission fail fast instead of
// producing a duplicate order.
func (s *CheckoutService) PlaceOrder(ctx context.Context) (int64, error) {
	userID := logger.UserIDFromContext(ctx)
	if userID == "" {
		return 0, apperrors.Unauthorized("user id is required")
	}

	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get checkout session: %w", err)
	}

	lines, err := s.gw.GetCart(ctx)
	if err != nil {
		return 0, fmt.Errorf("get cart for placement: %w", err)
	}

	if err := session.ValidateForPlacement(len(lines)); err != nil {
		return 0, apperrors.InvalidInput(err.Error())
	}

	if err := session.BeginPlacement(s.now()); err != nil {
		switch {
		case errors.Is(err, domain.ErrPlacementInProgress):
			return 0, apperrors.Conflict(err.Error())
		case errors.Is(err, domain.ErrSessionAlreadyPlaced):
			return 0, apperrors.Conflict(err.Error())
		}
		return 0, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return 0, fmt.Errorf("save checkout session: %w", err)
	}

	orderID, err := s.gw.PlaceOrder(ctx, session.ComposedAddress, session.PaymentMethod, session.Address.Country)
	if err != nil {
		session.FailPlacement(s.now())
		if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
			s.logger.ErrorContext(ctx, "failed to roll back checkout session",
				slog.String("user_id", userID),
				slog.String("error", saveErr.Error()),
			)
		}
		return 0, fmt.Errorf("place order: %w", err)
	}

	session.CompletePlacement(orderID, s.now())
	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.ErrorContext(ctx, "failed to finalize checkout session",
			slog.String("user_id", userID),
			slog.Int64("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}

	s.afterPlacement(ctx, userID, orderID, lines, session)

	return orderID, nil
}

// afterPlacement keeps caches coherent and emits the placed event.
// Placement has already succeeded; nothing here may fail it.
func (s *CheckoutService) afterPlacement(ctx context.Context, userID string, orderID int64, lines []domain.CartLine, session *domain.CheckoutSession) {
	if err := s.cache.Invalidate(ctx,
		cache.CartPrefix(userID),
		cache.OrdersPrefix(userID),
		cache.ProductsPrefix(),
	); err != nil {
		s.logger.ErrorContext(ctx, "failed to invalidate caches after placement",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	cart := domain.PricedCart{}
	if catalog, err := s.gw.ListAllProducts(ctx); err == nil {
		cart = domain.AggregateCart(lines, catalog)
	}

	if err := s.producer.PublishOrderPlaced(ctx, orderID, userID, cart, session.PaymentMethod, session.Address.Country); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.Int64("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}

	ordersPlacedTotal.WithLabelValues(string(session.PaymentMethod)).Inc()

	s.logger.InfoContext(ctx, "order placed",
		slog.String("user_id", userID),
		slog.Int64("order_id", orderID),
		slog.String("payment_method", string(session.PaymentMethod)),
	)
}
