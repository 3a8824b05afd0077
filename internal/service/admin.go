package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"

	"github.com/desistore/storefront/internal/cache"
	"github.com/desistore/storefront/internal/domain"
	"github.com/desistore/storefront/internal/event"
	"github.com/desistore/storefront/internal/gateway"
	apperrors "github.com/desistore/storefront/pkg/errors"
	"github.com/desistore/storefront/pkg/logger"
	pkgvalidator "github.com/desistore/storefront/pkg/validator"
)

// AdminService implements the catalog editor: product create, update
// and inline stock changes. Every operation is gated on the admin role
// and text fields are sanitized before they reach the backend.
type AdminService struct {
	gw        gateway.Gateway
	users     *UserService
	cache     *cache.QueryCache
	producer  *event.Producer
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

// NewAdminService creates a new admin catalog service.
func NewAdminService(gw gateway.Gateway, users *UserService, qc *cache.QueryCache, producer *event.Producer, logger *slog.Logger) *AdminService {
	return &AdminService{
		gw:        gw,
		users:     users,
		cache:     qc,
		producer:  producer,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

// ValidateForm runs per-field validation on a raw product form and
// returns the failures keyed by field. Exposed so the editor can show
// errors without attempting a save.
func (s *AdminService) ValidateForm(form domain.ProductForm) map[string]string {
	return form.Validate()
}

// AddProduct validates, sanitizes and submits a new product. Field
// validation failures are returned as a ValidationError carrying the
// full per-field map.
func (s *AdminService) AddProduct(ctx context.Context, form domain.ProductForm) (int64, error) {
	if err := s.users.RequireAdmin(ctx); err != nil {
		return 0, err
	}

	in, err := s.parseForm(form)
	if err != nil {
		return 0, err
	}

	productID, err := s.gw.AddProduct(ctx, in)
	if err != nil {
		return 0, fmt.Errorf("add product: %w", err)
	}

	s.afterProductMutation(ctx, productID, "add")
	return productID, nil
}

// UpdateProduct validates, sanitizes and submits a full product update.
func (s *AdminService) UpdateProduct(ctx context.Context, id int64, form domain.ProductForm) error {
	if err := s.users.RequireAdmin(ctx); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.InvalidInput("product id must be positive")
	}

	in, err := s.parseForm(form)
	if err != nil {
		return err
	}

	if err := s.gw.UpdateProduct(ctx, id, in); err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}

	s.afterProductMutation(ctx, id, "update")
	return nil
}

// UpdateStock applies an inline stock edit using the narrow stock
// validator.
func (s *AdminService) UpdateStock(ctx context.Context, id int64, rawStock string) error {
	if err := s.users.RequireAdmin(ctx); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.InvalidInput("product id must be positive")
	}

	stock, msg := domain.ValidateStock(rawStock)
	if msg != "" {
		return pkgvalidator.NewValidationError(map[string]string{"stock": msg})
	}

	if err := s.gw.UpdateStock(ctx, id, stock); err != nil {
		return fmt.Errorf("update stock for product %d: %w", id, err)
	}

	s.afterProductMutation(ctx, id, "stock")
	return nil
}

// parseForm validates the raw form, then parses and sanitizes it into
// a backend payload.
func (s *AdminService) parseForm(form domain.ProductForm) (domain.ProductInput, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return domain.ProductInput{}, pkgvalidator.NewValidationError(errs)
	}

	in, err := form.Parse()
	if err != nil {
		return domain.ProductInput{}, apperrors.InvalidInput(err.Error())
	}

	in.Title = s.sanitizer.Sanitize(in.Title)
	in.Description = s.sanitizer.Sanitize(in.Description)
	in.Category = s.sanitizer.Sanitize(in.Category)
	return in, nil
}

// afterProductMutation clears the catalog caches and emits a
// product.updated event. Neither step can fail the mutation.
func (s *AdminService) afterProductMutation(ctx context.Context, productID int64, action string) {
	if err := s.cache.Invalidate(ctx,
		cache.ProductsPrefix(),
		cache.ProductPrefix(productID),
	); err != nil {
		s.logger.ErrorContext(ctx, "failed to invalidate product caches",
			slog.Int64("product_id", productID),
			slog.String("error", err.Error()),
		)
	}

	actorID := logger.UserIDFromContext(ctx)
	if err := s.producer.PublishProductUpdated(ctx, productID, action, actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.Int64("product_id", productID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product mutated",
		slog.Int64("product_id", productID),
		slog.String("action", action),
		slog.String("actor_id", actorID),
	)
}
