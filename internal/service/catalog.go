package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/desistore/storefront/internal/cache"
	"github.com/desistore/storefront/internal/domain"
	"github.com/desistore/storefront/internal/gateway"
	apperrors "github.com/desistore/storefront/pkg/errors"
)

// CatalogService serves product browse, category and search queries.
// Results are read through the query cache: a hit skips the backend
// entirely, a miss fetches and populates. Cache write failures are
// logged and swallowed so the backend result always reaches the caller.
type CatalogService struct {
	gw     gateway.Gateway
	cache  *cache.QueryCache
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(gw gateway.Gateway, qc *cache.QueryCache, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		gw:     gw,
		cache:  qc,
		logger: logger,
	}
}

// ListProducts returns the full catalog.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if s.cacheGet(ctx, cache.ProductsAllKey(), &products) {
		return products, nil
	}

	products, err := s.gw.ListAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	s.cacheSet(ctx, cache.ProductsAllKey(), products)
	return products, nil
}

// ListProductsByCategory returns products in one category.
func (s *CatalogService) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.InvalidInput("category is required")
	}

	key := cache.ProductsCategoryKey(category)
	var products []domain.Product
	if s.cacheGet(ctx, key, &products) {
		return products, nil
	}

	products, err := s.gw.ListProductsByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}

	s.cacheSet(ctx, key, products)
	return products, nil
}

// SearchProducts returns products matching a keyword. An empty keyword
// falls back to the full catalog, matching the browse page behavior of
// clearing the search box.
func (s *CatalogService) SearchProducts(ctx context.Context, keyword string) ([]domain.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.ListProducts(ctx)
	}

	key := cache.ProductsSearchKey(strings.ToLower(keyword))
	var products []domain.Product
	if s.cacheGet(ctx, key, &products) {
		return products, nil
	}

	products, err := s.gw.SearchProducts(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	s.cacheSet(ctx, key, products)
	return products, nil
}

// GetProduct returns a single product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, apperrors.InvalidInput("product id must be positive")
	}

	key := cache.ProductKey(id)
	var product domain.Product
	if s.cacheGet(ctx, key, &product) {
		return product, nil
	}

	product, err := s.gw.GetProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}

	s.cacheSet(ctx, key, product)
	return product, nil
}

// ListCategories returns the supported category names.
func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if s.cacheGet(ctx, cache.CategoriesKey(), &categories) {
		return categories, nil
	}

	categories, err := s.gw.GetSupportedCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	s.cacheSet(ctx, cache.CategoriesKey(), categories)
	return categories, nil
}

// cacheGet reports whether the key was served from cache. Errors are
// logged and treated as misses.
func (s *CatalogService) cacheGet(ctx context.Context, key string, out any) bool {
	hit, err := s.cache.Get(ctx, key, out)
	if err != nil {
		s.logger.WarnContext(ctx, "cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false
	}
	return hit
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, val any) {
	if err := s.cache.Set(ctx, key, val); err != nil {
		s.logger.WarnContext(ctx, "cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
