package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/desistore/storefront/internal/service"
	apperrors "github.com/desistore/storefront/pkg/errors"
	"github.com/desistore/storefront/pkg/httputil"
)

// CatalogHandler handles product browse, category and search endpoints.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// ListProducts handles GET /api/v1/products.
// Supports ?category= and ?q= filters; with neither, the full catalog
// is returned.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var err error
	var products any

	switch {
	case r.URL.Query().Get("category") != "":
		products, err = h.service.ListProductsByCategory(r.Context(), r.URL.Query().Get("category"))
	case r.URL.Query().Get("q") != "":
		products, err = h.service.SearchProducts(r.Context(), r.URL.Query().Get("q"))
	default:
		products, err = h.service.ListProducts(r.Context())
	}

	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// GetProduct handles GET /api/v1/products/{productId}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id must be an integer"), h.logger)
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// ListCategories handles GET /api/v1/categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: categories})
}
