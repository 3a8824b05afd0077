package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/desistore/storefront/internal/domain"
	"github.com/desistore/storefront/internal/service"
	apperrors "github.com/desistore/storefront/pkg/errors"
	"github.com/desistore/storefront/pkg/httputil"
)

// AdminHandler handles the catalog editor endpoints.
type AdminHandler struct {
	service *service.AdminService
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(svc *service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		service: svc,
		logger:  logger,
	}
}

// ProductFormRequest is the JSON request body for product create and
// update. Fields arrive as raw strings, exactly as typed in the editor,
// so validation can report each field separately.
type ProductFormRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	Rating      string `json:"rating"`
	Stock       string `json:"stock"`
}

func (r ProductFormRequest) toForm() domain.ProductForm {
	return domain.ProductForm{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Currency:    r.Currency,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		Rating:      r.Rating,
		Stock:       r.Stock,
	}
}

// StockRequest is the JSON request body for an inline stock edit.
type StockRequest struct {
	Stock string `json:"stock"`
}

// AddProduct handles POST /api/v1/admin/products.
func (h *AdminHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	productID, err := h.service.AddProduct(r.Context(), req.toForm())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]int64{"product_id": productID}})
}

// UpdateProduct handles PUT /api/v1/admin/products/{productId}.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id must be an integer"), h.logger)
		return
	}

	var req ProductFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := h.service.UpdateProduct(r.Context(), id, req.toForm()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "updated"}})
}

// UpdateStock handles PUT /api/v1/admin/products/{productId}/stock.
func (h *AdminHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id must be an integer"), h.logger)
		return
	}

	var req StockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := h.service.UpdateStock(r.Context(), id, req.Stock); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "updated"}})
}

// ValidateProduct handles POST /api/v1/admin/products/validate. The
// editor uses it for inline validation without saving; the response
// carries the per-field error map, empty when the form is valid.
func (h *AdminHandler) ValidateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	fields := h.service.ValidateForm(req.toForm())

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"valid":  len(fields) == 0,
		"fields": fields,
	}})
}
