package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/desistore/storefront/internal/domain"
	"github.com/desistore/storefront/internal/service"
	apperrors "github.com/desistore/storefront/pkg/errors"
	"github.com/desistore/storefront/pkg/httputil"
	"github.com/desistore/storefront/pkg/validator"
)

// CheckoutHandler handles the checkout flow endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// AddressRequest is the JSON request body for the shipping address step.
type AddressRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Street   string `json:"street" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	Pincode  string `json:"pincode" validate:"required"`
	Country  string `json:"country" validate:"required"`
}

// PaymentRequest is the JSON request body for the payment step.
type PaymentRequest struct {
	Method string `json:"method" validate:"required"`
}

// StartCheckout handles POST /api/v1/checkout.
func (h *CheckoutHandler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.StartCheckout(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: session})
}

// GetSession handles GET /api/v1/checkout.
func (h *CheckoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetSession(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// SetAddress handles PUT /api/v1/checkout/address.
func (h *CheckoutHandler) SetAddress(w http.ResponseWriter, r *http.Request) {
	var req AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	session, err := h.service.SetAddress(r.Context(), domain.AddressForm{
		FullName: req.FullName,
		Phone:    req.Phone,
		Street:   req.Street,
		City:     req.City,
		State:    req.State,
		Pincode:  req.Pincode,
		Country:  req.Country,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// PaymentOptions handles GET /api/v1/checkout/payment-options.
func (h *CheckoutHandler) PaymentOptions(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.PaymentOptions()})
}

// SelectPayment handles PUT /api/v1/checkout/payment.
func (h *CheckoutHandler) SelectPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	session, err := h.service.SelectPaymentMethod(r.Context(), req.Method)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// PlaceOrder handles POST /api/v1/checkout/place-order.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := h.service.PlaceOrder(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]int64{"order_id": orderID}})
}
