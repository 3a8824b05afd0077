package domain

import (
	"errors"
	"strings"
	"time"
)

// CheckoutState tracks a checkout session through the two-step flow:
// address entry, then payment selection, then review and placement.
type CheckoutState string

const (
	StateComposingAddress CheckoutState = "composing_address"
	StateSelectingPayment CheckoutState = "selecting_payment"
	StateReady            CheckoutState = "ready"
	StateSubmitting       CheckoutState = "submitting"
	StatePlaced           CheckoutState = "placed"
)

// Placement precondition failures, in the order they are checked.
var (
	ErrAddressRequired      = errors.New("shipping address is required")
	ErrCountryRequired      = errors.New("country is required")
	ErrCountryNotSupported  = errors.New("orders can only be shipped within India")
	ErrPaymentRequired      = errors.New("payment method is required")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrPlacementInProgress  = errors.New("order placement already in progress")
	ErrSessionAlreadyPlaced = errors.New("order has already been placed")
)

// CheckoutSession is the server-side state of one user's in-progress
// checkout. Sessions are short-lived and keyed by user: starting a new
// checkout replaces any previous session.
type CheckoutSession struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	State           CheckoutState `json:"state"`
	Address         AddressForm   `json:"address"`
	ComposedAddress string        `json:"composed_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	OrderID         int64         `json:"order_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// SetAddress records the shipping address and its composed form, and
// advances the session to payment selection.
func (s *CheckoutSession) SetAddress(addr AddressForm, now time.Time) {
	s.Address = addr
	s.ComposedAddress = addr.Compose()
	if s.State == StateComposingAddress {
		s.State = StateSelectingPayment
	}
	s.UpdatedAt = now
}

// SetPaymentMethod records the chosen payment method and marks the
// session ready for review.
func (s *CheckoutSession) SetPaymentMethod(m PaymentMethod, now time.Time) {
	s.PaymentMethod = m
	s.State = StateReady
	s.UpdatedAt = now
}

// ValidateForPlacement checks the placement preconditions in their
// fixed order and returns the first failure:
//
//  1. composed shipping address is non-empty after trimming
//  2. a country was entered
//  3. the country passes the shipping gate
//  4. a payment method was selected
//  5. the cart is not empty
//
// The empty-cart check runs last so a user is told about a missing
// address or unsupported country before being told the cart is empty.
func (s *CheckoutSession) ValidateForPlacement(cartLines int) error {
	if strings.TrimSpace(s.ComposedAddress) == "" {
		return ErrAddressRequired
	}
	if strings.TrimSpace(s.Address.Country) == "" {
		return ErrCountryRequired
	}
	if !CountryAllowed(s.Address.Country) {
		return ErrCountryNotSupported
	}
	if s.PaymentMethod == "" {
		return ErrPaymentRequired
	}
	if cartLines == 0 {
		return ErrEmptyCart
	}
	return nil
}

// BeginPlacement transitions the session into the submitting state.
// A session that is already submitting or placed cannot be submitted
// again; the single-flight guard makes double-clicks harmless.
func (s *CheckoutSession) BeginPlacement(now time.Time) error {
	switch s.State {
	case StateSubmitting:
		return ErrPlacementInProgress
	case StatePlaced:
		return ErrSessionAlreadyPlaced
	}
	s.State = StateSubmitting
	s.UpdatedAt = now
	return nil
}

// CompletePlacement records the backend order id and finalizes the
// session.
func (s *CheckoutSession) CompletePlacement(orderID int64, now time.Time) {
	s.OrderID = orderID
	s.State = StatePlaced
	s.UpdatedAt = now
}

// FailPlacement returns a submitting session to the ready state so the
// user can retry.
func (s *CheckoutSession) FailPlacement(now time.Time) {
	if s.State == StateSubmitting {
		s.State = StateReady
	}
	s.UpdatedAt = now
}
