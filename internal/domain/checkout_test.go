package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReadySession() *CheckoutSession {
	addr := AddressForm{
		FullName: "Asha Rao",
		Phone:    "9876543210",
		Street:   "12 MG Road",
		City:     "Bengaluru",
		State:    "Karnataka",
		Pincode:  "560001",
		Country:  "India",
	}
	s := &CheckoutSession{
		ID:     "sess-1",
		UserID: "user-1",
		State:  StateComposingAddress,
	}
	now := time.Now()
	s.SetAddress(addr, now)
	s.SetPaymentMethod(PaymentMethodCOD, now)
	return s
}

func TestValidateForPlacement(t *testing.T) {
	t.Run("passes with complete session and non-empty cart", func(t *testing.T) {
		assert.NoError(t, validReadySession().ValidateForPlacement(2))
	})

	t.Run("missing address reported first", func(t *testing.T) {
		s := validReadySession()
		s.ComposedAddress = "   "
		assert.ErrorIs(t, s.ValidateForPlacement(0), ErrAddressRequired)
	})

	t.Run("missing country", func(t *testing.T) {
		s := validReadySession()
		s.Address.Country = "  "
		assert.ErrorIs(t, s.ValidateForPlacement(2), ErrCountryRequired)
	})

	t.Run("unsupported country", func(t *testing.T) {
		s := validReadySession()
		s.Address.Country = "USA"
		assert.ErrorIs(t, s.ValidateForPlacement(2), ErrCountryNotSupported)
	})

	t.Run("country gate accepts case and whitespace variants", func(t *testing.T) {
		for _, c := range []string{"India", "INDIA", " india "} {
			s := validReadySession()
			s.Address.Country = c
			assert.NoError(t, s.ValidateForPlacement(1), c)
		}
	})

	t.Run("missing payment method", func(t *testing.T) {
		s := validReadySession()
		s.PaymentMethod = ""
		assert.ErrorIs(t, s.ValidateForPlacement(2), ErrPaymentRequired)
	})

	t.Run("empty cart checked last", func(t *testing.T) {
		s := validReadySession()
		assert.ErrorIs(t, s.ValidateForPlacement(0), ErrEmptyCart)

		// With both an unsupported country and an empty cart, the
		// country failure wins.
		s.Address.Country = "USA"
		assert.ErrorIs(t, s.ValidateForPlacement(0), ErrCountryNotSupported)
	})
}

func TestCheckoutSessionTransitions(t *testing.T) {
	now := time.Now()

	t.Run("address advances to payment selection", func(t *testing.T) {
		s := &CheckoutSession{State: StateComposingAddress}
		s.SetAddress(AddressForm{FullName: "A", Country: "India"}, now)
		assert.Equal(t, StateSelectingPayment, s.State)
		assert.NotEmpty(t, s.ComposedAddress)
	})

	t.Run("payment advances to ready", func(t *testing.T) {
		s := validReadySession()
		assert.Equal(t, StateReady, s.State)
	})

	t.Run("placement lifecycle", func(t *testing.T) {
		s := validReadySession()

		require.NoError(t, s.BeginPlacement(now))
		assert.Equal(t, StateSubmitting, s.State)

		assert.ErrorIs(t, s.BeginPlacement(now), ErrPlacementInProgress)

		s.CompletePlacement(42, now)
		assert.Equal(t, StatePlaced, s.State)
		assert.Equal(t, int64(42), s.OrderID)

		assert.ErrorIs(t, s.BeginPlacement(now), ErrSessionAlreadyPlaced)
	})

	t.Run("failed placement returns to ready", func(t *testing.T) {
		s := validReadySession()
		require.NoError(t, s.BeginPlacement(now))
		s.FailPlacement(now)
		assert.Equal(t, StateReady, s.State)

		require.NoError(t, s.BeginPlacement(now))
	})
}

func TestPaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod("cod")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodCOD, m)
	assert.Equal(t, "Cash on Delivery (COD)", m.Label())

	_, err = ParsePaymentMethod("card")
	assert.Error(t, err)

	assert.Equal(t, []PaymentMethod{PaymentMethodCOD}, PaymentMethods())
}
