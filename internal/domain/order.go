package domain

import (
	"fmt"
	"time"
)

// PaymentMethod is the closed set of payment options offered at
// checkout. Cash on delivery is the only member today.
type PaymentMethod string

const (
	PaymentMethodCOD PaymentMethod = "cod"
)

// PaymentMethods lists every selectable payment method in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentMethodCOD}
}

// ParsePaymentMethod validates a raw payment method value.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch PaymentMethod(raw) {
	case PaymentMethodCOD:
		return PaymentMethodCOD, nil
	default:
		return "", fmt.Errorf("unknown payment method %q", raw)
	}
}

// Label returns the human-readable name for the payment method.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodCOD:
		return "Cash on Delivery (COD)"
	default:
		return string(m)
	}
}

// Order is a placed order as returned by the commerce backend.
type Order struct {
	ID              int64         `json:"id"`
	UserID          string        `json:"user_id"`
	Items           []CartLine    `json:"items"`
	Total           int64         `json:"total"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	ShippingAddress string        `json:"shipping_address"`
	Timestamp       time.Time     `json:"timestamp"`
}
