package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Product represents a catalog product as served by the commerce backend.
// Price is in integer minor units (paise); the UI layer divides by 100
// for display.
type Product struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Stock       int64  `json:"stock"`
	ImageURL    string `json:"image_url"`
	Currency    string `json:"currency"`
	Category    string `json:"category"`
	Rating      Rating `json:"rating"`
	Price       int64  `json:"price"`
}

// Rating is an optional 1-5 product rating. The zero value is "absent".
// An explicit presence flag keeps the backend-boundary semantics
// unambiguous: absent serializes as JSON null, never as 0.
type Rating struct {
	Value int64
	Valid bool
}

// NewRating returns a present rating with the given value.
func NewRating(value int64) Rating {
	return Rating{Value: value, Valid: true}
}

var jsonNull = []byte("null")

// MarshalJSON serializes an absent rating as null.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return jsonNull, nil
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON treats null as absent and any number as present.
func (r *Rating) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*r = Rating{}
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal rating: %w", err)
	}
	*r = Rating{Value: v, Valid: true}
	return nil
}

// String renders the rating for display, or "-" when absent.
func (r Rating) String() string {
	if !r.Valid {
		return "-"
	}
	return fmt.Sprintf("%d", r.Value)
}
