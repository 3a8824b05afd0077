package domain

import (
	"strconv"
	"strings"
)

// ProductForm carries the raw string inputs of the admin product
// editor, exactly as submitted. Validation and parsing happen entirely
// on this shape so every field can report its own error.
type ProductForm struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	Rating      string `json:"rating"`
	Stock       string `json:"stock"`
}

// ProductInput is the parsed, validated payload sent to the catalog
// backend when creating or updating a product.
type ProductInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	Rating      Rating `json:"rating"`
	Stock       int64  `json:"stock"`
}

// Validate checks every form field independently and returns a map of
// field name to message for each failure. An empty map means the form
// is valid. Rating is optional; all other listed fields are required.
func (f ProductForm) Validate() map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(f.Description) == "" {
		errs["description"] = "Description is required"
	}
	if strings.TrimSpace(f.Category) == "" {
		errs["category"] = "Category is required"
	}
	if strings.TrimSpace(f.ImageURL) == "" {
		errs["imageUrl"] = "Image URL is required"
	}

	if _, err := ParseDecimalToMinorUnits(f.Price); err != nil {
		errs["price"] = capitalize(err.Error())
	}

	if _, msg := parseStock(f.Stock); msg != "" {
		errs["stock"] = msg
	}

	if _, msg := parseRating(f.Rating); msg != "" {
		errs["rating"] = msg
	}

	return errs
}

// Parse converts a validated form into the backend payload. Call
// Validate first; Parse assumes every field parses cleanly.
func (f ProductForm) Parse() (ProductInput, error) {
	price, err := ParseDecimalToMinorUnits(f.Price)
	if err != nil {
		return ProductInput{}, err
	}
	stock, msg := parseStock(f.Stock)
	if msg != "" {
		return ProductInput{}, strErr(msg)
	}
	rating, msg := parseRating(f.Rating)
	if msg != "" {
		return ProductInput{}, strErr(msg)
	}
	return ProductInput{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Price:       price,
		Currency:    strings.TrimSpace(f.Currency),
		Category:    strings.TrimSpace(f.Category),
		ImageURL:    strings.TrimSpace(f.ImageURL),
		Rating:      rating,
		Stock:       stock,
	}, nil
}

// ValidateStock is the narrow stock-only validator used by the inline
// stock editor. It returns the parsed value and an empty message on
// success, or a message describing the failure.
func ValidateStock(value string) (int64, string) {
	return parseStock(value)
}

func parseStock(value string) (int64, string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, "Stock is required"
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, "Stock must be a whole number"
	}
	if n < 0 {
		return 0, "Stock cannot be negative"
	}
	return n, ""
}

// parseRating accepts an empty input as "no rating". A non-empty input
// must be an integer between 1 and 5.
func parseRating(value string) (Rating, string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Rating{}, ""
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return Rating{}, "Rating must be a whole number between 1 and 5"
	}
	if n < 1 || n > 5 {
		return Rating{}, "Rating must be between 1 and 5"
	}
	return NewRating(n), ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

type strErr string

func (e strErr) Error() string { return string(e) }
