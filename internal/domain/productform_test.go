package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() ProductForm {
	return ProductForm{
		Title:       "Steel Kettle",
		Description: "1.5L induction-ready kettle",
		Price:       "499.00",
		Currency:    "INR",
		Category:    "Kitchen",
		ImageURL:    "https://img.example.com/kettle.jpg",
		Rating:      "4",
		Stock:       "25",
	}
}

func TestProductFormValidate(t *testing.T) {
	t.Run("valid form has no errors", func(t *testing.T) {
		assert.Empty(t, validForm().Validate())
	})

	t.Run("required fields", func(t *testing.T) {
		f := ProductForm{Price: "1", Stock: "0"}
		errs := f.Validate()
		assert.Contains(t, errs, "title")
		assert.Contains(t, errs, "description")
		assert.Contains(t, errs, "category")
		assert.Contains(t, errs, "imageUrl")
	})

	t.Run("whitespace-only counts as missing", func(t *testing.T) {
		f := validForm()
		f.Title = "   "
		assert.Contains(t, f.Validate(), "title")
	})

	t.Run("price failures", func(t *testing.T) {
		for _, input := range []string{"", "abc", "-5"} {
			f := validForm()
			f.Price = input
			assert.Contains(t, f.Validate(), "price", "price=%q", input)
		}
	})

	t.Run("stock failures", func(t *testing.T) {
		for _, input := range []string{"", "-1", "abc", "2.5"} {
			f := validForm()
			f.Stock = input
			assert.Contains(t, f.Validate(), "stock", "stock=%q", input)
		}
	})

	t.Run("zero stock is valid", func(t *testing.T) {
		f := validForm()
		f.Stock = "0"
		assert.Empty(t, f.Validate())
	})

	t.Run("rating bounds", func(t *testing.T) {
		for _, input := range []string{"0", "6", "abc", "4.5"} {
			f := validForm()
			f.Rating = input
			assert.Contains(t, f.Validate(), "rating", "rating=%q", input)
		}
		for _, input := range []string{"", "1", "3", "5"} {
			f := validForm()
			f.Rating = input
			assert.Empty(t, f.Validate(), "rating=%q", input)
		}
	})

	t.Run("each invalid field reported independently", func(t *testing.T) {
		f := ProductForm{Price: "abc", Stock: "-1", Rating: "9"}
		errs := f.Validate()
		assert.Len(t, errs, 7)
	})
}

func TestProductFormParse(t *testing.T) {
	t.Run("converts and trims", func(t *testing.T) {
		f := validForm()
		f.Title = "  Steel Kettle  "

		in, err := f.Parse()
		require.NoError(t, err)

		assert.Equal(t, "Steel Kettle", in.Title)
		assert.Equal(t, int64(49900), in.Price)
		assert.Equal(t, int64(25), in.Stock)
		assert.Equal(t, NewRating(4), in.Rating)
	})

	t.Run("empty rating stays absent", func(t *testing.T) {
		f := validForm()
		f.Rating = ""

		in, err := f.Parse()
		require.NoError(t, err)
		assert.False(t, in.Rating.Valid)
	})

	t.Run("decimal price rounds to minor units", func(t *testing.T) {
		f := validForm()
		f.Price = "19.99"

		in, err := f.Parse()
		require.NoError(t, err)
		assert.Equal(t, int64(1999), in.Price)
	})
}

func TestValidateStock(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantMsg bool
	}{
		{"10", 10, false},
		{"0", 0, false},
		{" 7 ", 7, false},
		{"", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"1.5", 0, true},
	}

	for _, tt := range tests {
		got, msg := ValidateStock(tt.input)
		if tt.wantMsg {
			assert.NotEmpty(t, msg, "input=%q", tt.input)
			continue
		}
		assert.Empty(t, msg, "input=%q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}
