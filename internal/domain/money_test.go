package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMinorUnits(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{1999, "19.99"},
		{100, "1.00"},
		{5, "0.05"},
		{0, "0.00"},
		{50000, "500.00"},
		{-1250, "-12.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinorUnits(tt.amount))
	}
}

func TestParseDecimalToMinorUnits(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"two decimal places", "19.99", 1999, false},
		{"integer", "500", 50000, false},
		{"one decimal place", "9.5", 950, false},
		{"zero", "0", 0, false},
		{"surrounding space", " 12.34 ", 1234, false},
		{"rounds half up", "0.005", 1, false},
		{"empty", "", 0, true},
		{"whitespace only", "  ", 0, true},
		{"not a number", "abc", 0, true},
		{"negative", "-5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimalToMinorUnits(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinorUnitsRoundTrip(t *testing.T) {
	for _, amount := range []int64{0, 1, 99, 100, 1999, 123456} {
		parsed, err := ParseDecimalToMinorUnits(FormatMinorUnits(amount))
		require.NoError(t, err)
		assert.Equal(t, amount, parsed)
	}
}
