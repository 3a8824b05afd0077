package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMinorUnits renders an integer minor-unit amount as a decimal
// string with two fraction digits, e.g. 1999 -> "19.99".
func FormatMinorUnits(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}

// ParseDecimalToMinorUnits parses a human-entered decimal price string
// and converts it to integer minor units, rounding half away from zero.
// "19.99" -> 1999. Rejects empty input, non-numeric input and negative
// amounts.
func ParseDecimalToMinorUnits(input string) (int64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, fmt.Errorf("price is required")
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("price must be a valid number")
	}
	if f < 0 {
		return 0, fmt.Errorf("price cannot be negative")
	}
	return int64(math.Round(f * 100)), nil
}
