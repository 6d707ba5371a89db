// Package format renders engine values for display. The engine itself works in
// float64; rounding to cents only happens here.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	sign, formatted := splitSign(Cents(amount))
	return sign + "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	sign, formatted := splitSign(Cents(amount))
	return sign + formatted
}

// PlainCurrency returns the amount rounded to cents without separators (e.g., "-1234.56"),
// suitable for machine-readable output.
func PlainCurrency(amount float64) string {
	return Cents(amount).StringFixed(2)
}

// Cents converts a float amount into a decimal rounded half away from zero to two places.
func Cents(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

func splitSign(value decimal.Decimal) (string, string) {
	sign := ""
	if value.IsNegative() {
		sign = "-"
		value = value.Abs()
	}
	return sign, groupThousands(value.StringFixed(2))
}

func groupThousands(fixed string) string {
	intPart, decPart, found := strings.Cut(fixed, ".")
	if !found {
		decPart = "00"
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
