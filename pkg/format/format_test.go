package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		numeric  string
		plain    string
	}{
		{0, "$0.00", "0.00", "0.00"},
		{5.5, "$5.50", "5.50", "5.50"},
		{999.999, "$1,000.00", "1,000.00", "1000.00"},
		{1234567.891, "$1,234,567.89", "1,234,567.89", "1234567.89"},
		{-1234.565, "-$1,234.57", "-1,234.57", "-1234.57"},
		{0.004, "$0.00", "0.00", "0.00"},
		{567.789, "$567.79", "567.79", "567.79"},
	}

	for _, tt := range tests {
		if got := Currency(tt.amount); got != tt.currency {
			t.Errorf("Currency(%v) = %s, expected %s", tt.amount, got, tt.currency)
		}
		if got := NumericCurrency(tt.amount); got != tt.numeric {
			t.Errorf("NumericCurrency(%v) = %s, expected %s", tt.amount, got, tt.numeric)
		}
		if got := PlainCurrency(tt.amount); got != tt.plain {
			t.Errorf("PlainCurrency(%v) = %s, expected %s", tt.amount, got, tt.plain)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{5.5, "5.50%"},
		{5, "5.00%"},
		{10.13662, "10.1366%"},
		{4.125, "4.125%"},
		{0, "0.00%"},
	}

	for _, tt := range tests {
		if got := Percent(tt.value); got != tt.expected {
			t.Errorf("Percent(%v) = %s, expected %s", tt.value, got, tt.expected)
		}
	}
}

func TestItem(t *testing.T) {
	tests := []struct {
		item   Item
		pretty string
		plain  string
	}{
		{Item{Label: "Total", Value: 204404.04, Kind: KindCurrency}, "$204,404.04", "204404.04"},
		{Item{Label: "Rate", Value: 5.17491, Kind: KindPercent}, "5.1749%", "5.1749"},
		{Item{Label: "Periods", Value: 360, Kind: KindCount}, "360", "360"},
		{Item{Label: "Unknown kind", Value: 12.5}, "$12.50", "12.50"},
	}

	for _, tt := range tests {
		t.Run(tt.item.Label, func(t *testing.T) {
			if got := tt.item.String(); got != tt.pretty {
				t.Errorf("String() = %s, expected %s", got, tt.pretty)
			}
			if got := tt.item.Plain(); got != tt.plain {
				t.Errorf("Plain() = %s, expected %s", got, tt.plain)
			}
		})
	}
}
