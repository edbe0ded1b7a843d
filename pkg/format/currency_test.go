package format

import (
	"math"
	"testing"
)

func TestCurrencyWithSymbol(t *testing.T) {
	tests := []struct {
		name     string
		symbol   string
		amount   float64
		expected string
	}{
		{"rupee", "₹", 684000, "₹684,000.00"},
		{"negative", "₹", -150000.5, "-₹150,000.50"},
		{"small", "$", 12.346, "$12.35"},
		{"millions", "$", 41887400, "$41,887,400.00"},
		{"no symbol", "", -1234.56, "-1,234.56"},
		{"not a number", "₹", math.NaN(), "₹0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrencyWithSymbol(tt.symbol, tt.amount); got != tt.expected {
				t.Errorf("CurrencyWithSymbol(%q, %v) = %q, expected %q", tt.symbol, tt.amount, got, tt.expected)
			}
		})
	}
}

func TestCurrencyDefaults(t *testing.T) {
	if got := Currency(1000); got != "₹1,000.00" {
		t.Errorf("Currency(1000) = %q", got)
	}
	if got := NumericCurrency(999.999); got != "1,000.00" {
		t.Errorf("NumericCurrency(999.999) = %q", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(24.971929); got != "24.97%" {
		t.Errorf("Percent() = %q, expected 24.97%%", got)
	}
}
