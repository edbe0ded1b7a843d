// Package format renders amounts for reports and log messages.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/hotel-forecast/pkg/constants"
)

// Currency returns an amount with the default currency symbol and thousands separators (e.g., "-₹1,234.56").
func Currency(amount float64) string {
	return CurrencyWithSymbol(constants.DefaultCurrencySymbol, amount)
}

// CurrencyWithSymbol is Currency with an explicit symbol. An empty symbol
// yields the bare number.
func CurrencyWithSymbol(symbol string, amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return CurrencyWithSymbol("", amount)
}

// Percent renders a percentage with two decimals (e.g., "24.97%").
func Percent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

func formatPositiveCurrency(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
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
