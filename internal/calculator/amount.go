package calculator

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern is a plain non-negative amount of at most 13 rupee digits and two decimals.
// Exponent notation is excluded so a short string cannot expand into a huge number.
var amountPattern = regexp.MustCompile(`^\d{1,13}(\.\d{1,2})?$`)

// ValidAmount reports whether s is an amount a booking record may hold.
func ValidAmount(s string) bool {
	_, ok := parseAmount(s)
	return ok
}

// ParseAmount converts a decimal string from a booking record into a Decimal.
// Empty, malformed, negative or out-of-range input yields zero. It never panics.
func ParseAmount(s string) decimal.Decimal {
	d, ok := parseAmount(s)
	if !ok {
		return decimal.Zero
	}
	return d
}

// parseAmount reports whether s held a usable number.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if !amountPattern.MatchString(s) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// sumAmounts adds up amount strings, treating each bad entry as zero.
func sumAmounts(amounts []string) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(ParseAmount(a))
	}
	return total
}
