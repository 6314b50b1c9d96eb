package calculator

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// numberToWords spells n using the Indian system (thousand, lakh, crore).
// n must be below maxWordsRupees.
func numberToWords(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 20:
		return ones[n]
	case n < 100:
		return strings.TrimSpace(tens[n/10] + " " + ones[n%10])
	case n < 1000:
		return joinWords(ones[n/100]+" Hundred", numberToWords(n%100))
	case n < 100000:
		return joinWords(numberToWords(n/1000)+" Thousand", numberToWords(n%1000))
	case n < 10000000:
		return joinWords(numberToWords(n/100000)+" Lakh", numberToWords(n%100000))
	default:
		return joinWords(numberToWords(n/10000000)+" Crore", numberToWords(n%10000000))
	}
}

func joinWords(head, rest string) string {
	if rest == "" {
		return head
	}
	return head + " " + rest
}

// maxWordsRupees is one crore crore. Crore grouping turns ambiguous from there
// on, so larger amounts are written in digits.
var maxWordsRupees = big.NewInt(100000000000000)

// rupeesToWords spells n, or writes it with Indian digit grouping
// (1,00,00,000) when it is too large to spell.
func rupeesToWords(n *big.Int) string {
	if n.Cmp(maxWordsRupees) < 0 {
		return numberToWords(n.Int64())
	}
	return groupDigits(n.String())
}

// groupDigits separates the last three digits, then every two.
func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	if len(head)%2 == 1 {
		groups = append(groups, head[:1])
		head = head[1:]
	}
	for i := 0; i < len(head); i += 2 {
		groups = append(groups, head[i:i+2])
	}
	return strings.Join(append(groups, tail), ",")
}

// AmountInWords spells an amount in rupees and paise as printed on Indian bills,
// e.g. "Rupees Seven Thousand Four Hundred and Fifty Paise Only".
func AmountInWords(amount decimal.Decimal) string {
	prefix := "Rupees"
	if amount.IsNegative() {
		prefix = "Minus Rupees"
		amount = amount.Neg()
	}
	amount = amount.Round(2)
	rupees := amount.Truncate(0)
	paise := amount.Sub(rupees).Shift(2).IntPart()

	words := rupeesToWords(rupees.BigInt())
	if words == "" {
		words = "Zero"
	}
	if paise > 0 {
		return prefix + " " + words + " and " + numberToWords(paise) + " Paise Only"
	}
	return prefix + " " + words + " Only"
}
