package utils

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrencyIDR memformat nominal ke bentuk Rupiah untuk tampilan,
// mis. 120000 -> "Rp 120.000", 15000.50 -> "Rp 15.000,50".
func FormatCurrencyIDR(amount decimal.Decimal) string {
	intPart := amount.Truncate(0)
	fracPart := amount.Sub(intPart).Abs()

	digits := intPart.Abs().String()
	var groups []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{digits[start:i]}, groups...)
	}

	out := strings.Join(groups, ".")
	if amount.IsNegative() {
		out = "-" + out
	}
	if !fracPart.IsZero() {
		cents := fracPart.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
		out += "," + pad2(cents)
	}
	return "Rp " + out
}

func pad2(c int64) string {
	if c < 10 {
		return "0" + strconv.FormatInt(c, 10)
	}
	return strconv.FormatInt(c, 10)
}
