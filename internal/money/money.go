// Package money handles exact amounts and their currencies.
package money

import (
	"errors"
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ErrUnknownCurrency is returned for codes go-money does not know.
var ErrUnknownCurrency = errors.New("unknown currency")

// ErrInvalidAmount is returned when an amount string cannot be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

// Common lists the currencies offered first in pickers.
var Common = []string{"USD", "EUR", "GBP", "JPY", "CHF", "CAD", "AUD", "NZD", "SEK", "NOK", "DKK", "MXN", "THB", "SGD"}

// NormalizeCurrency uppercases and validates an ISO 4217 code.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || gomoney.GetCurrency(code) == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return code, nil
}

// Parse reads a decimal amount such as "12.50" or "1,200". Commas are
// only accepted as thousands separators, so "12,50" is an error.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	if strings.Contains(s, ",") && !grouped(s) {
		return decimal.Zero, fmt.Errorf("%w: %q: commas must separate thousands", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// grouped reports whether the integer part of s is split into groups of
// three digits after the first.
func grouped(s string) bool {
	s = strings.TrimLeft(s, "+-")
	whole, frac, _ := strings.Cut(s, ".")
	if strings.Contains(frac, ",") {
		return false
	}
	groups := strings.Split(whole, ",")
	if n := len(groups[0]); n == 0 || n > 3 {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}

// Round rounds d to the minor unit of the currency (2 places when unknown).
func Round(d decimal.Decimal, code string) decimal.Decimal {
	return d.Round(int32(fraction(code)))
}

// Format renders an amount with the currency's symbol and grouping,
// e.g. "$1,234.50" or "¥980".
func Format(d decimal.Decimal, code string) string {
	cur := gomoney.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		return d.StringFixed(2) + " " + code
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// Signed renders positive amounts with a leading '+'.
func Signed(d decimal.Decimal, code string) string {
	if d.IsPositive() {
		return "+" + Format(d, code)
	}
	return Format(d, code)
}

// Ratio returns part/whole as a float, or 0 when whole is not positive.
func Ratio(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Div(whole).InexactFloat64()
}

func fraction(code string) int {
	if cur := gomoney.GetCurrency(strings.ToUpper(code)); cur != nil {
		return cur.Fraction
	}
	return 2
}
