// Package money formats and parses Vietnamese đồng amounts for display and
// input. The order core never works on formatted strings.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const symbol = "₫"

var (
	ErrInvalidAmount  = errors.New("amount must contain at least one digit")
	ErrAmountTooLarge = errors.New("amount is larger than 999.999.999.999.999 ₫")
)

// MaxAmount is the largest amount ParseAmount accepts.
var MaxAmount = decimal.NewFromInt(999_999_999_999_999)

var printer = message.NewPrinter(language.Vietnamese)

// Format renders amount rounded to whole đồng, e.g. "10.000.000 ₫".
// Totals past the int64 range are grouped from their decimal digits.
func Format(amount decimal.Decimal) string {
	whole := amount.Round(0)
	if n := whole.BigInt(); n.IsInt64() {
		return printer.Sprintf("%v", number.Decimal(n.Int64())) + " " + symbol
	}
	return groupThousands(whole.String()) + " " + symbol
}

func groupThousands(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseAmount keeps only the digits of raw, the way the amount inputs mask
// typing, so "10.000.000 ₫" and "10,000,000" both read as ten million.
func ParseAmount(raw string) (decimal.Decimal, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}

	amount, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if amount.GreaterThan(MaxAmount) {
		return decimal.Zero, ErrAmountTooLarge
	}
	return amount, nil
}
