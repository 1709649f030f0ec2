package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountType selects how a discount rule reduces a line price.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFlat    DiscountType = "flat"
)

var hundred = decimal.NewFromInt(100)

// DiscountRule maps a discount code to the reduction it grants.
type DiscountRule struct {
	Code  string          `json:"code"`
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// Validate ensures the rule can be applied to a line.
func (r DiscountRule) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return errors.New("discount code is required")
	}
	if r.Type != DiscountPercent && r.Type != DiscountFlat {
		return fmt.Errorf("unsupported discount type %q", r.Type)
	}
	if r.Value.IsNegative() {
		return errors.New("discount value must not be negative")
	}
	return nil
}

// AmountFor returns the per-unit reduction the rule grants on price.
//
// Flat discounts are capped at the price. Percent discounts are not capped,
// so a value above 100 yields an amount larger than the price; the line's
// effective price still floors at zero.
func (r DiscountRule) AmountFor(price decimal.Decimal) decimal.Decimal {
	switch r.Type {
	case DiscountPercent:
		return price.Mul(r.Value).Div(hundred)
	case DiscountFlat:
		return decimal.Min(r.Value, price)
	default:
		return decimal.Zero
	}
}
