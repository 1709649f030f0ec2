package memory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dejobratic/posorder/internal/orders/domain"
	"github.com/dejobratic/posorder/internal/orders/ports"
)

// DiscountCatalog serves a fixed set of discount rules.
type DiscountCatalog struct {
	rules []domain.DiscountRule
}

// NewDiscountCatalog builds a catalog from rules, rejecting invalid or duplicate codes.
func NewDiscountCatalog(rules []domain.DiscountRule) (*DiscountCatalog, error) {
	seen := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("discount %q: %w", r.Code, err)
		}
		if _, dup := seen[r.Code]; dup {
			return nil, fmt.Errorf("discount %q: duplicate code", r.Code)
		}
		seen[r.Code] = struct{}{}
	}

	list := make([]domain.DiscountRule, len(rules))
	copy(list, rules)
	return &DiscountCatalog{rules: list}, nil
}

// FindDiscount returns the rule whose code equals code exactly.
func (c *DiscountCatalog) FindDiscount(_ context.Context, code string) (*domain.DiscountRule, error) {
	if code == "" {
		return nil, ports.ErrDiscountNotFound
	}
	for _, r := range c.rules {
		if r.Code == code {
			found := r
			return &found, nil
		}
	}
	return nil, ports.ErrDiscountNotFound
}

// DefaultDiscounts is the store's built-in set of discount codes.
func DefaultDiscounts() []domain.DiscountRule {
	return []domain.DiscountRule{
		{Code: "SALE10", Type: domain.DiscountPercent, Value: decimal.NewFromInt(10)},
		{Code: "SALE20", Type: domain.DiscountPercent, Value: decimal.NewFromInt(20)},
		{Code: "SALE50", Type: domain.DiscountPercent, Value: decimal.NewFromInt(50)},
		{Code: "GIAM100K", Type: domain.DiscountFlat, Value: decimal.NewFromInt(100_000)},
		{Code: "GIAM500K", Type: domain.DiscountFlat, Value: decimal.NewFromInt(500_000)},
		{Code: "GIAM1TR", Type: domain.DiscountFlat, Value: decimal.NewFromInt(1_000_000)},
	}
}
