package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dejobratic/posorder/internal/orders/domain"
	"github.com/dejobratic/posorder/internal/orders/ports"
)

const findDiscountSQL = `SELECT code, type, value FROM discount_codes WHERE code = $1`

// DiscountCatalog reads discount rules from the discount_codes table.
type DiscountCatalog struct {
	pool DBPool
}

func NewDiscountCatalog(pool DBPool) *DiscountCatalog {
	return &DiscountCatalog{pool: pool}
}

func (c *DiscountCatalog) FindDiscount(ctx context.Context, code string) (*domain.DiscountRule, error) {
	if code == "" {
		return nil, ports.ErrDiscountNotFound
	}

	var (
		rule      domain.DiscountRule
		ruleType  string
		ruleValue int64
	)
	err := c.pool.QueryRow(ctx, findDiscountSQL, code).Scan(&rule.Code, &ruleType, &ruleValue)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrDiscountNotFound
		}
		return nil, fmt.Errorf("select discount code: %w", err)
	}

	rule.Type = domain.DiscountType(ruleType)
	rule.Value = decimal.NewFromInt(ruleValue)
	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("discount code %q: %w", code, err)
	}

	return &rule, nil
}
