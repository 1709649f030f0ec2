package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/dejobratic/posorder/internal/orders/domain"
	"github.com/dejobratic/posorder/internal/orders/ports"
)

type ApplyDiscountCommand struct {
	Cart  domain.Cart
	Index int
	Code  string
}

// ApplyDiscountCommandHandler resolves a discount code and recomputes the
// line's discount amount. Unknown and empty codes clear the discount.
type ApplyDiscountCommandHandler struct {
	discounts ports.DiscountCatalog
}

func NewApplyDiscountCommandHandler(discounts ports.DiscountCatalog) *ApplyDiscountCommandHandler {
	return &ApplyDiscountCommandHandler{discounts: discounts}
}

func (h *ApplyDiscountCommandHandler) Handle(ctx context.Context, cmd ApplyDiscountCommand) (domain.Cart, error) {
	if _, err := cmd.Cart.Line(cmd.Index); err != nil {
		return cmd.Cart, err
	}

	var rule *domain.DiscountRule
	if cmd.Code != "" {
		found, err := h.discounts.FindDiscount(ctx, cmd.Code)
		switch {
		case errors.Is(err, ports.ErrDiscountNotFound):
		case err != nil:
			return cmd.Cart, fmt.Errorf("look up discount %q: %w", cmd.Code, err)
		default:
			rule = found
		}
	}

	return cmd.Cart.ApplyDiscount(cmd.Index, cmd.Code, rule)
}
