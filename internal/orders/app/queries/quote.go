package queries

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dejobratic/posorder/internal/orders/domain"
)

// QuoteQuery asks for the figures shown next to the form before submission.
type QuoteQuery struct {
	Cart domain.Cart
	Form domain.FormData
}

type QuoteLine struct {
	domain.CartLine
	EffectivePrice decimal.Decimal
	Subtotal       decimal.Decimal
}

// Quote is a read model of the cart. ChangeDue and CashCovered are only
// meaningful for cash payments with an amount entered.
type Quote struct {
	Lines       []QuoteLine
	Total       decimal.Decimal
	ChangeDue   decimal.Decimal
	CashCovered bool
}

type QuoteQueryHandler struct{}

func NewQuoteQueryHandler() *QuoteQueryHandler {
	return &QuoteQueryHandler{}
}

func (h *QuoteQueryHandler) Handle(_ context.Context, query QuoteQuery) Quote {
	lines := query.Cart.Lines()
	quote := Quote{
		Lines: make([]QuoteLine, 0, len(lines)),
		Total: query.Cart.Total(),
	}

	for _, line := range lines {
		quote.Lines = append(quote.Lines, QuoteLine{
			CartLine:       line,
			EffectivePrice: line.EffectivePrice(),
			Subtotal:       line.Subtotal(),
		})
	}

	quote.ChangeDue = domain.ChangeDue(query.Form.PaymentMethod, query.Form.CashGiven, quote.Total)
	quote.CashCovered = query.Form.PaymentMethod == domain.PaymentCash &&
		query.Form.CashGiven != nil &&
		query.Form.CashGiven.GreaterThanOrEqual(quote.Total)

	return quote
}
