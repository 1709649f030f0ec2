package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderDetails is the immutable snapshot of a submitted order shown for
// confirmation. It owns its own copy of the cart lines.
type OrderDetails struct {
	ID            string           `json:"id"`
	CustomerName  string           `json:"customer_name"`
	CustomerEmail string           `json:"customer_email"`
	CustomerPhone string           `json:"customer_phone"`
	PaymentMethod PaymentMethod    `json:"payment_method"`
	CashGiven     *decimal.Decimal `json:"cash_given,omitempty"`
	Cart          []CartLine       `json:"cart"`
	Total         decimal.Decimal  `json:"total"`
	CreatedAt     time.Time        `json:"created_at"`
}

// Assemble builds the snapshot for a validated submission.
func Assemble(id string, form FormData, cart Cart, total decimal.Decimal, now time.Time) OrderDetails {
	form = form.Normalized()

	var cash *decimal.Decimal
	if form.CashGiven != nil {
		value := *form.CashGiven
		cash = &value
	}

	return OrderDetails{
		ID:            id,
		CustomerName:  form.CustomerName,
		CustomerEmail: form.CustomerEmail,
		CustomerPhone: form.CustomerPhone,
		PaymentMethod: form.PaymentMethod,
		CashGiven:     cash,
		Cart:          cart.Lines(),
		Total:         total,
		CreatedAt:     now,
	}
}

// ChangeDue is the amount handed back to a cash-paying customer. It is
// display-only and never negative.
func (o OrderDetails) ChangeDue() decimal.Decimal {
	return ChangeDue(o.PaymentMethod, o.CashGiven, o.Total)
}

// ChangeDue computes max(0, cashGiven - total) for cash payments.
func ChangeDue(method PaymentMethod, cashGiven *decimal.Decimal, total decimal.Decimal) decimal.Decimal {
	if method != PaymentCash || cashGiven == nil {
		return decimal.Zero
	}
	change := cashGiven.Sub(total)
	if change.IsNegative() {
		return decimal.Zero
	}
	return change
}
