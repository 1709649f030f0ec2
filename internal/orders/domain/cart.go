package domain

import (
	"github.com/shopspring/decimal"
)

// CartLine is one product entry in an order with its own quantity and discount.
type CartLine struct {
	ProductID      int64           `json:"product_id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	DiscountCode   string          `json:"discount_code"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// EffectivePrice is the unit price after discount, floored at zero.
func (l CartLine) EffectivePrice() decimal.Decimal {
	effective := l.Price.Sub(l.DiscountAmount)
	if effective.IsNegative() {
		return decimal.Zero
	}
	return effective
}

// Subtotal is the effective price multiplied by the quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.EffectivePrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered list of lines. Every transition returns a new Cart and
// leaves the receiver untouched, so a Cart value can be shared freely.
type Cart struct {
	lines []CartLine
}

// NewCart builds a cart holding a copy of lines.
func NewCart(lines ...CartLine) Cart {
	return Cart{lines: cloneLines(lines)}
}

// Lines returns a copy of the cart lines in order.
func (c Cart) Lines() []CartLine {
	return cloneLines(c.lines)
}

func (c Cart) Len() int {
	return len(c.lines)
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Line returns the line at index.
func (c Cart) Line(index int) (CartLine, error) {
	if index < 0 || index >= len(c.lines) {
		return CartLine{}, ErrLineIndexOutOfRange
	}
	return c.lines[index], nil
}

// AddLine appends product as a new line with quantity 1 and no discount.
func (c Cart) AddLine(product Product) Cart {
	lines := make([]CartLine, len(c.lines), len(c.lines)+1)
	copy(lines, c.lines)
	lines = append(lines, CartLine{
		ProductID:      product.ID,
		Name:           product.Name,
		Price:          product.Price,
		Quantity:       1,
		DiscountAmount: decimal.Zero,
	})
	return Cart{lines: lines}
}

// SetPrice changes the unit price of a line. The discount amount is kept as
// is; it only changes when a discount code is applied again.
func (c Cart) SetPrice(index int, price decimal.Decimal) (Cart, error) {
	if price.IsNegative() {
		return c, ErrInvalidPrice
	}
	return c.update(index, func(l *CartLine) {
		l.Price = price
	})
}

// SetQuantity changes the quantity of a line.
func (c Cart) SetQuantity(index, quantity int) (Cart, error) {
	if quantity < 1 {
		return c, ErrInvalidQuantity
	}
	return c.update(index, func(l *CartLine) {
		l.Quantity = quantity
	})
}

// ApplyDiscount records code on a line and recomputes its discount amount
// from rule against the line's current price. A nil rule means the code did
// not match anything and clears the discount.
func (c Cart) ApplyDiscount(index int, code string, rule *DiscountRule) (Cart, error) {
	return c.update(index, func(l *CartLine) {
		l.DiscountCode = code
		if rule == nil {
			l.DiscountAmount = decimal.Zero
			return
		}
		l.DiscountAmount = rule.AmountFor(l.Price)
	})
}

// RemoveLine deletes the line at index; later lines shift down.
func (c Cart) RemoveLine(index int) (Cart, error) {
	if index < 0 || index >= len(c.lines) {
		return c, ErrLineIndexOutOfRange
	}
	lines := make([]CartLine, 0, len(c.lines)-1)
	lines = append(lines, c.lines[:index]...)
	lines = append(lines, c.lines[index+1:]...)
	return Cart{lines: lines}, nil
}

// Total sums the line subtotals. It is computed on every call.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func (c Cart) update(index int, fn func(*CartLine)) (Cart, error) {
	if index < 0 || index >= len(c.lines) {
		return c, ErrLineIndexOutOfRange
	}
	lines := cloneLines(c.lines)
	fn(&lines[index])
	return Cart{lines: lines}, nil
}

func cloneLines(lines []CartLine) []CartLine {
	if len(lines) == 0 {
		return nil
	}
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return out
}
