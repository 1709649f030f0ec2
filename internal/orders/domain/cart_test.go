package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dejobratic/posorder/internal/orders/domain"
)

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertAmount(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, got.Equal(amount(want)), "expected %d, got %s", want, got)
}

var (
	phone  = domain.Product{ID: 1, Name: "Samsung Galaxy S23", Price: amount(10_000_000)}
	kettle = domain.Product{ID: 6, Name: "Camelbak Chute Mag", Price: amount(500_000)}
	laptop = domain.Product{ID: 11, Name: "Dell XPS 13", Price: amount(25_000_000)}

	tenPercent = &domain.DiscountRule{Code: "SALE10", Type: domain.DiscountPercent, Value: amount(10)}
	halfOff    = &domain.DiscountRule{Code: "SALE50", Type: domain.DiscountPercent, Value: amount(50)}
	flatBig    = &domain.DiscountRule{Code: "GIAM1TR", Type: domain.DiscountFlat, Value: amount(1_000_000)}
)

func TestCartAddLine(t *testing.T) {
	cart := domain.Cart{}.AddLine(phone).AddLine(kettle)

	require.Equal(t, 2, cart.Len())
	line, err := cart.Line(0)
	require.NoError(t, err)
	assert.Equal(t, phone.ID, line.ProductID)
	assert.Equal(t, phone.Name, line.Name)
	assert.Equal(t, 1, line.Quantity)
	assert.Empty(t, line.DiscountCode)
	assertAmount(t, 0, line.DiscountAmount)
	assertAmount(t, 10_500_000, cart.Total())
}

func TestCartTransitionsLeaveReceiverUntouched(t *testing.T) {
	base := domain.Cart{}.AddLine(phone)

	_, err := base.SetQuantity(0, 3)
	require.NoError(t, err)
	_, err = base.ApplyDiscount(0, "SALE10", tenPercent)
	require.NoError(t, err)
	_ = base.AddLine(kettle)

	require.Equal(t, 1, base.Len())
	line, _ := base.Line(0)
	assert.Equal(t, 1, line.Quantity)
	assertAmount(t, 0, line.DiscountAmount)
}

func TestCartApplyDiscount(t *testing.T) {
	tests := []struct {
		name       string
		price      int64
		code       string
		rule       *domain.DiscountRule
		wantAmount int64
		wantTotal  int64
	}{
		{"percent 50 of 10000", 10_000, "SALE50", halfOff, 5_000, 5_000},
		{"percent 10 of 10000000", 10_000_000, "SALE10", tenPercent, 1_000_000, 9_000_000},
		{"flat below price", 10_000_000, "GIAM1TR", flatBig, 1_000_000, 9_000_000},
		{"flat equal to price", 1_000_000, "GIAM1TR", flatBig, 1_000_000, 0},
		{"flat above price floors at price", 500_000, "GIAM1TR", flatBig, 500_000, 0},
		{"unknown code clears discount", 10_000, "NOPE", nil, 0, 10_000},
		{"empty code clears discount", 10_000, "", nil, 0, 10_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := domain.Cart{}.AddLine(domain.Product{ID: 1, Name: "item", Price: amount(tt.price)})

			cart, err := cart.ApplyDiscount(0, tt.code, tt.rule)
			require.NoError(t, err)

			line, _ := cart.Line(0)
			assert.Equal(t, tt.code, line.DiscountCode)
			assertAmount(t, tt.wantAmount, line.DiscountAmount)
			assert.False(t, line.EffectivePrice().IsNegative())
			assertAmount(t, tt.wantTotal, cart.Total())
		})
	}
}

func TestCartPercentAboveHundredIsNotClamped(t *testing.T) {
	overdrawn := &domain.DiscountRule{Code: "OOPS", Type: domain.DiscountPercent, Value: amount(150)}
	cart, err := domain.Cart{}.AddLine(kettle).AddLine(phone).ApplyDiscount(0, "OOPS", overdrawn)
	require.NoError(t, err)

	line, _ := cart.Line(0)
	assertAmount(t, 750_000, line.DiscountAmount)
	assertAmount(t, 0, line.EffectivePrice())
	assertAmount(t, 10_000_000, cart.Total())
}

func TestCartReplacingDiscountCode(t *testing.T) {
	cart, err := domain.Cart{}.AddLine(phone).ApplyDiscount(0, "SALE10", tenPercent)
	require.NoError(t, err)
	cart, err = cart.ApplyDiscount(0, "", nil)
	require.NoError(t, err)

	line, _ := cart.Line(0)
	assertAmount(t, 0, line.DiscountAmount)
	assertAmount(t, 10_000_000, cart.Total())
}

func TestCartPriceEditKeepsStaleDiscount(t *testing.T) {
	cart, err := domain.Cart{}.AddLine(phone).ApplyDiscount(0, "SALE10", tenPercent)
	require.NoError(t, err)

	cart, err = cart.SetPrice(0, amount(20_000_000))
	require.NoError(t, err)

	line, _ := cart.Line(0)
	assertAmount(t, 1_000_000, line.DiscountAmount)
	assertAmount(t, 19_000_000, cart.Total())

	cart, err = cart.ApplyDiscount(0, "SALE10", tenPercent)
	require.NoError(t, err)
	line, _ = cart.Line(0)
	assertAmount(t, 2_000_000, line.DiscountAmount)
	assertAmount(t, 18_000_000, cart.Total())
}

func TestCartQuantityEditKeepsDiscountPerUnit(t *testing.T) {
	cart, err := domain.Cart{}.AddLine(phone).ApplyDiscount(0, "SALE10", tenPercent)
	require.NoError(t, err)

	cart, err = cart.SetQuantity(0, 3)
	require.NoError(t, err)

	line, _ := cart.Line(0)
	assertAmount(t, 1_000_000, line.DiscountAmount)
	assertAmount(t, 27_000_000, cart.Total())
}

func TestCartRejectsInvalidEdits(t *testing.T) {
	cart := domain.Cart{}.AddLine(phone).AddLine(kettle)

	tests := []struct {
		name    string
		edit    func() (domain.Cart, error)
		wantErr error
	}{
		{"negative price", func() (domain.Cart, error) { return cart.SetPrice(0, amount(-1)) }, domain.ErrInvalidPrice},
		{"zero quantity", func() (domain.Cart, error) { return cart.SetQuantity(1, 0) }, domain.ErrInvalidQuantity},
		{"price index too high", func() (domain.Cart, error) { return cart.SetPrice(2, amount(1)) }, domain.ErrLineIndexOutOfRange},
		{"quantity negative index", func() (domain.Cart, error) { return cart.SetQuantity(-1, 2) }, domain.ErrLineIndexOutOfRange},
		{"discount index too high", func() (domain.Cart, error) { return cart.ApplyDiscount(5, "SALE10", tenPercent) }, domain.ErrLineIndexOutOfRange},
		{"remove index too high", func() (domain.Cart, error) { return cart.RemoveLine(2) }, domain.ErrLineIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.edit()
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, cart.Lines(), got.Lines())
			assertAmount(t, 10_500_000, got.Total())
		})
	}
}

func TestCartRemoveLinePreservesOrder(t *testing.T) {
	cart := domain.Cart{}.AddLine(phone).AddLine(kettle).AddLine(laptop)

	cart, err := cart.RemoveLine(1)
	require.NoError(t, err)

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, phone.ID, lines[0].ProductID)
	assert.Equal(t, laptop.ID, lines[1].ProductID)
}

func TestCartAddThenRemoveRestoresTotal(t *testing.T) {
	cart, err := domain.Cart{}.AddLine(phone).AddLine(kettle).ApplyDiscount(0, "SALE10", tenPercent)
	require.NoError(t, err)
	before := cart.Total()

	withLaptop := cart.AddLine(laptop)
	restored, err := withLaptop.RemoveLine(withLaptop.Len() - 1)
	require.NoError(t, err)

	assert.True(t, before.Equal(restored.Total()))
}

func TestCartTotalIsIdempotent(t *testing.T) {
	cart, err := domain.Cart{}.AddLine(phone).AddLine(laptop).SetQuantity(1, 2)
	require.NoError(t, err)

	first := cart.Total()
	second := cart.Total()
	assert.True(t, first.Equal(second))
	assertAmount(t, 60_000_000, first)
}

func TestCartLinesReturnsCopy(t *testing.T) {
	cart := domain.Cart{}.AddLine(phone)

	lines := cart.Lines()
	lines[0].Quantity = 99

	line, _ := cart.Line(0)
	assert.Equal(t, 1, line.Quantity)
}

func TestEmptyCartTotalIsZero(t *testing.T) {
	var cart domain.Cart
	assert.True(t, cart.IsEmpty())
	assertAmount(t, 0, cart.Total())
}
