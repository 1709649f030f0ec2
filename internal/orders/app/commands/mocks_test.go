package commands_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dejobratic/posorder/internal/orders/domain"
	"github.com/dejobratic/posorder/internal/orders/ports"
)

type mockEventBus struct {
	submitted            []domain.OrderDetails
	publishSubmittedFn   func(ctx context.Context, order domain.OrderDetails) error
	confirmed, canceled []string
}

func (m *mockEventBus) PublishOrderSubmitted(ctx context.Context, order domain.OrderDetails) error {
	m.submitted = append(m.submitted, order)
	if m.publishSubmittedFn != nil {
		return m.publishSubmittedFn(ctx, order)
	}
	return nil
}

func (m *mockEventBus) PublishOrderConfirmed(_ context.Context, orderID string) error {
	m.confirmed = append(m.confirmed, orderID)
	return nil
}

func (m *mockEventBus) PublishOrderCanceled(_ context.Context, orderID string) error {
	m.canceled = append(m.canceled, orderID)
	return nil
}

type mockDiscountCatalog struct {
	findFn func(ctx context.Context, code string) (*domain.DiscountRule, error)
	calls  int
}

func (m *mockDiscountCatalog) FindDiscount(ctx context.Context, code string) (*domain.DiscountRule, error) {
	m.calls++
	if m.findFn != nil {
		return m.findFn(ctx, code)
	}
	return nil, ports.ErrDiscountNotFound
}

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func cash(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

var phone = domain.Product{ID: 1, Name: "Điện thoại Samsung Galaxy S23", Price: amount(10_000_000)}

func validForm() domain.FormData {
	form := domain.NewFormData()
	form.CustomerName = "Nguyen Van A"
	form.CustomerEmail = "a@example.com"
	form.CustomerPhone = "0912345678"
	return form
}
