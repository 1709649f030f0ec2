package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dejobratic/posorder/internal/orders/app/commands"
	"github.com/dejobratic/posorder/internal/orders/domain"
)

func TestSubmitOrder(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	newHandler := func(events *mockEventBus) *commands.SubmitOrderCommandHandler {
		return commands.NewSubmitOrderCommandHandler(events,
			commands.WithIDGenerator(func() string { return "order-1" }),
			commands.WithClock(func() time.Time { return now }),
		)
	}

	t.Run("assembles and announces a valid order", func(t *testing.T) {
		events := &mockEventBus{}
		form := validForm()
		form.CashGiven = cash(10_000_000)
		cart := domain.NewCart().AddLine(phone)

		order, err := newHandler(events).Handle(context.Background(), commands.SubmitOrderCommand{Form: form, Cart: cart})

		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, "order-1", order.ID)
		assert.Equal(t, now, order.CreatedAt)
		assert.True(t, order.Total.Equal(amount(10_000_000)))
		assert.True(t, order.ChangeDue().IsZero())
		require.Len(t, events.submitted, 1)
		assert.Equal(t, "order-1", events.submitted[0].ID)
	})

	t.Run("rejects without assembling", func(t *testing.T) {
		events := &mockEventBus{}
		form := validForm()
		form.CashGiven = cash(50_000)
		cart := domain.NewCart().AddLine(domain.Product{ID: 9, Name: "Gift card", Price: amount(100_000)})

		order, err := newHandler(events).Handle(context.Background(), commands.SubmitOrderCommand{Form: form, Cart: cart})

		require.ErrorIs(t, err, domain.ErrInsufficientCash)
		assert.Nil(t, order)
		assert.Empty(t, events.submitted)
	})

	t.Run("card payment skips cash checks", func(t *testing.T) {
		form := validForm()
		form.PaymentMethod = domain.PaymentCard
		form.CashGiven = cash(1)

		order, err := newHandler(&mockEventBus{}).Handle(context.Background(), commands.SubmitOrderCommand{
			Form: form,
			Cart: domain.NewCart().AddLine(phone),
		})

		require.NoError(t, err)
		assert.Equal(t, domain.PaymentCard, order.PaymentMethod)
		assert.True(t, order.ChangeDue().IsZero())
	})

	t.Run("returns the order when the announcement fails", func(t *testing.T) {
		busErr := errors.New("sink unavailable")
		events := &mockEventBus{publishSubmittedFn: func(context.Context, domain.OrderDetails) error { return busErr }}
		form := validForm()
		form.PaymentMethod = domain.PaymentCard

		order, err := newHandler(events).Handle(context.Background(), commands.SubmitOrderCommand{
			Form: form,
			Cart: domain.NewCart().AddLine(phone),
		})

		require.ErrorIs(t, err, busErr)
		require.NotNil(t, order)
		assert.Equal(t, "order-1", order.ID)
	})

	t.Run("generates distinct ids by default", func(t *testing.T) {
		handler := commands.NewSubmitOrderCommandHandler(&mockEventBus{})
		form := validForm()
		form.PaymentMethod = domain.PaymentCard
		cmd := commands.SubmitOrderCommand{Form: form, Cart: domain.NewCart().AddLine(phone)}

		first, err := handler.Handle(context.Background(), cmd)
		require.NoError(t, err)
		second, err := handler.Handle(context.Background(), cmd)
		require.NoError(t, err)

		assert.NotEmpty(t, first.ID)
		assert.NotEqual(t, first.ID, second.ID)
	})
}
