package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dejobratic/posorder/internal/orders/domain"
	"github.com/dejobratic/posorder/internal/orders/ports"
)

// SubmitOrderCommand carries the form and cart as they stand when the
// cashier presses submit.
type SubmitOrderCommand struct {
	Form domain.FormData
	Cart domain.Cart
}

type SubmitOrderHandler interface {
	Handle(ctx context.Context, cmd SubmitOrderCommand) (*domain.OrderDetails, error)
}

type SubmitOrderCommandHandler struct {
	events ports.EventBus
	newID  func() string
	now    func() time.Time
}

type SubmitOption func(*SubmitOrderCommandHandler)

// WithIDGenerator replaces the uuid order id generator.
func WithIDGenerator(fn func() string) SubmitOption {
	return func(h *SubmitOrderCommandHandler) { h.newID = fn }
}

func WithClock(fn func() time.Time) SubmitOption {
	return func(h *SubmitOrderCommandHandler) { h.now = fn }
}

func NewSubmitOrderCommandHandler(events ports.EventBus, opts ...SubmitOption) *SubmitOrderCommandHandler {
	h := &SubmitOrderCommandHandler{
		events: events,
		newID:  uuid.NewString,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle validates the form against the cart total and assembles the order
// snapshot. A rejected submission returns a *domain.ValidationError and no
// order. If only the announcement fails, the order is returned with the error.
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (*domain.OrderDetails, error) {
	total := cmd.Cart.Total()

	if err := domain.Validate(cmd.Form, total); err != nil {
		return nil, err
	}

	order := domain.Assemble(h.newID(), cmd.Form, cmd.Cart, total, h.now())

	if err := h.events.PublishOrderSubmitted(ctx, order); err != nil {
		return &order, fmt.Errorf("order assembled but failed to publish event: %w", err)
	}

	return &order, nil
}
