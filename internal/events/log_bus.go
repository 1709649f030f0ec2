package events

import (
	"context"
	"log/slog"

	"github.com/dejobratic/posorder/internal/orders/domain"
)

const (
	OrderSubmitted = "order.submitted"
	OrderConfirmed = "order.confirmed"
	OrderCanceled  = "order.canceled"
)

// LogEventBus records order lifecycle events in the log instead of sending
// them anywhere. Orders are never persisted, so the log is the only sink.
type LogEventBus struct {
	logger *slog.Logger
}

func NewLogEventBus(logger *slog.Logger) *LogEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEventBus{logger: logger}
}

func (b *LogEventBus) PublishOrderSubmitted(ctx context.Context, order domain.OrderDetails) error {
	b.logger.InfoContext(ctx, "event::"+OrderSubmitted,
		"order_id", order.ID,
		"payment_method", string(order.PaymentMethod),
		"lines", len(order.Cart),
		"total", order.Total.String(),
		"change_due", order.ChangeDue().String(),
	)
	return nil
}

func (b *LogEventBus) PublishOrderConfirmed(ctx context.Context, orderID string) error {
	b.logger.InfoContext(ctx, "event::"+OrderConfirmed, "order_id", orderID)
	return nil
}

func (b *LogEventBus) PublishOrderCanceled(ctx context.Context, orderID string) error {
	b.logger.InfoContext(ctx, "event::"+OrderCanceled, "order_id", orderID)
	return nil
}
