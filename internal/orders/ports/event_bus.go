package ports

import (
	"context"

	"github.com/dejobratic/posorder/internal/orders/domain"
)

// EventBus defines the contract for announcing order form lifecycle events.
type EventBus interface {
	PublishOrderSubmitted(ctx context.Context, order domain.OrderDetails) error
	PublishOrderConfirmed(ctx context.Context, orderID string) error
	PublishOrderCanceled(ctx context.Context, orderID string) error
}
