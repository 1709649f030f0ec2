package adapters

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dejobratic/posorder/internal/events"
	"github.com/dejobratic/posorder/internal/orders/domain"
	"github.com/dejobratic/posorder/internal/orders/ports"
	"github.com/dejobratic/posorder/internal/telemetry"
)

type ObservableEventBus struct {
	bus     ports.EventBus
	metrics *events.Metrics
}

func NewObservableEventBus(bus ports.EventBus, metrics *events.Metrics) *ObservableEventBus {
	return &ObservableEventBus{bus: bus, metrics: metrics}
}

func (e *ObservableEventBus) PublishOrderSubmitted(ctx context.Context, order domain.OrderDetails) error {
	return e.publish(ctx, "EventBus.PublishOrderSubmitted", events.OrderSubmitted, order.ID,
		func(ctx context.Context) error { return e.bus.PublishOrderSubmitted(ctx, order) },
		attribute.String("order.total", order.Total.String()),
		attribute.Int("order.lines", len(order.Cart)),
	)
}

func (e *ObservableEventBus) PublishOrderConfirmed(ctx context.Context, orderID string) error {
	return e.publish(ctx, "EventBus.PublishOrderConfirmed", events.OrderConfirmed, orderID,
		func(ctx context.Context) error { return e.bus.PublishOrderConfirmed(ctx, orderID) },
	)
}

func (e *ObservableEventBus) PublishOrderCanceled(ctx context.Context, orderID string) error {
	return e.publish(ctx, "EventBus.PublishOrderCanceled", events.OrderCanceled, orderID,
		func(ctx context.Context) error { return e.bus.PublishOrderCanceled(ctx, orderID) },
	)
}

func (e *ObservableEventBus) publish(
	ctx context.Context,
	spanName, event, orderID string,
	send func(context.Context) error,
	extra ...attribute.KeyValue,
) error {
	ctx, span := telemetry.StartSpan(ctx, spanName)
	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", orderID),
		attribute.String("event.type", event),
	)
	telemetry.AddSpanAttributes(span, extra...)

	start := time.Now()
	err := send(ctx)
	e.metrics.RecordPublish(ctx, event, time.Since(start).Seconds(), err == nil)

	telemetry.FinishSpan(span, err)
	return err
}
