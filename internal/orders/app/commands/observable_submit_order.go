package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dejobratic/posorder/internal/orders/domain"
	"github.com/dejobratic/posorder/internal/orders/metrics"
	"github.com/dejobratic/posorder/internal/telemetry"
)

type ObservableSubmitOrderHandler struct {
	handler SubmitOrderHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableSubmitOrderHandler(handler SubmitOrderHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableSubmitOrderHandler {
	return &ObservableSubmitOrderHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableSubmitOrderHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (*domain.OrderDetails, error) {
	ctx, span := telemetry.StartSpan(ctx, "SubmitOrderCommand.Handle")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int("cart.lines", cmd.Cart.Len()),
		attribute.String("order.payment_method", string(cmd.Form.PaymentMethod)),
	)

	start := time.Now()
	defer func() {
		o.metrics.RecordSubmissionDuration(ctx, time.Since(start).Seconds())
	}()

	o.logger.DebugContext(ctx, "submitting order",
		"lines", cmd.Cart.Len(),
		"payment_method", cmd.Form.PaymentMethod,
	)

	order, err := o.handler.Handle(ctx, cmd)

	if order == nil {
		var rejected *domain.ValidationError
		if errors.As(err, &rejected) {
			o.metrics.RecordSubmission(ctx, false, string(rejected.Reason))
			telemetry.AddSpanAttributes(span,
				attribute.String("rejection.reason", string(rejected.Reason)),
				attribute.String("rejection.field", rejected.Field),
			)
			telemetry.SetSpanSuccess(span)
			o.logger.InfoContext(ctx, "order rejected",
				"reason", rejected.Reason,
				"field", rejected.Field,
			)
			return nil, err
		}

		o.metrics.RecordSubmission(ctx, false, "")
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to submit order", "error", err)
		return nil, err
	}

	o.metrics.RecordSubmission(ctx, true, "")
	o.metrics.RecordOrderTotal(ctx, order.Total, string(order.PaymentMethod))
	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", order.ID),
		attribute.String("order.total", order.Total.String()),
	)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.WarnContext(ctx, "order submitted without announcement",
			"order_id", order.ID,
			"error", err,
		)
		return order, err
	}

	o.logger.InfoContext(ctx, "order submitted",
		"order_id", order.ID,
		"total", order.Total.String(),
	)
	telemetry.SetSpanSuccess(span)

	return order, nil
}
