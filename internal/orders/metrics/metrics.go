package metrics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the instruments for the order form flow.
type Metrics struct {
	submissionsTotal   metric.Int64Counter
	submissionDuration metric.Float64Histogram
	confirmationsTotal metric.Int64Counter
	cancellationsTotal metric.Int64Counter
	orderTotal         metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.submissionsTotal, err = meter.Int64Counter(
		"order_submissions_total",
		metric.WithDescription("Order form submissions by outcome"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_submissions_total counter: %w", err)
	}

	m.submissionDuration, err = meter.Float64Histogram(
		"order_submission_duration_seconds",
		metric.WithDescription("Duration of order form submissions"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_submission_duration histogram: %w", err)
	}

	m.confirmationsTotal, err = meter.Int64Counter(
		"orders_confirmed_total",
		metric.WithDescription("Order summaries confirmed by the customer"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create orders_confirmed_total counter: %w", err)
	}

	m.cancellationsTotal, err = meter.Int64Counter(
		"orders_canceled_total",
		metric.WithDescription("Order summaries sent back for editing"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create orders_canceled_total counter: %w", err)
	}

	m.orderTotal, err = meter.Float64Histogram(
		"order_total_vnd",
		metric.WithDescription("Total of accepted orders"),
		metric.WithUnit("{VND}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_total histogram: %w", err)
	}

	return m, nil
}

// RecordSubmission counts one submission. reason is the rejection reason and
// is ignored for accepted submissions.
func (m *Metrics) RecordSubmission(ctx context.Context, accepted bool, reason string) {
	attrs := []attribute.KeyValue{attribute.String("status", "accepted")}
	if !accepted {
		if reason == "" {
			reason = "error"
		}
		attrs = []attribute.KeyValue{
			attribute.String("status", "rejected"),
			attribute.String("reason", reason),
		}
	}
	m.submissionsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *Metrics) RecordSubmissionDuration(ctx context.Context, durationSeconds float64) {
	m.submissionDuration.Record(ctx, durationSeconds)
}

func (m *Metrics) RecordConfirmed(ctx context.Context) {
	m.confirmationsTotal.Add(ctx, 1)
}

func (m *Metrics) RecordCanceled(ctx context.Context) {
	m.cancellationsTotal.Add(ctx, 1)
}

func (m *Metrics) RecordOrderTotal(ctx context.Context, total decimal.Decimal, method string) {
	m.orderTotal.Record(ctx, total.InexactFloat64(), metric.WithAttributes(
		attribute.String("payment_method", method),
	))
}
