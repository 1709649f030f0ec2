package database

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Lookup outcomes recorded in the result attribute.
const (
	ResultFound = "found"
	ResultMiss  = "miss"
	ResultError = "error"
)

// Metrics records catalog lookup latency, whichever backend serves it.
type Metrics struct {
	lookupDuration metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.lookupDuration, err = meter.Float64Histogram(
		"catalog_lookup_duration_seconds",
		metric.WithDescription("Catalog lookup duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create catalog_lookup_duration histogram: %w", err)
	}

	return m, nil
}

// RecordQuery records one lookup. A lookup that ran but found nothing is a
// miss; only backend failures are errors.
func (m *Metrics) RecordQuery(ctx context.Context, operation string, durationSeconds float64, result string) {
	m.lookupDuration.Record(ctx, durationSeconds, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("result", result),
	))
}
