package database

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestInitializeMetrics(t *testing.T) {
	t.Run("initializes all metric instruments successfully", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		meter := mp.Meter("test")

		metrics, err := NewMetrics(meter)
		if err != nil {
			t.Fatalf("NewMetrics() failed: %v", err)
		}

		if metrics == nil {
			t.Fatal("NewMetrics() returned nil")
		}

		if metrics.lookupDuration == nil {
			t.Error("lookupDuration is nil")
		}
	})
}

func TestRecordCatalogLookup(t *testing.T) {
	t.Run("records lookup duration with operation and result labels", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		meter := mp.Meter("test")

		metrics, err := NewMetrics(meter)
		if err != nil {
			t.Fatalf("NewMetrics() failed: %v", err)
		}

		ctx := context.Background()

		metrics.RecordQuery(ctx, "find_product", 0.1, ResultFound)
		metrics.RecordQuery(ctx, "find_discount", 0.05, ResultMiss)
		metrics.RecordQuery(ctx, "list_products", 0.2, ResultError)

		var rm metricdata.ResourceMetrics
		if err := reader.Collect(ctx, &rm); err != nil {
			t.Fatalf("Failed to collect metrics: %v", err)
		}

		found := false
		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				if m.Name != "catalog_lookup_duration_seconds" {
					continue
				}
				found = true
				histogram, ok := m.Data.(metricdata.Histogram[float64])
				if !ok {
					t.Fatal("Expected Histogram[float64] data type")
				}
				if len(histogram.DataPoints) != 3 {
					t.Fatalf("Expected 3 data points, got %d", len(histogram.DataPoints))
				}
				for _, dp := range histogram.DataPoints {
					op, _ := dp.Attributes.Value(attribute.Key("operation"))
					result, _ := dp.Attributes.Value(attribute.Key("result"))
					switch op.AsString() {
					case "find_product":
						if result.AsString() != "found" {
							t.Errorf("expected find_product result found, got %s", result.AsString())
						}
					case "find_discount":
						if result.AsString() != "miss" {
							t.Errorf("expected find_discount result miss, got %s", result.AsString())
						}
					case "list_products":
						if result.AsString() != "error" {
							t.Errorf("expected list_products result error, got %s", result.AsString())
						}
					default:
						t.Errorf("unexpected operation %q", op.AsString())
					}
				}
			}
		}

		if !found {
			t.Error("catalog_lookup_duration_seconds metric not found")
		}
	})
}
