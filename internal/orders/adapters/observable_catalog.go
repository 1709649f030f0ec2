package adapters

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dejobratic/posorder/internal/database"
	"github.com/dejobratic/posorder/internal/orders/domain"
	"github.com/dejobratic/posorder/internal/orders/ports"
	"github.com/dejobratic/posorder/internal/telemetry"
)

// ObservableProductCatalog traces and times product lookups. A miss is a
// normal outcome and does not mark the span as failed.
type ObservableProductCatalog struct {
	catalog ports.ProductCatalog
	metrics *database.Metrics
}

func NewObservableProductCatalog(catalog ports.ProductCatalog, metrics *database.Metrics) *ObservableProductCatalog {
	return &ObservableProductCatalog{catalog: catalog, metrics: metrics}
}

func (c *ObservableProductCatalog) FindProduct(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "ProductCatalog.FindProduct")
	telemetry.AddSpanAttributes(span,
		attribute.Int64("product.id", id),
		attribute.String("operation", "find_product"),
	)

	start := time.Now()
	product, err := c.catalog.FindProduct(ctx, id)
	c.metrics.RecordQuery(ctx, "find_product", time.Since(start).Seconds(), lookupResult(err, ports.ErrProductNotFound))

	if errors.Is(err, ports.ErrProductNotFound) {
		telemetry.AddSpanAttributes(span, attribute.Bool("product.found", false))
		telemetry.FinishSpan(span, nil)
		return nil, err
	}
	telemetry.FinishSpan(span, err)
	return product, err
}

func (c *ObservableProductCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "ProductCatalog.ListProducts")
	telemetry.AddSpanAttributes(span, attribute.String("operation", "list_products"))

	start := time.Now()
	products, err := c.catalog.ListProducts(ctx)
	c.metrics.RecordQuery(ctx, "list_products", time.Since(start).Seconds(), lookupResult(err, nil))

	if err == nil {
		telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(products)))
	}
	telemetry.FinishSpan(span, err)
	return products, err
}

type ObservableDiscountCatalog struct {
	catalog ports.DiscountCatalog
	metrics *database.Metrics
}

func NewObservableDiscountCatalog(catalog ports.DiscountCatalog, metrics *database.Metrics) *ObservableDiscountCatalog {
	return &ObservableDiscountCatalog{catalog: catalog, metrics: metrics}
}

func (c *ObservableDiscountCatalog) FindDiscount(ctx context.Context, code string) (*domain.DiscountRule, error) {
	ctx, span := telemetry.StartSpan(ctx, "DiscountCatalog.FindDiscount")
	telemetry.AddSpanAttributes(span,
		attribute.String("discount.code", code),
		attribute.String("operation", "find_discount"),
	)

	start := time.Now()
	rule, err := c.catalog.FindDiscount(ctx, code)
	c.metrics.RecordQuery(ctx, "find_discount", time.Since(start).Seconds(), lookupResult(err, ports.ErrDiscountNotFound))

	if errors.Is(err, ports.ErrDiscountNotFound) {
		telemetry.AddSpanAttributes(span, attribute.Bool("discount.found", false))
		telemetry.FinishSpan(span, nil)
		return nil, err
	}
	if err == nil {
		telemetry.AddSpanAttributes(span, attribute.String("discount.type", string(rule.Type)))
	}
	telemetry.FinishSpan(span, err)
	return rule, err
}

func lookupResult(err, notFound error) string {
	switch {
	case err == nil:
		return database.ResultFound
	case notFound != nil && errors.Is(err, notFound):
		return database.ResultMiss
	default:
		return database.ResultError
	}
}
