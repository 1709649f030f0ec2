package queries

import (
	"context"
	"fmt"

	"github.com/dejobratic/posorder/internal/orders/domain"
	"github.com/dejobratic/posorder/internal/orders/ports"
)

type ListProductsQuery struct{}

// ListProductsQueryHandler feeds the product picker.
type ListProductsQueryHandler struct {
	catalog ports.ProductCatalog
}

func NewListProductsQueryHandler(catalog ports.ProductCatalog) *ListProductsQueryHandler {
	return &ListProductsQueryHandler{catalog: catalog}
}

func (h *ListProductsQueryHandler) Handle(ctx context.Context, _ ListProductsQuery) ([]domain.Product, error) {
	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
