package ports

import (
	"context"
	"errors"

	"github.com/dejobratic/posorder/internal/orders/domain"
)

var (
	// ErrProductNotFound is returned when no product has the requested id.
	ErrProductNotFound = errors.New("product not found")
	// ErrDiscountNotFound is returned when no rule matches the requested code.
	ErrDiscountNotFound = errors.New("discount code not found")
)

// ProductCatalog looks up the products that can be added to a cart.
type ProductCatalog interface {
	FindProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// DiscountCatalog resolves discount codes to rules. Codes match exactly and
// are case-sensitive.
type DiscountCatalog interface {
	FindDiscount(ctx context.Context, code string) (*domain.DiscountRule, error)
}
