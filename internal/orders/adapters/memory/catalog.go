package memory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dejobratic/posorder/internal/orders/domain"
	"github.com/dejobratic/posorder/internal/orders/ports"
)

// ProductCatalog serves a fixed product list. Lookups are linear; the
// catalog holds tens of items.
type ProductCatalog struct {
	products []domain.Product
}

// NewProductCatalog builds a catalog from products, rejecting invalid entries.
func NewProductCatalog(products []domain.Product) (*ProductCatalog, error) {
	seen := make(map[int64]struct{}, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("product %d: %w", p.ID, err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("product %d: duplicate id", p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	list := make([]domain.Product, len(products))
	copy(list, products)
	return &ProductCatalog{products: list}, nil
}

// FindProduct returns the product with the given id.
func (c *ProductCatalog) FindProduct(_ context.Context, id int64) (*domain.Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, ports.ErrProductNotFound
}

// ListProducts returns every product in catalog order.
func (c *ProductCatalog) ListProducts(_ context.Context) ([]domain.Product, error) {
	list := make([]domain.Product, len(c.products))
	copy(list, c.products)
	return list, nil
}

// DefaultProducts is the store's built-in product list, priced in VND.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Điện thoại Samsung Galaxy S23", Price: decimal.NewFromInt(10_000_000)},
		{ID: 2, Name: "Tai nghe Sony WH-1000XM5", Price: decimal.NewFromInt(7_000_000)},
		{ID: 3, Name: "Máy xay sinh tố Philips HR2223", Price: decimal.NewFromInt(1_200_000)},
		{ID: 4, Name: "Áo khoác mùa đông Uniqlo", Price: decimal.NewFromInt(850_000)},
		{ID: 5, Name: "Giày thể thao Nike Air Max 270", Price: decimal.NewFromInt(3_500_000)},
		{ID: 6, Name: "Bình nước thể thao Camelbak Chute Mag", Price: decimal.NewFromInt(500_000)},
		{ID: 7, Name: "Máy pha cà phê Delonghi EC685", Price: decimal.NewFromInt(4_000_000)},
		{ID: 8, Name: "Loa Bluetooth JBL Charge 5", Price: decimal.NewFromInt(5_000_000)},
		{ID: 9, Name: "Vợt tennis Wilson Pro Staff", Price: decimal.NewFromInt(2_800_000)},
		{ID: 10, Name: "Giày thể thao Adidas Ultraboost 22", Price: decimal.NewFromInt(4_500_000)},
		{ID: 11, Name: "Laptop Dell XPS 13", Price: decimal.NewFromInt(25_000_000)},
		{ID: 12, Name: "Bàn là hơi nước Panasonic NI-WL600", Price: decimal.NewFromInt(800_000)},
	}
}
