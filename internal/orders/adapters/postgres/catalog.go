package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dejobratic/posorder/internal/orders/domain"
	"github.com/dejobratic/posorder/internal/orders/ports"
)

// DBPool matches the methods from *pgxpool.Pool the catalogs use, so tests
// can substitute a mock pool.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const (
	findProductSQL  = `SELECT id, name, price FROM products WHERE id = $1`
	listProductsSQL = `SELECT id, name, price FROM products ORDER BY id`
)

// ProductCatalog reads products from the products table. Prices are stored
// as whole đồng.
type ProductCatalog struct {
	pool DBPool
}

func NewProductCatalog(pool DBPool) *ProductCatalog {
	return &ProductCatalog{pool: pool}
}

func (c *ProductCatalog) FindProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var (
		product domain.Product
		price   int64
	)
	err := c.pool.QueryRow(ctx, findProductSQL, id).Scan(&product.ID, &product.Name, &price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrProductNotFound
		}
		return nil, fmt.Errorf("select product: %w", err)
	}

	product.Price = decimal.NewFromInt(price)
	return &product, nil
}

func (c *ProductCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := c.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var (
			product domain.Product
			price   int64
		)
		if err := rows.Scan(&product.ID, &product.Name, &price); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		product.Price = decimal.NewFromInt(price)
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}
