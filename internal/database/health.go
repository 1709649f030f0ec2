package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const healthTimeout = 2 * time.Second

const catalogTablesSQL = `SELECT to_regclass('products') IS NOT NULL AND to_regclass('discount_codes') IS NOT NULL`

// ErrCatalogMissing is returned when the database is reachable but the
// catalog migrations have not been applied.
var ErrCatalogMissing = errors.New("catalog tables are missing")

// Pinger is the part of *pgxpool.Pool the health checks need.
type Pinger interface {
	Ping(ctx context.Context) error
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CheckHealth(ctx context.Context, pool Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	return pool.Ping(ctx)
}

// CheckCatalog verifies both catalog tables exist.
func CheckCatalog(ctx context.Context, pool Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	var ready bool
	if err := pool.QueryRow(ctx, catalogTablesSQL).Scan(&ready); err != nil {
		return fmt.Errorf("inspect catalog tables: %w", err)
	}
	if !ready {
		return ErrCatalogMissing
	}
	return nil
}
