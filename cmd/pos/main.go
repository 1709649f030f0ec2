package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"

	"github.com/dejobratic/posorder/internal/config"
	"github.com/dejobratic/posorder/internal/console"
	"github.com/dejobratic/posorder/internal/database"
	"github.com/dejobratic/posorder/internal/events"
	"github.com/dejobratic/posorder/internal/orders/adapters"
	"github.com/dejobratic/posorder/internal/orders/adapters/memory"
	orderspostgres "github.com/dejobratic/posorder/internal/orders/adapters/postgres"
	ordersapp "github.com/dejobratic/posorder/internal/orders/app"
	ordersmetrics "github.com/dejobratic/posorder/internal/orders/metrics"
	"github.com/dejobratic/posorder/internal/orders/ports"
	"github.com/dejobratic/posorder/internal/telemetry"
)

const meterName = "github.com/dejobratic/posorder"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(os.Stderr, telemetry.ParseLevel(cfg.Telemetry.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("pos terminal stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	telCfg := telemetry.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Environment:    cfg.Service.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTelEndpoint,
		EnableTracing:  cfg.Telemetry.EnableTracing,
		EnableMetrics:  cfg.Telemetry.EnableMetrics,
		SampleRate:     cfg.Telemetry.SampleRate,
	}
	if telCfg.Enabled() {
		tel, err := telemetry.Initialize(ctx, telCfg)
		if err != nil {
			return fmt.Errorf("initialize telemetry: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tel.Shutdown(shutdownCtx); err != nil {
				logger.Error("telemetry shutdown failed", "error", err)
			}
		}()
		logger.Info("telemetry enabled", "endpoint", telCfg.OTLPEndpoint)
	}

	meter := otel.Meter(meterName)

	dbMetrics, err := database.NewMetrics(meter)
	if err != nil {
		return err
	}
	eventMetrics, err := events.NewMetrics(meter)
	if err != nil {
		return err
	}
	orderMetrics, err := ordersmetrics.NewMetrics(meter)
	if err != nil {
		return err
	}

	products, discounts, closeCatalog, err := openCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCatalog()

	bus := adapters.NewObservableEventBus(events.NewLogEventBus(logger), eventMetrics)
	session := ordersapp.NewSession(
		adapters.NewObservableProductCatalog(products, dbMetrics),
		adapters.NewObservableDiscountCatalog(discounts, dbMetrics),
		bus,
		logger,
		orderMetrics,
	)

	return console.New(session, os.Stdin, os.Stdout, logger).Run(ctx)
}

func openCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.ProductCatalog, ports.DiscountCatalog, func(), error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		if cfg.Database.AutoMigrate {
			logger.Info("running database migrations")
			if err := database.RunMigrations(cfg.Database.URL); err != nil {
				return nil, nil, nil, fmt.Errorf("run migrations: %w", err)
			}
		}

		pool, err := database.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect catalog database: %w", err)
		}
		if err := database.CheckCatalog(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("catalog not ready (set AUTO_MIGRATE=true to create it): %w", err)
		}
		logger.Info("using postgres catalog")
		return orderspostgres.NewProductCatalog(pool), orderspostgres.NewDiscountCatalog(pool), pool.Close, nil

	default:
		products, err := memory.NewProductCatalog(memory.DefaultProducts())
		if err != nil {
			return nil, nil, nil, err
		}
		discounts, err := memory.NewDiscountCatalog(memory.DefaultDiscounts())
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Debug("using in-memory catalog")
		return products, discounts, func() {}, nil
	}
}
