package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	CatalogSourceMemory   = "memory"
	CatalogSourcePostgres = "postgres"
)

var (
	ErrUnknownCatalogSource = errors.New("unknown catalog source")
	ErrInvalidSampleRate    = errors.New("sample rate must be between 0 and 1")
)

// Config captures runtime configuration for the point-of-sale terminal.
type Config struct {
	Catalog   CatalogConfig
	Database  DatabaseConfig
	Telemetry TelemetryConfig
	Service   ServiceConfig
}

type CatalogConfig struct {
	Source string
}

type DatabaseConfig struct {
	URL         string
	AutoMigrate bool
}

type TelemetryConfig struct {
	LogLevel      string
	OTelEndpoint  string
	EnableTracing bool
	EnableMetrics bool
	SampleRate    float64
}

type ServiceConfig struct {
	Name        string
	Version     string
	Environment string
}

const (
	defaultCatalogSource  = CatalogSourceMemory
	defaultAutoMigrate    = true
	defaultServiceName    = "posorder"
	defaultServiceVersion = "0.1.0"
	defaultEnvironment    = "development"
	defaultLogLevel       = "info"
	defaultOTelSampleRate = 1.0
)

// Load reads configuration from environment variables, applying defaults when needed.
func Load() (*Config, error) {
	catalogCfg, err := loadCatalogConfig()
	if err != nil {
		return nil, fmt.Errorf("loading catalog config: %w", err)
	}

	telCfg, err := loadTelemetryConfig()
	if err != nil {
		return nil, fmt.Errorf("loading telemetry config: %w", err)
	}

	return &Config{
		Catalog:   catalogCfg,
		Database:  loadDatabaseConfig(),
		Telemetry: telCfg,
		Service:   loadServiceConfig(),
	}, nil
}

func loadCatalogConfig() (CatalogConfig, error) {
	source := strings.ToLower(getEnvOrDefault("POS_CATALOG_SOURCE", defaultCatalogSource))
	switch source {
	case CatalogSourceMemory, CatalogSourcePostgres:
		return CatalogConfig{Source: source}, nil
	default:
		return CatalogConfig{}, fmt.Errorf("%w: %q", ErrUnknownCatalogSource, source)
	}
}

func loadDatabaseConfig() DatabaseConfig {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = buildDatabaseURL()
	}

	return DatabaseConfig{
		URL:         databaseURL,
		AutoMigrate: getBoolEnv("AUTO_MIGRATE", defaultAutoMigrate),
	}
}

// Exporting is off unless an endpoint is configured; the toggles can only
// narrow it further.
func loadTelemetryConfig() (TelemetryConfig, error) {
	endpoint := getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	hasEndpoint := endpoint != ""

	sampleRate := defaultOTelSampleRate
	if value, ok := os.LookupEnv("OTEL_SAMPLE_RATE"); ok {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return TelemetryConfig{}, fmt.Errorf("invalid OTEL_SAMPLE_RATE: %w", err)
		}
		if parsed < 0 || parsed > 1 {
			return TelemetryConfig{}, fmt.Errorf("invalid OTEL_SAMPLE_RATE %g: %w", parsed, ErrInvalidSampleRate)
		}
		sampleRate = parsed
	}

	return TelemetryConfig{
		LogLevel:      getEnvOrDefault("LOG_LEVEL", defaultLogLevel),
		OTelEndpoint:  endpoint,
		EnableTracing: hasEndpoint && getBoolEnv("OTEL_ENABLE_TRACING", true),
		EnableMetrics: hasEndpoint && getBoolEnv("OTEL_ENABLE_METRICS", true),
		SampleRate:    sampleRate,
	}, nil
}

func loadServiceConfig() ServiceConfig {
	return ServiceConfig{
		Name:        getEnvOrDefault("POS_SERVICE_NAME", defaultServiceName),
		Version:     getEnvOrDefault("SERVICE_VERSION", defaultServiceVersion),
		Environment: getEnvOrDefault("ENVIRONMENT", defaultEnvironment),
	}
}

func buildDatabaseURL() string {
	host := getEnvOrDefault("DB_HOST", "localhost")
	port := getEnvOrDefault("DB_PORT", "5432")
	user := getEnvOrDefault("DB_USER", "postgres")
	password := getEnvOrDefault("DB_PASSWORD", "postgres")
	dbName := getEnvOrDefault("DB_NAME", "posorder")
	sslMode := getEnvOrDefault("DB_SSLMODE", "disable")
	maxConns := getEnvOrDefault("DB_MAX_CONNS", "4")

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&pool_max_conns=%s",
		user, password, host, port, dbName, sslMode, maxConns,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		return value == "true"
	}
	return defaultValue
}
