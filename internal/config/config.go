package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ServerConfig holds HTTP server-specific configurations.
type ServerConfig struct {
	Port         string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	TimeoutRead  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_READ" default:"15s"`
	TimeoutWrite time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_IDLE" default:"60s"`
}

// GrpcServerConfig holds gRPC server-specific configurations.
type GrpcServerConfig struct {
	Port string `envconfig:"GRPC_SERVER_PORT" default:"9090"`
}

// RemoteAPIConfig points the storefront at the catalog REST API.
type RemoteAPIConfig struct {
	BaseURL string        `envconfig:"REMOTE_API_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"REMOTE_API_TIMEOUT" default:"15s"`
}

// CatalogConfig tunes the in-memory catalog store.
type CatalogConfig struct {
	// RefreshInterval of zero disables the periodic full refresh.
	RefreshInterval time.Duration `envconfig:"CATALOG_REFRESH_INTERVAL" default:"0s"`
	// ApprovalConcurrency bounds the bulk order approval fan-out.
	ApprovalConcurrency int `envconfig:"ORDER_APPROVAL_CONCURRENCY" default:"4"`
}

// TracingConfig enables the OTLP exporter when Endpoint is set.
type TracingConfig struct {
	Endpoint string `envconfig:"OTEL_EXPORTER_ENDPOINT"`
}

// PostgresConfig holds PostgreSQL database connection details.
type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" required:"true"`
	Port     string `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" required:"true"`
	Password string `envconfig:"POSTGRES_PASSWORD" required:"true"`
	DBName   string `envconfig:"POSTGRES_DBNAME" required:"true"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

// DSN constructs the Data Source Name string for connecting to PostgreSQL.
func (pc *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		pc.Host, pc.Port, pc.User, pc.Password, pc.DBName, pc.SSLMode)
}

// MediaConfig controls where uploaded images are written and how they are addressed.
type MediaConfig struct {
	Dir            string `envconfig:"MEDIA_DIR" default:"./media"`
	PublicBaseURL  string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8081"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
}

// Storefront is the configuration of the storefront service.
type Storefront struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	HttpServer ServerConfig
	GrpcServer GrpcServerConfig
	RemoteAPI  RemoteAPIConfig
	Catalog    CatalogConfig
	Tracing    TracingConfig
}

// CatalogAPI is the configuration of the reference catalog REST API.
type CatalogAPI struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	HttpServer ServerConfig
	Postgres   PostgresConfig
	Media      MediaConfig
	Tracing    TracingConfig
}

// LoadStorefront reads the storefront configuration from the environment.
// A .env file in the working directory is applied first when present.
func LoadStorefront() (*Storefront, error) {
	_ = godotenv.Load()

	var cfg Storefront
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process storefront configuration: %w", err)
	}
	if cfg.RemoteAPI.BaseURL == "" {
		return nil, fmt.Errorf("REMOTE_API_BASE_URL must not be empty")
	}
	if cfg.Catalog.ApprovalConcurrency <= 0 {
		return nil, fmt.Errorf("ORDER_APPROVAL_CONCURRENCY must be positive, got %d", cfg.Catalog.ApprovalConcurrency)
	}
	return &cfg, nil
}

// LoadCatalogAPI reads the catalog API configuration from the environment.
func LoadCatalogAPI() (*CatalogAPI, error) {
	_ = godotenv.Load()

	var cfg CatalogAPI
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process catalog api configuration: %w", err)
	}
	if cfg.Media.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.Media.MaxUploadBytes)
	}
	return &cfg, nil
}
