package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends
const (
	StoreNone     = "none"
	StoreSQL      = "sql"
	StoreSupabase = "supabase"
)

// Config holds all application configuration
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	SessionStore SessionStoreConfig
	Connect      ConnectConfig
	Setup        SetupConfig
	AWS          AWSConfig
	RateLimit    RateLimitConfig
	Maintenance  MaintenanceConfig
	Logging      LoggingConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	Environment     string
	SecureCookies   bool
}

// DatabaseConfig contains database configuration for the SQL session store
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// SessionStoreConfig selects the remote session store. An empty backend
// means the store is unconfigured and sessions live in local storage only.
type SessionStoreConfig struct {
	Backend         string
	SupabaseURL     string
	SupabaseAnonKey string
	SupabaseTable   string
	Timeout         time.Duration
	RetryCount      int
}

// ConnectConfig tunes the simulated role verification
type ConnectConfig struct {
	Latency     time.Duration
	FailureRate float64
}

// SetupConfig contains the values rendered into the role template and instructions
type SetupConfig struct {
	TrustedAccountID string
	StackName        string
	RoleName         string
	TemplateURL      string
	GitHubURL        string
}

// AWSConfig is used only by the reference analysis and template publishing commands
type AWSConfig struct {
	Region         string
	SessionName    string
	DurationSecs   int32
	TemplateBucket string
	TemplateKey    string
}

// RateLimitConfig configures per-client request limiting
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// MaintenanceConfig configures background housekeeping
type MaintenanceConfig struct {
	Schedule      string
	ViewStateTTL  time.Duration
	ViewStateSize int
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string
	Format     string // json or console
	OutputPath string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			SecureCookies:   getEnvAsBool("SECURE_COOKIES", false),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "saves"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Path:            getEnv("DB_PATH", "./saves.db"),
		},
		SessionStore: SessionStoreConfig{
			Backend:         strings.ToLower(getEnv("SESSION_STORE", "")),
			SupabaseURL:     getEnv("SUPABASE_URL", ""),
			SupabaseAnonKey: getEnv("SUPABASE_ANON_KEY", ""),
			SupabaseTable:   getEnv("SUPABASE_TABLE", "sessions"),
			Timeout:         getEnvAsDuration("SESSION_STORE_TIMEOUT", 3*time.Second),
			RetryCount:      getEnvAsInt("SESSION_STORE_RETRIES", 1),
		},
		Connect: ConnectConfig{
			Latency:     getEnvAsDuration("CONNECT_LATENCY", 2*time.Second),
			FailureRate: getEnvAsFloat("CONNECT_FAILURE_RATE", 0.10),
		},
		Setup: SetupConfig{
			TrustedAccountID: getEnv("SAVES_AWS_ACCOUNT_ID", "123456789012"),
			StackName:        getEnv("SAVES_STACK_NAME", "SpotSave-Access-Role"),
			RoleName:         getEnv("SAVES_ROLE_NAME", "SpotSaveReadOnlyRole"),
			TemplateURL:      getEnv("SAVES_TEMPLATE_URL", "https://s3.amazonaws.com/spotsave-public/spotsave-role.yaml"),
			GitHubURL:        getEnv("SAVES_TEMPLATE_SOURCE_URL", "https://github.com/pandey-solutions/saves/blob/main/internal/setup/template.go"),
		},
		AWS: AWSConfig{
			Region:         getEnv("AWS_REGION", "us-east-1"),
			SessionName:    getEnv("SAVES_ASSUME_ROLE_SESSION", "SpotSaveAnalysisSession"),
			DurationSecs:   int32(getEnvAsInt("SAVES_ASSUME_ROLE_DURATION", 3600)),
			TemplateBucket: getEnv("SAVES_TEMPLATE_BUCKET", "spotsave-public"),
			TemplateKey:    getEnv("SAVES_TEMPLATE_KEY", "spotsave-role.yaml"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 20),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 40),
		},
		Maintenance: MaintenanceConfig{
			Schedule:      getEnv("MAINTENANCE_SCHEDULE", "@every 5m"),
			ViewStateTTL:  getEnvAsDuration("VIEW_STATE_TTL", 24*time.Hour),
			ViewStateSize: getEnvAsInt("VIEW_STATE_SIZE", 10000),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
	}

	cfg.SessionStore.Backend = cfg.resolveStoreBackend()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// resolveStoreBackend infers the backend when SESSION_STORE is unset:
// Supabase credentials win, otherwise the store stays unconfigured.
func (c *Config) resolveStoreBackend() string {
	switch c.SessionStore.Backend {
	case StoreSQL, StoreSupabase, StoreNone:
		return c.SessionStore.Backend
	case "":
		if c.SessionStore.SupabaseURL != "" && c.SessionStore.SupabaseAnonKey != "" {
			return StoreSupabase
		}
		return StoreNone
	default:
		return c.SessionStore.Backend
	}
}

// RemoteStoreConfigured reports whether a remote session store should be used
func (c *Config) RemoteStoreConfigured() bool {
	switch c.SessionStore.Backend {
	case StoreSQL:
		return true
	case StoreSupabase:
		return c.SessionStore.SupabaseURL != "" && c.SessionStore.SupabaseAnonKey != ""
	default:
		return false
	}
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.SessionStore.Backend {
	case StoreNone, StoreSupabase:
	case StoreSQL:
		if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
			return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
		}
	default:
		return fmt.Errorf("unsupported session store: %s", c.SessionStore.Backend)
	}

	if c.Connect.FailureRate < 0 || c.Connect.FailureRate > 1 {
		return fmt.Errorf("connect failure rate must be within [0,1], got %v", c.Connect.FailureRate)
	}

	if c.Connect.Latency < 0 {
		return fmt.Errorf("connect latency must not be negative")
	}

	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}

	if c.Maintenance.ViewStateSize <= 0 {
		return fmt.Errorf("view state size must be positive")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
