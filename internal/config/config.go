package config

// Backend names accepted by database.backend.
const (
	BackendGorm   = "gorm"
	BackendSQL    = "sql"
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel            string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds" validate:"gte=0"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
// URL may be empty when Backend is "memory" or "sqlite"; the sqlite backend
// reads SQLitePath instead.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url" validate:"omitempty,url"`
	Backend                string `mapstructure:"backend" validate:"required,oneof=gorm sql memory sqlite"`
	SQLitePath             string `mapstructure:"sqlite_path" validate:"required_if=Backend sqlite"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
	LogQueries             bool   `mapstructure:"log_queries"`
}

// TracingConfig controls span export and error reporting.
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name" validate:"required_if=Enabled true"`
	SentryDSN   string  `mapstructure:"sentry_dsn" validate:"omitempty,url"`
	SampleRate  float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}
