package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

const (
	DebugMode   = "debug"
	ReleaseMode = "release"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Backend  BackendConfig
	Stock    StockConfig
	Session  SessionConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Journal  JournalConfig
}

type ServerConfig struct {
	AppEnv   string
	HTTPPort string
	AppName  string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

// BackendConfig points at the storefront REST backend.
type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

type StockConfig struct {
	Min           int
	Debounce      time.Duration
	CommitTimeout time.Duration
	LowStockLimit int
}

type SessionConfig struct {
	Store string // memory | redis
	TTL   time.Duration
	Key   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PostgresConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type JournalConfig struct {
	Enabled       bool
	RetentionDays int
}

// Load reads the environment. Call godotenv.Load before it when a .env file is in use.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:   cast.ToString(getOrReturnDefault("APP_ENV", ReleaseMode)),
			HTTPPort: cast.ToString(getOrReturnDefault("HTTP_PORT", "3000")),
			AppName:  cast.ToString(getOrReturnDefault("APP_NAME", "Storefront Admin Console")),
		},
		Logger: LoggerConfig{
			Level:             cast.ToString(getOrReturnDefault("LOG_LEVEL", "info")),
			Encoding:          cast.ToString(getOrReturnDefault("LOG_ENCODING", "json")),
			DisableCaller:     cast.ToBool(getOrReturnDefault("LOG_DISABLE_CALLER", false)),
			DisableStacktrace: cast.ToBool(getOrReturnDefault("LOG_DISABLE_STACKTRACE", true)),
		},
		Backend: BackendConfig{
			URL:     strings.TrimRight(cast.ToString(getOrReturnDefault("BACKEND_URL", "http://localhost:5000")), "/"),
			Timeout: millis(getOrReturnDefault("BACKEND_TIMEOUT_MS", 10000)),
		},
		Stock: StockConfig{
			Min:           cast.ToInt(getOrReturnDefault("STOCK_MIN", 0)),
			Debounce:      millis(getOrReturnDefault("STOCK_DEBOUNCE_MS", 300)),
			CommitTimeout: millis(getOrReturnDefault("STOCK_COMMIT_TIMEOUT_MS", 10000)),
			LowStockLimit: cast.ToInt(getOrReturnDefault("STOCK_LOW_LIMIT", 10)),
		},
		Session: SessionConfig{
			Store: cast.ToString(getOrReturnDefault("SESSION_STORE", "memory")),
			TTL:   time.Duration(cast.ToInt(getOrReturnDefault("SESSION_TTL_HOURS", 24))) * time.Hour,
			Key:   cast.ToString(getOrReturnDefault("SESSION_KEY", "admin_auth_token")),
		},
		Redis: RedisConfig{
			Addr:     cast.ToString(getOrReturnDefault("REDIS_ADDR", "localhost:6379")),
			Password: cast.ToString(getOrReturnDefault("REDIS_PASSWORD", "")),
			DB:       cast.ToInt(getOrReturnDefault("REDIS_DB", 0)),
		},
		Postgres: PostgresConfig{
			URL:      cast.ToString(getOrReturnDefault("DATABASE_URL", "")),
			Host:     cast.ToString(getOrReturnDefault("DB_HOST", "localhost")),
			Port:     cast.ToString(getOrReturnDefault("DB_PORT", "5432")),
			User:     cast.ToString(getOrReturnDefault("DB_USER", "postgres")),
			Password: cast.ToString(getOrReturnDefault("DB_PASSWORD", "")),
			DBName:   cast.ToString(getOrReturnDefault("DB_NAME", "storefront_admin")),
		},
		Journal: JournalConfig{
			Enabled:       cast.ToBool(getOrReturnDefault("JOURNAL_ENABLED", false)),
			RetentionDays: cast.ToInt(getOrReturnDefault("JOURNAL_RETENTION_DAYS", 30)),
		},
	}
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func millis(v interface{}) time.Duration {
	return time.Duration(cast.ToInt64(v)) * time.Millisecond
}
