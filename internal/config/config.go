package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Search     SearchConfig
	Logging    LoggingConfig
	OpenAI     OpenAIConfig
	Redis      RedisConfig
	Lease      LeaseConfig
	Security   SecurityConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, takes precedence over the fields below
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// SearchConfig holds search-related configuration
type SearchConfig struct {
	RateLimitPerMinute int
	LogSearches        bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// OpenAIConfig holds chat-completion API configuration
type OpenAIConfig struct {
	APIKey          string
	APIBase         string
	ChatModel       string
	ChatTemperature float64
	ChatMaxTokens   int
	Timeout         int // seconds, 0 leaves the HTTP client unbounded
	Enabled         bool
}

// RedisConfig holds Redis configuration. An empty Address disables the
// intent cache and the rate limiter.
type RedisConfig struct {
	Address        string
	Password       string
	DB             int
	IntentCacheTTL int // seconds
}

// LeaseConfig holds burial lease defaults
type LeaseConfig struct {
	DefaultYears int
	WarnDays     int
}

// SecurityConfig holds the API keys accepted on external endpoints.
// Format: name:key:perm1|perm2;name2:key2:perm3
type SecurityConfig struct {
	APIKeys string
}

var defaults = map[string]any{
	"DATABASE_URL":            "",
	"PG_HOST":                 "localhost",
	"PG_PORT":                 5432,
	"PG_USER":                 "postgres",
	"PG_PASSWORD":             "",
	"PG_DATABASE":             "cemetery",
	"PG_SSLMODE":              "disable",
	"PG_MAX_CONNECTIONS":      25,
	"PG_MAX_IDLE_CONNECTIONS": 5,
	"SERVER_PORT":             8080,
	"SERVER_HOST":             "0.0.0.0",
	"GIN_MODE":                "release",
	"CORS_ALLOWED_ORIGINS":    "*",
	"SEARCH_RATE_LIMIT":       60,
	"SEARCH_LOG_ENABLED":      true,
	"LOG_LEVEL":               "info",
	"LOG_FORMAT":              "json",
	"OPENAI_API_KEY":          "",
	"OPENAI_API_BASE":         "https://api.openai.com/v1",
	"OPENAI_CHAT_MODEL":       "gpt-3.5-turbo",
	"OPENAI_CHAT_TEMPERATURE": 0.3,
	"OPENAI_CHAT_MAX_TOKENS":  200,
	"OPENAI_TIMEOUT":          0,
	"REDIS_ADDRESS":           "",
	"REDIS_PASSWORD":          "",
	"REDIS_DB":                0,
	"INTENT_CACHE_TTL":        3600,
	"LEASE_DEFAULT_YEARS":     5,
	"LEASE_WARN_DAYS":         30,
	"API_KEYS":                "",
}

// Load reads configuration from the environment, optionally seeded from a .env file
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                v.GetString("DATABASE_URL"),
			Host:               v.GetString("PG_HOST"),
			Port:               v.GetInt("PG_PORT"),
			User:               v.GetString("PG_USER"),
			Password:           v.GetString("PG_PASSWORD"),
			Database:           v.GetString("PG_DATABASE"),
			SSLMode:            v.GetString("PG_SSLMODE"),
			MaxConnections:     v.GetInt("PG_MAX_CONNECTIONS"),
			MaxIdleConnections: v.GetInt("PG_MAX_IDLE_CONNECTIONS"),
		},
		Server: ServerConfig{
			Port:           v.GetInt("SERVER_PORT"),
			Host:           v.GetString("SERVER_HOST"),
			GinMode:        v.GetString("GIN_MODE"),
			AllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		},
		Search: SearchConfig{
			RateLimitPerMinute: v.GetInt("SEARCH_RATE_LIMIT"),
			LogSearches:        v.GetBool("SEARCH_LOG_ENABLED"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		OpenAI: OpenAIConfig{
			APIKey:          v.GetString("OPENAI_API_KEY"),
			APIBase:         strings.TrimRight(v.GetString("OPENAI_API_BASE"), "/"),
			ChatModel:       v.GetString("OPENAI_CHAT_MODEL"),
			ChatTemperature: v.GetFloat64("OPENAI_CHAT_TEMPERATURE"),
			ChatMaxTokens:   v.GetInt("OPENAI_CHAT_MAX_TOKENS"),
			Timeout:         v.GetInt("OPENAI_TIMEOUT"),
			Enabled:         v.GetString("OPENAI_API_KEY") != "",
		},
		Redis: RedisConfig{
			Address:        v.GetString("REDIS_ADDRESS"),
			Password:       v.GetString("REDIS_PASSWORD"),
			DB:             v.GetInt("REDIS_DB"),
			IntentCacheTTL: v.GetInt("INTENT_CACHE_TTL"),
		},
		Lease: LeaseConfig{
			DefaultYears: v.GetInt("LEASE_DEFAULT_YEARS"),
			WarnDays:     v.GetInt("LEASE_WARN_DAYS"),
		},
		Security: SecurityConfig{
			APIKeys: v.GetString("API_KEYS"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT out of range: %d", c.Server.Port)
	}
	if c.Lease.DefaultYears <= 0 {
		return fmt.Errorf("LEASE_DEFAULT_YEARS must be positive, got %d", c.Lease.DefaultYears)
	}
	if c.Lease.WarnDays < 0 {
		return fmt.Errorf("LEASE_WARN_DAYS must not be negative, got %d", c.Lease.WarnDays)
	}
	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}
