// Package config loads runtime settings from defaults, an optional config file,
// a .env file and WALLETFLOW_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. WALLETFLOW_DB_DSN for db.dsn
const EnvPrefix = "WALLETFLOW"

// Config holds the runtime settings of the server and the CLI
type Config struct {
	GRPCPort  string
	AuthToken string
	DB        DBConfig
	Log       LogConfig
	Market    MarketConfig
}

// DBConfig selects the database
type DBConfig struct {
	Driver string // postgres or sqlite
	DSN    string
}

// LogConfig tunes the logger
type LogConfig struct {
	Level  string
	Format string // json or text
}

// MarketConfig tunes the market data providers
type MarketConfig struct {
	Timeout      time.Duration
	CacheTTL     time.Duration
	Rate         float64 // outbound calls per second
	Burst        int

	// Provider base URLs; empty selects the public endpoint of each provider
	CoinGeckoURL string
	CoinbaseURL  string
	YahooURL     string
}

// NewViper returns a viper instance with defaults and environment overrides applied
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("grpc.port", ":8080")
	v.SetDefault("auth.token", "dev-token")
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "host=localhost port=5432 user=postgres password=postgres dbname=walletflow sslmode=disable")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("market.timeout", "10s")
	v.SetDefault("market.cache_ttl", "60s")
	v.SetDefault("market.rate", 5)
	v.SetDefault("market.burst", 5)
	v.SetDefault("market.coingecko_url", "")
	v.SetDefault("market.coinbase_url", "")
	v.SetDefault("market.yahoo_url", "")
	return v
}

// Load reads the configuration. A missing .env file is not an error.
// If configFile is empty, walletflow.{yaml,json,toml} is looked up in the working directory
// and skipped when absent; an explicit configFile must exist.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := NewViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("walletflow")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	return FromViper(v)
}

// FromViper builds and validates a Config from v
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		GRPCPort:  v.GetString("grpc.port"),
		AuthToken: v.GetString("auth.token"),
		DB: DBConfig{
			Driver: v.GetString("db.driver"),
			DSN:    v.GetString("db.dsn"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Market: MarketConfig{
			Timeout:      v.GetDuration("market.timeout"),
			CacheTTL:     v.GetDuration("market.cache_ttl"),
			Rate:         v.GetFloat64("market.rate"),
			Burst:        v.GetInt("market.burst"),
			CoinGeckoURL: v.GetString("market.coingecko_url"),
			CoinbaseURL:  v.GetString("market.coinbase_url"),
			YahooURL:     v.GetString("market.yahoo_url"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the process cannot start without
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("db.driver must be 'postgres' or 'sqlite', got %q", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return errors.New("db.dsn is required")
	}
	if c.GRPCPort == "" {
		return errors.New("grpc.port is required")
	}
	if c.AuthToken == "" {
		return errors.New("auth.token is required")
	}
	if c.Market.Timeout <= 0 {
		return fmt.Errorf("market.timeout must be positive, got %s", c.Market.Timeout)
	}
	if c.Market.Rate <= 0 || c.Market.Burst <= 0 {
		return errors.New("market.rate and market.burst must be positive")
	}
	return nil
}
