package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// ProvidersConfig holds the external data provider endpoints
type ProvidersConfig struct {
	MarketplaceURL    string `mapstructure:"marketplace_url"`
	MarketplaceAPIKey string `mapstructure:"marketplace_api_key"`
	ChainIndexURL     string `mapstructure:"chainindex_url"`
	ChainIndexAPIKey  string `mapstructure:"chainindex_api_key"`
	HTTPTimeout       int    `mapstructure:"http_timeout"` // in seconds
}

// RateLimitConfig holds the rate limit for a single provider
type RateLimitConfig struct {
	RequestsPerSecond int           `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxQueueTime      time.Duration `mapstructure:"max_queue_time"`
}

// RateLimiterConfig holds rate limiter configuration
type RateLimiterConfig struct {
	MaxWorkers   int                        `mapstructure:"max_workers"`
	MaxQueueSize int                        `mapstructure:"max_queue_size"`
	Providers    map[string]RateLimitConfig `mapstructure:"providers"`
}

// FetchConfig holds the page sizes passed through to the provider calls.
// The valid range for each is 1-25; LoadAPIConfig clamps out-of-range values.
type FetchConfig struct {
	NFTFetchLimit       int `mapstructure:"nft_fetch_limit"`
	CollectorFetchLimit int `mapstructure:"collector_fetch_limit"`
	ContractExpandLimit int `mapstructure:"contract_expand_limit"`
}

// EnrichmentConfig holds profile enrichment fan-out configuration
type EnrichmentConfig struct {
	PoolSize int `mapstructure:"pool_size"`
}

// APIConfig holds configuration for the graph API server
type APIConfig struct {
	BaseConfig    `mapstructure:",squash"`
	Server        ServerConfig      `mapstructure:"server"`
	Auth          AuthConfig        `mapstructure:"auth"`
	Providers     ProvidersConfig   `mapstructure:"providers"`
	RateLimiter   RateLimiterConfig `mapstructure:"rate_limiter"`
	Fetch         FetchConfig       `mapstructure:"fetch"`
	Enrichment    EnrichmentConfig  `mapstructure:"enrichment"`
	BlocklistPath string            `mapstructure:"blocklist_path"`
}

// LoadAPIConfig loads configuration for the graph API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("providers.marketplace_url", "https://api.opensea.io/api/v2")
	v.SetDefault("providers.chainindex_url", "https://eth-mainnet.g.alchemy.com/nft/v3")
	v.SetDefault("providers.http_timeout", 30)
	v.SetDefault("rate_limiter.max_workers", 32)
	v.SetDefault("rate_limiter.max_queue_size", 1024)
	v.SetDefault("rate_limiter.providers.marketplace.requests_per_second", 4)
	v.SetDefault("rate_limiter.providers.marketplace.burst", 4)
	v.SetDefault("rate_limiter.providers.chainindex.requests_per_second", 5)
	v.SetDefault("rate_limiter.providers.chainindex.burst", 5)
	v.SetDefault("fetch.nft_fetch_limit", 12)
	v.SetDefault("fetch.collector_fetch_limit", 10)
	v.SetDefault("fetch.contract_expand_limit", 12)
	v.SetDefault("enrichment.pool_size", 8)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.Fetch.NFTFetchLimit = clampLimit(config.Fetch.NFTFetchLimit)
	config.Fetch.CollectorFetchLimit = clampLimit(config.Fetch.CollectorFetchLimit)
	config.Fetch.ContractExpandLimit = clampLimit(config.Fetch.ContractExpandLimit)

	return &config, nil
}

// clampLimit keeps a page size inside the provider-accepted 1-25 range
func clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > 25 {
		return 25
	}
	return limit
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("WALLETGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"blocklist_path",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Providers
		"providers.marketplace_url",
		"providers.marketplace_api_key",
		"providers.chainindex_url",
		"providers.chainindex_api_key",
		"providers.http_timeout",
		// Rate limiter
		"rate_limiter.max_workers",
		"rate_limiter.max_queue_size",
		"rate_limiter.providers.marketplace.requests_per_second",
		"rate_limiter.providers.marketplace.burst",
		"rate_limiter.providers.marketplace.max_queue_time",
		"rate_limiter.providers.chainindex.requests_per_second",
		"rate_limiter.providers.chainindex.burst",
		"rate_limiter.providers.chainindex.max_queue_time",
		// Fetch limits
		"fetch.nft_fetch_limit",
		"fetch.collector_fetch_limit",
		"fetch.contract_expand_limit",
		// Enrichment
		"enrichment.pool_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}
