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

// Review page-error policies
const (
	OnPageErrorPartial = "partial"
	OnPageErrorFail    = "fail"
)

// Review reconcile policies
const (
	ReconcileTruncate = "truncate"
	ReconcilePerPage  = "per_page"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Scraper   ScraperConfig
	Sources   SourcesConfig
	Reviews   ReviewsConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	RequestDeadline time.Duration `mapstructure:"request_deadline"`
}

// ScraperConfig holds the outbound identity and pacing shared by every source client
type ScraperConfig struct {
	UserAgent         string        `mapstructure:"user_agent"`
	AcceptLanguage    string        `mapstructure:"accept_language"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RetryDelay        time.Duration `mapstructure:"retry_delay"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// SourcesConfig holds per-source addresses and retry caps
type SourcesConfig struct {
	FlipkartBaseURL     string `mapstructure:"flipkart_base_url"`
	AmazonBaseURL       string `mapstructure:"amazon_base_url"`
	FlipkartMaxAttempts int    `mapstructure:"flipkart_max_attempts"`
	AmazonMaxAttempts   int    `mapstructure:"amazon_max_attempts"`
	Parallel            bool   `mapstructure:"parallel"`
}

// ReviewsConfig holds review harvesting configuration
type ReviewsConfig struct {
	TargetCount int    `mapstructure:"target_count"`
	MaxPages    int    `mapstructure:"max_pages"`
	OnPageError string `mapstructure:"on_page_error"` // "partial" or "fail"
	Reconcile   string `mapstructure:"reconcile"`     // "truncate" or "per_page"
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds inbound rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricelens/")

	// Environment variable settings
	v.SetEnvPrefix("PRICELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile() error {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.request_deadline", "90s")

	// Scraper defaults
	v.SetDefault("scraper.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3")
	v.SetDefault("scraper.accept_language", "en-us,en;q=0.5")
	v.SetDefault("scraper.timeout", "30s")
	v.SetDefault("scraper.retry_delay", "1s")
	v.SetDefault("scraper.requests_per_second", 5.0)
	v.SetDefault("scraper.burst", 5)

	// Source defaults
	v.SetDefault("sources.flipkart_base_url", "https://www.flipkart.com")
	v.SetDefault("sources.amazon_base_url", "https://www.amazon.in")
	v.SetDefault("sources.flipkart_max_attempts", 3)
	v.SetDefault("sources.amazon_max_attempts", 5)
	v.SetDefault("sources.parallel", false)

	// Review defaults
	v.SetDefault("reviews.target_count", 100)
	v.SetDefault("reviews.max_pages", 50)
	v.SetDefault("reviews.on_page_error", OnPageErrorPartial)
	v.SetDefault("reviews.reconcile", ReconcileTruncate)

	// Cache defaults
	v.SetDefault("cache.ttl", "1h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Sources.FlipkartBaseURL == "" || config.Sources.AmazonBaseURL == "" {
		return fmt.Errorf("both source base URLs are required")
	}

	if config.Sources.FlipkartMaxAttempts < 1 || config.Sources.AmazonMaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got flipkart=%d amazon=%d",
			config.Sources.FlipkartMaxAttempts, config.Sources.AmazonMaxAttempts)
	}

	if config.Scraper.RetryDelay < 0 {
		return fmt.Errorf("retry delay must not be negative, got: %s", config.Scraper.RetryDelay)
	}

	if config.Scraper.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests per second must be positive, got: %v", config.Scraper.RequestsPerSecond)
	}

	if config.Reviews.TargetCount < 1 {
		return fmt.Errorf("review target count must be at least 1, got: %d", config.Reviews.TargetCount)
	}

	if config.Reviews.MaxPages < 1 {
		return fmt.Errorf("review max pages must be at least 1, got: %d", config.Reviews.MaxPages)
	}

	if config.Reviews.OnPageError != OnPageErrorPartial && config.Reviews.OnPageError != OnPageErrorFail {
		return fmt.Errorf("review page error policy must be 'partial' or 'fail', got: %s", config.Reviews.OnPageError)
	}

	if config.Reviews.Reconcile != ReconcileTruncate && config.Reviews.Reconcile != ReconcilePerPage {
		return fmt.Errorf("review reconcile policy must be 'truncate' or 'per_page', got: %s", config.Reviews.Reconcile)
	}

	return nil
}
