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

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Collector CollectorConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig points at the JSON document shared by the collector and the server
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// CollectorConfig holds scraping configuration
type CollectorConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	MenuPath    string        `mapstructure:"menu_path"`
	Headless    bool          `mapstructure:"headless"`
	WaitTimeout time.Duration `mapstructure:"wait_timeout"`
	RenderDelay time.Duration `mapstructure:"render_delay"`
	UserAgent   string        `mapstructure:"user_agent"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/menuscraper/")

	v.SetEnvPrefix("MENUSCRAPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults are enough
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

// MenuURL returns the absolute URL of the category listing page
func (c CollectorConfig) MenuURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(c.MenuPath, "/")
}

// loadEnvFile loads ./.env if present. Variables already set in the
// environment win over the file.
func loadEnvFile() error {
	err := godotenv.Load()
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	v.SetDefault("catalog.path", "product.json")

	// Collector defaults
	v.SetDefault("collector.base_url", "https://www.mcdonalds.com/")
	v.SetDefault("collector.menu_path", "ua/uk-ua/eat/fullmenu.html")
	v.SetDefault("collector.headless", true)
	v.SetDefault("collector.wait_timeout", "10s")
	v.SetDefault("collector.render_delay", "500ms")
	v.SetDefault("collector.user_agent", "")

	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required (set MENUSCRAPER_CATALOG_PATH)")
	}

	if !strings.HasPrefix(config.Collector.BaseURL, "http://") && !strings.HasPrefix(config.Collector.BaseURL, "https://") {
		return fmt.Errorf("collector base URL must be http(s), got: %s", config.Collector.BaseURL)
	}

	if config.Collector.WaitTimeout <= 0 {
		return fmt.Errorf("collector wait timeout must be positive, got: %s", config.Collector.WaitTimeout)
	}

	if config.Collector.RenderDelay < 0 {
		return fmt.Errorf("collector render delay must not be negative, got: %s", config.Collector.RenderDelay)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("rate limit per IP must not be negative, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
