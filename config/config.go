package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Listing   ListingConfig
	Catalogue CatalogueConfig
	Cache     CacheConfig
	Matching  MatchingConfig
	Store     StoreConfig
	SMTP      SMTPConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ListingConfig holds RFP listing source configuration
type ListingConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RequestsPerMin int           `mapstructure:"requests_per_min"`
}

// CatalogueConfig holds product catalogue configuration
type CatalogueConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig holds listing cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// MatchingConfig holds matching pipeline configuration
type MatchingConfig struct {
	TopK               int  `mapstructure:"top_k"`
	IncludeClosed      bool `mapstructure:"include_closed"`
	MaxRecords         int  `mapstructure:"max_records"`
	MaxCatalogue       int  `mapstructure:"max_catalogue"`
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// StoreConfig holds snapshot persistence configuration
type StoreConfig struct {
	Dir string `mapstructure:"dir"`
}

// SMTPConfig holds outbound notification configuration. An empty host
// disables email delivery.
type SMTPConfig struct {
	Host string   `mapstructure:"host"`
	Port int      `mapstructure:"port"`
	From string   `mapstructure:"from"`
	To   []string `mapstructure:"to"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/rfpmatch/")

	// Environment variable settings
	v.SetEnvPrefix("RFPMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Listing defaults
	v.SetDefault("listing.base_url", "https://rfp-listing.netlify.app/")
	v.SetDefault("listing.timeout", "30s")
	v.SetDefault("listing.requests_per_min", 30)

	// Catalogue defaults
	v.SetDefault("catalogue.path", "product_catalogue_rows.csv")

	// Cache defaults
	v.SetDefault("cache.ttl", "10m")

	// Matching defaults
	v.SetDefault("matching.top_k", 3)
	v.SetDefault("matching.include_closed", false)
	v.SetDefault("matching.max_records", 500)
	v.SetDefault("matching.max_catalogue", 2000)
	v.SetDefault("matching.enable_debug_logging", false)

	// Store defaults
	v.SetDefault("store.dir", "data")

	// SMTP defaults (disabled until a host is configured)
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 25)
	v.SetDefault("smtp.from", "")
	v.SetDefault("smtp.to", []string{})
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Listing.BaseURL == "" {
		return fmt.Errorf("listing base URL is required (set RFPMATCH_LISTING_BASE_URL)")
	}

	if config.Catalogue.Path == "" {
		return fmt.Errorf("catalogue path is required (set RFPMATCH_CATALOGUE_PATH)")
	}

	if config.Matching.TopK <= 0 {
		return fmt.Errorf("matching top_k must be positive, got: %d", config.Matching.TopK)
	}

	if config.SMTP.Host != "" && (config.SMTP.From == "" || len(config.SMTP.To) == 0) {
		return fmt.Errorf("SMTP from and to are required when SMTP host is set")
	}

	return nil
}
