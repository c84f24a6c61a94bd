package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Redis      RedisConfig      `yaml:"redis"`
	Report     ReportConfig     `yaml:"report"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// GetHost returns the bind host, preferring the SERVER_HOST env var.
func (c ServerConfig) GetHost() string {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// NormalizerConfig holds country matching configuration
type NormalizerConfig struct {
	// FuzzyThreshold is the minimum similarity score (0-100) for an
	// automatic fuzzy match.
	FuzzyThreshold int `yaml:"fuzzy_threshold"`
}

// EnrichmentConfig holds external trade-statistics API configuration
type EnrichmentConfig struct {
	WTOAPIKey          string `yaml:"wto_api_key"`
	WTOAPIKeySecondary string `yaml:"wto_api_key_secondary"`
	WTOBaseURL         string `yaml:"wto_base_url"`
	WorldBankBaseURL   string `yaml:"worldbank_base_url"`
	TimeoutSeconds     int    `yaml:"timeout_seconds"`
	MaxParallel        int    `yaml:"max_parallel"`
	CacheTTLHours      int    `yaml:"cache_ttl_hours"`
	NegativeTTLMinutes int    `yaml:"negative_ttl_minutes"`
	BreakerCooldownMin int    `yaml:"breaker_cooldown_minutes"`
}

func (c EnrichmentConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c EnrichmentConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

func (c EnrichmentConfig) NegativeTTL() time.Duration {
	return time.Duration(c.NegativeTTLMinutes) * time.Minute
}

func (c EnrichmentConfig) BreakerCooldown() time.Duration {
	return time.Duration(c.BreakerCooldownMin) * time.Minute
}

// RedisConfig holds optional Redis cache configuration. When Addr is
// empty the enrichment cache stays in process memory.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ReportConfig holds HTML report rendering configuration
type ReportConfig struct {
	Title string `yaml:"title"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Normalizer.FuzzyThreshold == 0 {
		cfg.Normalizer.FuzzyThreshold = 85
	}
	if cfg.Enrichment.WTOBaseURL == "" {
		cfg.Enrichment.WTOBaseURL = "https://api.wto.org/timeseries/v1"
	}
	if cfg.Enrichment.WorldBankBaseURL == "" {
		cfg.Enrichment.WorldBankBaseURL = "https://api.worldbank.org/v2"
	}
	if cfg.Enrichment.TimeoutSeconds == 0 {
		cfg.Enrichment.TimeoutSeconds = 30
	}
	if cfg.Enrichment.MaxParallel == 0 {
		cfg.Enrichment.MaxParallel = 2
	}
	if cfg.Enrichment.CacheTTLHours == 0 {
		cfg.Enrichment.CacheTTLHours = 12
	}
	if cfg.Enrichment.NegativeTTLMinutes == 0 {
		cfg.Enrichment.NegativeTTLMinutes = 30
	}
	if cfg.Enrichment.BreakerCooldownMin == 0 {
		cfg.Enrichment.BreakerCooldownMin = 15
	}
	if cfg.Report.Title == "" {
		cfg.Report.Title = "Cargo Insurance Analytics Report"
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars in deployment.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("WTO_API_KEY"); v != "" {
		cfg.Enrichment.WTOAPIKey = v
	}
	if v := os.Getenv("WTO_API_KEY_SECONDARY"); v != "" {
		cfg.Enrichment.WTOAPIKeySecondary = v
	}
	if v := os.Getenv("WTO_BASE_URL"); v != "" {
		cfg.Enrichment.WTOBaseURL = v
	}
	if v := os.Getenv("WORLDBANK_BASE_URL"); v != "" {
		cfg.Enrichment.WorldBankBaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("FUZZY_THRESHOLD"); v != "" {
		if threshold, err := strconv.Atoi(v); err == nil {
			cfg.Normalizer.FuzzyThreshold = threshold
		}
	}

	return cfg, nil
}
