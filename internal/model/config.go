package model

import "time"

// Config holds the full engine configuration.
type Config struct {
	Referee RefereeConfig `yaml:"referee" mapstructure:"referee"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Cards   []string      `yaml:"cards" mapstructure:"cards"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// RefereeConfig configures the optional AI referee. Disabled by default:
// the referee is a secondary opinion, never a primary source of truth.
type RefereeConfig struct {
	Enabled           bool    `yaml:"enabled" mapstructure:"enabled"`
	Provider          string  `yaml:"provider" mapstructure:"provider"` // "openai" or "" (disabled)
	Model             string  `yaml:"model" mapstructure:"model"`
	APIKey            string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"` // Custom OpenAI-compatible endpoint
	TimeoutSeconds    int     `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	MaxTokens         int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerMinute float64 `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// CacheConfig configures the sector dictionary cache.
type CacheConfig struct {
	SectorTTL       time.Duration `yaml:"sector_ttl" mapstructure:"sector_ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// OutputConfig configures CLI output behavior.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	Pretty  bool `yaml:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Referee: RefereeConfig{
			Enabled:           false,
			Provider:          "openai",
			Model:             "gpt-4o-mini",
			TimeoutSeconds:    30,
			MaxTokens:         500,
			RequestsPerMinute: 20,
		},
		Cache: CacheConfig{
			SectorTTL:       5 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Cards: DefaultCards(),
		Output: OutputConfig{
			Verbose: false,
			Pretty:  true,
		},
	}
}
