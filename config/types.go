package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Images  ImagesConfig  `mapstructure:"images"`
	State   StateConfig   `mapstructure:"state"`
	Breaker BreakerConfig `mapstructure:"breaker"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Update  UpdateConfig  `mapstructure:"update"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds the movie API connection details
type APIConfig struct {
	URL       string        `mapstructure:"url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"` // requests per second, 0 disables
	RateBurst int           `mapstructure:"rate_burst"`
}

// ImagesConfig controls poster URL construction
type ImagesConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	Size        string `mapstructure:"size"`
	Placeholder string `mapstructure:"placeholder"`
}

// StateConfig locates the persisted client state and its first-run values
type StateConfig struct {
	Path            string `mapstructure:"path"`
	DefaultLanguage string `mapstructure:"default_language"`
	DefaultTheme    string `mapstructure:"default_theme"`
}

// BreakerConfig tunes the circuit breaker in front of the movie API
type BreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
}

// FilterConfig contains refinement filter definitions
type FilterConfig struct {
	DefaultExpression string                  `mapstructure:"default"`
	Presets           map[string]FilterPreset `mapstructure:"presets"`
}

// FilterPreset is a named refinement filter
type FilterPreset struct {
	Expression  string `mapstructure:"expression"`
	Description string `mapstructure:"description"`
}

// UpdateConfig configures self-update
type UpdateConfig struct {
	Repository string `mapstructure:"repository"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
