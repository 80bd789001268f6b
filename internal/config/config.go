package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter" validate:"required"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// CORSOrigins lists the origins allowed by the CORS middleware.
	// A single "*" entry allows any origin.
	CORSOrigins []string `mapstructure:"cors_origins" validate:"required,min=1"`
}

// OpenRouterConfig contains all settings for the upstream image-generation API.
type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"  validate:"required"`
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	Model   string `mapstructure:"model"    validate:"required"`

	// TimeoutSeconds bounds a single generation call; the upstream request is
	// cancelled once it elapses.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0"`

	// MaxOccasionLength caps the occasion text accepted by the API.
	MaxOccasionLength int `mapstructure:"max_occasion_length" validate:"required,gt=2"`
}

// RateLimitConfig contains the per-client admission settings.
type RateLimitConfig struct {
	Requests      int `mapstructure:"requests"       validate:"required,gt=0"`
	PeriodSeconds int `mapstructure:"period_seconds" validate:"required,gt=0"`

	// MaxClients bounds the number of client windows the in-memory store
	// tracks before it sweeps out expired entries.
	MaxClients int `mapstructure:"max_clients" validate:"required,gt=0"`

	// RedisURL selects the redis-backed window store when non-empty.
	RedisURL string `mapstructure:"redis_url" validate:"omitempty,uri"`
}

// DatabaseConfig contains the optional generation-history database settings.
// When URL is empty the history store is disabled.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,uri"`
}
