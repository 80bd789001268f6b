package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Read from environment variables with the DOODLE_ prefix.
	// Nested keys map as DOODLE_OPENROUTER_API_KEY -> openrouter.api_key.
	v.SetEnvPrefix("DOODLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// An optional config file may supply anything the environment does not.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; the environment is the primary source.
	}

	// Viper only knows about keys it has seen; bind the ones without
	// defaults so AutomaticEnv picks them up during Unmarshal.
	for _, key := range []string{
		"openrouter.api_key",
		"rate_limit.redis_url",
		"database.url",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers the default value for every optional setting.
// The defaults mirror the documented behavior: 10 requests per hour,
// a 60 second generation timeout, and the Gemini image-preview model.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter.model", "google/gemini-2.5-flash-image-preview:free")
	v.SetDefault("openrouter.timeout_seconds", 60)
	v.SetDefault("openrouter.max_occasion_length", 500)

	v.SetDefault("rate_limit.requests", 10)
	v.SetDefault("rate_limit.period_seconds", 3600)
	v.SetDefault("rate_limit.max_clients", 10000)
}
