package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.assistant_config_file", "assistants_config.json")
	v.SetDefault("execution.worker_count", 4)
	v.SetDefault("execution.queue_size", 64)
	v.SetDefault("execution.max_request_retries", 2)
	v.SetDefault("execution.base_timeout_seconds", 30)
	v.SetDefault("execution.max_run_retries", 2)
	v.SetDefault("execution.run_timeout_seconds", 30)
	v.SetDefault("execution.poll_interval_seconds", 1)
	v.SetDefault("interview.min_questions", 3)
	v.SetDefault("interview.max_questions", 8)
	v.SetDefault("interview.default_language", "en")
	v.SetDefault("cache.dir", "cache")
	v.SetDefault("cache.max_age_days", 30)

	// Configure to read from an optional config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; everything can come from the
		// environment. Any other read error is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Configure to read from environment variables with VIVA_ prefix
	v.SetEnvPrefix("VIVA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind critical environment variables
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"openai.api_key", "VIVA_OPENAI_API_KEY"},
		{"openai.model", "VIVA_OPENAI_MODEL"},
		{"server.port", "VIVA_SERVER_PORT"},
		{"server.log_level", "VIVA_SERVER_LOG_LEVEL"},
	}
	for _, b := range bindEnvs {
		if err := v.BindEnv(b.key, b.envVar); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", b.envVar, err)
		}
	}

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate config
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
