// Package config holds runtime configuration for memkit, loaded from the
// environment and adjustable through functional options.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"

	"github.com/weave-labs/memkit/utils"
)

type Config struct {
	Provider          string         `env:"MEMKIT_PROVIDER" envDefault:"openai" validate:"required"`
	Model             string         `env:"MEMKIT_MODEL" envDefault:"gpt-4o-mini" validate:"required"`
	Timeout           time.Duration  `env:"MEMKIT_TIMEOUT" envDefault:"60s"`
	RequestsPerMinute int            `env:"MEMKIT_REQUESTS_PER_MINUTE" envDefault:"0" validate:"min=0"`
	LogLevel          utils.LogLevel `env:"MEMKIT_LOG_LEVEL" envDefault:"WARN"`
	SystemPrompt      string
	APIKeys           map[string]string
}

// LoadConfig builds a Config from the environment. Any variable ending in
// _API_KEY is collected into the APIKeys map under the lowercased provider
// name, so OPENAI_API_KEY becomes APIKeys["openai"].
func LoadConfig() (*Config, error) {
	cfg := &Config{
		APIKeys: make(map[string]string),
	}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	loadAPIKeys(cfg)
	return cfg, nil
}

func loadAPIKeys(cfg *Config) {
	for _, envVar := range os.Environ() {
		key, value, found := strings.Cut(envVar, "=")
		if found && strings.HasSuffix(strings.ToUpper(key), "_API_KEY") {
			provider := strings.TrimSuffix(strings.ToUpper(key), "_API_KEY")
			cfg.APIKeys[strings.ToLower(provider)] = value
		}
	}
}

var validate = validator.New()

// Validate checks the config against its validation rules.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

type ConfigOption func(*Config)

func NewConfig() *Config {
	return &Config{
		Provider: "openai",
		Model:    "gpt-4o-mini",
		Timeout:  60 * time.Second,
		LogLevel: utils.LogLevelWarn,
		APIKeys:  make(map[string]string),
	}
}

func SetProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

func SetModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

func SetTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

func SetRequestsPerMinute(rpm int) ConfigOption {
	return func(c *Config) {
		if rpm < 0 {
			rpm = 0
		}
		c.RequestsPerMinute = rpm
	}
}

func SetLogLevel(level utils.LogLevel) ConfigOption {
	return func(c *Config) {
		c.LogLevel = level
	}
}

func SetSystemPrompt(prompt string) ConfigOption {
	return func(c *Config) {
		c.SystemPrompt = prompt
	}
}

func SetAPIKey(apiKey string) ConfigOption {
	return func(c *Config) {
		if c.APIKeys == nil {
			c.APIKeys = make(map[string]string)
		}
		c.APIKeys[c.Provider] = apiKey
	}
}

func ApplyOptions(cfg *Config, options ...ConfigOption) {
	for _, option := range options {
		option(cfg)
	}
}
