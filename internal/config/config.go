// Package config loads server configuration from an optional YAML file and
// environment overrides.
//
// Precedence, lowest to highest: built-in defaults, the YAML file, environment variables.
//
// Environment variables:
//
//	PORT              server port
//	DB_DRIVER         sqlite, postgres or memory
//	DB_PATH           sqlite database file
//	DB_DSN            postgres connection string
//	JWT_SECRET        token signing secret
//	TOKEN_TTL         token lifetime, e.g. 24h
//	LOG_LEVEL         debug, info, warn, error
//	LOG_FORMAT        text or json
//	LOGIN_RATE_LIMIT  login attempts per minute per client, 0 disables
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultJWTSecret is only suitable for local development.
const DefaultJWTSecret = "splitease-dev-secret-change-me"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`

	// SeedDemo creates the demo@splitease.app account on startup.
	SeedDemo bool `yaml:"seed_demo"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"oneof=sqlite postgres memory"`
	Path   string `yaml:"path" validate:"required_if=Driver sqlite"`
	DSN    string `yaml:"dsn" validate:"required_if=Driver postgres"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" validate:"required,min=16"`
	TokenTTL  time.Duration `yaml:"token_ttl" validate:"gt=0"`

	// LoginRateLimit is attempts per minute per client address; 0 disables it.
	LoginRateLimit float64 `yaml:"login_rate_limit" validate:"gte=0"`
	LoginBurst     int     `yaml:"login_burst" validate:"gte=1"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   "./data/splitease.db",
		},
		Auth: AuthConfig{
			JWTSecret:      DefaultJWTSecret,
			TokenTTL:       24 * time.Hour,
			LoginRateLimit: 10,
			LoginBurst:     5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads path (if not empty), applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config: %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("DB_DRIVER", &c.Database.Driver)
	setString("DB_PATH", &c.Database.Path)
	setString("DB_DSN", &c.Database.DSN)
	setString("JWT_SECRET", &c.Auth.JWTSecret)
	setString("LOG_LEVEL", &c.Log.Level)
	setString("LOG_FORMAT", &c.Log.Format)

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		c.Auth.TokenTTL = ttl
	}
	if v := os.Getenv("LOGIN_RATE_LIMIT"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid LOGIN_RATE_LIMIT %q: %w", v, err)
		}
		c.Auth.LoginRateLimit = limit
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
