// Package config resolves deployment settings for lead forms from an
// optional config file and the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-leadform/pkg/submit"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LEADFORM"

// Config is the resolved deployment configuration.
type Config struct {
	// Endpoints maps form ids to relay URLs.
	Endpoints map[string]string `mapstructure:"endpoints"`
	Timeout   time.Duration     `mapstructure:"timeout"`
	Theme     Theme             `mapstructure:"theme"`
	LogLevel  string            `mapstructure:"log_level"`
}

// Theme selects the render theme and variant.
type Theme struct {
	Name    string `mapstructure:"name"`
	Variant string `mapstructure:"variant"`
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	file      string
	overrides map[string]any
}

// WithConfigFile reads settings from path. The format follows the file
// extension (yaml, json, toml).
func WithConfigFile(path string) Option {
	return func(l *loader) {
		l.file = strings.TrimSpace(path)
	}
}

// WithOverride sets key after file and environment resolution, e.g. a
// command line flag.
func WithOverride(key string, value any) Option {
	return func(l *loader) {
		if l.overrides == nil {
			l.overrides = make(map[string]any)
		}
		l.overrides[key] = value
	}
}

// legacyEndpointEnv lists the variable names used by earlier deployments.
var legacyEndpointEnv = map[string]string{
	"quote":   "VITE_FORMSPREE_QUOTE",
	"contact": "VITE_FORMSPREE_CONTACT",
	"pricing": "VITE_FORMSPREE_PRICING",
}

// Load resolves the configuration. Environment variables override file
// values; overrides win over both.
func Load(opts ...Option) (Config, error) {
	l := &loader{}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	v := viper.New()
	v.SetDefault("timeout", submit.DefaultTimeout.String())
	v.SetDefault("theme.name", "leadform")
	v.SetDefault("theme.variant", "light")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"timeout", "theme.name", "theme.variant", "log_level"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}
	for form, legacy := range legacyEndpointEnv {
		key := "endpoints." + form
		if err := v.BindEnv(key, envName(key), legacy); err != nil {
			return Config{}, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	if l.file != "" {
		v.SetConfigFile(l.file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", l.file, err)
		}
	}
	for key, value := range l.overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.Timeout < 0 {
		return Config{}, fmt.Errorf("config: timeout must not be negative, got %s", cfg.Timeout)
	}
	if cfg.Endpoints == nil {
		cfg.Endpoints = map[string]string{}
	}
	for form, endpoint := range cfg.Endpoints {
		cfg.Endpoints[form] = strings.TrimSpace(endpoint)
	}
	return cfg, nil
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Endpoint returns the relay URL configured for formID, or "".
func (c Config) Endpoint(formID string) string {
	return c.Endpoints[formID]
}

// Submit returns the executor configuration for formID. A missing endpoint
// is left empty so the executor reports it as a configuration error.
func (c Config) Submit(formID string) submit.Config {
	return submit.Config{
		FormID:   formID,
		Endpoint: c.Endpoint(formID),
		Timeout:  c.Timeout,
	}
}

// Level parses LogLevel into a slog level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(c.LogLevel) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log_level: %w", err)
	}
	return level, nil
}
