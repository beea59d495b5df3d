// SPDX-License-Identifier: EPL-2.0

// Package config loads audmix settings from a YAML file, AUDMIX_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/internal/logger"
)

// EnvPrefix is prepended to environment overrides, e.g. AUDMIX_DEVICE_BACKEND.
const EnvPrefix = "AUDMIX"

// Config holds all configuration for the application.
type Config struct {
	// Device is the output to open.
	Device device.Config `mapstructure:"device"`

	// Logging configuration.
	Logging LoggingConfig `mapstructure:"logging"`

	// Sounds are loaded into the library at startup.
	Sounds []Sound `mapstructure:"sounds"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// Sound names a file to preload.
type Sound struct {
	Name string `mapstructure:"name"`
	Path string `mapstructure:"path"`
	// Loop marks the sound as looping when it is started by name.
	Loop bool `mapstructure:"loop"`
	// Autoplay starts the sound as soon as the engine is up.
	Autoplay bool `mapstructure:"autoplay"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	d := device.DefaultConfig()
	v.SetDefault("device.backend", string(d.Backend))
	v.SetDefault("device.sample_rate", d.SampleRate)
	v.SetDefault("device.channels", d.Channels)
	v.SetDefault("device.format", d.Format)
	v.SetDefault("device.silence", d.Silence)
	v.SetDefault("device.samples", d.Samples)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Load reads configuration into a Config. file, when set, replaces the
// search for audmix.yaml in ., $HOME/.audmix and /etc/audmix.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("audmix")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.audmix")
		v.AddConfigPath("/etc/audmix")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Debug("No config file found, using defaults and environment variables")
	} else {
		slog.Debug("Using config file", slog.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the whole configuration and returns the first problem as
// an *Error.
func (c *Config) Validate() error {
	if err := c.Device.Validate(); err != nil {
		return &Error{Field: "device", Message: err.Error(), Err: err}
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return &Error{Field: "logging.level", Message: err.Error(), Err: err}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return &Error{Field: "logging.format", Message: fmt.Sprintf("must be text or json, got %q", c.Logging.Format)}
	}

	seen := make(map[string]bool, len(c.Sounds))
	for i, s := range c.Sounds {
		field := fmt.Sprintf("sounds[%d]", i)
		switch {
		case s.Name == "":
			return &Error{Field: field + ".name", Message: "sound name is required"}
		case s.Path == "":
			return &Error{Field: field + ".path", Message: "sound path is required"}
		case seen[s.Name]:
			return &Error{Field: field + ".name", Message: fmt.Sprintf("duplicate sound name %q", s.Name)}
		}
		seen[s.Name] = true
	}
	return nil
}

// Sound returns the configured sound with the given name.
func (c *Config) Sound(name string) (Sound, bool) {
	for _, s := range c.Sounds {
		if s.Name == name {
			return s, true
		}
	}
	return Sound{}, false
}

// Error represents a configuration validation error.
type Error struct {
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }
