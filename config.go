// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

package pjlink

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PasswordEnv overrides the password of a loaded Config when set.
const PasswordEnv = "PJLINK_PASSWORD"

// Duration is a time.Duration that reads and writes Go duration strings in YAML.
type Duration time.Duration

// UnmarshalYAML parses values such as "1500ms" or "5s".
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration as a string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config is the file form of a projector's settings.
//
//	host: 192.168.1.50
//	port: 4352
//	password: JBMIAProjectorLink
//	connect_timeout: 1s
//	read_timeout: 5s
//	settle_delay: 1500ms
//	log_level: info
//
// Durations left out keep the library defaults.
type Config struct {
	Host           string    `yaml:"host"`
	Port           int       `yaml:"port,omitempty"`
	Password       string    `yaml:"password,omitempty"`
	ConnectTimeout *Duration `yaml:"connect_timeout,omitempty"`
	ReadTimeout    *Duration `yaml:"read_timeout,omitempty"`
	WriteTimeout   *Duration `yaml:"write_timeout,omitempty"`
	SettleDelay    *Duration `yaml:"settle_delay,omitempty"`
	LogLevel       string    `yaml:"log_level,omitempty"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configurationError("LoadConfig", fmt.Sprintf("failed to read %s", path), err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates YAML config data. The PJLINK_PASSWORD
// environment variable, when set, replaces the password.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, configurationError("ParseConfig", "invalid YAML", err)
	}

	if password, ok := os.LookupEnv(PasswordEnv); ok {
		cfg.Password = password
	}

	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config for values a Projector cannot use.
func (c *Config) Validate() error {
	if c.Host == "" {
		return configurationError("Config.Validate", "host is required", nil)
	}

	if c.Port < 1 || c.Port > 65535 {
		return configurationError("Config.Validate", fmt.Sprintf("port %d out of range", c.Port), nil)
	}

	durations := []struct {
		name  string
		value *Duration
	}{
		{"connect_timeout", c.ConnectTimeout},
		{"read_timeout", c.ReadTimeout},
		{"write_timeout", c.WriteTimeout},
		{"settle_delay", c.SettleDelay},
	}
	for _, d := range durations {
		if d.value != nil && *d.value < 0 {
			return configurationError("Config.Validate", fmt.Sprintf("%s cannot be negative", d.name), nil)
		}
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error", "disabled":
	default:
		return configurationError("Config.Validate", fmt.Sprintf("unknown log_level %q", c.LogLevel), nil)
	}

	return nil
}

// Options converts the config into Projector options.
func (c *Config) Options() []Option {
	opts := []Option{WithPort(c.Port)}
	if c.Password != "" {
		opts = append(opts, WithPassword(c.Password))
	}
	if c.ConnectTimeout != nil {
		opts = append(opts, WithConnectTimeout(time.Duration(*c.ConnectTimeout)))
	}
	if c.ReadTimeout != nil {
		opts = append(opts, WithReadTimeout(time.Duration(*c.ReadTimeout)))
	}
	if c.WriteTimeout != nil {
		opts = append(opts, WithWriteTimeout(time.Duration(*c.WriteTimeout)))
	}
	if c.SettleDelay != nil {
		opts = append(opts, WithSettleDelay(time.Duration(*c.SettleDelay)))
	}
	return opts
}

// NewProjector builds a Projector from the config plus any extra options.
// Extra options are applied last.
func (c *Config) NewProjector(extra ...Option) *Projector {
	return NewProjector(c.Host, append(c.Options(), extra...)...)
}
