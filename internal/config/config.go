// Package config provides configuration loading and validation for the catalog builder.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variables recognized by the builder.
const EnvPrefix = "VTK"

// DefaultOutputDir is used when output.dir is not configured.
const DefaultOutputDir = "./dist"

// Option defines the interface for configuration loader options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	// CDNBaseURL is the base URL prepended to every component file name when
	// download URLs are rewritten during registration
	CDNBaseURL string `yaml:"cdnBaseUrl"`

	// LogoURL is the uniform logo applied to every registered component
	LogoURL string `yaml:"logoUrl"`

	Sources SourcesConfig `yaml:"sources"`
	Output  OutputConfig  `yaml:"output"`
}

// SourcesConfig lists the source file locations consumed by one build pass
type SourcesConfig struct {
	// Catalog is the machine-generated XML catalog carrying the embedded JSON payload
	Catalog string `yaml:"catalog"`

	// Overrides is the hand-maintained HuJSON component override file (optional)
	Overrides string `yaml:"overrides,omitempty"`

	// Containers is the container descriptor list
	Containers string `yaml:"containers"`

	// Imagefs is the firmware descriptor singleton
	Imagefs string `yaml:"imagefs"`

	// Defaults is the default-selection table singleton
	Defaults string `yaml:"defaults"`

	// ExecutionConfig is the execution-configuration table singleton
	ExecutionConfig string `yaml:"executionConfig"`
}

// OutputConfig defines where generated documents are written
type OutputConfig struct {
	// Dir is the output directory, created if missing. Defaults to ./dist
	Dir string `yaml:"dir,omitempty"`
}

// LoadConfig loads and parses configuration from a YAML file
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults normalizes values and fills in optional settings
func (c *Config) applyDefaults() {
	c.CDNBaseURL = strings.TrimRight(c.CDNBaseURL, "/")
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validateAbsoluteURL("cdnBaseUrl", c.CDNBaseURL); err != nil {
		return err
	}
	if err := validateAbsoluteURL("logoUrl", c.LogoURL); err != nil {
		return err
	}

	return c.Sources.validate()
}

// validate checks that every required source location is configured
func (s *SourcesConfig) validate() error {
	required := []struct {
		field string
		value string
	}{
		{"sources.catalog", s.Catalog},
		{"sources.containers", s.Containers},
		{"sources.imagefs", s.Imagefs},
		{"sources.defaults", s.Defaults},
		{"sources.executionConfig", s.ExecutionConfig},
	}

	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s: path is required", r.field)
		}
	}

	return nil
}

func validateAbsoluteURL(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s: value is required", field)
	}

	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: invalid URL: %w", field, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%s: URL must be absolute: %s", field, value)
	}

	return nil
}
