package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validConfigYAML = `
cdnBaseUrl: https://cdn.vinotek.dev/components/
logoUrl: https://cdn.vinotek.dev/static/component.png
sources:
  catalog: ./sources/catalog.xml
  overrides: ./sources/overrides.jsonc
  containers: ./sources/containers.json
  imagefs: ./sources/imagefs.json
  defaults: ./sources/defaults.json
  executionConfig: ./sources/execution_config.json
output:
  dir: ./out
`

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, validConfigYAML)
		cfg, err := LoadConfig(WithConfigPath(path))
		require.NoError(t, err)

		assert.Equal(t, "https://cdn.vinotek.dev/components", cfg.CDNBaseURL,
			"trailing slash should be trimmed")
		assert.Equal(t, "https://cdn.vinotek.dev/static/component.png", cfg.LogoURL)
		assert.Equal(t, "./sources/catalog.xml", cfg.Sources.Catalog)
		assert.Equal(t, "./sources/overrides.jsonc", cfg.Sources.Overrides)
		assert.Equal(t, "./out", cfg.Output.Dir)
	})

	t.Run("output dir defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, `
cdnBaseUrl: https://cdn.vinotek.dev/components
logoUrl: https://cdn.vinotek.dev/static/component.png
sources:
  catalog: a.xml
  containers: b.json
  imagefs: c.json
  defaults: d.json
  executionConfig: e.json
`)
		cfg, err := LoadConfig(WithConfigPath(path))
		require.NoError(t, err)
		assert.Equal(t, DefaultOutputDir, cfg.Output.Dir)
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "path is required")
	})

	t.Run("nonexistent file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(WithConfigPath(filepath.Join(t.TempDir(), "missing.yaml")))
		require.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, "cdnBaseUrl: [unterminated")
		_, err := LoadConfig(WithConfigPath(path))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse YAML config")
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		return &Config{
			CDNBaseURL: "https://cdn.vinotek.dev/components",
			LogoURL:    "https://cdn.vinotek.dev/static/component.png",
			Sources: SourcesConfig{
				Catalog:         "catalog.xml",
				Containers:      "containers.json",
				Imagefs:         "imagefs.json",
				Defaults:        "defaults.json",
				ExecutionConfig: "execution_config.json",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "missing cdn base",
			mutate:  func(c *Config) { c.CDNBaseURL = "" },
			wantErr: "cdnBaseUrl",
		},
		{
			name:    "relative cdn base",
			mutate:  func(c *Config) { c.CDNBaseURL = "/components" },
			wantErr: "URL must be absolute",
		},
		{
			name:    "missing logo url",
			mutate:  func(c *Config) { c.LogoURL = "" },
			wantErr: "logoUrl",
		},
		{
			name:    "missing catalog",
			mutate:  func(c *Config) { c.Sources.Catalog = "" },
			wantErr: "sources.catalog",
		},
		{
			name:    "missing containers",
			mutate:  func(c *Config) { c.Sources.Containers = "" },
			wantErr: "sources.containers",
		},
		{
			name:    "missing defaults",
			mutate:  func(c *Config) { c.Sources.Defaults = "" },
			wantErr: "sources.defaults",
		},
		{
			name:    "missing execution config",
			mutate:  func(c *Config) { c.Sources.ExecutionConfig = "" },
			wantErr: "sources.executionConfig",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSourcesOverridesOptional(t *testing.T) {
	t.Parallel()

	s := SourcesConfig{
		Catalog:         "catalog.xml",
		Containers:      "containers.json",
		Imagefs:         "imagefs.json",
		Defaults:        "defaults.json",
		ExecutionConfig: "execution_config.json",
	}
	assert.NoError(t, s.validate(), "overrides should not be required")
}
