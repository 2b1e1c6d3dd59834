package sources

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"

	"github.com/vinotek/catalog-builder/internal/registry"
)

// decodeHuJSONFile reads a hand-maintained HuJSON file and decodes it into out.
func decodeHuJSONFile(path, what string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s file not found: %s", what, path)
		}
		return fmt.Errorf("failed to read %s file %s: %w", what, path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("failed to standardize %s file %s: %w", what, path, err)
	}

	if err := json.Unmarshal(standardized, out); err != nil {
		return fmt.Errorf("failed to decode %s file %s: %w", what, path, err)
	}

	return nil
}

// LoadContainers reads the container descriptor list.
func LoadContainers(path string) ([]*registry.Container, error) {
	var containers []*registry.Container
	if err := decodeHuJSONFile(path, "containers", &containers); err != nil {
		return nil, err
	}
	return containers, nil
}

// LoadImagefs reads the firmware descriptor singleton.
func LoadImagefs(path string) (*registry.Imagefs, error) {
	var fs registry.Imagefs
	if err := decodeHuJSONFile(path, "imagefs", &fs); err != nil {
		return nil, err
	}
	return &fs, nil
}

// LoadDefaults reads the default-selection table singleton.
func LoadDefaults(path string) (*registry.Defaults, error) {
	var d registry.Defaults
	if err := decodeHuJSONFile(path, "defaults", &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadExecutionConfig reads the execution-configuration table singleton.
func LoadExecutionConfig(path string) (*registry.ExecutionConfig, error) {
	var ec registry.ExecutionConfig
	if err := decodeHuJSONFile(path, "execution config", &ec); err != nil {
		return nil, err
	}
	return &ec, nil
}
