package sources

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"

	"github.com/vinotek/catalog-builder/internal/logger"
	"github.com/vinotek/catalog-builder/internal/registry"
)

// LoadOverrides reads the hand-maintained override file and returns its
// component records in file order. The file is HuJSON: comments and trailing
// commas are tolerated, since the file is edited by hand.
func LoadOverrides(path string) ([]*registry.Component, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("override file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read override file %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to standardize override file %s: %w", path, err)
	}

	var raws []rawComponent
	if err := json.Unmarshal(standardized, &raws); err != nil {
		return nil, fmt.Errorf("failed to decode override records: %w", err)
	}

	components := make([]*registry.Component, 0, len(raws))
	for i := range raws {
		c, err := raws[i].toComponent()
		if err != nil {
			logger.Warnf("Skipping override record %d: %v", i, err)
			continue
		}
		components = append(components, c)
	}

	return components, nil
}
