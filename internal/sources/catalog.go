package sources

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/vinotek/catalog-builder/internal/logger"
	"github.com/vinotek/catalog-builder/internal/registry"
)

// catalogPayloadName is the name attribute of the resource entry carrying the
// embedded JSON payload.
const catalogPayloadName = "component_catalog"

// catalogEnvelope is the XML resource file wrapping the machine-generated
// catalog payload.
type catalogEnvelope struct {
	XMLName xml.Name       `xml:"resources"`
	Entries []catalogEntry `xml:"string"`
}

type catalogEntry struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// LoadCatalog reads the machine-generated XML catalog, extracts the embedded
// JSON payload, and returns the component records in document order. Records
// with an undefined classification are skipped with a warning rather than
// aborting the load.
func LoadCatalog(path string) ([]*registry.Component, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("catalog file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var envelope catalogEnvelope
	if err := xml.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse catalog XML envelope: %w", err)
	}

	payload, err := findCatalogPayload(&envelope)
	if err != nil {
		return nil, err
	}

	return parseCatalogPayload(payload)
}

// findCatalogPayload locates the resource entry holding the embedded JSON blob
func findCatalogPayload(envelope *catalogEnvelope) (string, error) {
	for _, entry := range envelope.Entries {
		if entry.Name == catalogPayloadName {
			return entry.Value, nil
		}
	}
	return "", fmt.Errorf("catalog envelope has no %q entry", catalogPayloadName)
}

// parseCatalogPayload extracts and converts the component records from the
// embedded JSON blob
func parseCatalogPayload(payload string) ([]*registry.Component, error) {
	if !gjson.Valid(payload) {
		return nil, fmt.Errorf("embedded catalog payload is not valid JSON")
	}

	records := gjson.Get(payload, "components")
	if !records.Exists() {
		return nil, fmt.Errorf("embedded catalog payload has no components array")
	}
	if !records.IsArray() {
		return nil, fmt.Errorf("embedded catalog payload: components is not an array")
	}

	var raws []rawComponent
	if err := json.Unmarshal([]byte(records.Raw), &raws); err != nil {
		return nil, fmt.Errorf("failed to decode catalog component records: %w", err)
	}

	components := make([]*registry.Component, 0, len(raws))
	for i := range raws {
		c, err := raws[i].toComponent()
		if err != nil {
			logger.Warnf("Skipping catalog record %d: %v", i, err)
			continue
		}
		components = append(components, c)
	}

	return components, nil
}
