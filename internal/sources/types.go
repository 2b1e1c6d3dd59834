// Package sources loads component records and singleton reference datasets
// from their on-disk formats and converts them into the typed domain model.
// Nothing reaches the registry without passing through the typed conversion
// in this package.
package sources

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vinotek/catalog-builder/internal/registry"
)

// flexString decodes a JSON string or number into a string. The machine
// catalog emits file sizes as numbers while the override file uses strings.
type flexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexInt decodes a JSON number or numeric string into an int64.
type flexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}

	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer value %s: %w", string(data), err)
	}
	*f = flexInt(v)
	return nil
}

// rawComponent is a source component record before typed conversion. Field
// types are lenient because the two sources disagree on numeric encodings.
type rawComponent struct {
	ID          flexInt    `json:"id"`
	Name        string     `json:"name"`
	Type        flexInt    `json:"type"`
	Version     string     `json:"version"`
	VersionCode flexInt    `json:"version_code"`
	FileName    string     `json:"file_name"`
	FileMD5     string     `json:"file_md5"`
	FileSize    flexString `json:"file_size"`
	DownloadURL string     `json:"download_url"`
	Logo        string     `json:"logo"`
	DisplayName string     `json:"display_name"`
	Blurb       string     `json:"blurb"`
	GPURange    string     `json:"gpu_range"`
	IsSteam     flexInt    `json:"is_steam"`
}

// toComponent converts a raw record into the domain model, applying the field
// coercions: numeric file sizes become digit strings, digests are lowercased,
// and the classification must be in the defined range.
func (rc *rawComponent) toComponent() (*registry.Component, error) {
	typ := int(rc.Type)
	if !registry.IsValidType(typ) {
		return nil, fmt.Errorf("component %d (%s): type %d is outside the defined range %d..%d",
			rc.ID, rc.Name, typ, registry.MinComponentType, registry.MaxComponentType)
	}

	return &registry.Component{
		ID:          int64(rc.ID),
		Name:        rc.Name,
		Type:        typ,
		Version:     rc.Version,
		VersionCode: int64(rc.VersionCode),
		FileName:    rc.FileName,
		FileMD5:     strings.ToLower(rc.FileMD5),
		FileSize:    string(rc.FileSize),
		DownloadURL: rc.DownloadURL,
		Logo:        rc.Logo,
		DisplayName: rc.DisplayName,
		Blurb:       rc.Blurb,
		GPURange:    rc.GPURange,
		IsSteam:     int(rc.IsSteam),
	}, nil
}
