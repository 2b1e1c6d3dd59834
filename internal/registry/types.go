// Package registry implements the canonical in-memory component registry: the
// deduplicated, indexed store that one build pass populates from the merged
// source records, validates, and projects into output documents.
package registry

import "encoding/json"

// Component type classifications. The numeric values are part of the catalog
// format and of every generated document.
const (
	TypeGPUDriver = 1 + iota
	TypeDXVK
	TypeVKD3D
	TypeBox64
	TypeSteamClient
	TypeFEXCore
	TypeAddon
)

// MinComponentType and MaxComponentType bound the valid classification range.
const (
	MinComponentType = TypeGPUDriver
	MaxComponentType = TypeAddon
)

// typeNames maps component types to the category names shown in the index document.
var typeNames = map[int]string{
	TypeGPUDriver:   "GPU Driver",
	TypeDXVK:        "DXVK",
	TypeVKD3D:       "VKD3D",
	TypeBox64:       "Box64",
	TypeSteamClient: "Steam Client",
	TypeFEXCore:     "FEXCore",
	TypeAddon:       "Addon",
}

// TypeName returns the display name for a component type, or "Unknown" for
// values outside the defined range.
func TypeName(t int) string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// IsValidType reports whether t is a defined component classification.
func IsValidType(t int) bool {
	return t >= MinComponentType && t <= MaxComponentType
}

// Component is one distributable artifact (driver, translation layer, client
// build). DownloadURL and Logo are always overwritten at registration time
// with registry-configured values, whatever the source supplied.
type Component struct {
	ID          int64
	Name        string
	Type        int
	Version     string
	VersionCode int64

	FileName    string
	FileMD5     string
	FileSize    string
	DownloadURL string

	Logo        string
	DisplayName string

	Blurb    string
	GPURange string
	IsSteam  int
}

// SubArchive is an optional nested archive shipped inside a container build.
type SubArchive struct {
	FileName  string `json:"file_name"`
	FileMD5   string `json:"file_md5"`
	FileSize  string `json:"file_size"`
	TargetDir string `json:"target_dir"`
}

// Container is a Wine/Proton-like build descriptor. Containers live in a
// separate identity space from components.
type Container struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	Version       string      `json:"version"`
	VersionCode   int64       `json:"version_code"`
	Framework     int         `json:"framework"`
	FrameworkType int         `json:"framework_type"`
	FileName      string      `json:"file_name"`
	FileMD5       string      `json:"file_md5"`
	FileSize      string      `json:"file_size"`
	DownloadURL   string      `json:"download_url"`
	SubArchive    *SubArchive `json:"sub_archive,omitempty"`
}

// Imagefs is the singleton firmware descriptor.
type Imagefs struct {
	Version     string `json:"version"`
	VersionCode int64  `json:"version_code"`
	FileName    string `json:"file_name"`
	FileMD5     string `json:"file_md5"`
	FileSize    string `json:"file_size"`
	DownloadURL string `json:"download_url"`
	Blurb       string `json:"blurb,omitempty"`
}

// Profile names a component id list together with its opaque execution
// context. The context is carried through projections byte-for-byte.
type Profile struct {
	ComponentIDs []int64         `json:"component_ids"`
	Execution    json.RawMessage `json:"execution,omitempty"`
}

// Defaults is the singleton default-selection table.
type Defaults struct {
	DXVK        int64   `json:"dxvk"`
	VKD3D       int64   `json:"vkd3d"`
	SteamClient int64   `json:"steam_client"`
	Container   int64   `json:"container"`
	Generic     Profile `json:"generic"`
	Qualcomm    Profile `json:"qualcomm"`
}

// ExecutionConfig is the singleton table of static execution parameters. The
// translation tables are opaque and pass through projections unchanged.
type ExecutionConfig struct {
	Box64Presets     json.RawMessage `json:"box64_presets,omitempty"`
	EnvVars          json.RawMessage `json:"env_vars,omitempty"`
	ControllerRumble bool            `json:"controller_rumble"`
	ControllerGyro   bool            `json:"controller_gyro"`
	MaxFPS           int             `json:"max_fps"`
	AudioLatencyMs   int             `json:"audio_latency_ms"`
}
