// Package projections turns a frozen registry into the output document set.
// Every generator is a pure read over the registry; documents produced by one
// generator share the generator's timestamp. Struct field declaration order
// below is the wire contract: downstream consumers compare documents
// byte-for-byte, so fields must not be reordered.
package projections

import (
	"encoding/json"

	"github.com/vinotek/catalog-builder/internal/registry"
)

// Document is the envelope shared by every generated output.
type Document struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
	Time string `json:"time,omitempty"`
}

// manifestEntry is the component view used by the manifest, all-component and
// default-component documents. Keys are alphabetical.
type manifestEntry struct {
	DisplayName string `json:"display_name"`
	DownloadURL string `json:"download_url"`
	FileMD5     string `json:"file_md5"`
	FileName    string `json:"file_name"`
	FileSize    string `json:"file_size"`
	ID          int64  `json:"id"`
	IsSteam     int    `json:"is_steam,omitempty"`
	IsUI        int    `json:"is_ui"`
	Logo        string `json:"logo"`
	Name        string `json:"name"`
	Type        int    `json:"type"`
	Version     string `json:"version"`
	VersionCode int64  `json:"version_code"`
}

// executeEntry extends the manifest view with the execution flags emitted by
// the execute-script documents.
type executeEntry struct {
	BaseType    int    `json:"base_type"`
	DisplayName string `json:"display_name"`
	DownloadURL string `json:"download_url"`
	FileMD5     string `json:"file_md5"`
	FileName    string `json:"file_name"`
	FileSize    string `json:"file_size"`
	ID          int64  `json:"id"`
	IsBase      int    `json:"is_base"`
	IsSteam     int    `json:"is_steam,omitempty"`
	IsUI        int    `json:"is_ui"`
	Logo        string `json:"logo"`
	Name        string `json:"name"`
	Type        int    `json:"type"`
	Version     string `json:"version"`
	VersionCode int64  `json:"version_code"`
}

// listEntry is the component view used by the paged component-list document.
// It carries the descriptive fields and drops is_ui.
type listEntry struct {
	Blurb       string `json:"blurb,omitempty"`
	DisplayName string `json:"display_name"`
	DownloadURL string `json:"download_url"`
	FileMD5     string `json:"file_md5"`
	FileName    string `json:"file_name"`
	FileSize    string `json:"file_size"`
	GPURange    string `json:"gpu_range,omitempty"`
	ID          int64  `json:"id"`
	IsSteam     int    `json:"is_steam,omitempty"`
	Logo        string `json:"logo"`
	Name        string `json:"name"`
	Type        int    `json:"type"`
	Version     string `json:"version"`
	VersionCode int64  `json:"version_code"`
}

// downloadEntry is the stripped component view used by the download list.
type downloadEntry struct {
	Blurb       string `json:"blurb,omitempty"`
	DownloadURL string `json:"download_url"`
	FileMD5     string `json:"file_md5"`
	FileName    string `json:"file_name"`
	FileSize    string `json:"file_size"`
	GPURange    string `json:"gpu_range,omitempty"`
	IsSteam     int    `json:"is_steam,omitempty"`
	Name        string `json:"name"`
	Type        int    `json:"type"`
	Version     string `json:"version"`
}

// containerView is the container shape emitted by the execute-script documents.
type containerView struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Version       string          `json:"version"`
	VersionCode   int64           `json:"version_code"`
	Framework     int             `json:"framework"`
	FrameworkType int             `json:"framework_type"`
	FileName      string          `json:"file_name"`
	FileMD5       string          `json:"file_md5"`
	FileSize      string          `json:"file_size"`
	DownloadURL   string          `json:"download_url"`
	SubArchive    *subArchiveView `json:"sub_archive,omitempty"`
}

type subArchiveView struct {
	FileName  string `json:"file_name"`
	FileMD5   string `json:"file_md5"`
	FileSize  string `json:"file_size"`
	TargetDir string `json:"target_dir"`
}

// execConfigView is the execution-configuration shape embedded in the
// execute-script documents.
type execConfigView struct {
	Box64Presets     json.RawMessage `json:"box64_presets,omitempty"`
	EnvVars          json.RawMessage `json:"env_vars,omitempty"`
	ControllerRumble bool            `json:"controller_rumble"`
	ControllerGyro   bool            `json:"controller_gyro"`
	MaxFPS           int             `json:"max_fps"`
	AudioLatencyMs   int             `json:"audio_latency_ms"`
}

func newManifestEntry(c *registry.Component) manifestEntry {
	return manifestEntry{
		DisplayName: c.DisplayName,
		DownloadURL: c.DownloadURL,
		FileMD5:     c.FileMD5,
		FileName:    c.FileName,
		FileSize:    c.FileSize,
		ID:          c.ID,
		IsSteam:     c.IsSteam,
		IsUI:        1,
		Logo:        c.Logo,
		Name:        c.Name,
		Type:        c.Type,
		Version:     c.Version,
		VersionCode: c.VersionCode,
	}
}

func newExecuteEntry(c *registry.Component) executeEntry {
	return executeEntry{
		BaseType:    0,
		DisplayName: c.DisplayName,
		DownloadURL: c.DownloadURL,
		FileMD5:     c.FileMD5,
		FileName:    c.FileName,
		FileSize:    c.FileSize,
		ID:          c.ID,
		IsBase:      0,
		IsSteam:     c.IsSteam,
		IsUI:        1,
		Logo:        c.Logo,
		Name:        c.Name,
		Type:        c.Type,
		Version:     c.Version,
		VersionCode: c.VersionCode,
	}
}

func newListEntry(c *registry.Component) listEntry {
	return listEntry{
		Blurb:       c.Blurb,
		DisplayName: c.DisplayName,
		DownloadURL: c.DownloadURL,
		FileMD5:     c.FileMD5,
		FileName:    c.FileName,
		FileSize:    c.FileSize,
		GPURange:    c.GPURange,
		ID:          c.ID,
		IsSteam:     c.IsSteam,
		Logo:        c.Logo,
		Name:        c.Name,
		Type:        c.Type,
		Version:     c.Version,
		VersionCode: c.VersionCode,
	}
}

func newDownloadEntry(c *registry.Component) downloadEntry {
	return downloadEntry{
		Blurb:       c.Blurb,
		DownloadURL: c.DownloadURL,
		FileMD5:     c.FileMD5,
		FileName:    c.FileName,
		FileSize:    c.FileSize,
		GPURange:    c.GPURange,
		IsSteam:     c.IsSteam,
		Name:        c.Name,
		Type:        c.Type,
		Version:     c.Version,
	}
}

func newContainerView(ct *registry.Container) containerView {
	view := containerView{
		ID:            ct.ID,
		Name:          ct.Name,
		Version:       ct.Version,
		VersionCode:   ct.VersionCode,
		Framework:     ct.Framework,
		FrameworkType: ct.FrameworkType,
		FileName:      ct.FileName,
		FileMD5:       ct.FileMD5,
		FileSize:      ct.FileSize,
		DownloadURL:   ct.DownloadURL,
	}
	if ct.SubArchive != nil {
		view.SubArchive = &subArchiveView{
			FileName:  ct.SubArchive.FileName,
			FileMD5:   ct.SubArchive.FileMD5,
			FileSize:  ct.SubArchive.FileSize,
			TargetDir: ct.SubArchive.TargetDir,
		}
	}
	return view
}

func newExecConfigView(ec *registry.ExecutionConfig) execConfigView {
	if ec == nil {
		return execConfigView{}
	}
	return execConfigView{
		Box64Presets:     ec.Box64Presets,
		EnvVars:          ec.EnvVars,
		ControllerRumble: ec.ControllerRumble,
		ControllerGyro:   ec.ControllerGyro,
		MaxFPS:           ec.MaxFPS,
		AudioLatencyMs:   ec.AudioLatencyMs,
	}
}
