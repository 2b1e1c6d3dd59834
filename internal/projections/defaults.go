package projections

import (
	"encoding/json"
	"fmt"

	"github.com/vinotek/catalog-builder/internal/logger"
)

// DefaultComponentData is the payload of the default-component document. The
// translator slot is a fixed empty placeholder the consumer requires.
type DefaultComponentData struct {
	DXVK        manifestEntry `json:"dxvk"`
	VKD3D       manifestEntry `json:"vkd3d"`
	SteamClient manifestEntry `json:"steam_client"`
	Translator  struct{}      `json:"translator"`
}

// DefaultComponent generates the default-component document by resolving the
// three named default slots. Any slot referencing an unregistered id is a
// hard failure: unlike the execute-script documents, nothing is dropped here.
func (g *Generator) DefaultComponent() (*Document, error) {
	defaults := g.reg.Defaults()
	if defaults == nil {
		return nil, fmt.Errorf("defaults table not loaded")
	}

	dxvk, err := g.resolveDefault("dxvk", defaults.DXVK)
	if err != nil {
		return nil, err
	}
	vkd3d, err := g.resolveDefault("vkd3d", defaults.VKD3D)
	if err != nil {
		return nil, err
	}
	steamClient, err := g.resolveDefault("steam_client", defaults.SteamClient)
	if err != nil {
		return nil, err
	}

	return g.newDocument(&DefaultComponentData{
		DXVK:        dxvk,
		VKD3D:       vkd3d,
		SteamClient: steamClient,
	}), nil
}

// resolveDefault resolves one named default slot to a full component view
func (g *Generator) resolveDefault(slot string, id int64) (manifestEntry, error) {
	c, ok := g.reg.ByID(id)
	if !ok {
		return manifestEntry{}, fmt.Errorf("defaults.%s: %w: %d", slot, ErrUnresolvedDefault, id)
	}
	return newManifestEntry(c), nil
}

// ImagefsData is the payload of the imagefs detail document.
type ImagefsData struct {
	Version     string `json:"version"`
	VersionCode int64  `json:"version_code"`
	FileName    string `json:"file_name"`
	FileMD5     string `json:"file_md5"`
	FileSize    string `json:"file_size"`
	DownloadURL string `json:"download_url"`
	Blurb       string `json:"blurb,omitempty"`
}

// ImagefsDetail generates the firmware descriptor passthrough document.
func (g *Generator) ImagefsDetail() *Document {
	data := &ImagefsData{}
	if fs := g.reg.Imagefs(); fs != nil {
		data.Version = fs.Version
		data.VersionCode = fs.VersionCode
		data.FileName = fs.FileName
		data.FileMD5 = fs.FileMD5
		data.FileSize = fs.FileSize
		data.DownloadURL = fs.DownloadURL
		data.Blurb = fs.Blurb
	}
	return g.newDocument(data)
}

// ExecuteData is the payload of one execute-script document.
type ExecuteData struct {
	Container    containerView   `json:"container"`
	Components   []executeEntry  `json:"components"`
	ComponentIDs []int64         `json:"component_ids"`
	Execution    json.RawMessage `json:"execution,omitempty"`
	Config       execConfigView  `json:"config"`
}

// ExecuteScript generates the execute-script document for one profile
// variant ("generic" or "qualcomm"). The container reference is strict: an
// unregistered container id fails the build. The component id list is
// permissive: ids that do not resolve are dropped from the component entries
// with a warning, while component_ids still reports the full configured list.
func (g *Generator) ExecuteScript(variant string) (*Document, error) {
	defaults := g.reg.Defaults()
	if defaults == nil {
		return nil, fmt.Errorf("defaults table not loaded")
	}

	profile, ok := defaults.Profile(variant)
	if !ok {
		return nil, fmt.Errorf("unknown execution profile variant: %s", variant)
	}

	container, ok := g.reg.ContainerByID(defaults.Container)
	if !ok {
		return nil, fmt.Errorf("execute script %s: %w: %d", variant, ErrContainerNotFound, defaults.Container)
	}

	entries := make([]executeEntry, 0, len(profile.ComponentIDs))
	for _, id := range profile.ComponentIDs {
		c, ok := g.reg.ByID(id)
		if !ok {
			logger.Warnf("Execute script %s: dropping unresolved component id %d", variant, id)
			continue
		}
		entries = append(entries, newExecuteEntry(c))
	}

	componentIDs := profile.ComponentIDs
	if componentIDs == nil {
		componentIDs = []int64{}
	}

	return g.newDocument(&ExecuteData{
		Container:    newContainerView(container),
		Components:   entries,
		ComponentIDs: componentIDs,
		Execution:    profile.Execution,
		Config:       newExecConfigView(g.reg.ExecutionConfig()),
	}), nil
}
