package registry

import (
	"sort"

	"github.com/vinotek/catalog-builder/internal/logger"
	"github.com/vinotek/catalog-builder/internal/versions"
)

// Execution profile variants defined by the defaults table.
const (
	VariantGeneric  = "generic"
	VariantQualcomm = "qualcomm"
)

// Options configures a Registry instance.
type Options struct {
	// CDNBaseURL is prepended to each component file name to form its
	// rewritten download URL
	CDNBaseURL string

	// LogoURL replaces the logo of every registered component
	LogoURL string
}

// Registry is the canonical component store for one build pass. It is mutable
// only while sources are being loaded; once validation starts it is treated as
// read-only, so projections may read it concurrently without locking.
type Registry struct {
	opts Options

	components []*Component
	byID       map[int64]*Component
	byName     map[string]*Component
	byType     map[int][]*Component

	containers    []*Container
	containerByID map[int64]*Container

	imagefs    *Imagefs
	defaults   *Defaults
	execConfig *ExecutionConfig
}

// New creates an empty registry with the given options.
func New(opts Options) *Registry {
	return &Registry{
		opts:          opts,
		byID:          make(map[int64]*Component),
		byName:        make(map[string]*Component),
		byType:        make(map[int][]*Component),
		containerByID: make(map[int64]*Container),
	}
}

// Options returns the options the registry was constructed with.
func (r *Registry) Options() Options {
	return r.opts
}

// AddComponent registers a component. The first registration of an id wins:
// a later record with the same id is discarded with a logged warning and the
// registry is left unchanged. On registration the download URL and logo are
// rewritten to registry-configured values, whatever the source supplied.
// Returns true when the component was registered.
func (r *Registry) AddComponent(c *Component) bool {
	if existing, ok := r.byID[c.ID]; ok {
		if versions.IsNewerVersion(c.Version, existing.Version) {
			logger.Warnf("Duplicate component id %d (%s): keeping first registration %q (%s), discarding newer %q (%s)",
				c.ID, c.Name, existing.Name, existing.Version, c.Name, c.Version)
		} else {
			logger.Warnf("Duplicate component id %d (%s): keeping first registration %q, discarding later record",
				c.ID, c.Name, existing.Name)
		}
		return false
	}

	c.DownloadURL = r.opts.CDNBaseURL + "/" + c.FileName
	c.Logo = r.opts.LogoURL

	r.components = append(r.components, c)
	r.byID[c.ID] = c
	r.byName[c.Name] = c
	r.byType[c.Type] = append(r.byType[c.Type], c)
	return true
}

// AddContainer registers a container build descriptor. Containers follow the
// same first-wins rule as components within their own identity space.
func (r *Registry) AddContainer(ct *Container) bool {
	if _, ok := r.containerByID[ct.ID]; ok {
		logger.Warnf("Duplicate container id %d (%s): keeping first registration", ct.ID, ct.Name)
		return false
	}

	r.containers = append(r.containers, ct)
	r.containerByID[ct.ID] = ct
	return true
}

// SetImagefs installs the firmware descriptor singleton.
func (r *Registry) SetImagefs(fs *Imagefs) { r.imagefs = fs }

// SetDefaults installs the default-selection singleton.
func (r *Registry) SetDefaults(d *Defaults) { r.defaults = d }

// SetExecutionConfig installs the execution-configuration singleton.
func (r *Registry) SetExecutionConfig(ec *ExecutionConfig) { r.execConfig = ec }

// ByID returns the component registered under id.
func (r *Registry) ByID(id int64) (*Component, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// ByName returns the component registered under name.
func (r *Registry) ByName(name string) (*Component, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// ByType returns the components of one classification in insertion order
// (source order, then override order).
func (r *Registry) ByType(t int) []*Component {
	return append([]*Component(nil), r.byType[t]...)
}

// All returns every registered component in insertion order.
func (r *Registry) All() []*Component {
	return append([]*Component(nil), r.components...)
}

// Containers returns every registered container in insertion order.
func (r *Registry) Containers() []*Container {
	return append([]*Container(nil), r.containers...)
}

// ContainerByID returns the container registered under id.
func (r *Registry) ContainerByID(id int64) (*Container, bool) {
	ct, ok := r.containerByID[id]
	return ct, ok
}

// Imagefs returns the firmware descriptor singleton, or nil when not loaded.
func (r *Registry) Imagefs() *Imagefs { return r.imagefs }

// Defaults returns the default-selection singleton, or nil when not loaded.
func (r *Registry) Defaults() *Defaults { return r.defaults }

// ExecutionConfig returns the execution-configuration singleton, or nil when not loaded.
func (r *Registry) ExecutionConfig() *ExecutionConfig { return r.execConfig }

// CountByType returns the number of components of one classification.
func (r *Registry) CountByType(t int) int {
	return len(r.byType[t])
}

// CountsByType returns the component count for every defined classification,
// including zero counts.
func (r *Registry) CountsByType() map[int]int {
	counts := make(map[int]int, MaxComponentType)
	for t := MinComponentType; t <= MaxComponentType; t++ {
		counts[t] = len(r.byType[t])
	}
	return counts
}

// TotalCount returns the total number of registered components.
func (r *Registry) TotalCount() int {
	return len(r.components)
}

// Profile returns the named execution profile from the defaults table.
func (d *Defaults) Profile(variant string) (*Profile, bool) {
	switch variant {
	case VariantGeneric:
		return &d.Generic, true
	case VariantQualcomm:
		return &d.Qualcomm, true
	default:
		return nil, false
	}
}

// SortByIDDescending returns a new slice ordered by numeric id descending.
// The sort is stable, so records comparing equal keep their relative order.
func SortByIDDescending(list []*Component) []*Component {
	sorted := append([]*Component(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID > sorted[j].ID
	})
	return sorted
}

// SortByTypeAndIDDescending returns a new slice ordered by type ascending,
// then id descending within each type.
func SortByTypeAndIDDescending(list []*Component) []*Component {
	sorted := append([]*Component(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Type != sorted[j].Type {
			return sorted[i].Type < sorted[j].Type
		}
		return sorted[i].ID > sorted[j].ID
	})
	return sorted
}

// SortByTypeAndName returns a new slice ordered by type ascending, then name
// lexicographic within each type.
func SortByTypeAndName(list []*Component) []*Component {
	sorted := append([]*Component(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Type != sorted[j].Type {
			return sorted[i].Type < sorted[j].Type
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}
