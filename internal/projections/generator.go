package projections

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/vinotek/catalog-builder/internal/registry"
)

// Fixed envelope values shared by every document.
const (
	statusCode = 200
	statusMsg  = "Success"
)

// Fixed paging values of the component-list document.
const (
	componentListPage     = 1
	componentListPageSize = 10
)

// Sentinel errors for the fail-hard reference lookups.
var (
	// ErrUnresolvedDefault is returned when a named default slot references
	// an unregistered component id.
	ErrUnresolvedDefault = errors.New("default component id is not registered")

	// ErrContainerNotFound is returned when the defaults table references an
	// unregistered container id.
	ErrContainerNotFound = errors.New("container id is not registered")
)

// Generator produces the output documents for one build run. The registry
// must be frozen (validated, no further registrations) before generation
// starts; every generator method is then a pure read, so methods may be
// invoked concurrently.
type Generator struct {
	reg       *registry.Registry
	timestamp string
}

// Option is a functional option for configuring the Generator.
type Option func(*Generator)

// WithTimestamp pins the document timestamp, mainly for reproducible builds
// and tests. The default is the wall clock at generator construction.
func WithTimestamp(t time.Time) Option {
	return func(g *Generator) {
		g.timestamp = strconv.FormatInt(t.Unix(), 10)
	}
}

// NewGenerator creates a generator over a frozen registry. All documents
// generated by one Generator share one timestamp.
func NewGenerator(reg *registry.Registry, opts ...Option) *Generator {
	g := &Generator{
		reg:       reg,
		timestamp: strconv.FormatInt(time.Now().Unix(), 10),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// newDocument wraps data in the shared envelope.
func (g *Generator) newDocument(data any) *Document {
	return &Document{
		Code: statusCode,
		Msg:  statusMsg,
		Data: data,
		Time: g.timestamp,
	}
}

// ManifestData is the payload of one per-type manifest document.
type ManifestData struct {
	Type       int             `json:"type"`
	Count      int             `json:"count"`
	Components []manifestEntry `json:"components"`
}

// Manifest generates the per-type manifest: every component of the given
// classification, ordered by id descending.
func (g *Generator) Manifest(typ int) *Document {
	components := registry.SortByIDDescending(g.reg.ByType(typ))

	entries := make([]manifestEntry, 0, len(components))
	for _, c := range components {
		entries = append(entries, newManifestEntry(c))
	}

	return g.newDocument(&ManifestData{
		Type:       typ,
		Count:      len(entries),
		Components: entries,
	})
}

// IndexCategory is one per-type entry of the index document.
type IndexCategory struct {
	Type        int    `json:"type"`
	Name        string `json:"name"`
	Count       int    `json:"count"`
	ManifestURL string `json:"manifest_url"`
}

// IndexData is the payload of the index document.
type IndexData struct {
	Categories []IndexCategory `json:"categories"`
	Total      int             `json:"total"`
}

// Index generates the aggregate index: one category per classification in
// type order 1..7, with counts and manifest URLs.
func (g *Generator) Index() *Document {
	cdnBase := g.reg.Options().CDNBaseURL

	categories := make([]IndexCategory, 0, registry.MaxComponentType)
	for typ := registry.MinComponentType; typ <= registry.MaxComponentType; typ++ {
		categories = append(categories, IndexCategory{
			Type:        typ,
			Name:        registry.TypeName(typ),
			Count:       g.reg.CountByType(typ),
			ManifestURL: fmt.Sprintf("%s/manifest_%d.json", cdnBase, typ),
		})
	}

	return g.newDocument(&IndexData{
		Categories: categories,
		Total:      g.reg.TotalCount(),
	})
}

// DownloadsData is the payload of the download-list document.
type DownloadsData struct {
	Total     int             `json:"total"`
	Downloads []downloadEntry `json:"downloads"`
}

// Downloads generates the flat download list: every component, ordered by
// type ascending then name lexicographic.
func (g *Generator) Downloads() *Document {
	components := registry.SortByTypeAndName(g.reg.All())

	entries := make([]downloadEntry, 0, len(components))
	for _, c := range components {
		entries = append(entries, newDownloadEntry(c))
	}

	return g.newDocument(&DownloadsData{
		Total:     len(entries),
		Downloads: entries,
	})
}

// AllComponentsData is the payload of the all-component document.
type AllComponentsData struct {
	Total      int             `json:"total"`
	Components []manifestEntry `json:"components"`
}

// AllComponentList generates the full component list: every component,
// ordered by type ascending then id descending.
func (g *Generator) AllComponentList() *Document {
	components := registry.SortByTypeAndIDDescending(g.reg.All())

	entries := make([]manifestEntry, 0, len(components))
	for _, c := range components {
		entries = append(entries, newManifestEntry(c))
	}

	return g.newDocument(&AllComponentsData{
		Total:      len(entries),
		Components: entries,
	})
}

// ComponentListData is the payload of the paged component-list document.
type ComponentListData struct {
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	Total      int         `json:"total"`
	Components []listEntry `json:"components"`
}

// ComponentList generates the GPU driver list (type 1 only, id descending)
// with the fixed paging header the consumer expects.
func (g *Generator) ComponentList() *Document {
	components := registry.SortByIDDescending(g.reg.ByType(registry.TypeGPUDriver))

	entries := make([]listEntry, 0, len(components))
	for _, c := range components {
		entries = append(entries, newListEntry(c))
	}

	return g.newDocument(&ComponentListData{
		Page:       componentListPage,
		PageSize:   componentListPageSize,
		Total:      len(entries),
		Components: entries,
	})
}
