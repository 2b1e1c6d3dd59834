package sources

import (
	"fmt"

	"github.com/vinotek/catalog-builder/internal/config"
	"github.com/vinotek/catalog-builder/internal/logger"
	"github.com/vinotek/catalog-builder/internal/registry"
)

// Loader populates a registry from the configured source files.
type Loader struct {
	cfg *config.Config
}

// NewLoader creates a loader for the given configuration.
func NewLoader(cfg *config.Config) *Loader {
	return &Loader{cfg: cfg}
}

// Load performs the load phase of one build pass: component records from the
// machine catalog first, then the hand-maintained overrides, then containers
// and the reference singletons. The returned registry is fully populated and
// ready for validation; duplicate component ids are resolved first-wins
// during registration.
func (l *Loader) Load() (*registry.Registry, error) {
	reg := registry.New(registry.Options{
		CDNBaseURL: l.cfg.CDNBaseURL,
		LogoURL:    l.cfg.LogoURL,
	})

	if err := l.loadComponents(reg); err != nil {
		return nil, err
	}
	if err := l.loadContainers(reg); err != nil {
		return nil, err
	}
	if err := l.loadSingletons(reg); err != nil {
		return nil, err
	}

	return reg, nil
}

// loadComponents merges catalog and override records into the registry
func (l *Loader) loadComponents(reg *registry.Registry) error {
	catalog, err := LoadCatalog(l.cfg.Sources.Catalog)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	records := catalog
	if l.cfg.Sources.Overrides != "" {
		overrides, err := LoadOverrides(l.cfg.Sources.Overrides)
		if err != nil {
			return fmt.Errorf("failed to load overrides: %w", err)
		}
		records = append(records, overrides...)
		logger.Infof("Loaded %d catalog records and %d override records", len(catalog), len(overrides))
	} else {
		logger.Infof("Loaded %d catalog records (no override file configured)", len(catalog))
	}

	registered := 0
	for _, c := range records {
		if reg.AddComponent(c) {
			registered++
		}
	}
	if dropped := len(records) - registered; dropped > 0 {
		logger.Warnf("Discarded %d duplicate component record(s) during merge", dropped)
	}

	return nil
}

// loadContainers registers the container descriptor list
func (l *Loader) loadContainers(reg *registry.Registry) error {
	containers, err := LoadContainers(l.cfg.Sources.Containers)
	if err != nil {
		return fmt.Errorf("failed to load containers: %w", err)
	}

	for _, ct := range containers {
		reg.AddContainer(ct)
	}

	return nil
}

// loadSingletons installs the three reference singletons
func (l *Loader) loadSingletons(reg *registry.Registry) error {
	fs, err := LoadImagefs(l.cfg.Sources.Imagefs)
	if err != nil {
		return fmt.Errorf("failed to load imagefs descriptor: %w", err)
	}
	reg.SetImagefs(fs)

	defaults, err := LoadDefaults(l.cfg.Sources.Defaults)
	if err != nil {
		return fmt.Errorf("failed to load defaults table: %w", err)
	}
	reg.SetDefaults(defaults)

	execCfg, err := LoadExecutionConfig(l.cfg.Sources.ExecutionConfig)
	if err != nil {
		return fmt.Errorf("failed to load execution config: %w", err)
	}
	reg.SetExecutionConfig(execCfg)

	return nil
}
