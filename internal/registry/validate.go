package registry

import (
	"fmt"
	"regexp"
)

var (
	md5Pattern    = regexp.MustCompile(`^[a-fA-F0-9]{32}$`)
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
)

// ValidationResult is the exhaustive integrity report for one registry.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Validate runs every structural and referential integrity check over the
// registry and returns the full list of violations. It never short-circuits:
// the caller gets one report covering everything that is wrong.
func (r *Registry) Validate() *ValidationResult {
	var errs []string

	errs = append(errs, r.validateCollections()...)
	errs = append(errs, r.validateComponents()...)
	errs = append(errs, r.validateDefaults()...)

	return &ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// validateCollections checks that the required collections and singletons are present
func (r *Registry) validateCollections() []string {
	var errs []string

	if len(r.components) == 0 {
		errs = append(errs, "no components registered")
	}
	if len(r.containers) == 0 {
		errs = append(errs, "no containers registered")
	}
	if r.imagefs == nil {
		errs = append(errs, "imagefs descriptor not loaded")
	}
	if r.defaults == nil {
		errs = append(errs, "defaults table not loaded")
	}
	if r.execConfig == nil {
		errs = append(errs, "execution config not loaded")
	}

	return errs
}

// validateComponents checks per-component field integrity
func (r *Registry) validateComponents() []string {
	var errs []string

	for _, c := range r.components {
		if c.Name == "" {
			errs = append(errs, fmt.Sprintf("component %d: name is empty", c.ID))
		}
		if c.FileName == "" {
			errs = append(errs, fmt.Sprintf("component %d (%s): file_name is empty", c.ID, c.Name))
		}
		if c.DownloadURL == "" {
			errs = append(errs, fmt.Sprintf("component %d (%s): download_url is empty", c.ID, c.Name))
		}
		if !digitsPattern.MatchString(c.FileSize) {
			errs = append(errs, fmt.Sprintf("component %d (%s): file_size %q is not a string of digits",
				c.ID, c.Name, c.FileSize))
		}
		if !md5Pattern.MatchString(c.FileMD5) {
			errs = append(errs, fmt.Sprintf("component %d (%s): file_md5 %q is not a 32-character hex digest",
				c.ID, c.Name, c.FileMD5))
		}
	}

	return errs
}

// validateDefaults checks that every id referenced by the defaults table resolves
func (r *Registry) validateDefaults() []string {
	if r.defaults == nil {
		return nil
	}

	var errs []string

	named := []struct {
		slot string
		id   int64
	}{
		{"dxvk", r.defaults.DXVK},
		{"vkd3d", r.defaults.VKD3D},
		{"steam_client", r.defaults.SteamClient},
	}
	for _, n := range named {
		if _, ok := r.byID[n.id]; !ok {
			errs = append(errs, fmt.Sprintf("defaults.%s: component id %d is not registered", n.slot, n.id))
		}
	}

	for _, id := range r.defaults.Generic.ComponentIDs {
		if _, ok := r.byID[id]; !ok {
			errs = append(errs, fmt.Sprintf("defaults.generic: component id %d is not registered", id))
		}
	}
	for _, id := range r.defaults.Qualcomm.ComponentIDs {
		if _, ok := r.byID[id]; !ok {
			errs = append(errs, fmt.Sprintf("defaults.qualcomm: component id %d is not registered", id))
		}
	}

	return errs
}
