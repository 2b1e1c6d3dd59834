// Package builder orchestrates one complete build pass: load sources,
// validate the registry, generate every document, write the output tree.
package builder

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vinotek/catalog-builder/internal/config"
	"github.com/vinotek/catalog-builder/internal/logger"
	"github.com/vinotek/catalog-builder/internal/output"
	"github.com/vinotek/catalog-builder/internal/projections"
	"github.com/vinotek/catalog-builder/internal/registry"
	"github.com/vinotek/catalog-builder/internal/sources"
)

// Summary reports what one build pass produced.
type Summary struct {
	RunID      string
	Components int
	Containers int
	Documents  int
	Duration   time.Duration
}

// Run executes one build pass. It either writes the complete document set or
// returns an error; there is no partial success and no retry.
func Run(cfg *config.Config) (*Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger.Infof("Starting catalog build run %s", runID)

	reg, err := sources.NewLoader(cfg).Load()
	if err != nil {
		return nil, fmt.Errorf("load phase failed: %w", err)
	}

	if result := reg.Validate(); !result.Valid {
		for _, violation := range result.Errors {
			logger.Errorf("Validation: %s", violation)
		}
		return nil, fmt.Errorf("registry validation failed with %d violation(s)", len(result.Errors))
	}

	// The registry is frozen from here on; generators are pure reads and run
	// concurrently.
	gen := projections.NewGenerator(reg)
	writer := output.NewWriter(cfg.Output.Dir)

	documents, err := writeDocuments(gen, writer)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:      runID,
		Components: reg.TotalCount(),
		Containers: len(reg.Containers()),
		Documents:  documents,
		Duration:   time.Since(start),
	}
	logger.Infof("Build run %s complete: %d components, %d containers, %d documents written to %s in %s",
		summary.RunID, summary.Components, summary.Containers, summary.Documents,
		writer.Dir(), summary.Duration.Round(time.Millisecond))

	return summary, nil
}

// writeDocuments generates and writes the full document set concurrently,
// returning the number of documents written.
func writeDocuments(gen *projections.Generator, writer *output.Writer) (int, error) {
	var eg errgroup.Group
	count := 0

	for typ := registry.MinComponentType; typ <= registry.MaxComponentType; typ++ {
		count++
		eg.Go(func() error {
			return writer.WriteDocument(output.ManifestFile(typ), gen.Manifest(typ))
		})
	}

	plain := []struct {
		name string
		doc  func() any
	}{
		{output.IndexFile, func() any { return gen.Index() }},
		{output.DownloadsFile, func() any { return gen.Downloads() }},
		{output.AllComponentsFile, func() any { return gen.AllComponentList() }},
		{output.ComponentListFile, func() any { return gen.ComponentList() }},
		{output.ImagefsFile, func() any { return gen.ImagefsDetail() }},
	}
	for _, job := range plain {
		count++
		eg.Go(func() error {
			return writer.WriteDocument(job.name, job.doc())
		})
	}

	count++
	eg.Go(func() error {
		doc, err := gen.DefaultComponent()
		if err != nil {
			return err
		}
		return writer.WriteDocument(output.DefaultComponentFile, doc)
	})

	variants := []struct {
		name    string
		variant string
	}{
		{output.ExecuteGenericFile, registry.VariantGeneric},
		{output.ExecuteQualcommFile, registry.VariantQualcomm},
	}
	for _, job := range variants {
		count++
		eg.Go(func() error {
			doc, err := gen.ExecuteScript(job.variant)
			if err != nil {
				return err
			}
			return writer.WriteDocument(job.name, doc)
		})
	}

	if err := eg.Wait(); err != nil {
		return 0, fmt.Errorf("document generation failed: %w", err)
	}

	return count, nil
}
