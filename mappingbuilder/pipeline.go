package mappingbuilder

import (
	"fmt"
	"time"

	"github.com/ncmbianchi/omim-converter/interfaces"
	"github.com/ncmbianchi/omim-converter/logging"
	"github.com/ncmbianchi/omim-converter/mappingbuilder/entities"
	"github.com/ncmbianchi/omim-converter/metrics"
	"github.com/ncmbianchi/omim-converter/validation"
)

// Compile-time check to ensure MappingPipeline implements Pipeline
var _ interfaces.Pipeline = (*MappingPipeline)(nil)

// MappingPipeline runs the three pipeline stages in sequence: harvest
// identifiers, build the forward mapping, derive the reverse mapping.
type MappingPipeline struct {
	api       interfaces.MonarchAPI
	store     interfaces.RunStore
	validator interfaces.MappingValidator
	dataDir   string
	pageLimit int
}

// NewMappingPipeline creates a pipeline with injected dependencies.
func NewMappingPipeline(api interfaces.MonarchAPI, store interfaces.RunStore, dataDir string, pageLimit int) *MappingPipeline {
	return &MappingPipeline{
		api:       api,
		store:     store,
		validator: validation.NewMappingValidator(),
		dataDir:   dataDir,
		pageLimit: pageLimit,
	}
}

// Run executes the full pipeline and persists all three files. Per-item
// request failures degrade to partial output; file errors abort the run.
func (p *MappingPipeline) Run(opts interfaces.RunOptions) error {
	if !p.store.BeginRun() {
		logging.Info("Run already in progress, skipping...")
		return nil
	}
	defer p.store.EndRun()

	start := time.Now()
	logging.Info("Starting mapping update",
		"genes", opts.IncludeGenes,
		"phenotypes", opts.IncludePhenotypes,
	)

	idSet := HarvestAll(p.api, opts, p.pageLimit)

	if err := p.validator.ValidateIDSet(idSet); err != nil {
		logging.Error("Harvested identifiers failed validation", "error", err)
		return fmt.Errorf("identifier validation failed: %w", err)
	}

	if err := SaveIDSet(p.dataDir, idSet); err != nil {
		logging.Error("Failed to save identifiers", "error", err)
		return fmt.Errorf("failed to save identifiers: %w", err)
	}

	forward := BuildMapping(p.api, idSet, opts)

	report := p.validator.ReportMappingQuality(forward)
	logQualityReport(report)

	if err := SaveMapping(p.dataDir, forward); err != nil {
		logging.Error("Failed to update mappings", "error", err)
		return fmt.Errorf("failed to update mappings: %w", err)
	}

	reverse, err := BuildReverseMapping(forward)
	if err != nil {
		logging.Error("Failed to create reverse mappings", "error", err)
		return fmt.Errorf("failed to create reverse mappings: %w", err)
	}

	if err := SaveReverseMapping(p.dataDir, reverse); err != nil {
		logging.Error("Failed to save reverse mappings", "error", err)
		return fmt.Errorf("failed to save reverse mappings: %w", err)
	}

	finished := time.Now()
	p.store.RecordRun(entities.RunStats{
		IDCounts:         idCounts(idSet),
		ForwardEntries:   len(forward),
		ReverseEntries:   len(reverse),
		DuplicateOmimIDs: len(report.DuplicateOmimIDs),
		StartedAt:        start,
		FinishedAt:       finished,
	})

	metrics.ReverseEntries.Set(float64(len(reverse)))
	metrics.RunsTotal.Inc()
	metrics.LastRunDuration.Set(finished.Sub(start).Seconds())

	logging.Info("Mapping update completed",
		"duration", finished.Sub(start).String(),
		"forward_entries", len(forward),
		"reverse_entries", len(reverse),
	)

	return nil
}

// ReverseOnly re-derives the reverse mapping from the forward mapping file
// on disk. No network access happens on this path.
func (p *MappingPipeline) ReverseOnly() error {
	forward, err := LoadMapping(p.dataDir)
	if err != nil {
		logging.Error("Failed to load forward mapping", "error", err)
		return fmt.Errorf("failed to load forward mapping: %w", err)
	}

	reverse, err := BuildReverseMapping(forward)
	if err != nil {
		logging.Error("Failed to create reverse mappings", "error", err)
		return fmt.Errorf("failed to create reverse mappings: %w", err)
	}

	if err := SaveReverseMapping(p.dataDir, reverse); err != nil {
		logging.Error("Failed to save reverse mappings", "error", err)
		return fmt.Errorf("failed to save reverse mappings: %w", err)
	}

	return nil
}

func idCounts(idSet entities.CategoryIDSet) map[string]int {
	counts := make(map[string]int, len(idSet))
	for category, ids := range idSet {
		counts[category] = len(ids)
	}
	return counts
}

// logQualityReport surfaces non-fatal quality findings after a build.
func logQualityReport(report *interfaces.MappingQualityReport) {
	if len(report.DuplicateOmimIDs) > 0 {
		logging.Warn("Duplicate OMIM ids detected, reverse mapping keeps the last entry per id",
			"total", len(report.DuplicateOmimIDs),
			"omim_ids", report.DuplicateOmimIDs,
		)
	}

	if report.EntriesWithoutName > 0 {
		logging.Warn("Mapping entries without a display name",
			"count", report.EntriesWithoutName,
		)
	}

	for category, count := range report.CountByCategory {
		logging.Info("Mapped entries", "category", category, "count", count)
	}
}
