// Package interfaces defines core abstractions for the omim-converter
// pipeline to improve testability and separation of concerns.
package interfaces

import (
	"time"

	"github.com/ncmbianchi/omim-converter/mappingbuilder/entities"
)

// MappingQualityReport summarizes integrity issues found in a freshly built
// forward mapping.
type MappingQualityReport struct {
	DuplicateOmimIDs   []string       // OMIM ids claimed by more than one Monarch id
	EntriesWithoutName int            // entries with an empty display name
	CountByCategory    map[string]int // forward entries per category
}

// MonarchAPI defines the contract for talking to the Monarch Initiative
// HTTP API. Implementations are expected to apply their own politeness
// throttling between calls.
type MonarchAPI interface {
	// Search returns one page of search results for a biolink category.
	Search(biolinkCategory string, limit, offset int) (*entities.SearchResponse, error)

	// Entity returns the detail record for one Monarch identifier.
	Entity(id string) (*entities.EntityRecord, error)
}

// RunOptions selects which categories a pipeline run processes beyond the
// always-included disease category.
type RunOptions struct {
	IncludeGenes      bool
	IncludePhenotypes bool
}

// Pipeline defines the contract for the harvest-build-reverse pipeline.
type Pipeline interface {
	// Run harvests identifiers, builds the forward mapping, derives the
	// reverse mapping, and persists all three files.
	Run(opts RunOptions) error

	// ReverseOnly re-derives the reverse mapping from the existing forward
	// mapping file without any network access.
	ReverseOnly() error
}

// RunStore defines the contract for run-state storage. It provides
// thread-safe access to the latest run statistics and guards against
// overlapping runs.
type RunStore interface {
	GetRunStats() entities.RunStats
	GetLastRun() time.Time
	RecordRun(stats entities.RunStats)

	BeginRun() bool
	EndRun()
	IsRunning() bool
}

// MappingValidator defines the contract for mapping integrity checks.
type MappingValidator interface {
	// ValidateIDSet checks that every harvested identifier carries its
	// category's expected prefix.
	ValidateIDSet(idSet entities.CategoryIDSet) error

	// ReportMappingQuality collects non-fatal quality findings for a
	// forward mapping.
	ReportMappingQuality(forward entities.Mapping) *MappingQualityReport
}

// Scheduler defines the contract for the recurring-run mode.
type Scheduler interface {
	Start() error
	Stop()
}
