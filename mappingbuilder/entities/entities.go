// Package entities defines the data types exchanged with the Monarch
// Initiative API and the mapping structures persisted to disk.
package entities

import "time"

// Category describes one harvestable Monarch category: the key used in the
// persisted files, the biolink class sent to the search endpoint, and the
// identifier prefix valid entries must carry.
type Category struct {
	Key     string
	Biolink string
	Prefix  string
}

var (
	Disease   = Category{Key: "disease", Biolink: "biolink:Disease", Prefix: "MONDO:"}
	Gene      = Category{Key: "gene", Biolink: "biolink:Gene", Prefix: "HGNC:"}
	Phenotype = Category{Key: "phenotype", Biolink: "biolink:PhenotypicFeature", Prefix: "HP:"}
)

// AllCategories lists every category in processing order.
var AllCategories = []Category{Disease, Gene, Phenotype}

// CategoryByKey returns the category for a file key like "disease".
func CategoryByKey(key string) (Category, bool) {
	for _, c := range AllCategories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryIDSet maps a category key to the identifiers harvested for it.
// Persisted as monarch-ids.json.
type CategoryIDSet map[string][]string

// SearchItem is one result row of the search endpoint. Only the identifier
// matters for harvesting.
type SearchItem struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// SearchResponse is one page of the search endpoint.
type SearchResponse struct {
	Items []SearchItem `json:"items"`
	Total int          `json:"total,omitempty"`
}

// EntityRecord is the subset of the entity endpoint response the mapping
// builder needs. Both name and xref may be null upstream; null decodes to
// the zero value here.
type EntityRecord struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Xref []string `json:"xref"`
}

// MappingEntry is one forward mapping record, keyed externally by the
// Monarch identifier. OmimID carries no "OMIM:" prefix.
type MappingEntry struct {
	OmimID   string `json:"omimId"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Mapping is the forward Monarch-to-OMIM table, persisted as
// monarch-omim.json.
type Mapping map[string]MappingEntry

// ReverseEntry is one reverse mapping record, keyed externally by the OMIM
// identifier.
type ReverseEntry struct {
	MonarchID string `json:"monarchId"`
	Name      string `json:"name"`
	Category  string `json:"category"`
}

// ReverseMapping is the OMIM-to-Monarch table, persisted as
// omim-monarch.json.
type ReverseMapping map[string]ReverseEntry

// RunStats summarizes one completed pipeline run.
type RunStats struct {
	IDCounts         map[string]int `json:"idCounts"`
	ForwardEntries   int            `json:"forwardEntries"`
	ReverseEntries   int            `json:"reverseEntries"`
	DuplicateOmimIDs int            `json:"duplicateOmimIds"`
	StartedAt        time.Time      `json:"startedAt"`
	FinishedAt       time.Time      `json:"finishedAt"`
}
