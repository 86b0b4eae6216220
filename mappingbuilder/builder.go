package mappingbuilder

import (
	"strings"

	"github.com/ncmbianchi/omim-converter/interfaces"
	"github.com/ncmbianchi/omim-converter/logging"
	"github.com/ncmbianchi/omim-converter/mappingbuilder/entities"
	"github.com/ncmbianchi/omim-converter/metrics"
	"golang.org/x/text/unicode/norm"
)

const omimPrefix = "OMIM:"

// progressInterval controls how often BuildMapping logs per-category progress.
const progressInterval = 100

// categoriesFor returns the categories a run processes. Disease is always
// included; genes and phenotypes only on request.
func categoriesFor(opts interfaces.RunOptions) []entities.Category {
	categories := []entities.Category{entities.Disease}
	if opts.IncludeGenes {
		categories = append(categories, entities.Gene)
	}
	if opts.IncludePhenotypes {
		categories = append(categories, entities.Phenotype)
	}
	return categories
}

// BuildMapping fetches the detail record of every harvested identifier and
// collects the forward Monarch-to-OMIM mapping. Identifiers without an OMIM
// cross-reference are omitted; per-identifier request failures are logged
// and skipped.
func BuildMapping(api interfaces.MonarchAPI, idSet entities.CategoryIDSet, opts interfaces.RunOptions) entities.Mapping {
	mapping := make(entities.Mapping)

	for _, category := range categoriesFor(opts) {
		ids, ok := idSet[category.Key]
		if !ok {
			logging.Warn("No identifiers found for category", "category", category.Key)
			continue
		}

		logging.Info("Processing category", "category", category.Key, "total", len(ids))

		for i, monarchID := range ids {
			record, err := api.Entity(monarchID)
			if err != nil {
				logging.Error("Failed to process identifier", "id", monarchID, "error", err)
				continue
			}

			if omimID := firstOmimXref(record.Xref); omimID != "" {
				mapping[monarchID] = entities.MappingEntry{
					OmimID:   omimID,
					Name:     norm.NFC.String(record.Name),
					Category: category.Key,
				}
			}

			if (i+1)%progressInterval == 0 {
				logging.Info("Build progress",
					"category", category.Key,
					"processed", i+1,
					"total", len(ids),
				)
			}
		}
	}

	metrics.MappingEntries.Set(float64(len(mapping)))
	return mapping
}

// firstOmimXref returns the first OMIM cross-reference with its prefix
// stripped, or "" when the record has none.
func firstOmimXref(xrefs []string) string {
	for _, ref := range xrefs {
		if strings.HasPrefix(ref, omimPrefix) {
			return strings.TrimPrefix(ref, omimPrefix)
		}
	}
	return ""
}
