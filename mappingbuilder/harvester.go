package mappingbuilder

import (
	"strings"

	"github.com/ncmbianchi/omim-converter/interfaces"
	"github.com/ncmbianchi/omim-converter/logging"
	"github.com/ncmbianchi/omim-converter/mappingbuilder/entities"
	"github.com/ncmbianchi/omim-converter/metrics"
)

// FetchAllIDs pages the search endpoint for one category and returns every
// identifier carrying the category's expected prefix. Pagination stops at
// the first empty page, or early on a request failure; whatever was
// accumulated so far is returned either way.
func FetchAllIDs(api interfaces.MonarchAPI, category entities.Category, pageLimit int) []string {
	// Starts non-nil so an empty category serializes as [] rather than null
	all := []string{}
	offset := 0

	for {
		page, err := api.Search(category.Biolink, pageLimit, offset)
		if err != nil {
			logging.Error("Failed to retrieve search page",
				"category", category.Key,
				"offset", offset,
				"error", err,
			)
			break
		}

		if len(page.Items) == 0 {
			break
		}

		for _, item := range page.Items {
			if strings.HasPrefix(item.ID, category.Prefix) {
				all = append(all, item.ID)
			}
		}

		offset += pageLimit
		logging.Info("Retrieved identifiers so far", "category", category.Key, "count", len(all))
		metrics.SearchPagesFetched.WithLabelValues(category.Key).Inc()
	}

	metrics.HarvestedIDs.WithLabelValues(category.Key).Set(float64(len(all)))
	return all
}

// HarvestAll harvests the disease category plus any optionally requested
// categories, keyed by category name.
func HarvestAll(api interfaces.MonarchAPI, opts interfaces.RunOptions, pageLimit int) entities.CategoryIDSet {
	idSet := entities.CategoryIDSet{
		entities.Disease.Key: FetchAllIDs(api, entities.Disease, pageLimit),
	}

	if opts.IncludeGenes {
		logging.Info("Fetching gene identifiers (this might take a while)...")
		idSet[entities.Gene.Key] = FetchAllIDs(api, entities.Gene, pageLimit)
	}

	if opts.IncludePhenotypes {
		logging.Info("Fetching phenotype identifiers...")
		idSet[entities.Phenotype.Key] = FetchAllIDs(api, entities.Phenotype, pageLimit)
	}

	return idSet
}
