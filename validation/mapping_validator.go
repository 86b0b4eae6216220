// Package validation provides integrity checks for harvested identifiers
// and built mappings.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ncmbianchi/omim-converter/interfaces"
	"github.com/ncmbianchi/omim-converter/mappingbuilder/entities"
)

// Compile-time check to ensure MappingValidatorImpl implements the
// MappingValidator interface
var _ interfaces.MappingValidator = (*MappingValidatorImpl)(nil)

// MappingValidatorImpl implements the interfaces.MappingValidator interface
type MappingValidatorImpl struct{}

// NewMappingValidator creates a new mapping validator
func NewMappingValidator() interfaces.MappingValidator {
	return &MappingValidatorImpl{}
}

// ValidateIDSet checks that every category key is known and every harvested
// identifier carries its category's expected prefix.
func (v *MappingValidatorImpl) ValidateIDSet(idSet entities.CategoryIDSet) error {
	for key, ids := range idSet {
		category, ok := entities.CategoryByKey(key)
		if !ok {
			return fmt.Errorf("unknown category: %s", key)
		}

		for _, id := range ids {
			if !strings.HasPrefix(id, category.Prefix) {
				return fmt.Errorf("identifier %s does not match the %s prefix %s", id, key, category.Prefix)
			}
		}
	}

	return nil
}

// ReportMappingQuality collects non-fatal findings for a forward mapping:
// OMIM ids claimed by more than one Monarch id (reverse inversion keeps
// only one of them), entries without a display name, and per-category
// counts.
func (v *MappingValidatorImpl) ReportMappingQuality(forward entities.Mapping) *interfaces.MappingQualityReport {
	report := &interfaces.MappingQualityReport{
		CountByCategory: make(map[string]int),
	}

	omimCount := make(map[string]int)
	for _, entry := range forward {
		omimCount[entry.OmimID]++
		report.CountByCategory[entry.Category]++

		if entry.Name == "" {
			report.EntriesWithoutName++
		}
	}

	for omimID, count := range omimCount {
		if count > 1 {
			report.DuplicateOmimIDs = append(report.DuplicateOmimIDs, omimID)
		}
	}
	sort.Strings(report.DuplicateOmimIDs)

	return report
}
