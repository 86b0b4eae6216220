package mappingbuilder

import (
	"fmt"

	"github.com/ncmbianchi/omim-converter/mappingbuilder/entities"
)

// BuildReverseMapping inverts a forward mapping, keying each entry by its
// OMIM identifier. When several Monarch ids share one OMIM id the last one
// processed wins; callers surface duplicates through the quality report.
func BuildReverseMapping(forward entities.Mapping) (entities.ReverseMapping, error) {
	reverse := make(entities.ReverseMapping, len(forward))

	for monarchID, entry := range forward {
		if entry.OmimID == "" {
			return nil, fmt.Errorf("mapping entry %s has no omimId", monarchID)
		}

		reverse[entry.OmimID] = entities.ReverseEntry{
			MonarchID: monarchID,
			Name:      entry.Name,
			Category:  entry.Category,
		}
	}

	return reverse, nil
}
