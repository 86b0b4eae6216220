package mappingbuilder

import (
	"fmt"
	"sync/atomic"

	"github.com/ncmbianchi/omim-converter/mappingbuilder/entities"
)

// fakeAPI is an in-memory MonarchAPI for builder tests.
type fakeAPI struct {
	// pages holds successive search pages per biolink category; an absent
	// category serves empty pages
	pages map[string][][]entities.SearchItem
	// records holds entity detail responses; an absent id fails the fetch
	records map[string]*entities.EntityRecord

	searchCalls atomic.Int64
	entityCalls atomic.Int64
}

func (f *fakeAPI) Search(biolinkCategory string, limit, offset int) (*entities.SearchResponse, error) {
	f.searchCalls.Add(1)

	pages := f.pages[biolinkCategory]
	pageIndex := offset / limit
	if pageIndex >= len(pages) {
		return &entities.SearchResponse{Items: []entities.SearchItem{}}, nil
	}
	return &entities.SearchResponse{Items: pages[pageIndex]}, nil
}

func (f *fakeAPI) Entity(id string) (*entities.EntityRecord, error) {
	f.entityCalls.Add(1)

	record, ok := f.records[id]
	if !ok {
		return nil, fmt.Errorf("no record for %s", id)
	}
	return record, nil
}
