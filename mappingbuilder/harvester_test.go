package mappingbuilder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/ncmbianchi/omim-converter/interfaces"
	"github.com/ncmbianchi/omim-converter/mappingbuilder/entities"
)

// newSearchServer serves canned search pages keyed by offset. Offsets
// without a page return empty items.
func newSearchServer(t *testing.T, pages map[string][]entities.SearchItem, failAtOffset string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			http.NotFound(w, r)
			return
		}

		offset := r.URL.Query().Get("offset")
		if failAtOffset != "" && offset == failAtOffset {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}

		items, ok := pages[offset]
		if !ok {
			items = []entities.SearchItem{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entities.SearchResponse{Items: items}); err != nil {
			t.Errorf("encode page: %v", err)
		}
	}))
}

func TestFetchAllIDsPaginatesUntilEmptyPage(t *testing.T) {
	pages := map[string][]entities.SearchItem{
		"0": {
			{ID: "MONDO:0000001"},
			{ID: "HGNC:1100"}, // wrong prefix, silently dropped
			{ID: "MONDO:0000002"},
		},
		"100": {
			{ID: "MONDO:0000003"},
		},
	}
	ts := newSearchServer(t, pages, "")
	defer ts.Close()

	client := NewClient(ts.URL, 0, 0)
	ids := FetchAllIDs(client, entities.Disease, 100)

	expected := []string{"MONDO:0000001", "MONDO:0000002", "MONDO:0000003"}
	if !reflect.DeepEqual(ids, expected) {
		t.Errorf("Expected %v, got %v", expected, ids)
	}

	for _, id := range ids {
		if !strings.HasPrefix(id, entities.Disease.Prefix) {
			t.Errorf("Identifier %s does not carry the disease prefix", id)
		}
	}
}

func TestFetchAllIDsIsIdempotent(t *testing.T) {
	pages := map[string][]entities.SearchItem{
		"0": {{ID: "MONDO:0000001"}, {ID: "MONDO:0000002"}},
	}
	ts := newSearchServer(t, pages, "")
	defer ts.Close()

	client := NewClient(ts.URL, 0, 0)

	first := FetchAllIDs(client, entities.Disease, 100)
	second := FetchAllIDs(client, entities.Disease, 100)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results across runs, got %v then %v", first, second)
	}
}

func TestFetchAllIDsKeepsPartialResultsOnError(t *testing.T) {
	pages := map[string][]entities.SearchItem{
		"0":   {{ID: "MONDO:0000001"}},
		"100": {{ID: "MONDO:0000002"}},
	}
	ts := newSearchServer(t, pages, "100")
	defer ts.Close()

	client := NewClient(ts.URL, 0, 0)
	ids := FetchAllIDs(client, entities.Disease, 100)

	expected := []string{"MONDO:0000001"}
	if !reflect.DeepEqual(ids, expected) {
		t.Errorf("Expected partial results %v, got %v", expected, ids)
	}
}

func TestHarvestAllRespectsCategoryFlags(t *testing.T) {
	api := &fakeAPI{
		pages: map[string][][]entities.SearchItem{
			entities.Disease.Biolink:   {{{ID: "MONDO:0000001"}}},
			entities.Gene.Biolink:      {{{ID: "HGNC:1100"}}},
			entities.Phenotype.Biolink: {{{ID: "HP:0000118"}}},
		},
	}

	idSet := HarvestAll(api, interfaces.RunOptions{IncludeGenes: true}, 100)

	if _, ok := idSet["disease"]; !ok {
		t.Error("Expected disease identifiers to always be harvested")
	}
	if _, ok := idSet["gene"]; !ok {
		t.Error("Expected gene identifiers when the flag is set")
	}
	if _, ok := idSet["phenotype"]; ok {
		t.Error("Did not expect phenotype identifiers without the flag")
	}
}
