package mappingbuilder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ncmbianchi/omim-converter/data"
	"github.com/ncmbianchi/omim-converter/interfaces"
	"github.com/ncmbianchi/omim-converter/mappingbuilder/entities"
)

// newAPIServer serves a one-page disease search plus entity records, and
// counts every request it receives.
func newAPIServer(t *testing.T, items []entities.SearchItem, records map[string]entities.EntityRecord, requests *atomic.Int64) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/search":
			page := entities.SearchResponse{}
			if r.URL.Query().Get("offset") == "0" {
				page.Items = items
			}
			_ = json.NewEncoder(w).Encode(page)
		case strings.HasPrefix(r.URL.Path, "/entity/"):
			id := strings.TrimPrefix(r.URL.Path, "/entity/")
			record, ok := records[id]
			if !ok {
				http.NotFound(w, r)
				return
			}
			_ = json.NewEncoder(w).Encode(record)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestPipelineRunWritesAllThreeFiles(t *testing.T) {
	var requests atomic.Int64
	ts := newAPIServer(t,
		[]entities.SearchItem{{ID: "MONDO:0007947"}},
		map[string]entities.EntityRecord{
			"MONDO:0007947": {ID: "MONDO:0007947", Name: "Marfan syndrome", Xref: []string{"OMIM:181500"}},
		},
		&requests,
	)
	defer ts.Close()

	dir := t.TempDir()
	store := data.NewRunContainer()
	pipeline := NewMappingPipeline(NewClient(ts.URL, 0, 0), store, dir, 100)

	if err := pipeline.Run(interfaces.RunOptions{}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, name := range []string{IDSetFileName, MappingFileName, ReverseFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
		}
	}

	forward, err := LoadMapping(dir)
	if err != nil {
		t.Fatalf("load forward mapping: %v", err)
	}
	entry := forward["MONDO:0007947"]
	if entry.OmimID != "181500" || entry.Name != "Marfan syndrome" || entry.Category != "disease" {
		t.Errorf("Unexpected forward entry: %+v", entry)
	}

	stats := store.GetRunStats()
	if stats.ForwardEntries != 1 || stats.ReverseEntries != 1 {
		t.Errorf("Expected run stats to record one entry each way, got %+v", stats)
	}
	if stats.IDCounts["disease"] != 1 {
		t.Errorf("Expected one harvested disease id, got %+v", stats.IDCounts)
	}
	if store.GetLastRun().IsZero() {
		t.Error("Expected the last run time to be recorded")
	}
}

func TestPipelineReverseOnlyMakesNoNetworkCalls(t *testing.T) {
	var requests atomic.Int64
	ts := newAPIServer(t, nil, nil, &requests)
	defer ts.Close()

	dir := t.TempDir()
	forward := entities.Mapping{
		"MONDO:0007947": {OmimID: "181500", Name: "Marfan syndrome", Category: "disease"},
	}
	if err := SaveMapping(dir, forward); err != nil {
		t.Fatalf("seed forward mapping: %v", err)
	}

	pipeline := NewMappingPipeline(NewClient(ts.URL, 0, 0), data.NewRunContainer(), dir, 100)
	if err := pipeline.ReverseOnly(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if requests.Load() != 0 {
		t.Errorf("Expected zero network calls, got %d", requests.Load())
	}

	var reverse entities.ReverseMapping
	if err := readJSONFile(filepath.Join(dir, ReverseFileName), &reverse); err != nil {
		t.Fatalf("load reverse mapping: %v", err)
	}
	if reverse["181500"].MonarchID != "MONDO:0007947" {
		t.Errorf("Unexpected reverse entry: %+v", reverse["181500"])
	}
}

func TestPipelineReverseOnlyFailsWithoutForwardFile(t *testing.T) {
	pipeline := NewMappingPipeline(NewClient("http://127.0.0.1:0", 0, 0), data.NewRunContainer(), t.TempDir(), 100)

	if err := pipeline.ReverseOnly(); err == nil {
		t.Fatal("Expected an error when the forward mapping file is missing")
	}
}

func TestPipelineRunSkipsWhenAlreadyRunning(t *testing.T) {
	var requests atomic.Int64
	ts := newAPIServer(t, nil, nil, &requests)
	defer ts.Close()

	store := data.NewRunContainer()
	if !store.BeginRun() {
		t.Fatal("expected to acquire the run slot")
	}
	defer store.EndRun()

	pipeline := NewMappingPipeline(NewClient(ts.URL, 0, 0), store, t.TempDir(), 100)
	if err := pipeline.Run(interfaces.RunOptions{}); err != nil {
		t.Fatalf("Expected a concurrent run to be skipped without error, got %v", err)
	}

	if requests.Load() != 0 {
		t.Errorf("Expected the skipped run to make no requests, got %d", requests.Load())
	}
}

func TestPipelineRunFailsOnUnwritableDataDir(t *testing.T) {
	var requests atomic.Int64
	ts := newAPIServer(t, []entities.SearchItem{{ID: "MONDO:0000001"}},
		map[string]entities.EntityRecord{
			"MONDO:0000001": {Name: "d", Xref: []string{"OMIM:100100"}},
		}, &requests)
	defer ts.Close()

	// A regular file where the data directory should be makes MkdirAll fail
	blocked := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0644); err != nil {
		t.Fatalf("write blocker file: %v", err)
	}

	pipeline := NewMappingPipeline(NewClient(ts.URL, 0, 0), data.NewRunContainer(), filepath.Join(blocked, "data"), 100)
	if err := pipeline.Run(interfaces.RunOptions{}); err == nil {
		t.Fatal("Expected a fatal error for an unwritable data directory")
	}
}
