// Package metrics provides Prometheus metrics for the mapping pipeline:
//   - monarch_api_requests_total / monarch_api_request_errors_total:
//     counters labelled by endpoint (search, entity)
//   - monarch_search_pages_fetched_total: pages per category
//   - monarch_harvested_ids: gauge per category
//   - mapping_entries / reverse_mapping_entries: sizes of the last build
//   - mapping_runs_total / mapping_last_run_duration_seconds: run tracking
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monarch_api_requests_total",
			Help: "Total requests sent to the Monarch API",
		},
		[]string{"endpoint"},
	)

	APIRequestErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monarch_api_request_errors_total",
			Help: "Failed Monarch API requests",
		},
		[]string{"endpoint"},
	)

	SearchPagesFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monarch_search_pages_fetched_total",
			Help: "Search result pages fetched per category",
		},
		[]string{"category"},
	)

	HarvestedIDs = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "monarch_harvested_ids",
			Help: "Identifiers harvested in the last run per category",
		},
		[]string{"category"},
	)

	MappingEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mapping_entries",
			Help: "Entries in the last built forward mapping",
		},
	)

	ReverseEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reverse_mapping_entries",
			Help: "Entries in the last built reverse mapping",
		},
	)

	RunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mapping_runs_total",
			Help: "Completed pipeline runs",
		},
	)

	LastRunDuration = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mapping_last_run_duration_seconds",
			Help: "Duration of the last completed pipeline run",
		},
	)
)

func init() {
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestErrors)
	prometheus.MustRegister(SearchPagesFetched)
	prometheus.MustRegister(HarvestedIDs)
	prometheus.MustRegister(MappingEntries)
	prometheus.MustRegister(ReverseEntries)
	prometheus.MustRegister(RunsTotal)
	prometheus.MustRegister(LastRunDuration)
}
