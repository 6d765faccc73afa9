package observability

import (
	"net/http"

	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Document kinds used as the "kind" label
const (
	KindProject  = "project"
	KindSolution = "solution"
)

var (
	// DocumentsLoadedTotal counts document loads by kind and status
	DocumentsLoadedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "govcx_documents_loaded_total",
			Help: "Total number of parsed project and solution documents by status",
		},
		[]string{"kind", "status"}, // success, failure
	)

	// DocumentsWrittenTotal counts document writes by kind and status
	DocumentsWrittenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "govcx_documents_written_total",
			Help: "Total number of serialized project and solution documents by status",
		},
		[]string{"kind", "status"},
	)

	// DocumentLoadDuration tracks parse duration in seconds
	DocumentLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "govcx_document_load_duration_seconds",
			Help:    "Document parse duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 100µs to ~1.6s
		},
		[]string{"kind"},
	)

	// SolutionLinesSkippedTotal counts solution lines dropped by the tolerant parser
	SolutionLinesSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "govcx_solution_lines_skipped_total",
			Help: "Total number of malformed solution project headers skipped",
		},
	)

	// SettingMutationsTotal counts concrete-axis setting writes
	SettingMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "govcx_setting_mutations_total",
			Help: "Total number of project setting mutations by setting and action",
		},
		[]string{"setting", "action"}, // created, updated, removed
	)
)

// StatusLabel maps an error to the "status" label value
func StatusLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// MetricsHandler returns an HTTP handler for Prometheus metrics
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// GetCounterValue retrieves the current value of a counter metric with the given labels.
// This is primarily intended for testing.
func GetCounterValue(counter *prometheus.CounterVec, labels ...string) (float64, error) {
	metric, err := counter.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0, err
	}
	return readCounter(metric)
}

// GetPlainCounterValue retrieves the current value of an unlabeled counter
func GetPlainCounterValue(counter prometheus.Counter) (float64, error) {
	return readCounter(counter)
}

func readCounter(metric prometheus.Metric) (float64, error) {
	var pb dto.Metric
	if err := metric.Write(&pb); err != nil {
		return 0, err
	}
	if pb.Counter != nil {
		return pb.Counter.GetValue(), nil
	}
	return 0, nil
}
