package server

import (
	"net/http"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
)

const (
	metricPredictions         = "predictions.count"
	metricPredictionFailures  = "predictions.failed"
	metricSelectionIncomplete = "predictions.selection_incomplete"
	metricPredictionLatency   = "predictions.latency"
)

type telemetry struct {
	registry            gometrics.Registry
	predictions         gometrics.Counter
	failures            gometrics.Counter
	selectionIncomplete gometrics.Counter
	latency             gometrics.Timer
}

func newTelemetry(registry gometrics.Registry) *telemetry {
	t := &telemetry{
		registry:            registry,
		predictions:         gometrics.NewCounter(),
		failures:            gometrics.NewCounter(),
		selectionIncomplete: gometrics.NewCounter(),
		latency:             gometrics.NewTimer(),
	}
	_ = registry.Register(metricPredictions, t.predictions)
	_ = registry.Register(metricPredictionFailures, t.failures)
	_ = registry.Register(metricSelectionIncomplete, t.selectionIncomplete)
	_ = registry.Register(metricPredictionLatency, t.latency)
	return t
}

func (t *telemetry) observe(start time.Time) {
	t.predictions.Inc(1)
	t.latency.UpdateSince(start)
}

// GetMetrics writes the metrics registry as JSON
func (h *httpServer) GetMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "application/json")
	gometrics.WriteJSONOnce(h.metrics.registry, w)
}
