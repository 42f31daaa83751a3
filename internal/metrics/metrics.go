package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var sourcesProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pdf_sources_processed_total",
	Help: "Total number of processed source documents labelled by outcome",
}, []string{"status"})

var segmentsExtractedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pdf_segments_extracted_total",
	Help: "Total number of extracted content segments labelled by kind",
}, []string{"kind"})

var extractionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "pdf_extraction_duration_seconds",
	Help:    "Time spent extracting a single source document.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 90},
}, []string{"status"})

var batchesInFlight = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "pdf_batches_in_flight",
	Help: "Number of batches currently being processed",
})

var archivesBuiltTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "pdf_archives_built_total",
	Help: "Total number of result archives assembled",
})

func RecordSourceProcessed(status string) {
	sourcesProcessedTotal.WithLabelValues(status).Inc()
}

func RecordSegments(kind string, count int) {
	if count <= 0 {
		return
	}
	segmentsExtractedTotal.WithLabelValues(kind).Add(float64(count))
}

func ObserveExtraction(status string, elapsed time.Duration) {
	extractionDuration.WithLabelValues(status).Observe(elapsed.Seconds())
}

func IncrementBatchesInFlight() {
	batchesInFlight.Inc()
}

func DecrementBatchesInFlight() {
	batchesInFlight.Dec()
}

func RecordArchiveBuilt() {
	archivesBuiltTotal.Inc()
}
