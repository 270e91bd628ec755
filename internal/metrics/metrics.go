// internal/metrics/metrics.go
package metrics

import (
	"log"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SamplesTotal counts flux samples taken from source devices.
	SamplesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aligner_samples_total",
		Help: "Total number of flux samples read from source devices",
	})

	// SampleErrorsTotal counts failed sample cycles (transport or decode).
	SampleErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aligner_sample_errors_total",
		Help: "Total number of failed flux sample cycles",
	})

	// AlignmentsTotal counts pipeline runs that reached the zero point.
	AlignmentsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aligner_alignments_total",
		Help: "Total number of alignment runs that reached the zero point",
	})

	// DecoherenceTotal counts rejected or residual runs.
	DecoherenceTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aligner_decoherence_total",
		Help: "Total number of alignment runs rejected or left with residue",
	})

	// AlignmentDuration observes pipeline run latency.
	AlignmentDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "aligner_alignment_duration_seconds",
		Help:    "Duration of one alignment pipeline run in seconds",
		Buckets: prometheus.DefBuckets,
	})

	registerOnce sync.Once
	serveOnce    sync.Once
)

// Init registers all Prometheus collectors used by the aligner.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			SamplesTotal,
			SampleErrorsTotal,
			AlignmentsTotal,
			DecoherenceTotal,
			AlignmentDuration,
		)
	})
}

// Serve exposes the registry on listen/metrics in a background goroutine.
// Called at most once; an empty listen address disables the endpoint.
func Serve(listen string) {
	if listen == "" {
		return
	}

	Init()
	serveOnce.Do(func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		go func() {
			if err := http.ListenAndServe(listen, mux); err != nil {
				log.Printf("metrics server error: %v", err)
			}
		}()
	})
}
