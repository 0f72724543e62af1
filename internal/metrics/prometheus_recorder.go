package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	processorsCreated *prom.CounterVec
	cacheHits         *prom.CounterVec
	metadataMisses    *prom.CounterVec
	linkResolutions   *prom.CounterVec
	pipelineDuration  prom.Histogram
	snapshotWrites    *prom.HistogramVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		processorsCreated: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "apidocs",
			Name:      "processors_created_total",
			Help:      "Metadata processors created, one per (version, type) pair",
		}, []string{"version"}),
		cacheHits: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "apidocs",
			Name:      "processor_cache_hits_total",
			Help:      "Lookups served by an already created processor",
		}, []string{"version"}),
		metadataMisses: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "apidocs",
			Name:      "metadata_misses_total",
			Help:      "Pages requesting a type with no loaded metadata",
		}, []string{"version"}),
		linkResolutions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "apidocs",
			Name:      "link_resolutions_total",
			Help:      "Key-path reference resolutions by outcome",
		}, []string{"result"}),
		pipelineDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "apidocs",
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of one metadata processing pipeline run",
			Buckets:   prom.DefBuckets,
		}),
		snapshotWrites: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "apidocs",
			Name:      "snapshot_write_duration_seconds",
			Help:      "Duration of snapshot file writes",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
	}
	reg.MustRegister(pr.processorsCreated, pr.cacheHits, pr.metadataMisses, pr.linkResolutions, pr.pipelineDuration, pr.snapshotWrites)
	return pr
}

func (p *PrometheusRecorder) IncProcessorCreated(version string) {
	p.processorsCreated.WithLabelValues(version).Inc()
}

func (p *PrometheusRecorder) IncProcessorCacheHit(version string) {
	p.cacheHits.WithLabelValues(version).Inc()
}

func (p *PrometheusRecorder) IncMetadataMiss(version string) {
	p.metadataMisses.WithLabelValues(version).Inc()
}

func (p *PrometheusRecorder) IncLinkResolution(result ResultLabel) {
	p.linkResolutions.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObservePipelineDuration(d time.Duration) {
	p.pipelineDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveSnapshotWrite(d time.Duration, result ResultLabel) {
	p.snapshotWrites.WithLabelValues(string(result)).Observe(d.Seconds())
}
