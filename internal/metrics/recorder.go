package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultResolved   ResultLabel = "resolved"
	ResultUnresolved ResultLabel = "unresolved"
	ResultSuccess    ResultLabel = "success"
	ResultFailed     ResultLabel = "failed"
)

// Recorder defines observability hooks for the pipeline and its cache.
type Recorder interface {
	IncProcessorCreated(version string)
	IncProcessorCacheHit(version string)
	IncMetadataMiss(version string)
	IncLinkResolution(result ResultLabel)
	ObservePipelineDuration(d time.Duration)
	ObserveSnapshotWrite(d time.Duration, result ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncProcessorCreated(string)                       {}
func (NoopRecorder) IncProcessorCacheHit(string)                      {}
func (NoopRecorder) IncMetadataMiss(string)                           {}
func (NoopRecorder) IncLinkResolution(ResultLabel)                    {}
func (NoopRecorder) ObservePipelineDuration(time.Duration)            {}
func (NoopRecorder) ObserveSnapshotWrite(time.Duration, ResultLabel) {}

// OrNoop returns r, or NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
