// Package metrics provides observability hooks for the API reference pipeline.
//
// Components receive a Recorder through their options. NoopRecorder is the
// default, so callers never check for nil; PrometheusRecorder forwards to a
// Prometheus registry and is activated by the serve command when
// server.metrics is enabled.
package metrics
