// Package instrumentation provides OpenTelemetry run counters for
// transcriptsync.
//
// One reconciliation run is short-lived, so there is no scrape endpoint:
// counters accumulate during the run and are flushed once through the stdout
// metric exporter when the provider shuts down. Instrumentation can be
// disabled entirely via configuration, in which case a no-op recorder is
// returned and call sites need no guards.
package instrumentation
