// Package events turns monitor activity into lifecycle events. A Monitor
// emits OPEN, MOVE, and CLOSE events into an Emitter; the Hub batches them on
// a background goroutine and fans them out to pluggable sinks such as
// structured logs or Prometheus metrics, so reporting never blocks the task
// being monitored.
package events
