// Package metrics exposes expvar-published counters and gauges for the
// pipeline runtime: graph loads, executions, per-operation apply counts.
// It intentionally avoids external dependencies and shows up under
// /debug/vars when an HTTP server is mounted.
package metrics
