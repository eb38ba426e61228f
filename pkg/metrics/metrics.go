// Package metrics defines the Prometheus collectors exported on /metrics.
// Every constructor accepts a nil registerer and then returns a no-op
// recorder.
package metrics

const namespace = "libreria"

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
