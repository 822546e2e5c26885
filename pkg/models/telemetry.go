package models

// Telemetry sources. Upstream telemetry reflects the provider's rate-limit
// headers; local telemetry is the zero sentinel for cache hits and pure-local
// computations.
const (
	TelemetrySourceUpstream = "upstream"
	TelemetrySourceLocal    = "local"
)

// Telemetry contains usage counters reported by the upstream provider
type Telemetry struct {
	RequestsUsed      int    `json:"requests_used"`
	RequestsRemaining int    `json:"requests_remaining"`
	RequestsLast      int    `json:"requests_last"`
	Source            string `json:"source"`
}

// LocalTelemetry returns the sentinel telemetry for results that required no
// upstream call
func LocalTelemetry() Telemetry {
	return Telemetry{Source: TelemetrySourceLocal}
}
