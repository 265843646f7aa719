package replygen

// Stats is a point-in-time summary of analysis traffic.
type Stats struct {
	RequestsTotal int64   `json:"requestsTotal"`
	ErrorsTotal   int64   `json:"errorsTotal"`
	ErrorRate     float64 `json:"errorRate"`

	// AverageResponseTime and Uptime are in seconds.
	AverageResponseTime float64 `json:"averageResponseTime"`
	Uptime              float64 `json:"uptime"`
}

// StatsReporter exposes running traffic statistics.
type StatsReporter interface {
	Stats() Stats
}
