package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncAssignmentRuns()
	IncAssignmentFailures()
	ObserveAssignmentDuration(duration float64)
	IncPollerRuns()
	IncGoalsDetected()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
