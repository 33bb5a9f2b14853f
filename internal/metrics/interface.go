package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncRequestsCreated()
	IncPlayersJoined()
	IncRequestsConfirmed()
	IncRequestsCancelled()
	IncAvailabilityRecords()
	IncSlotIngests()
	ObserveConfirmDuration(duration float64)
	SetStartupTime(duration float64)
}
