package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a Metrics implementation that records calls for assertions.
type Mock struct {
	mu sync.Mutex

	RequestsCreatedCount     int
	PlayersJoinedCount       int
	RequestsConfirmedCount   int
	RequestsCancelledCount   int
	AvailabilityRecordsCount int
	SlotIngestsCount         int
	ConfirmDurations         []float64
	StartupTimes             []float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncRequestsCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestsCreatedCount++
}

func (m *Mock) IncPlayersJoined() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayersJoinedCount++
}

func (m *Mock) IncRequestsConfirmed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestsConfirmedCount++
}

func (m *Mock) IncRequestsCancelled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestsCancelledCount++
}

func (m *Mock) IncAvailabilityRecords() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AvailabilityRecordsCount++
}

func (m *Mock) IncSlotIngests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlotIngestsCount++
}

func (m *Mock) ObserveConfirmDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConfirmDurations = append(m.ConfirmDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTimes = append(m.StartupTimes, duration)
}
