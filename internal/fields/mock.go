package fields

import "sync"

// MockStore is a mock implementation of the FieldStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertSlotsFunc    func(slots []FieldTimeSlot) error
	SlotsInRangeFunc   func(from, to string) ([]FieldTimeSlot, error)
	AvailableSlotsFunc func(fieldID, date string) ([]FieldTimeSlot, error)

	// Call records
	UpsertSlotsCalls    [][]FieldTimeSlot
	AvailableSlotsCalls []struct {
		FieldID string
		Date    string
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertSlots(slots []FieldTimeSlot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertSlotsCalls = append(m.UpsertSlotsCalls, slots)
	if m.UpsertSlotsFunc != nil {
		return m.UpsertSlotsFunc(slots)
	}
	return nil
}

func (m *MockStore) SlotsInRange(from, to string) ([]FieldTimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SlotsInRangeFunc != nil {
		return m.SlotsInRangeFunc(from, to)
	}
	return nil, nil
}

func (m *MockStore) AvailableSlots(fieldID, date string) ([]FieldTimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AvailableSlotsCalls = append(m.AvailableSlotsCalls, struct {
		FieldID string
		Date    string
	}{fieldID, date})
	if m.AvailableSlotsFunc != nil {
		return m.AvailableSlotsFunc(fieldID, date)
	}
	return nil, nil
}

func (m *MockStore) Clear() {}
