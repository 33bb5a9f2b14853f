package availability

import "sync"

// MockRegistry is a mock implementation of the Registry interface for testing.
// It is safe for concurrent use.
type MockRegistry struct {
	mu sync.Mutex

	// Spies for method calls
	AddFunc     func(rec UserAvailability) (UserAvailability, error)
	RemoveFunc  func(id string) error
	UpdateFunc  func(id string, patch Patch) error
	ForDateFunc func(date string) ([]UserAvailability, error)
	ForUserFunc func(userID string) ([]UserAvailability, error)

	// Call records
	AddCalls    []UserAvailability
	RemoveCalls []string
	UpdateCalls []struct {
		ID    string
		Patch Patch
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockRegistry {
	return &MockRegistry{}
}

func (m *MockRegistry) Add(rec UserAvailability) (UserAvailability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddCalls = append(m.AddCalls, rec)
	if m.AddFunc != nil {
		return m.AddFunc(rec)
	}
	return rec, nil
}

func (m *MockRegistry) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls = append(m.RemoveCalls, id)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(id)
	}
	return nil
}

func (m *MockRegistry) Update(id string, patch Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls = append(m.UpdateCalls, struct {
		ID    string
		Patch Patch
	}{id, patch})
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, patch)
	}
	return nil
}

func (m *MockRegistry) ForDate(date string) ([]UserAvailability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForDateFunc != nil {
		return m.ForDateFunc(date)
	}
	return nil, nil
}

func (m *MockRegistry) ForUser(userID string) ([]UserAvailability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForUserFunc != nil {
		return m.ForUserFunc(userID)
	}
	return nil, nil
}

func (m *MockRegistry) Clear() {}
