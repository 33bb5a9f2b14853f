package matchmaking

import (
	"sync"

	"github.com/openpitch/pickup/internal/timeslot"
)

// MockCoordinator is a mock implementation of the Coordinator interface for
// testing. It is safe for concurrent use.
type MockCoordinator struct {
	mu sync.Mutex

	// Spies for method calls
	CreateFunc  func(input CreateInput) (*MatchRequest, error)
	GetFunc     func(requestID string) (*MatchRequest, error)
	JoinFunc    func(requestID string, player JoinInput) (*MatchRequest, error)
	LeaveFunc   func(requestID, userID string) (*MatchRequest, error)
	ConfirmFunc func(requestID, fieldID, date string, slot timeslot.TimeSlot) (*MatchRequest, error)
	CancelFunc  func(requestID string) (*MatchRequest, error)
	OpenFunc    func() ([]MatchRequest, error)
	ForUserFunc func(userID string) ([]MatchRequest, error)

	// Call records
	CreateCalls []CreateInput
	JoinCalls   []struct {
		RequestID string
		Player    JoinInput
	}
	LeaveCalls []struct {
		RequestID string
		UserID    string
	}
	ConfirmCalls []struct {
		RequestID string
		FieldID   string
		Date      string
		Slot      timeslot.TimeSlot
	}
	CancelCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockCoordinator {
	return &MockCoordinator{}
}

func (m *MockCoordinator) Create(input CreateInput) (*MatchRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, input)
	if m.CreateFunc != nil {
		return m.CreateFunc(input)
	}
	return &MatchRequest{}, nil
}

func (m *MockCoordinator) Get(requestID string) (*MatchRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(requestID)
	}
	return &MatchRequest{}, nil
}

func (m *MockCoordinator) Join(requestID string, player JoinInput) (*MatchRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.JoinCalls = append(m.JoinCalls, struct {
		RequestID string
		Player    JoinInput
	}{requestID, player})
	if m.JoinFunc != nil {
		return m.JoinFunc(requestID, player)
	}
	return &MatchRequest{}, nil
}

func (m *MockCoordinator) Leave(requestID, userID string) (*MatchRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LeaveCalls = append(m.LeaveCalls, struct {
		RequestID string
		UserID    string
	}{requestID, userID})
	if m.LeaveFunc != nil {
		return m.LeaveFunc(requestID, userID)
	}
	return &MatchRequest{}, nil
}

func (m *MockCoordinator) Confirm(requestID, fieldID, date string, slot timeslot.TimeSlot) (*MatchRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConfirmCalls = append(m.ConfirmCalls, struct {
		RequestID string
		FieldID   string
		Date      string
		Slot      timeslot.TimeSlot
	}{requestID, fieldID, date, slot})
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(requestID, fieldID, date, slot)
	}
	return &MatchRequest{}, nil
}

func (m *MockCoordinator) Cancel(requestID string) (*MatchRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CancelCalls = append(m.CancelCalls, requestID)
	if m.CancelFunc != nil {
		return m.CancelFunc(requestID)
	}
	return &MatchRequest{}, nil
}

func (m *MockCoordinator) Open() ([]MatchRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.OpenFunc != nil {
		return m.OpenFunc()
	}
	return nil, nil
}

func (m *MockCoordinator) ForUser(userID string) ([]MatchRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForUserFunc != nil {
		return m.ForUserFunc(userID)
	}
	return nil, nil
}

func (m *MockCoordinator) Clear() {}
