package availability

import (
	"database/sql"
	"sync"
	"time"

	"github.com/openpitch/pickup/internal/timeslot"
)

// store handles all database operations for the availability registry.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// UserAvailability is one user's declared reachability on one calendar date.
// A user may hold several records for the same date; the registry does not
// merge or deduplicate them.
type UserAvailability struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	UserName        string              `json:"user_name"`
	UserAvatar      string              `json:"user_avatar,omitempty"`
	Date            string              `json:"date"` // YYYY-MM-DD
	TimeSlots       []timeslot.TimeSlot `json:"time_slots"`
	IsRecurring     bool                `json:"is_recurring"`
	PreferredFields []string            `json:"preferred_fields"`
	MaxDistance     float64             `json:"max_distance"`
	CreatedAt       time.Time           `json:"created_at"`
}

// Patch carries a partial update for an existing record. Nil fields are left
// untouched.
type Patch struct {
	Date            *string              `json:"date,omitempty"`
	TimeSlots       *[]timeslot.TimeSlot `json:"time_slots,omitempty"`
	IsRecurring     *bool                `json:"is_recurring,omitempty"`
	PreferredFields *[]string            `json:"preferred_fields,omitempty"`
	MaxDistance     *float64             `json:"max_distance,omitempty"`
}
