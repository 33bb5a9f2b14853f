package fields

import (
	"database/sql"
	"sync"

	"github.com/openpitch/pickup/internal/timeslot"
)

// store handles all database operations for field schedules.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// FieldTimeSlot is one raw bookable window on one field, as produced by the
// external field-scheduling collaborator. This service only consumes and
// classifies these records, it never originates them.
type FieldTimeSlot struct {
	ID          string `json:"id"`
	FieldID     string `json:"field_id"`
	FieldName   string `json:"field_name"`
	FieldCity   string `json:"field_city,omitempty"`
	Date        string `json:"date"` // YYYY-MM-DD
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

// Window returns the slot's time window as a plain TimeSlot.
func (s FieldTimeSlot) Window() timeslot.TimeSlot {
	return timeslot.TimeSlot{ID: s.ID, StartTime: s.StartTime, EndTime: s.EndTime}
}

// DayStatus is the aggregate availability of one field on one day. The four
// cases are exhaustive and mutually exclusive: none means there are no slots
// at all, full means slots exist but none is open, available means every slot
// is open, partial is the mixed case.
type DayStatus string

const (
	StatusNone      DayStatus = "none"
	StatusFull      DayStatus = "full"
	StatusAvailable DayStatus = "available"
	StatusPartial   DayStatus = "partial"
)

// DaySummary is the classifier output for one field and one calendar day.
type DaySummary struct {
	Date           string              `json:"date"`
	DayOfWeek      timeslot.DayOfWeek  `json:"day_of_week"`
	Status         DayStatus           `json:"status"`
	AvailableSlots []timeslot.TimeSlot `json:"available_slots"`
}

// FieldSchedule is the classifier output for one field over a date range.
// Name and city are carried from the first slot seen for the field.
type FieldSchedule struct {
	FieldID   string       `json:"field_id"`
	FieldName string       `json:"field_name"`
	FieldCity string       `json:"field_city,omitempty"`
	Days      []DaySummary `json:"days"`
}
