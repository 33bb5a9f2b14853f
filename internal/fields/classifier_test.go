package fields_test

import (
	"testing"

	"github.com/openpitch/pickup/internal/fields"
	"github.com/openpitch/pickup/internal/timeslot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(id, fieldID, date, start, end string, available bool) fields.FieldTimeSlot {
	return fields.FieldTimeSlot{
		ID:          id,
		FieldID:     fieldID,
		FieldName:   "Field " + fieldID,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: available,
	}
}

func TestClassifyDay(t *testing.T) {
	tests := []struct {
		name     string
		slots    []fields.FieldTimeSlot
		expected fields.DayStatus
	}{
		{
			name:     "no slots at all",
			slots:    nil,
			expected: fields.StatusNone,
		},
		{
			name: "slots exist but none open",
			slots: []fields.FieldTimeSlot{
				slot("s1", "f1", "2026-09-05", "08:00", "10:00", false),
				slot("s2", "f1", "2026-09-05", "10:00", "12:00", false),
			},
			expected: fields.StatusFull,
		},
		{
			name: "every slot open",
			slots: []fields.FieldTimeSlot{
				slot("s1", "f1", "2026-09-05", "08:00", "10:00", true),
				slot("s2", "f1", "2026-09-05", "10:00", "12:00", true),
			},
			expected: fields.StatusAvailable,
		},
		{
			name: "mixed open and taken",
			slots: []fields.FieldTimeSlot{
				slot("s1", "f1", "2026-09-05", "08:00", "10:00", true),
				slot("s2", "f1", "2026-09-05", "10:00", "12:00", false),
			},
			expected: fields.StatusPartial,
		},
		{
			name: "single open slot",
			slots: []fields.FieldTimeSlot{
				slot("s1", "f1", "2026-09-05", "08:00", "10:00", true),
			},
			expected: fields.StatusAvailable,
		},
		{
			name: "single taken slot",
			slots: []fields.FieldTimeSlot{
				slot("s1", "f1", "2026-09-05", "08:00", "10:00", false),
			},
			expected: fields.StatusFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fields.ClassifyDay(tt.slots))
		})
	}
}

func TestClassifyPartialDayListsOpenWindows(t *testing.T) {
	slots := []fields.FieldTimeSlot{
		slot("s1", "f1", "2026-09-05", "08:00", "10:00", true),
		slot("s2", "f1", "2026-09-05", "10:00", "12:00", false),
		slot("s3", "f1", "2026-09-05", "16:00", "18:00", true),
	}

	schedules := fields.Classify(slots, "2026-09-05", "2026-09-05")
	require.Len(t, schedules, 1)
	require.Len(t, schedules[0].Days, 1)

	day := schedules[0].Days[0]
	assert.Equal(t, fields.StatusPartial, day.Status)
	require.Len(t, day.AvailableSlots, 2)
	assert.Equal(t, "08:00", day.AvailableSlots[0].StartTime)
	assert.Equal(t, "16:00", day.AvailableSlots[1].StartTime)
}

func TestClassifyGroupsByFieldAndFillsRange(t *testing.T) {
	slots := []fields.FieldTimeSlot{
		slot("s1", "f2", "2026-09-05", "08:00", "10:00", true),
		slot("s2", "f1", "2026-09-05", "08:00", "10:00", false),
		slot("s3", "f1", "2026-09-06", "08:00", "10:00", true),
	}

	schedules := fields.Classify(slots, "2026-09-05", "2026-09-07")
	require.Len(t, schedules, 2)

	// Fields come back in lexicographic order.
	assert.Equal(t, "f1", schedules[0].FieldID)
	assert.Equal(t, "Field f1", schedules[0].FieldName)
	assert.Equal(t, "f2", schedules[1].FieldID)

	// Every day in the inclusive range gets a summary, including days with
	// no slots for the field.
	require.Len(t, schedules[0].Days, 3)
	assert.Equal(t, fields.StatusFull, schedules[0].Days[0].Status)
	assert.Equal(t, fields.StatusAvailable, schedules[0].Days[1].Status)
	assert.Equal(t, fields.StatusNone, schedules[0].Days[2].Status)

	require.Len(t, schedules[1].Days, 3)
	assert.Equal(t, fields.StatusAvailable, schedules[1].Days[0].Status)
	assert.Equal(t, fields.StatusNone, schedules[1].Days[1].Status)
}

func TestClassifyCarriesDayOfWeek(t *testing.T) {
	slots := []fields.FieldTimeSlot{
		// 2026-09-05 is a Saturday.
		slot("s1", "f1", "2026-09-05", "08:00", "10:00", true),
	}

	schedules := fields.Classify(slots, "2026-09-05", "2026-09-06")
	require.Len(t, schedules, 1)
	require.Len(t, schedules[0].Days, 2)
	assert.Equal(t, timeslot.Saturday, schedules[0].Days[0].DayOfWeek)
	assert.Equal(t, timeslot.Sunday, schedules[0].Days[1].DayOfWeek)
}

func TestClassifyEmptyInput(t *testing.T) {
	schedules := fields.Classify(nil, "2026-09-05", "2026-09-06")
	assert.Len(t, schedules, 0)
}

func TestAvailableWindows(t *testing.T) {
	slots := []fields.FieldTimeSlot{
		slot("s1", "f1", "2026-09-05", "08:00", "10:00", false),
		slot("s2", "f1", "2026-09-05", "10:00", "12:00", true),
	}

	windows := fields.AvailableWindows(slots)
	require.Len(t, windows, 1)
	assert.Equal(t, "10:00", windows[0].StartTime)
	assert.Equal(t, "12:00", windows[0].EndTime)
}
