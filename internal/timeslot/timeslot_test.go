package timeslot_test

import (
	"testing"

	"github.com/openpitch/pickup/internal/timeslot"
	"github.com/stretchr/testify/assert"
)

func TestTimeSlotValid(t *testing.T) {
	assert.True(t, timeslot.TimeSlot{StartTime: "08:00", EndTime: "10:00"}.Valid())
	assert.False(t, timeslot.TimeSlot{StartTime: "10:00", EndTime: "08:00"}.Valid())
	assert.False(t, timeslot.TimeSlot{StartTime: "10:00", EndTime: "10:00"}.Valid())
}

func TestSameWindowIgnoresID(t *testing.T) {
	a := timeslot.TimeSlot{ID: "a", StartTime: "08:00", EndTime: "10:00"}
	b := timeslot.TimeSlot{ID: "b", StartTime: "08:00", EndTime: "10:00"}
	c := timeslot.TimeSlot{ID: "a", StartTime: "08:00", EndTime: "11:00"}

	assert.True(t, a.SameWindow(b))
	assert.False(t, a.SameWindow(c))
}

func TestWeekdayOf(t *testing.T) {
	day, ok := timeslot.WeekdayOf("2026-09-05")
	assert.True(t, ok)
	assert.Equal(t, timeslot.Saturday, day)
	assert.Equal(t, "Saturday", day.String())

	day, ok = timeslot.WeekdayOf("not-a-date")
	assert.False(t, ok)
	assert.Equal(t, timeslot.Sunday, day)
}
