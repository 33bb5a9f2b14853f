package timeslot

import "time"

// DateLayout is the calendar-day format used across the service.
const DateLayout = "2006-01-02"

// TimeSlot is a named start/end time-of-day window. Times are 24h "HH:MM"
// strings, so lexicographic comparison is also chronological comparison.
// The id is only unique within the owning collection, not globally.
type TimeSlot struct {
	ID        string `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Valid reports whether the window is well formed, i.e. it starts strictly
// before it ends.
func (s TimeSlot) Valid() bool {
	return s.StartTime < s.EndTime
}

// SameWindow reports whether two slots cover the same window. Ids are not
// comparable across collections, so windows are matched by their times.
func (s TimeSlot) SameWindow(o TimeSlot) bool {
	return s.StartTime == o.StartTime && s.EndTime == o.EndTime
}

// DayOfWeek is a 0-6 weekday enumeration, Sunday first. It matches
// time.Weekday numerically.
type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

func (d DayOfWeek) String() string {
	return time.Weekday(d).String()
}

// WeekdayOf returns the DayOfWeek for a "YYYY-MM-DD" date string. Malformed
// dates report Sunday and ok=false.
func WeekdayOf(date string) (DayOfWeek, bool) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return Sunday, false
	}
	return DayOfWeek(t.Weekday()), true
}
