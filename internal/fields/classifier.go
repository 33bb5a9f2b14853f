package fields

import (
	"sort"
	"time"

	"github.com/openpitch/pickup/internal/timeslot"
)

// ClassifyDay derives the aggregate status of the given day subset of one
// field's slots. An empty subset is "none", a subset with no open slot is
// "full", an all-open subset is "available", anything else is "partial".
func ClassifyDay(daySlots []FieldTimeSlot) DayStatus {
	if len(daySlots) == 0 {
		return StatusNone
	}
	open := 0
	for _, slot := range daySlots {
		if slot.IsAvailable {
			open++
		}
	}
	switch open {
	case 0:
		return StatusFull
	case len(daySlots):
		return StatusAvailable
	default:
		return StatusPartial
	}
}

// AvailableWindows returns the time windows of the open slots in the subset.
func AvailableWindows(daySlots []FieldTimeSlot) []timeslot.TimeSlot {
	windows := []timeslot.TimeSlot{}
	for _, slot := range daySlots {
		if slot.IsAvailable {
			windows = append(windows, slot.Window())
		}
	}
	return windows
}

// Classify groups the raw slots by field and rolls them up into one
// DaySummary per field per day in the inclusive [from, to] range. Fields are
// returned in stable (lexicographic) order; name and city come from the
// first slot seen for each field.
func Classify(slots []FieldTimeSlot, from, to string) []FieldSchedule {
	byField := make(map[string][]FieldTimeSlot)
	var order []string
	for _, slot := range slots {
		if _, seen := byField[slot.FieldID]; !seen {
			order = append(order, slot.FieldID)
		}
		byField[slot.FieldID] = append(byField[slot.FieldID], slot)
	}
	sort.Strings(order)

	days := daysBetween(from, to)

	var schedules []FieldSchedule
	for _, fieldID := range order {
		fieldSlots := byField[fieldID]
		schedule := FieldSchedule{
			FieldID:   fieldID,
			FieldName: fieldSlots[0].FieldName,
			FieldCity: fieldSlots[0].FieldCity,
		}
		for _, day := range days {
			var daySlots []FieldTimeSlot
			for _, slot := range fieldSlots {
				if slot.Date == day {
					daySlots = append(daySlots, slot)
				}
			}
			weekday, _ := timeslot.WeekdayOf(day)
			schedule.Days = append(schedule.Days, DaySummary{
				Date:           day,
				DayOfWeek:      weekday,
				Status:         ClassifyDay(daySlots),
				AvailableSlots: AvailableWindows(daySlots),
			})
		}
		schedules = append(schedules, schedule)
	}
	return schedules
}

// daysBetween expands an inclusive date range into its calendar days. A
// malformed or inverted range yields just the from day.
func daysBetween(from, to string) []string {
	start, err := time.Parse(timeslot.DateLayout, from)
	if err != nil {
		return []string{from}
	}
	end, err := time.Parse(timeslot.DateLayout, to)
	if err != nil || end.Before(start) {
		return []string{from}
	}

	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(timeslot.DateLayout))
	}
	return days
}
