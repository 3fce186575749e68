// Package testfixtures provides deterministic collaborators and sample
// data for exercising the calendar packages.
package testfixtures

import (
	"time"

	"github.com/example/calendar-manager/internal/application"
	"github.com/example/calendar-manager/internal/calendar"
)

// ReferenceTime is the shared anchor instant used by fixtures:
// 2025-06-01 08:00 UTC, a Sunday morning.
func ReferenceTime() time.Time {
	return time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)
}

// ReferenceDate is the calendar date of ReferenceTime.
func ReferenceDate() calendar.Date {
	return calendar.DateOf(ReferenceTime())
}

// MorningMeeting builds a valid 09:00-10:00 event input on the given date.
func MorningMeeting(date calendar.Date) application.EventInput {
	return application.EventInput{
		Title:       "Morning meeting",
		Description: "planning for the day",
		Date:        date,
		Start:       calendar.TimeOfDay{Hour: 9},
		End:         calendar.TimeOfDay{Hour: 10},
	}
}

// AfternoonFocus builds a valid 14:00-16:00 event input on the given date.
func AfternoonFocus(date calendar.Date) application.EventInput {
	return application.EventInput{
		Title:       "Focus block",
		Description: "no interruptions",
		Date:        date,
		Start:       calendar.TimeOfDay{Hour: 14},
		End:         calendar.TimeOfDay{Hour: 16},
	}
}

// OverlappingInput shifts an input by 30 minutes so it collides with the
// original range.
func OverlappingInput(input application.EventInput) application.EventInput {
	input.Start = shiftTime(input.Start, 30)
	input.End = shiftTime(input.End, 30)
	return input
}

func shiftTime(t calendar.TimeOfDay, minutes int) calendar.TimeOfDay {
	total := t.Minutes() + minutes
	return calendar.TimeOfDay{Hour: total / 60, Minute: total % 60}
}
