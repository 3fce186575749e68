package calendar

import (
	"fmt"
	"time"
)

const (
	// SlotInterval is the booking granularity. One slot spans 15 minutes.
	SlotInterval = 15 * time.Minute
	// SlotsPerDay is the number of slots covering a full day.
	SlotsPerDay = 96
)

// Date identifies a calendar date independent of location and time of day.
// The zero value is not a valid date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf extracts the calendar date from an instant, in that instant's
// location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a date in ISO 8601 form, e.g. "2025-06-01".
func ParseDate(value string) (Date, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return DateOf(t), nil
}

// Time returns the instant at which the date begins in the given location.
// A nil location means UTC.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Next returns the following calendar date.
func (d Date) Next() Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, 1))
}

// Compare orders dates chronologically, returning -1, 0 or 1.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return compareInt(d.Year, other.Year)
	case d.Month != other.Month:
		return compareInt(int(d.Month), int(other.Month))
	default:
		return compareInt(d.Day, other.Day)
	}
}

// Before reports whether d falls before other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d falls after other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// TimeOfDay is a wall-clock time within a day. Hour 24 with minute 0 is
// accepted as an exclusive range end meaning midnight of the next day, so
// the final 23:45 slot stays bookable.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// EndOfDay is the exclusive upper bound covering the whole day.
var EndOfDay = TimeOfDay{Hour: 24}

// TimeOfDayOf extracts the wall-clock time from an instant, truncated to
// the minute.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseTimeOfDay parses a time in "15:04" form. "24:00" is accepted as the
// end-of-day bound.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	if value == "24:00" {
		return EndOfDay, nil
	}
	t, err := time.Parse("15:04", value)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time %q: %w", value, err)
	}
	return TimeOfDayOf(t), nil
}

// Minutes returns the offset from midnight in minutes.
func (t TimeOfDay) Minutes() int { return t.Hour*60 + t.Minute }

// Before reports whether t falls before other.
func (t TimeOfDay) Before(other TimeOfDay) bool { return t.Minutes() < other.Minutes() }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Slots returns the canonical slot times of a day, ascending from 00:00 to
// 23:45 in 15-minute steps.
func Slots() []TimeOfDay {
	slots := make([]TimeOfDay, 0, SlotsPerDay)
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute += 15 {
			slots = append(slots, TimeOfDay{Hour: hour, Minute: minute})
		}
	}
	return slots
}
