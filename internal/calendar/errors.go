package calendar

import "errors"

var (
	// ErrEventNotFound is returned when an operation references an event id
	// absent from the registry.
	ErrEventNotFound = errors.New("calendar: event not found")
	// ErrReminderNotFound is returned when a reminder index is out of range
	// for the event's current reminder sequence.
	ErrReminderNotFound = errors.New("calendar: reminder not found")
	// ErrSlotNotAvailable is returned when a requested time range overlaps a
	// slot already booked by a different event.
	ErrSlotNotAvailable = errors.New("calendar: slot not available")
	// ErrDateLowerThanToday is returned when event creation targets a date
	// before the current date.
	ErrDateLowerThanToday = errors.New("calendar: date lower than today")
)
