package calendar

import "time"

// ReminderKind identifies the delivery channel recorded for a reminder.
type ReminderKind string

const (
	// ReminderEmail marks a reminder intended for email delivery. It is the
	// default kind.
	ReminderEmail ReminderKind = "email"
	// ReminderSystem marks a reminder intended for system notification.
	ReminderSystem ReminderKind = "system"
)

// Reminder is a timestamped notification record attached to an event.
// Delivery is out of scope; reminders are data only, removed solely by
// positional deletion from their owning event.
type Reminder struct {
	At   time.Time
	Kind ReminderKind
}

// Event is a titled activity occupying a contiguous range of slots on one
// date. The id is generated at creation and stays stable for the event's
// lifetime; reminders are owned exclusively by the event in insertion
// order.
type Event struct {
	ID          string
	Title       string
	Description string
	Date        Date
	Start       TimeOfDay
	End         TimeOfDay
	Reminders   []Reminder
}

// AddReminder appends a reminder. There is no uniqueness check and no
// ordering beyond insertion order. An empty kind defaults to email.
func (e *Event) AddReminder(at time.Time, kind ReminderKind) {
	if kind == "" {
		kind = ReminderEmail
	}
	e.Reminders = append(e.Reminders, Reminder{At: at, Kind: kind})
}

// DeleteReminder removes the reminder at the given 0-based position.
// Subsequent reminders shift down one index, so callers must not reuse
// indices cached before the deletion.
func (e *Event) DeleteReminder(index int) error {
	if index < 0 || index >= len(e.Reminders) {
		return ErrReminderNotFound
	}
	e.Reminders = append(e.Reminders[:index], e.Reminders[index+1:]...)
	return nil
}

// snapshot returns a copy that does not alias the reminder slice.
func (e *Event) snapshot() Event {
	out := *e
	out.Reminders = append([]Reminder(nil), e.Reminders...)
	return out
}
