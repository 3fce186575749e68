package application

import (
	"time"

	"github.com/example/calendar-manager/internal/calendar"
)

// EventInput captures caller provided event fields.
type EventInput struct {
	Title       string
	Description string
	Date        calendar.Date
	Start       calendar.TimeOfDay
	End         calendar.TimeOfDay
}

// Event is the caller facing view of a stored event.
type Event struct {
	ID          string
	Title       string
	Description string
	Date        calendar.Date
	Start       calendar.TimeOfDay
	End         calendar.TimeOfDay
	Reminders   []Reminder
}

// Reminder is the caller facing view of a reminder record.
type Reminder struct {
	At   time.Time
	Kind calendar.ReminderKind
}

// CreateEventParams wraps the data required to create an event.
type CreateEventParams struct {
	Input EventInput
}

// UpdateEventParams wraps the data required to update an existing event.
type UpdateEventParams struct {
	EventID string
	Input   EventInput
}

// AddReminderParams wraps the data required to attach a reminder.
type AddReminderParams struct {
	EventID string
	At      time.Time
	Kind    calendar.ReminderKind
}

// FindEventsParams bounds an inclusive date range query.
type FindEventsParams struct {
	StartDate calendar.Date
	EndDate   calendar.Date
}

func toApplicationEvent(event calendar.Event) Event {
	return Event{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		Start:       event.Start,
		End:         event.End,
		Reminders:   toApplicationReminders(event.Reminders),
	}
}

func toApplicationReminders(reminders []calendar.Reminder) []Reminder {
	if len(reminders) == 0 {
		return nil
	}
	out := make([]Reminder, 0, len(reminders))
	for _, reminder := range reminders {
		out = append(out, Reminder{At: reminder.At, Kind: reminder.Kind})
	}
	return out
}
