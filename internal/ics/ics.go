// Package ics converts calendar state to and from iCalendar (RFC 5545)
// documents. Events become VEVENT components and reminders become VALARM
// children with absolute triggers, so a calendar survives a round trip
// through any conforming tool.
package ics

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"

	"github.com/example/calendar-manager/internal/calendar"
)

const prodID = "-//calendar-manager//EN"

// VALARM properties have no named constants in the codec.
const (
	compAlarm   = "VALARM"
	propAction  = "ACTION"
	propTrigger = "TRIGGER"

	actionEmail   = "EMAIL"
	actionDisplay = "DISPLAY"
)

// Encode writes the events as a VCALENDAR 2.0 document. Slot times are
// anchored in loc; a nil loc means UTC.
func Encode(w io.Writer, events []calendar.Event, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)

	for _, event := range events {
		cal.Children = append(cal.Children, toComponent(event, loc))
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

// Decode parses a VCALENDAR document back into calendar events. Dates and
// slot times are derived in loc; a nil loc means UTC.
func Decode(r io.Reader, loc *time.Location) ([]calendar.Event, error) {
	if loc == nil {
		loc = time.UTC
	}

	cal, err := ical.NewDecoder(r).Decode()
	if err != nil {
		return nil, fmt.Errorf("decode calendar: %w", err)
	}

	events := make([]calendar.Event, 0, len(cal.Children))
	for _, child := range cal.Children {
		if child.Name != ical.CompEvent {
			continue
		}
		event, err := fromComponent(child, loc)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func toComponent(event calendar.Event, loc *time.Location) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, event.ID)
	ve.Props.SetText(ical.PropSummary, event.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, at(event.Date, event.Start, loc))
	ve.Props.SetDateTime(ical.PropDateTimeEnd, at(event.Date, event.End, loc))
	if event.Description != "" {
		ve.Props.SetText(ical.PropDescription, event.Description)
	}

	for _, reminder := range event.Reminders {
		ve.Children = append(ve.Children, toAlarm(reminder))
	}
	return ve
}

func toAlarm(reminder calendar.Reminder) *ical.Component {
	alarm := ical.NewComponent(compAlarm)

	action := actionDisplay
	if reminder.Kind == calendar.ReminderEmail {
		action = actionEmail
	}
	alarm.Props.SetText(propAction, action)

	// TRIGGER defaults to a duration; the VALUE param marks it absolute.
	trigger := ical.NewProp(propTrigger)
	trigger.SetValueType(ical.ValueDateTime)
	trigger.SetDateTime(reminder.At.UTC())
	alarm.Props.Set(trigger)

	return alarm
}

func fromComponent(comp *ical.Component, loc *time.Location) (calendar.Event, error) {
	uid, err := comp.Props.Text(ical.PropUID)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("read event UID: %w", err)
	}
	if uid == "" {
		return calendar.Event{}, fmt.Errorf("event is missing a UID")
	}

	summary, err := comp.Props.Text(ical.PropSummary)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("event %s: read summary: %w", uid, err)
	}
	description, err := comp.Props.Text(ical.PropDescription)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("event %s: read description: %w", uid, err)
	}

	start, err := comp.Props.DateTime(ical.PropDateTimeStart, loc)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("event %s: read start: %w", uid, err)
	}
	end, err := comp.Props.DateTime(ical.PropDateTimeEnd, loc)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("event %s: read end: %w", uid, err)
	}

	start = start.In(loc)
	end = end.In(loc)

	endTime := calendar.TimeOfDayOf(end)
	if calendar.DateOf(end) != calendar.DateOf(start) {
		// Midnight of the next day marks an event running to end of day.
		endTime = calendar.EndOfDay
	}

	event := calendar.Event{
		ID:          uid,
		Title:       summary,
		Description: description,
		Date:        calendar.DateOf(start),
		Start:       calendar.TimeOfDayOf(start),
		End:         endTime,
	}

	for _, child := range comp.Children {
		if child.Name != compAlarm {
			continue
		}
		reminder, err := fromAlarm(child)
		if err != nil {
			return calendar.Event{}, fmt.Errorf("event %s: %w", uid, err)
		}
		event.Reminders = append(event.Reminders, reminder)
	}
	return event, nil
}

func fromAlarm(comp *ical.Component) (calendar.Reminder, error) {
	trigger := comp.Props.Get(propTrigger)
	if trigger == nil {
		return calendar.Reminder{}, fmt.Errorf("alarm is missing a trigger")
	}
	at, err := trigger.DateTime(time.UTC)
	if err != nil {
		return calendar.Reminder{}, fmt.Errorf("read alarm trigger: %w", err)
	}

	kind := calendar.ReminderSystem
	if action, err := comp.Props.Text(propAction); err == nil && action == actionEmail {
		kind = calendar.ReminderEmail
	}
	return calendar.Reminder{At: at, Kind: kind}, nil
}

func at(date calendar.Date, t calendar.TimeOfDay, loc *time.Location) time.Time {
	return date.Time(loc).Add(time.Duration(t.Minutes()) * time.Minute)
}
