package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Calendar is the process-scoped registry of events and day occupancy. It
// maps event ids to events and dates to days, keeping the two views
// consistent: every id referenced by a slot exists in the event map, and an
// event's slots are exactly the range [Start, End) on its date.
//
// The calendar holds no locks and assumes one logical caller at a time;
// concurrent callers must wrap it in their own exclusion.
type Calendar struct {
	days   map[Date]*Day
	events map[string]*Event

	newID func() string
	now   func() time.Time
}

// New constructs an empty calendar. newID must produce process-unique
// identifiers and defaults to uuid.NewString; now defaults to time.Now.
func New(newID func() string, now func() time.Time) *Calendar {
	if newID == nil {
		newID = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	return &Calendar{
		days:   make(map[Date]*Day),
		events: make(map[string]*Event),
		newID:  newID,
		now:    now,
	}
}

// AddEvent registers a new event and books its slots, returning the
// generated id. The date must not precede the current date; time of day is
// ignored for that comparison, so today's date is always accepted. A range
// with start >= end books nothing and is rejected as unavailable.
func (c *Calendar) AddEvent(title, description string, date Date, start, end TimeOfDay) (string, error) {
	if date.Before(DateOf(c.now())) {
		return "", ErrDateLowerThanToday
	}
	if !start.Before(end) {
		return "", ErrSlotNotAvailable
	}

	event := &Event{
		ID:          c.newID(),
		Title:       title,
		Description: description,
		Date:        date,
		Start:       start,
		End:         end,
	}
	if err := c.day(date).AddEvent(event.ID, start, end); err != nil {
		return "", err
	}
	c.events[event.ID] = event
	return event.ID, nil
}

// AddReminder attaches a reminder to the identified event.
func (c *Calendar) AddReminder(eventID string, at time.Time, kind ReminderKind) error {
	event, ok := c.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	event.AddReminder(at, kind)
	return nil
}

// FindAvailableSlots returns the unoccupied slots of the date in ascending
// order. A date no event has touched yet is implicitly fully free and
// yields all 96 canonical slots.
func (c *Calendar) FindAvailableSlots(date Date) []TimeOfDay {
	day, ok := c.days[date]
	if !ok {
		return Slots()
	}
	return day.AvailableSlots()
}

// UpdateEvent replaces the stored event under the same id, possibly moving
// it to another date. Reminders do not carry over to the replacement.
// Availability of the new range is verified before the old booking is
// dismantled, so a collision leaves the existing event intact.
func (c *Calendar) UpdateEvent(eventID, title, description string, date Date, start, end TimeOfDay) error {
	if _, ok := c.events[eventID]; !ok {
		return ErrEventNotFound
	}
	if !start.Before(end) {
		return ErrSlotNotAvailable
	}
	if day, ok := c.days[date]; ok && !day.fits(eventID, start, end) {
		return ErrSlotNotAvailable
	}

	if err := c.DeleteEvent(eventID); err != nil {
		return err
	}
	event := &Event{
		ID:          eventID,
		Title:       title,
		Description: description,
		Date:        date,
		Start:       start,
		End:         end,
	}
	if err := c.day(date).AddEvent(eventID, start, end); err != nil {
		return err
	}
	c.events[eventID] = event
	return nil
}

// DeleteEvent removes the event from the registry and clears its slots.
// Events occupy exactly one day, so the day scan stops at the first hit.
func (c *Calendar) DeleteEvent(eventID string) error {
	if _, ok := c.events[eventID]; !ok {
		return ErrEventNotFound
	}
	delete(c.events, eventID)

	for _, day := range c.days {
		if day.Holds(eventID) {
			return day.DeleteEvent(eventID)
		}
	}
	return nil
}

// FindEvents returns the events whose date falls in the inclusive range,
// grouped by date. Events sharing a date accumulate in start-time order.
func (c *Calendar) FindEvents(start, end Date) map[Date][]Event {
	found := make(map[Date][]Event)
	for _, event := range c.events {
		if event.Date.Before(start) || event.Date.After(end) {
			continue
		}
		found[event.Date] = append(found[event.Date], event.snapshot())
	}
	for _, events := range found {
		sortEvents(events)
	}
	return found
}

// DeleteReminder removes the reminder at the given position from the
// identified event.
func (c *Calendar) DeleteReminder(eventID string, index int) error {
	event, ok := c.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	return event.DeleteReminder(index)
}

// ListReminders returns a copy of the event's reminder sequence in
// insertion order.
func (c *Calendar) ListReminders(eventID string) ([]Reminder, error) {
	event, ok := c.events[eventID]
	if !ok {
		return nil, ErrEventNotFound
	}
	return append([]Reminder(nil), event.Reminders...), nil
}

// Event returns a snapshot of the stored event.
func (c *Calendar) Event(eventID string) (Event, error) {
	event, ok := c.events[eventID]
	if !ok {
		return Event{}, ErrEventNotFound
	}
	return event.snapshot(), nil
}

// Events returns snapshots of every stored event, ordered by date, start
// time and id.
func (c *Calendar) Events() []Event {
	out := make([]Event, 0, len(c.events))
	for _, event := range c.events {
		out = append(out, event.snapshot())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].Start != out[j].Start {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// RestoreEvent re-registers an event carrying its existing id and
// reminders, booking slots without the creation-date check. It is used
// when replaying events from an external document; the slot invariants
// still apply.
func (c *Calendar) RestoreEvent(event Event) error {
	if event.ID == "" {
		return fmt.Errorf("calendar: restore requires an event id")
	}
	if _, ok := c.events[event.ID]; ok {
		return fmt.Errorf("calendar: event %s already registered", event.ID)
	}
	if !event.Start.Before(event.End) {
		return ErrSlotNotAvailable
	}
	if err := c.day(event.Date).AddEvent(event.ID, event.Start, event.End); err != nil {
		return err
	}
	stored := event
	stored.Reminders = append([]Reminder(nil), event.Reminders...)
	c.events[event.ID] = &stored
	return nil
}

// day returns the occupancy record for the date, creating it lazily on
// first touch. Days persist once created, even when later emptied.
func (c *Calendar) day(date Date) *Day {
	day, ok := c.days[date]
	if !ok {
		day = NewDay(date)
		c.days[date] = day
	}
	return day
}

func sortEvents(events []Event) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].Start != events[j].Start {
			return events[i].Start.Before(events[j].Start)
		}
		return events[i].ID < events[j].ID
	})
}
