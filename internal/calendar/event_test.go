package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestEventAddReminder(t *testing.T) {
	event := &Event{ID: "evt-1"}
	first := time.Date(2025, time.June, 1, 8, 30, 0, 0, time.UTC)
	second := first.Add(30 * time.Minute)

	event.AddReminder(first, ReminderSystem)
	event.AddReminder(second, "")

	if len(event.Reminders) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(event.Reminders))
	}
	if event.Reminders[0].Kind != ReminderSystem {
		t.Fatalf("expected system reminder first, got %q", event.Reminders[0].Kind)
	}
	if event.Reminders[1].Kind != ReminderEmail {
		t.Fatalf("expected empty kind to default to email, got %q", event.Reminders[1].Kind)
	}
	if !event.Reminders[1].At.Equal(second) {
		t.Fatalf("expected insertion order preserved, got %v", event.Reminders[1].At)
	}
}

func TestEventDeleteReminder(t *testing.T) {
	base := time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)

	newEvent := func() *Event {
		event := &Event{ID: "evt-1"}
		for i := 0; i < 3; i++ {
			event.AddReminder(base.Add(time.Duration(i)*time.Hour), ReminderEmail)
		}
		return event
	}

	t.Run("removes exactly the indexed reminder", func(t *testing.T) {
		event := newEvent()

		if err := event.DeleteReminder(1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(event.Reminders) != 2 {
			t.Fatalf("expected 2 reminders, got %d", len(event.Reminders))
		}
		// The later reminder shifts down one index.
		if !event.Reminders[1].At.Equal(base.Add(2 * time.Hour)) {
			t.Fatalf("expected third reminder at index 1, got %v", event.Reminders[1].At)
		}
	})

	t.Run("rejects negative indices", func(t *testing.T) {
		if err := newEvent().DeleteReminder(-1); !errors.Is(err, ErrReminderNotFound) {
			t.Fatalf("expected ErrReminderNotFound, got %v", err)
		}
	})

	t.Run("rejects indices past the end", func(t *testing.T) {
		if err := newEvent().DeleteReminder(3); !errors.Is(err, ErrReminderNotFound) {
			t.Fatalf("expected ErrReminderNotFound, got %v", err)
		}
	})
}
