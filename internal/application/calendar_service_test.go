package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/example/calendar-manager/internal/calendar"
)

var serviceNow = time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)

func newTestService() *CalendarService {
	counter := 0
	newID := func() string {
		counter++
		return fmt.Sprintf("evt-%d", counter)
	}
	cal := calendar.New(newID, func() time.Time { return serviceNow })
	return NewCalendarService(cal)
}

func validInput() EventInput {
	return EventInput{
		Title:       "Standup",
		Description: "daily sync",
		Date:        calendar.DateOf(serviceNow),
		Start:       calendar.TimeOfDay{Hour: 9},
		End:         calendar.TimeOfDay{Hour: 10},
	}
}

func createEvent(t *testing.T, svc *CalendarService, input EventInput) Event {
	t.Helper()
	event, err := svc.CreateEvent(context.Background(), CreateEventParams{Input: input})
	if err != nil {
		t.Fatalf("unexpected error creating event: %v", err)
	}
	return event
}

func TestCalendarService_CreateEvent(t *testing.T) {
	t.Run("validates required attributes", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.CreateEvent(context.Background(), CreateEventParams{
			Input: EventInput{
				Title: "   ",
				Start: calendar.TimeOfDay{Hour: 10},
				End:   calendar.TimeOfDay{Hour: 9},
			},
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"title", "date", "time"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected field error for %q, got %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("trims the title and returns the stored view", func(t *testing.T) {
		svc := newTestService()
		input := validInput()
		input.Title = "  Standup  "

		event := createEvent(t, svc, input)

		if event.Title != "Standup" {
			t.Fatalf("expected trimmed title, got %q", event.Title)
		}
		if event.ID != "evt-1" {
			t.Fatalf("expected generated id, got %q", event.ID)
		}
	})

	t.Run("propagates slot collisions", func(t *testing.T) {
		svc := newTestService()
		createEvent(t, svc, validInput())

		input := validInput()
		input.Start = calendar.TimeOfDay{Hour: 9, Minute: 30}
		input.End = calendar.TimeOfDay{Hour: 10, Minute: 30}
		_, err := svc.CreateEvent(context.Background(), CreateEventParams{Input: input})

		if !errors.Is(err, calendar.ErrSlotNotAvailable) {
			t.Fatalf("expected ErrSlotNotAvailable, got %v", err)
		}
	})

	t.Run("propagates past date rejection", func(t *testing.T) {
		svc := newTestService()

		input := validInput()
		input.Date = calendar.Date{Year: 2025, Month: time.May, Day: 31}
		_, err := svc.CreateEvent(context.Background(), CreateEventParams{Input: input})

		if !errors.Is(err, calendar.ErrDateLowerThanToday) {
			t.Fatalf("expected ErrDateLowerThanToday, got %v", err)
		}
	})
}

func TestCalendarService_UpdateEvent(t *testing.T) {
	t.Run("fails for unknown events", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.UpdateEvent(context.Background(), UpdateEventParams{
			EventID: "evt-ghost",
			Input:   validInput(),
		})

		if !errors.Is(err, calendar.ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("replaces the event under the same id", func(t *testing.T) {
		svc := newTestService()
		created := createEvent(t, svc, validInput())

		input := validInput()
		input.Title = "Standup moved"
		input.Date = created.Date.Next()
		updated, err := svc.UpdateEvent(context.Background(), UpdateEventParams{
			EventID: created.ID,
			Input:   input,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if updated.ID != created.ID || updated.Title != "Standup moved" {
			t.Fatalf("unexpected event after update: %+v", updated)
		}
		free := svc.FindAvailableSlots(context.Background(), created.Date)
		if len(free) != calendar.SlotsPerDay {
			t.Fatal("expected the original date fully free after the move")
		}
	})
}

func TestCalendarService_Reminders(t *testing.T) {
	t.Run("round trip and index shift", func(t *testing.T) {
		svc := newTestService()
		event := createEvent(t, svc, validInput())

		for i := 0; i < 2; i++ {
			err := svc.AddReminder(context.Background(), AddReminderParams{
				EventID: event.ID,
				At:      serviceNow.Add(time.Duration(i) * time.Hour),
				Kind:    calendar.ReminderSystem,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		reminders, err := svc.ListReminders(context.Background(), event.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(reminders) != 2 || reminders[1].Kind != calendar.ReminderSystem {
			t.Fatalf("unexpected reminders: %+v", reminders)
		}

		if err := svc.DeleteReminder(context.Background(), event.ID, 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		reminders, _ = svc.ListReminders(context.Background(), event.ID)
		if len(reminders) != 1 || !reminders[0].At.Equal(serviceNow.Add(time.Hour)) {
			t.Fatalf("expected the later reminder to shift to index 0, got %+v", reminders)
		}
	})

	t.Run("rejects unknown kinds before touching the calendar", func(t *testing.T) {
		svc := newTestService()
		event := createEvent(t, svc, validInput())

		err := svc.AddReminder(context.Background(), AddReminderParams{
			EventID: event.ID,
			At:      serviceNow,
			Kind:    "carrier-pigeon",
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["kind"]; !ok {
			t.Fatalf("expected field error for kind, got %v", vErr.FieldErrors)
		}
	})

	t.Run("propagates missing events and indices", func(t *testing.T) {
		svc := newTestService()
		event := createEvent(t, svc, validInput())

		if _, err := svc.ListReminders(context.Background(), "evt-ghost"); !errors.Is(err, calendar.ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
		if err := svc.DeleteReminder(context.Background(), event.ID, 5); !errors.Is(err, calendar.ErrReminderNotFound) {
			t.Fatalf("expected ErrReminderNotFound, got %v", err)
		}
	})
}

func TestCalendarService_FindEvents(t *testing.T) {
	t.Run("validates the range", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.FindEvents(context.Background(), FindEventsParams{
			StartDate: calendar.DateOf(serviceNow),
			EndDate:   calendar.Date{Year: 2025, Month: time.May, Day: 1},
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("groups same date events together", func(t *testing.T) {
		svc := newTestService()
		date := calendar.DateOf(serviceNow)
		createEvent(t, svc, validInput())

		second := validInput()
		second.Start = calendar.TimeOfDay{Hour: 14}
		second.End = calendar.TimeOfDay{Hour: 15}
		createEvent(t, svc, second)

		found, err := svc.FindEvents(context.Background(), FindEventsParams{StartDate: date, EndDate: date})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(found[date]) != 2 {
			t.Fatalf("expected both events on %v, got %d", date, len(found[date]))
		}
	})
}

func TestCalendarService_ImportEvents(t *testing.T) {
	t.Run("replays events with their ids", func(t *testing.T) {
		svc := newTestService()

		past := calendar.Date{Year: 2024, Month: time.December, Day: 24}
		err := svc.ImportEvents(context.Background(), []calendar.Event{{
			ID:    "evt-imported",
			Title: "Christmas Eve",
			Date:  past,
			Start: calendar.TimeOfDay{Hour: 18},
			End:   calendar.TimeOfDay{Hour: 20},
		}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		event, err := svc.Event(context.Background(), "evt-imported")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if event.Title != "Christmas Eve" {
			t.Fatalf("unexpected event: %+v", event)
		}
	})

	t.Run("aborts on the first conflicting record", func(t *testing.T) {
		svc := newTestService()
		date := calendar.Date{Year: 2025, Month: time.July, Day: 1}

		err := svc.ImportEvents(context.Background(), []calendar.Event{
			{ID: "evt-a", Title: "A", Date: date, Start: calendar.TimeOfDay{Hour: 9}, End: calendar.TimeOfDay{Hour: 10}},
			{ID: "evt-b", Title: "B", Date: date, Start: calendar.TimeOfDay{Hour: 9, Minute: 30}, End: calendar.TimeOfDay{Hour: 10, Minute: 30}},
		})

		if !errors.Is(err, calendar.ErrSlotNotAvailable) {
			t.Fatalf("expected ErrSlotNotAvailable, got %v", err)
		}
	})
}

func TestCalendarService_NilReceiver(t *testing.T) {
	var svc *CalendarService

	if _, err := svc.CreateEvent(context.Background(), CreateEventParams{}); err == nil {
		t.Fatal("expected error from unconfigured service")
	}
	if err := svc.DeleteEvent(context.Background(), "evt-1"); err == nil {
		t.Fatal("expected error from unconfigured service")
	}
}
