package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/example/calendar-manager/internal/calendar"
)

// CalendarService fronts a Calendar with input validation, structured
// logging and a single mutex. Slot booking reads and writes many map
// entries and is not atomic on its own, so one lock serialises every
// operation for callers that go concurrent.
type CalendarService struct {
	mu     sync.Mutex
	cal    *calendar.Calendar
	logger *slog.Logger
}

// NewCalendarService wires the service around an existing calendar.
func NewCalendarService(cal *calendar.Calendar) *CalendarService {
	return NewCalendarServiceWithLogger(cal, nil)
}

// NewCalendarServiceWithLogger wires the service with a base logger used
// when the context carries none.
func NewCalendarServiceWithLogger(cal *calendar.Calendar, logger *slog.Logger) *CalendarService {
	return &CalendarService{cal: cal, logger: defaultLogger(logger)}
}

// CreateEvent validates the input and books a new event, returning its
// stored view.
func (s *CalendarService) CreateEvent(ctx context.Context, params CreateEventParams) (Event, error) {
	if s == nil || s.cal == nil {
		return Event{}, fmt.Errorf("CalendarService is not configured")
	}
	logger := serviceLogger(ctx, s.logger, "calendar", "create_event")

	input := params.Input
	vErr := &ValidationError{}
	validateEventCore(input, vErr)
	if vErr.HasErrors() {
		logger.Warn("event rejected", "error_kind", ErrorKind(vErr))
		return Event{}, vErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cal.AddEvent(strings.TrimSpace(input.Title), input.Description, input.Date, input.Start, input.End)
	if err != nil {
		logger.Warn("event rejected", "error_kind", ErrorKind(err))
		return Event{}, err
	}

	created, err := s.cal.Event(id)
	if err != nil {
		return Event{}, err
	}
	logger.Info("event created", "event_id", id, "date", input.Date.String())
	return toApplicationEvent(created), nil
}

// UpdateEvent validates the input and replaces the stored event under the
// same id.
func (s *CalendarService) UpdateEvent(ctx context.Context, params UpdateEventParams) (Event, error) {
	if s == nil || s.cal == nil {
		return Event{}, fmt.Errorf("CalendarService is not configured")
	}
	logger := serviceLogger(ctx, s.logger, "calendar", "update_event", "event_id", params.EventID)

	input := params.Input
	vErr := &ValidationError{}
	validateEventCore(input, vErr)
	if vErr.HasErrors() {
		logger.Warn("update rejected", "error_kind", ErrorKind(vErr))
		return Event{}, vErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.cal.UpdateEvent(params.EventID, strings.TrimSpace(input.Title), input.Description, input.Date, input.Start, input.End)
	if err != nil {
		logger.Warn("update rejected", "error_kind", ErrorKind(err))
		return Event{}, err
	}

	updated, err := s.cal.Event(params.EventID)
	if err != nil {
		return Event{}, err
	}
	logger.Info("event updated", "date", input.Date.String())
	return toApplicationEvent(updated), nil
}

// DeleteEvent removes the event and frees its slots.
func (s *CalendarService) DeleteEvent(ctx context.Context, eventID string) error {
	if s == nil || s.cal == nil {
		return fmt.Errorf("CalendarService is not configured")
	}
	logger := serviceLogger(ctx, s.logger, "calendar", "delete_event", "event_id", eventID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cal.DeleteEvent(eventID); err != nil {
		logger.Warn("delete rejected", "error_kind", ErrorKind(err))
		return err
	}
	logger.Info("event deleted")
	return nil
}

// AddReminder attaches a reminder record to the identified event.
func (s *CalendarService) AddReminder(ctx context.Context, params AddReminderParams) error {
	if s == nil || s.cal == nil {
		return fmt.Errorf("CalendarService is not configured")
	}
	logger := serviceLogger(ctx, s.logger, "calendar", "add_reminder", "event_id", params.EventID)

	if params.Kind != "" && params.Kind != calendar.ReminderEmail && params.Kind != calendar.ReminderSystem {
		vErr := &ValidationError{}
		vErr.add("kind", "kind must be email or system")
		logger.Warn("reminder rejected", "error_kind", ErrorKind(vErr))
		return vErr
	}
	if params.At.IsZero() {
		vErr := &ValidationError{}
		vErr.add("at", "timestamp is required")
		logger.Warn("reminder rejected", "error_kind", ErrorKind(vErr))
		return vErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cal.AddReminder(params.EventID, params.At, params.Kind); err != nil {
		logger.Warn("reminder rejected", "error_kind", ErrorKind(err))
		return err
	}
	logger.Info("reminder added", "at", params.At)
	return nil
}

// DeleteReminder removes the reminder at the given position.
func (s *CalendarService) DeleteReminder(ctx context.Context, eventID string, index int) error {
	if s == nil || s.cal == nil {
		return fmt.Errorf("CalendarService is not configured")
	}
	logger := serviceLogger(ctx, s.logger, "calendar", "delete_reminder", "event_id", eventID, "index", index)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cal.DeleteReminder(eventID, index); err != nil {
		logger.Warn("reminder delete rejected", "error_kind", ErrorKind(err))
		return err
	}
	logger.Info("reminder deleted")
	return nil
}

// ListReminders returns the event's reminders in insertion order.
func (s *CalendarService) ListReminders(ctx context.Context, eventID string) ([]Reminder, error) {
	if s == nil || s.cal == nil {
		return nil, fmt.Errorf("CalendarService is not configured")
	}
	logger := serviceLogger(ctx, s.logger, "calendar", "list_reminders", "event_id", eventID)

	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, err := s.cal.ListReminders(eventID)
	if err != nil {
		logger.Warn("listing rejected", "error_kind", ErrorKind(err))
		return nil, err
	}
	return toApplicationReminders(reminders), nil
}

// FindAvailableSlots returns the free slots of the date in ascending order.
func (s *CalendarService) FindAvailableSlots(ctx context.Context, date calendar.Date) []calendar.TimeOfDay {
	if s == nil || s.cal == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cal.FindAvailableSlots(date)
}

// FindEvents returns events in the inclusive date range grouped by date.
func (s *CalendarService) FindEvents(ctx context.Context, params FindEventsParams) (map[calendar.Date][]Event, error) {
	if s == nil || s.cal == nil {
		return nil, fmt.Errorf("CalendarService is not configured")
	}

	vErr := &ValidationError{}
	if params.StartDate.IsZero() {
		vErr.add("start_date", "start date is required")
	}
	if params.EndDate.IsZero() {
		vErr.add("end_date", "end date is required")
	}
	if !params.StartDate.IsZero() && params.EndDate.Before(params.StartDate) {
		vErr.add("range", "end date must not precede start date")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found := s.cal.FindEvents(params.StartDate, params.EndDate)
	out := make(map[calendar.Date][]Event, len(found))
	for date, events := range found {
		views := make([]Event, 0, len(events))
		for _, event := range events {
			views = append(views, toApplicationEvent(event))
		}
		out[date] = views
	}
	return out, nil
}

// Event returns the stored view of a single event.
func (s *CalendarService) Event(ctx context.Context, eventID string) (Event, error) {
	if s == nil || s.cal == nil {
		return Event{}, fmt.Errorf("CalendarService is not configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.cal.Event(eventID)
	if err != nil {
		return Event{}, err
	}
	return toApplicationEvent(event), nil
}

// Events returns every stored event ordered by date and start time.
func (s *CalendarService) Events(ctx context.Context) []Event {
	if s == nil || s.cal == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.cal.Events()
	out := make([]Event, 0, len(events))
	for _, event := range events {
		out = append(out, toApplicationEvent(event))
	}
	return out
}

// Snapshot returns domain level copies of every stored event, ordered by
// date and start time. It feeds exporters that need reminders and ids in
// their original form.
func (s *CalendarService) Snapshot(ctx context.Context) []calendar.Event {
	if s == nil || s.cal == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cal.Events()
}

// ImportEvents replays externally loaded events through the calendar,
// keeping their ids and reminders. Slot invariants still apply; the first
// conflicting record aborts the import.
func (s *CalendarService) ImportEvents(ctx context.Context, events []calendar.Event) error {
	if s == nil || s.cal == nil {
		return fmt.Errorf("CalendarService is not configured")
	}
	logger := serviceLogger(ctx, s.logger, "calendar", "import_events")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, event := range events {
		if err := s.cal.RestoreEvent(event); err != nil {
			logger.Warn("import aborted", "event_id", event.ID, "error_kind", ErrorKind(err))
			return fmt.Errorf("import event %s: %w", event.ID, err)
		}
	}
	logger.Info("events imported", "count", len(events))
	return nil
}

func validateEventCore(input EventInput, vErr *ValidationError) {
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}

	if input.Date.IsZero() {
		vErr.add("date", "date is required")
	}

	if !input.Start.Before(input.End) {
		vErr.add("time", "start must be before end")
	}
}
