package testfixtures

import (
	"log/slog"

	"github.com/example/calendar-manager/internal/application"
	"github.com/example/calendar-manager/internal/calendar"
)

// ServiceFixture bundles a wired calendar service with the deterministic
// collaborators behind it, so tests can steer time and identifiers.
type ServiceFixture struct {
	Service *application.CalendarService
	Clock   *Clock
	IDs     *IDGenerator
}

// NewServiceFixture builds a calendar service anchored at ReferenceTime
// with sequential event ids. A nil logger falls back to slog.Default.
func NewServiceFixture(logger *slog.Logger) *ServiceFixture {
	clock := NewClock(ReferenceTime())
	ids := NewIDGenerator("evt")
	cal := calendar.New(ids.NextFunc(), clock.NowFunc())
	return &ServiceFixture{
		Service: application.NewCalendarServiceWithLogger(cal, logger),
		Clock:   clock,
		IDs:     ids,
	}
}
