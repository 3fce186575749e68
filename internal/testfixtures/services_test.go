package testfixtures

import (
	"context"
	"testing"

	"github.com/example/calendar-manager/internal/application"
)

func TestNewServiceFixture(t *testing.T) {
	fixture := NewServiceFixture(nil)

	event, err := fixture.Service.CreateEvent(context.Background(), application.CreateEventParams{
		Input: MorningMeeting(ReferenceDate()),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.ID != "evt-1" {
		t.Fatalf("expected deterministic id evt-1, got %q", event.ID)
	}

	// The clock anchors "today"; moving it back a week makes the same
	// input a past date booking.
	fixture.Clock.Set(ReferenceTime().AddDate(0, 0, 7))
	if _, err := fixture.Service.CreateEvent(context.Background(), application.CreateEventParams{
		Input: AfternoonFocus(ReferenceDate()),
	}); err == nil {
		t.Fatal("expected rejection once the clock moved past the date")
	}
}
