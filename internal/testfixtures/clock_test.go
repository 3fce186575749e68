package testfixtures

import (
	"testing"
	"time"
)

func TestClockDefaultsToReferenceTime(t *testing.T) {
	clock := NewClock(time.Time{})

	if !clock.Now().Equal(ReferenceTime()) {
		t.Fatalf("expected reference time, got %v", clock.Now())
	}
}

func TestClockSetAndAdvance(t *testing.T) {
	start := time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)
	clock := NewClock(start)

	if !clock.Now().Equal(start) {
		t.Fatalf("expected %v, got %v", start, clock.Now())
	}

	updated := clock.Advance(90 * time.Minute)
	if !updated.Equal(start.Add(90 * time.Minute)) {
		t.Fatalf("expected advance to 13:30, got %v", updated)
	}

	clock.Set(start)
	if !clock.Now().Equal(start) {
		t.Fatalf("expected reset to %v, got %v", clock.Now(), start)
	}
}

func TestClockNowFuncNilReceiver(t *testing.T) {
	var clock *Clock

	nowFn := clock.NowFunc()
	if nowFn == nil {
		t.Fatal("expected a usable fallback function")
	}
	if nowFn().IsZero() {
		t.Fatal("expected wall clock time from fallback")
	}
}
