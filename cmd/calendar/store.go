package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/example/calendar-manager/internal/application"
	"github.com/example/calendar-manager/internal/ics"
)

// store round-trips calendar state through an iCalendar file so separate
// CLI invocations see each other's changes. The file is an interchange
// document, not a database: it is read once at startup and rewritten in
// full after a successful mutation.
type store struct {
	path string
	loc  *time.Location
}

// load replays the stored events into the service. A missing file means an
// empty calendar.
func (s store) load(ctx context.Context, service *application.CalendarService) error {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	events, err := ics.Decode(f, s.loc)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.path, err)
	}
	if err := service.ImportEvents(ctx, events); err != nil {
		return fmt.Errorf("replay %s: %w", s.path, err)
	}
	return nil
}

// save rewrites the file from the service's current state, going through a
// temp file so a failed encode never truncates the store.
func (s store) save(ctx context.Context, service *application.CalendarService) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".calendar-*.ics")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := ics.Encode(tmp, service.Snapshot(ctx), s.loc); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
