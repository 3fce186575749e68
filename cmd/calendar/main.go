// Command calendar manages an in-memory calendar from the shell. State is
// carried between invocations through an iCalendar file; all booking rules
// live in the internal packages.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/example/calendar-manager/internal/application"
	"github.com/example/calendar-manager/internal/calendar"
	"github.com/example/calendar-manager/internal/config"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "calendar",
		Usage: "Manage events, slot bookings and reminders.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Usage: "iCalendar file holding the events (overrides CALENDAR_FILE)."},
		},
		Commands: []*cli.Command{
			addCommand(),
			updateCommand(),
			deleteCommand(),
			slotsCommand(),
			listCommand(),
			remindCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// env bundles everything a command action needs: the loaded config, a root
// logger, the wired service with stored events replayed, and the store to
// write back to.
type env struct {
	cfg     config.Config
	logger  *slog.Logger
	service *application.CalendarService
	store   store
}

func newEnv(c *cli.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if path := c.String("file"); path != "" {
		cfg.StorePath = path
	}

	logger := setupLogger(cfg)
	cal := calendar.New(uuid.NewString, func() time.Time {
		return time.Now().In(cfg.Timezone)
	})
	service := application.NewCalendarServiceWithLogger(cal, logger)

	s := store{path: cfg.StorePath, loc: cfg.Timezone}
	if err := s.load(c.Context, service); err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: logger, service: service, store: s}, nil
}

func setupLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Create an event and book its slots.",
		Flags: eventFlags(),
		Action: func(c *cli.Context) error {
			app, err := newEnv(c)
			if err != nil {
				return err
			}

			input, err := eventInputFromFlags(c)
			if err != nil {
				return err
			}

			event, err := app.service.CreateEvent(c.Context, application.CreateEventParams{Input: input})
			if err != nil {
				return describeError(err)
			}
			if err := app.store.save(c.Context, app.service); err != nil {
				return err
			}

			fmt.Println(event.ID)
			return nil
		},
	}
}

func updateCommand() *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringFlag{Name: "id", Usage: "Event identifier.", Required: true},
	}, eventFlags()...)

	return &cli.Command{
		Name:  "update",
		Usage: "Replace an event, possibly moving it to another date.",
		Flags: flags,
		Action: func(c *cli.Context) error {
			app, err := newEnv(c)
			if err != nil {
				return err
			}

			input, err := eventInputFromFlags(c)
			if err != nil {
				return err
			}

			_, err = app.service.UpdateEvent(c.Context, application.UpdateEventParams{
				EventID: c.String("id"),
				Input:   input,
			})
			if err != nil {
				return describeError(err)
			}
			return app.store.save(c.Context, app.service)
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Delete an event and free its slots.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Event identifier.", Required: true},
		},
		Action: func(c *cli.Context) error {
			app, err := newEnv(c)
			if err != nil {
				return err
			}

			if err := app.service.DeleteEvent(c.Context, c.String("id")); err != nil {
				return describeError(err)
			}
			return app.store.save(c.Context, app.service)
		},
	}
}

func slotsCommand() *cli.Command {
	return &cli.Command{
		Name:  "slots",
		Usage: "Show the free 15-minute slots of a date.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "Date in YYYY-MM-DD form.", Required: true},
		},
		Action: func(c *cli.Context) error {
			app, err := newEnv(c)
			if err != nil {
				return err
			}

			date, err := calendar.ParseDate(c.String("date"))
			if err != nil {
				return err
			}

			free := app.service.FindAvailableSlots(c.Context, date)
			fmt.Printf("%s: %d free slots\n", date, len(free))
			for line := 0; line < len(free); line += 8 {
				end := line + 8
				if end > len(free) {
					end = len(free)
				}
				parts := make([]string, 0, 8)
				for _, slot := range free[line:end] {
					parts = append(parts, slot.String())
				}
				fmt.Println("  " + strings.Join(parts, " "))
			}
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List events, optionally within an inclusive date range.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "Range start in YYYY-MM-DD form."},
			&cli.StringFlag{Name: "to", Usage: "Range end in YYYY-MM-DD form."},
		},
		Action: func(c *cli.Context) error {
			app, err := newEnv(c)
			if err != nil {
				return err
			}

			events, err := selectEvents(c, app)
			if err != nil {
				return err
			}

			for _, event := range events {
				printEvent(event)
			}
			return nil
		},
	}
}

func selectEvents(c *cli.Context, app *env) ([]application.Event, error) {
	from, to := c.String("from"), c.String("to")
	if from == "" && to == "" {
		return app.service.Events(c.Context), nil
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("flags --from and --to must be used together")
	}

	start, err := calendar.ParseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := calendar.ParseDate(to)
	if err != nil {
		return nil, err
	}

	found, err := app.service.FindEvents(c.Context, application.FindEventsParams{StartDate: start, EndDate: end})
	if err != nil {
		return nil, describeError(err)
	}

	ordered := make([]application.Event, 0)
	for date := start; !date.After(end); date = date.Next() {
		ordered = append(ordered, found[date]...)
	}
	return ordered, nil
}

func remindCommand() *cli.Command {
	return &cli.Command{
		Name:  "remind",
		Usage: "Manage the reminder records of an event.",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Attach a reminder to an event.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Event identifier.", Required: true},
					&cli.StringFlag{Name: "at", Usage: "Timestamp (RFC 3339 or \"YYYY-MM-DD HH:MM\").", Required: true},
					&cli.StringFlag{Name: "kind", Usage: "Reminder kind: email or system."},
				},
				Action: func(c *cli.Context) error {
					app, err := newEnv(c)
					if err != nil {
						return err
					}

					at, err := parseTimestamp(c.String("at"), app.cfg.Timezone)
					if err != nil {
						return err
					}
					kind := c.String("kind")
					if kind == "" {
						kind = app.cfg.DefaultReminderKind
					}

					err = app.service.AddReminder(c.Context, application.AddReminderParams{
						EventID: c.String("id"),
						At:      at,
						Kind:    calendar.ReminderKind(kind),
					})
					if err != nil {
						return describeError(err)
					}
					return app.store.save(c.Context, app.service)
				},
			},
			{
				Name:  "delete",
				Usage: "Remove a reminder by its current position.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Event identifier.", Required: true},
					&cli.IntFlag{Name: "index", Usage: "0-based reminder position.", Required: true},
				},
				Action: func(c *cli.Context) error {
					app, err := newEnv(c)
					if err != nil {
						return err
					}

					if err := app.service.DeleteReminder(c.Context, c.String("id"), c.Int("index")); err != nil {
						return describeError(err)
					}
					return app.store.save(c.Context, app.service)
				},
			},
			{
				Name:  "list",
				Usage: "List an event's reminders in insertion order.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Event identifier.", Required: true},
				},
				Action: func(c *cli.Context) error {
					app, err := newEnv(c)
					if err != nil {
						return err
					}

					reminders, err := app.service.ListReminders(c.Context, c.String("id"))
					if err != nil {
						return describeError(err)
					}
					for i, reminder := range reminders {
						fmt.Printf("%d  %s  %s\n", i, reminder.At.In(app.cfg.Timezone).Format(time.RFC3339), reminder.Kind)
					}
					return nil
				},
			},
		},
	}
}

func printEvent(event application.Event) {
	line := fmt.Sprintf("%s  %s-%s  %s  %s", event.Date, event.Start, event.End, event.ID, event.Title)
	if event.Description != "" {
		line += "  (" + event.Description + ")"
	}
	if n := len(event.Reminders); n == 1 {
		line += "  [1 reminder]"
	} else if n > 1 {
		line += fmt.Sprintf("  [%d reminders]", n)
	}
	fmt.Println(line)
}

func eventFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "Event title.", Required: true},
		&cli.StringFlag{Name: "description", Usage: "Event description."},
		&cli.StringFlag{Name: "date", Usage: "Date in YYYY-MM-DD form.", Required: true},
		&cli.StringFlag{Name: "start", Usage: "Start time in HH:MM form.", Required: true},
		&cli.StringFlag{Name: "end", Usage: "End time in HH:MM form (24:00 allowed).", Required: true},
	}
}

func eventInputFromFlags(c *cli.Context) (application.EventInput, error) {
	date, err := calendar.ParseDate(c.String("date"))
	if err != nil {
		return application.EventInput{}, err
	}
	start, err := calendar.ParseTimeOfDay(c.String("start"))
	if err != nil {
		return application.EventInput{}, err
	}
	end, err := calendar.ParseTimeOfDay(c.String("end"))
	if err != nil {
		return application.EventInput{}, err
	}

	return application.EventInput{
		Title:       c.String("title"),
		Description: c.String("description"),
		Date:        date,
		Start:       start,
		End:         end,
	}, nil
}

func parseTimestamp(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: use RFC 3339 or \"YYYY-MM-DD HH:MM\"", value)
	}
	return t, nil
}

// describeError rewrites service errors into messages a shell user can act
// on without knowing the error taxonomy.
func describeError(err error) error {
	var vErr *application.ValidationError
	if errors.As(err, &vErr) {
		fields := make([]string, 0, len(vErr.FieldErrors))
		for field := range vErr.FieldErrors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		parts := make([]string, 0, len(fields))
		for _, field := range fields {
			parts = append(parts, fmt.Sprintf("%s: %s", field, vErr.FieldErrors[field]))
		}
		return fmt.Errorf("invalid input (%s)", strings.Join(parts, "; "))
	}
	return err
}
