// Package dispatch runs one parsed command against the event store and
// renders the result.
//
// Every kind maps to exactly one store call, except show-calendar which
// queries once per day of the month window.
package dispatch

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/dori/scheduler/internal/calendar"
	"github.com/dori/scheduler/internal/criteria"
	"github.com/dori/scheduler/internal/ics"
	"github.com/dori/scheduler/internal/model"
	"github.com/dori/scheduler/internal/render"
)

// Kind names a command
type Kind string

const (
	KindList           Kind = "list"
	KindShowCalendar   Kind = "show-calendar"
	KindShowDate       Kind = "show-date"
	KindEventShow      Kind = "event-show"
	KindEventCreate    Kind = "event-create"
	KindEventComplete  Kind = "event-complete"
	KindEventRemove    Kind = "event-remove"
	KindEventUpdate    Kind = "event-update"
	KindClearByDate    Kind = "clear-by-date"
	KindCompleteByDate Kind = "complete-by-date"
	KindDeleteByDate   Kind = "delete-by-date"
	KindExport         Kind = "export"
	KindRemind         Kind = "remind"
)

// Command is one parsed invocation. Only the fields its Kind reads matter.
type Command struct {
	Kind     Kind
	Criteria criteria.Criteria

	// show-date, event-create, *-by-date, remind
	Date string
	Time *string

	// event-create
	Name string
	Note *string

	// show-calendar
	Prev        int
	Next        int
	Interactive bool

	// list, event-show
	Sort model.SortKey

	// event-update
	Patch model.Patch

	// export; empty writes to the renderer's output
	Out string
}

// Store is the subset of the event store the dispatcher uses
type Store interface {
	ListEvents() ([]model.Event, error)
	QueryEvents(c criteria.Criteria) ([]model.Event, error)
	CreateEvent(e model.Event) (*model.Event, error)
	UpdateEvents(c criteria.Criteria, p model.Patch) (int64, error)
	DeleteEvents(c criteria.Criteria) (int64, error)
	ClearCompleted(date string) (int64, error)
	CompleteAll(date string) (int64, error)
	DeleteAll(date string) (int64, error)
}

// Notifier sends reminders for pending events
type Notifier interface {
	SendReminder(date string, pending []model.Event) error
}

// Browser shows a month interactively
type Browser interface {
	Browse(first time.Time) error
}

// Dispatcher executes commands
type Dispatcher struct {
	Store    Store
	Render   *render.Renderer
	Clock    calendar.Clock
	Notifier Notifier
	Browser  Browser
	Log      *zap.Logger
}

// New creates a dispatcher using the system clock
func New(store Store, r *render.Renderer, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		Store:  store,
		Render: r,
		Clock:  calendar.SystemClock{},
		Log:    logger.Named("dispatch"),
	}
}

// Run executes cmd
func (d *Dispatcher) Run(cmd Command) error {
	d.Log.Debug("dispatch",
		zap.String("kind", string(cmd.Kind)),
		zap.Stringer("criteria", cmd.Criteria))

	switch cmd.Kind {
	case KindList:
		events, err := d.Store.ListEvents()
		if err != nil {
			return err
		}
		return d.Render.Events(d.listing(events, cmd.Sort), render.AllColumns)

	case KindShowCalendar:
		return d.showCalendar(cmd)

	case KindShowDate:
		if err := requireField("date", cmd.Date); err != nil {
			return err
		}
		events, err := d.Store.QueryEvents(criteria.ForDateTime(cmd.Date, cmd.Time))
		if err != nil {
			return err
		}
		return d.Render.DateBlock(cmd.Date, cmd.Time, model.Number(events))

	case KindEventShow:
		events, err := d.Store.QueryEvents(cmd.Criteria)
		if err != nil {
			return err
		}
		return d.Render.Events(d.listing(events, cmd.Sort), render.AllColumns)

	case KindEventCreate:
		return d.create(cmd)

	case KindEventComplete:
		done := true
		n, err := d.Store.UpdateEvents(cmd.Criteria, model.Patch{Complete: &done})
		return d.affected("completed", n, err)

	case KindEventRemove:
		n, err := d.Store.DeleteEvents(cmd.Criteria)
		return d.affected("removed", n, err)

	case KindEventUpdate:
		n, err := d.Store.UpdateEvents(cmd.Criteria, cmd.Patch)
		return d.affected("updated", n, err)

	case KindClearByDate:
		if err := requireField("date", cmd.Date); err != nil {
			return err
		}
		n, err := d.Store.ClearCompleted(cmd.Date)
		return d.affected("cleared", n, err)

	case KindCompleteByDate:
		if err := requireField("date", cmd.Date); err != nil {
			return err
		}
		n, err := d.Store.CompleteAll(cmd.Date)
		return d.affected("completed", n, err)

	case KindDeleteByDate:
		if err := requireField("date", cmd.Date); err != nil {
			return err
		}
		n, err := d.Store.DeleteAll(cmd.Date)
		return d.affected("deleted", n, err)

	case KindExport:
		return d.export(cmd)

	case KindRemind:
		return d.remind(cmd)

	default:
		return &model.Error{
			Kind: model.ErrMalformedInput,
			Op:   "dispatch command",
			Err:  fmt.Errorf("unknown command kind %q", cmd.Kind),
		}
	}
}

// listing sorts and numbers events; ordinals follow the final order
func (d *Dispatcher) listing(events []model.Event, key model.SortKey) []model.Listed {
	model.Sort(events, key)
	return model.Number(events)
}

func (d *Dispatcher) showCalendar(cmd Command) error {
	first := calendar.Window(d.Clock.Now(), cmd.Prev, cmd.Next)

	if cmd.Interactive && d.Browser != nil {
		return d.Browser.Browse(first)
	}

	daysInMonth := calendar.Days(first)
	days := make([]render.Day, 0, len(daysInMonth))
	for _, day := range daysInMonth {
		date := calendar.DateString(day)
		events, err := d.Store.QueryEvents(criteria.ForDate(date))
		if err != nil {
			return err
		}
		days = append(days, render.Day{Date: date, Events: model.Number(events)})
	}
	return d.Render.Calendar(first, days)
}

func (d *Dispatcher) create(cmd Command) error {
	if err := requireField("date", cmd.Date); err != nil {
		return err
	}
	if err := requireField("name", cmd.Name); err != nil {
		return err
	}

	e := model.Event{Date: cmd.Date, Time: cmd.Time, Name: cmd.Name, Note: model.DefaultNote}
	if cmd.Note != nil {
		e.Note = *cmd.Note
	}

	created, err := d.Store.CreateEvent(e)
	if err != nil {
		return err
	}
	return d.Render.Created(*created)
}

func (d *Dispatcher) affected(action string, n int64, err error) error {
	if err != nil {
		return err
	}
	return d.Render.Affected(action, n)
}

func (d *Dispatcher) export(cmd Command) error {
	events, err := d.Store.QueryEvents(cmd.Criteria)
	if err != nil {
		return err
	}

	now := d.Clock.Now()
	if cmd.Out == "" {
		return ics.Write(d.Render.Out, events, now)
	}

	f, err := os.Create(cmd.Out)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := writeAndClose(f, events, now); err != nil {
		return err
	}

	d.Log.Debug("exported calendar", zap.String("path", cmd.Out), zap.Int("events", len(events)))
	return d.Render.Message("Exported %d events to %s", len(events), cmd.Out)
}

func writeAndClose(f io.WriteCloser, events []model.Event, now time.Time) error {
	if err := ics.Write(f, events, now); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	return nil
}

func (d *Dispatcher) remind(cmd Command) error {
	date := cmd.Date
	if date == "" {
		date = calendar.DateString(d.Clock.Now())
	}

	pending := false
	c := criteria.ForDate(date)
	c.Complete = &pending

	events, err := d.Store.QueryEvents(c)
	if err != nil {
		return err
	}

	if d.Notifier != nil {
		if err := d.Notifier.SendReminder(date, events); err != nil {
			// the listing is still useful without a desktop session
			d.Log.Warn("reminder not delivered", zap.Error(err))
		}
	}
	return d.Render.DateBlock(date, nil, model.Number(events))
}

func requireField(name, value string) error {
	if value != "" {
		return nil
	}
	return &model.Error{
		Kind: model.ErrMalformedInput,
		Op:   "validate command",
		Err:  fmt.Errorf("%s is required", name),
	}
}
