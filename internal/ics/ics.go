// Package ics writes events as an iCalendar document.
package ics

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/dori/scheduler/internal/model"
)

const (
	// ProductID identifies documents written by this package
	ProductID = "-//scheduler//scheduler//EN"

	// PropertyComplete marks events that were completed
	PropertyComplete = ical.ComponentProperty("X-SCHEDULER-COMPLETE")

	floatingLayout = "20060102T150405"
)

// Build converts events into a calendar. Timed events get a floating
// DTSTART since stored times carry no zone; all-day events get a DATE value.
func Build(events []model.Event, stamp time.Time) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)

	for _, e := range events {
		start, err := e.Stamp().Parsed()
		if err != nil {
			return nil, &model.Error{
				Kind: model.ErrMalformedInput,
				Op:   "export event " + e.Name,
				Err:  err,
			}
		}

		uid := e.UID
		if uid == "" {
			uid = e.Name
		}

		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(stamp.UTC())
		ev.SetSummary(e.Name)
		if e.Note != "" && e.Note != model.DefaultNote {
			ev.SetDescription(e.Note)
		}
		if e.IsAllDay() {
			ev.SetAllDayStartAt(start)
		} else {
			ev.SetProperty(ical.ComponentPropertyDtStart, start.Format(floatingLayout))
		}
		if e.Complete {
			ev.SetProperty(PropertyComplete, "TRUE")
		}
	}

	return cal, nil
}

// Write serializes events as iCalendar text to w
func Write(w io.Writer, events []model.Event, stamp time.Time) error {
	cal, err := Build(events, stamp)
	if err != nil {
		return err
	}
	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}
