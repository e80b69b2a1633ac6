// Package render prints listings as styled text, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gosuri/uitable"
	"gopkg.in/yaml.v3"

	"github.com/dori/scheduler/internal/model"
	"github.com/dori/scheduler/internal/ui/theme"
)

// Format selects the output encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the accepted output formats
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat validates an output format name
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", &model.Error{
		Kind: model.ErrMalformedInput,
		Op:   "parse output format",
		Err:  fmt.Errorf("invalid format %q: must be one of %v", s, Formats),
	}
}

// Columns selects the optional columns of a text listing
type Columns struct {
	Date bool
	Time bool
}

// AllColumns shows both date and time
var AllColumns = Columns{Date: true, Time: true}

// Day is the listing block of one calendar day
type Day struct {
	Date   string         `json:"date" yaml:"date"`
	Events []model.Listed `json:"events" yaml:"events"`
}

// Renderer writes command output
type Renderer struct {
	Out    io.Writer
	Format Format
	Styles theme.Styles
}

// New creates a renderer using the current theme
func New(out io.Writer, format Format) *Renderer {
	return &Renderer{Out: out, Format: format, Styles: theme.Current.Styles}
}

// Events prints a listing
func (r *Renderer) Events(listed []model.Listed, cols Columns) error {
	if r.Format != FormatText {
		return r.encode(nonNil(listed))
	}
	r.table(listed, cols)
	return nil
}

// DateBlock prints the events of one date under a header naming the date
// and, when filtered by it, the time.
func (r *Renderer) DateBlock(date string, clock *string, listed []model.Listed) error {
	if r.Format != FormatText {
		return r.encode(Day{Date: date, Events: nonNil(listed)})
	}
	r.dateHeader(date, clock)
	r.table(listed, Columns{Time: clock == nil})
	return nil
}

// Calendar prints one block per day of a month
func (r *Renderer) Calendar(month time.Time, days []Day) error {
	if r.Format != FormatText {
		for i := range days {
			days[i].Events = nonNil(days[i].Events)
		}
		return r.encode(struct {
			Month string `json:"month" yaml:"month"`
			Days  []Day  `json:"days" yaml:"days"`
		}{Month: month.Format("2006-01"), Days: days})
	}

	fmt.Fprintln(r.Out, r.Styles.Title.Render(month.Format("January 2006")))
	for _, d := range days {
		r.dateHeader(d.Date, nil)
		r.table(d.Events, Columns{Time: true})
	}
	return nil
}

// Created reports a newly inserted event
func (r *Renderer) Created(e model.Event) error {
	if r.Format != FormatText {
		return r.encode(e)
	}
	fmt.Fprintf(r.Out, "%s %s %s\n",
		r.Styles.Label.Render("Created:"),
		r.Styles.Name.Render(e.Name),
		r.Styles.Date.Render(e.Stamp().String()))
	return nil
}

// Affected reports how many events a mutation touched
func (r *Renderer) Affected(action string, n int64) error {
	if r.Format != FormatText {
		return r.encode(struct {
			Action   string `json:"action" yaml:"action"`
			Affected int64  `json:"affected" yaml:"affected"`
		}{Action: action, Affected: n})
	}
	noun := "events"
	if n == 1 {
		noun = "event"
	}
	fmt.Fprintf(r.Out, "%s %s\n",
		r.Styles.Label.Render(strings.ToUpper(action[:1])+action[1:]+":"),
		r.Styles.Count.Render(fmt.Sprintf("%d %s", n, noun)))
	return nil
}

// Message prints a plain line of text output
func (r *Renderer) Message(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if r.Format != FormatText {
		return r.encode(struct {
			Message string `json:"message" yaml:"message"`
		}{Message: msg})
	}
	fmt.Fprintln(r.Out, msg)
	return nil
}

func (r *Renderer) dateHeader(date string, clock *string) {
	line := r.Styles.Label.Render("Date:") + " " + r.Styles.Header.Render(date)
	if clock != nil {
		line += r.Styles.Label.Render(", Time:") + " " + r.Styles.Header.Render(*clock)
	}
	fmt.Fprintln(r.Out, line)
}

// table lays out rows with uitable, then styles whole lines so ANSI codes
// do not disturb column widths.
func (r *Renderer) table(listed []model.Listed, cols Columns) {
	if len(listed) == 0 {
		fmt.Fprintln(r.Out, r.Styles.Empty.Render("  none"))
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "

	header := []interface{}{"#"}
	if cols.Date {
		header = append(header, "DATE")
	}
	if cols.Time {
		header = append(header, "TIME")
	}
	header = append(header, "NAME", "NOTE", "COMPLETE")
	tbl.AddRow(header...)

	for _, l := range listed {
		row := []interface{}{strconv.Itoa(l.ID)}
		if cols.Date {
			row = append(row, l.Date)
		}
		if cols.Time {
			row = append(row, clockText(l.Event))
		}
		row = append(row, l.Name, l.Note, strconv.FormatBool(l.Complete))
		tbl.AddRow(row...)
	}

	lines := strings.Split(tbl.String(), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " ")
		switch {
		case i == 0:
			line = r.Styles.Label.Render(line)
		case listed[i-1].Complete:
			line = r.Styles.RowDone.Render(line)
		default:
			line = r.Styles.Row.Render(line)
		}
		fmt.Fprintln(r.Out, line)
	}
}

func (r *Renderer) encode(v any) error {
	switch r.Format {
	case FormatJSON:
		enc := json.NewEncoder(r.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.Out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", r.Format)
	}
}

// clockText shows all-day events with a dash
func clockText(e model.Event) string {
	if e.Time == nil {
		return "-"
	}
	return *e.Time
}

func nonNil(listed []model.Listed) []model.Listed {
	if listed == nil {
		return []model.Listed{}
	}
	return listed
}
