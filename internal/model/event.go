package model

// DefaultNote is stored when an event is created without a note
const DefaultNote = "None"

// Event represents one scheduled entry
type Event struct {
	Date     string  `json:"date" yaml:"date"`
	Time     *string `json:"time,omitempty" yaml:"time,omitempty"` // nil means all-day
	Name     string  `json:"name" yaml:"name"`
	Note     string  `json:"note" yaml:"note"`
	Complete bool    `json:"complete" yaml:"complete"`

	// UID identifies the event in calendar exports. It is never used for
	// selection and never shown as the listing id.
	UID string `json:"-" yaml:"-"`
}

// Stamp returns the date/time sort key of the event
func (e *Event) Stamp() Stamp {
	return NewStamp(e.Date, e.Time)
}

// IsAllDay returns true if the event has no clock time
func (e *Event) IsAllDay() bool {
	return e.Time == nil
}

// Clock returns the event time, or DefaultTime for all-day events
func (e *Event) Clock() string {
	return e.Stamp().Clock()
}

// Listed is an event paired with its view-time ordinal.
//
// ID is the 1-based position of the event in one listing call. It is not
// stored and changes whenever the order or number of rows changes, so it
// must never be used to address an event across calls.
type Listed struct {
	ID    int `json:"id" yaml:"id"`
	Event `yaml:",inline"`
}

// Number assigns ordinals 1..n in slice order
func Number(events []Event) []Listed {
	listed := make([]Listed, len(events))
	for i, e := range events {
		listed[i] = Listed{ID: i + 1, Event: e}
	}
	return listed
}

// Patch holds the fields an update overwrites. Nil fields are left alone.
type Patch struct {
	Date     *string
	Time     *string
	Name     *string
	Note     *string
	Complete *bool
}

// Empty returns true if the patch changes nothing
func (p Patch) Empty() bool {
	return p.Date == nil && p.Time == nil && p.Name == nil && p.Note == nil && p.Complete == nil
}
