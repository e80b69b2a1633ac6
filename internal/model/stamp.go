package model

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTime stands in for the clock time of all-day entries
const DefaultTime = "11:59:59"

const (
	DateLayout  = "2006-01-02"
	TimeLayout  = "15:04:05"
	stampLayout = DateLayout + " " + TimeLayout
)

// Stamp is the date and optional time of an entry, used as its sort key.
// Ordering is lexicographic on String(), which is chronological only for
// zero-padded YYYY-MM-DD and HH:MM:SS text.
type Stamp struct {
	Date string
	Time *string
}

// NewStamp creates a stamp from raw date and optional time text
func NewStamp(date string, clock *string) Stamp {
	return Stamp{Date: date, Time: clock}
}

// ParseStamp splits "<date> <time>" on whitespace
func ParseStamp(s string) (Stamp, error) {
	parts := strings.Fields(s)
	if len(parts) < 2 {
		return Stamp{}, &Error{
			Kind: ErrMalformedInput,
			Op:   "parse stamp",
			Err:  fmt.Errorf("expected \"<date> <time>\", got %q", s),
		}
	}
	clock := parts[1]
	return Stamp{Date: parts[0], Time: &clock}, nil
}

// Clock returns the time text, or DefaultTime for all-day entries
func (s Stamp) Clock() string {
	if s.Time == nil {
		return DefaultTime
	}
	return *s.Time
}

func (s Stamp) String() string {
	return s.Date + " " + s.Clock()
}

// Compare orders two stamps by their canonical text
func (s Stamp) Compare(o Stamp) int {
	return strings.Compare(s.String(), o.String())
}

// Less reports whether s sorts before o
func (s Stamp) Less(o Stamp) bool {
	return s.Compare(o) < 0
}

// Parsed interprets the stamp as a wall-clock time without a zone.
func (s Stamp) Parsed() (time.Time, error) {
	t, err := time.Parse(stampLayout, s.String())
	if err != nil {
		return time.Time{}, &Error{Kind: ErrMalformedInput, Op: "parse stamp", Err: err}
	}
	return t, nil
}
