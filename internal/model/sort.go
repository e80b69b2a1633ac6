package model

import (
	"fmt"
	"slices"
	"strings"
)

// SortKey selects the comparator used to order a listing
type SortKey string

const (
	SortNone     SortKey = ""
	SortID       SortKey = "id"
	SortDate     SortKey = "date"
	SortTime     SortKey = "time"
	SortName     SortKey = "name"
	SortNote     SortKey = "note"
	SortComplete SortKey = "complete"
)

// SortKeys returns the accepted sort keys
func SortKeys() []SortKey {
	return []SortKey{SortID, SortDate, SortTime, SortName, SortNote, SortComplete}
}

// ParseSortKey validates a sort key given on the command line
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if key == SortNone {
		return SortNone, nil
	}
	if slices.Contains(SortKeys(), key) {
		return key, nil
	}
	return SortNone, &Error{
		Kind: ErrMalformedInput,
		Op:   "parse sort key",
		Err:  fmt.Errorf("unknown key %q", s),
	}
}

// Compare returns the comparator for key, or nil when storage order should
// be kept. Sorting by id is storage order since ids are assigned afterwards.
func (key SortKey) Compare() func(a, b Event) int {
	switch key {
	case SortDate:
		return func(a, b Event) int { return a.Stamp().Compare(b.Stamp()) }
	case SortTime:
		return func(a, b Event) int { return strings.Compare(a.Clock(), b.Clock()) }
	case SortName:
		return func(a, b Event) int { return strings.Compare(a.Name, b.Name) }
	case SortNote:
		return func(a, b Event) int { return strings.Compare(a.Note, b.Note) }
	case SortComplete:
		return func(a, b Event) int { return boolWeight(a.Complete) - boolWeight(b.Complete) }
	default:
		return nil
	}
}

// Sort orders events in place. Equal elements keep storage order.
func Sort(events []Event, key SortKey) {
	if cmp := key.Compare(); cmp != nil {
		slices.SortStableFunc(events, cmp)
	}
}

func boolWeight(b bool) int {
	if b {
		return 1
	}
	return 0
}
