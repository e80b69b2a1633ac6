// Package calendar computes the month window shown by the calendar listing.
package calendar

import (
	"time"

	"github.com/dori/scheduler/internal/model"
)

// Dates outside this year range cannot be written as YYYY-MM-DD.
const (
	MinYear = 1
	MaxYear = 9999
)

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC, so the current month does not
// depend on the local zone.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock always returns the same instant
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Window returns the first day of the month reached from now by moving next
// months forward and then prev months back. Each step that would leave the
// representable range falls back to now instead of failing.
func Window(now time.Time, prev, next int) time.Time {
	date, ok := addMonths(now, next)
	if !ok {
		date = now
	}
	if date, ok = addMonths(date, -prev); !ok {
		date = now
	}
	return FirstOfMonth(date)
}

// addMonths moves t by n calendar months and reports whether the target is
// in range. The day is clamped first so that month arithmetic never spills
// into the following month.
func addMonths(t time.Time, n int) (time.Time, bool) {
	total := int64(t.Year())*12 + int64(t.Month()-1) + int64(n)
	year := total / 12
	if total < 0 {
		year = (total - 11) / 12
	}
	if year < MinYear || year > MaxYear {
		return t, false
	}
	month := time.Month(total-year*12) + 1
	day := t.Day()
	if last := DaysIn(int(year), month); day > last {
		day = last
	}
	return time.Date(int(year), month, day, 0, 0, 0, 0, t.Location()), true
}

// FirstOfMonth clamps t to the first day of its month
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysIn returns the number of days in a month
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Days enumerates every day of the month containing first
func Days(first time.Time) []time.Time {
	first = FirstOfMonth(first)
	n := DaysIn(first.Year(), first.Month())
	days := make([]time.Time, n)
	for i := range days {
		days[i] = first.AddDate(0, 0, i)
	}
	return days
}

// DateString formats t as YYYY-MM-DD
func DateString(t time.Time) string {
	return t.Format(model.DateLayout)
}

// Weeks lays out the month containing first as rows of seven day numbers
// starting on weekStart. Cells outside the month are zero.
func Weeks(first time.Time, weekStart time.Weekday) [][]int {
	first = FirstOfMonth(first)
	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7
	n := DaysIn(first.Year(), first.Month())

	var weeks [][]int
	week := make([]int, 7)
	col := offset
	for day := 1; day <= n; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]int, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// ParseWeekStart reads "sunday" or "monday"; anything else means Sunday.
func ParseWeekStart(s string) time.Weekday {
	if s == "monday" {
		return time.Monday
	}
	return time.Sunday
}
