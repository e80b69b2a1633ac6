package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/scheduler/internal/calendar"
	"github.com/dori/scheduler/internal/criteria"
	"github.com/dori/scheduler/internal/model"
	"github.com/dori/scheduler/internal/ui/theme"
)

// Source is the store access the calendar view needs
type Source interface {
	QueryEvents(c criteria.Criteria) ([]model.Event, error)
	CompleteAll(date string) (int64, error)
}

// CalendarErrorMsg reports a failed load or update
type CalendarErrorMsg struct{ Err error }

// CalendarStatusMsg reports the result of an action
type CalendarStatusMsg struct{ Message string }

type calendarLoadedMsg struct {
	first       time.Time
	eventsByDay map[int][]model.Event
}

// CalendarView represents the calendar view
type CalendarView struct {
	source    Source
	clock     calendar.Clock
	weekStart time.Weekday
	width     int
	height    int

	// First day of the month being displayed
	first time.Time

	// Selected day of month
	selectedDay int

	eventsByDay map[int][]model.Event
}

// NewCalendarView creates a calendar view showing the month of first
func NewCalendarView(source Source, clock calendar.Clock, weekStart time.Weekday, first time.Time) CalendarView {
	first = calendar.FirstOfMonth(first)
	selected := 1
	if now := clock.Now(); now.Year() == first.Year() && now.Month() == first.Month() {
		selected = now.Day()
	}
	return CalendarView{
		source:      source,
		clock:       clock,
		weekStart:   weekStart,
		first:       first,
		selectedDay: selected,
		eventsByDay: make(map[int][]model.Event),
	}
}

// Init initializes the calendar view
func (v CalendarView) Init() tea.Cmd {
	return v.loadEvents()
}

// SetSize sets the view dimensions
func (v CalendarView) SetSize(width, height int) CalendarView {
	v.width = width
	v.height = height
	return v
}

// Month returns the first day of the displayed month
func (v CalendarView) Month() time.Time {
	return v.first
}

// SelectedDate returns the selected day as YYYY-MM-DD
func (v CalendarView) SelectedDate() string {
	return calendar.DateString(v.selected())
}

// Events returns the loaded events of the selected day
func (v CalendarView) Events() []model.Event {
	return v.eventsByDay[v.selectedDay]
}

func (v CalendarView) selected() time.Time {
	return time.Date(v.first.Year(), v.first.Month(), v.selectedDay, 0, 0, 0, 0, v.first.Location())
}

// loadEvents queries each day of the displayed month
func (v CalendarView) loadEvents() tea.Cmd {
	first := v.first
	source := v.source
	return func() tea.Msg {
		eventsByDay := make(map[int][]model.Event)
		for _, day := range calendar.Days(first) {
			events, err := source.QueryEvents(criteria.ForDate(calendar.DateString(day)))
			if err != nil {
				return CalendarErrorMsg{Err: err}
			}
			if len(events) > 0 {
				eventsByDay[day.Day()] = events
			}
		}
		return calendarLoadedMsg{first: first, eventsByDay: eventsByDay}
	}
}

func (v CalendarView) completeSelected() tea.Cmd {
	date := v.SelectedDate()
	source := v.source
	return func() tea.Msg {
		n, err := source.CompleteAll(date)
		if err != nil {
			return CalendarErrorMsg{Err: err}
		}
		return CalendarStatusMsg{Message: fmt.Sprintf("Completed %d on %s", n, date)}
	}
}

// Update handles messages
func (v CalendarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case calendarLoadedMsg:
		// a slow load for a month we already left is dropped
		if msg.first.Equal(v.first) {
			v.eventsByDay = msg.eventsByDay
		}
		return v, nil

	case CalendarStatusMsg:
		return v, v.loadEvents()

	case tea.KeyMsg:
		daysInMonth := v.daysInMonth()

		switch msg.String() {
		// Navigate days
		case "h", "left":
			if v.selectedDay > 1 {
				v.selectedDay--
			}
			return v, nil

		case "l", "right":
			if v.selectedDay < daysInMonth {
				v.selectedDay++
			}
			return v, nil

		case "k", "up":
			if v.selectedDay > 7 {
				v.selectedDay -= 7
			}
			return v, nil

		case "j", "down":
			if v.selectedDay+7 <= daysInMonth {
				v.selectedDay += 7
			}
			return v, nil

		// Navigate months
		case "H", "pgup":
			return v.moveMonths(-1)

		case "L", "pgdown":
			return v.moveMonths(1)

		case "t": // Today
			now := v.clock.Now()
			v.first = calendar.FirstOfMonth(now)
			v.selectedDay = now.Day()
			v.eventsByDay = make(map[int][]model.Event)
			return v, v.loadEvents()

		case "g":
			v.selectedDay = 1
			return v, nil

		case "G":
			v.selectedDay = daysInMonth
			return v, nil

		case "c":
			if len(v.Events()) == 0 {
				return v, nil
			}
			return v, v.completeSelected()
		}
	}

	return v, nil
}

func (v CalendarView) moveMonths(n int) (tea.Model, tea.Cmd) {
	next := calendar.Window(v.first, 0, n)
	if next.Equal(v.first) {
		return v, nil
	}
	v.first = next
	v.clampSelectedDay()
	v.eventsByDay = make(map[int][]model.Event)
	return v, v.loadEvents()
}

// daysInMonth returns the number of days in the current month
func (v CalendarView) daysInMonth() int {
	return calendar.DaysIn(v.first.Year(), v.first.Month())
}

// clampSelectedDay ensures selected day is valid for current month
func (v *CalendarView) clampSelectedDay() {
	daysInMonth := v.daysInMonth()
	if v.selectedDay > daysInMonth {
		v.selectedDay = daysInMonth
	}
}

// View renders the calendar
func (v CalendarView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	// Split into two panels: calendar (left) and event list (right)
	calWidth := 28
	listWidth := v.width - calWidth - 4
	if listWidth < 20 {
		listWidth = 20
	}

	grid := v.renderCalendar(calWidth)
	list := v.renderEventList(listWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, grid, list)
}

// weekdayLabels returns two-letter day names starting at weekStart
func (v CalendarView) weekdayLabels() string {
	labels := make([]string, 7)
	for i := range labels {
		day := time.Weekday((int(v.weekStart) + i) % 7)
		labels[i] = fmt.Sprintf("%-3s", day.String()[:2])
	}
	return strings.TrimRight(strings.Join(labels, ""), " ")
}

// renderCalendar renders the month grid
func (v CalendarView) renderCalendar(width int) string {
	styles := theme.Current.Styles

	var lines []string
	lines = append(lines, styles.Month.Width(width-4).Render(v.first.Format("January 2006")))
	lines = append(lines, styles.Weekday.Render(v.weekdayLabels()))

	now := v.clock.Now()
	isCurrentMonth := v.first.Year() == now.Year() && v.first.Month() == now.Month()

	for _, week := range calendar.Weeks(v.first, v.weekStart) {
		cells := make([]string, 0, len(week))
		for _, day := range week {
			if day == 0 {
				cells = append(cells, styles.Day.Render(""))
				continue
			}

			hasEvents := len(v.eventsByDay[day]) > 0
			dayStyle := styles.Day
			switch {
			case day == v.selectedDay:
				dayStyle = dayStyle.Inherit(styles.Selected)
			case isCurrentMonth && day == now.Day():
				dayStyle = dayStyle.Inherit(styles.Today)
			case hasEvents:
				dayStyle = dayStyle.Inherit(styles.Busy)
			}

			label := fmt.Sprintf("%2d", day)
			if hasEvents {
				label += "•"
			} else {
				label += " "
			}
			cells = append(cells, dayStyle.Render(label))
		}
		lines = append(lines, strings.Join(cells, ""))
	}

	return styles.Panel.Render(strings.Join(lines, "\n"))
}

// renderEventList renders the events of the selected day
func (v CalendarView) renderEventList(width int) string {
	styles := theme.Current.Styles

	var lines []string
	lines = append(lines, styles.Header.Render(v.selected().Format("Monday, January 2")))
	lines = append(lines, "")

	events := v.Events()
	if len(events) == 0 {
		lines = append(lines, styles.Empty.Render("No events this day"))
	}
	for _, e := range events {
		checkbox := styles.Pending.Render("☐")
		if e.Complete {
			checkbox = styles.Done.Render("☑")
		}

		clock := "all day "
		if e.Time != nil {
			clock = *e.Time
		}

		name := e.Name
		maxLen := width - 16
		if maxLen > 3 && len(name) > maxLen {
			name = name[:maxLen-3] + "..."
		}
		nameStyle := styles.Name
		if e.Complete {
			nameStyle = styles.RowDone
		}

		line := fmt.Sprintf("%s %s %s", checkbox, styles.Time.Render(clock), nameStyle.Render(name))
		lines = append(lines, line)
		if e.Note != "" && e.Note != model.DefaultNote {
			lines = append(lines, "           "+styles.Note.Render(e.Note))
		}
	}

	return styles.Panel.Width(width).Render(strings.Join(lines, "\n"))
}
