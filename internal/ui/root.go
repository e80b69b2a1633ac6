package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/dori/scheduler/internal/calendar"
	"github.com/dori/scheduler/internal/ui/theme"
	"github.com/dori/scheduler/internal/ui/views"
)

// RootModel is the browser model wrapping the calendar view
type RootModel struct {
	keys   KeyMap
	help   help.Model
	width  int
	height int

	calendarView views.CalendarView
	helpVisible  bool

	// Status message
	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model showing the month of first
func NewRootModel(source views.Source, clock calendar.Clock, weekStart time.Weekday, first time.Time) RootModel {
	h := help.New()
	h.ShowAll = false

	return RootModel{
		keys:         DefaultKeyMap(),
		help:         h,
		calendarView: views.NewCalendarView(source, clock, weekStart, first),
	}
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	return m.calendarView.Init()
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header (1 line) and footer (2 lines)
		m.calendarView = m.calendarView.SetSize(m.width, m.height-3)

	case tea.KeyMsg:
		// Clear status/error on any keypress
		m.statusMsg = ""
		m.errorMsg = ""

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.ThemeCycle):
			return m, cycleTheme()

		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			m.help.ShowAll = m.helpVisible
			return m, nil
		}

	case views.CalendarErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case views.CalendarStatusMsg:
		m.statusMsg = msg.Message

	case ThemeChangedMsg:
		m.statusMsg = fmt.Sprintf("Theme: %s", msg.ThemeName)
		return m, nil
	}

	// Delegate to the calendar
	newCalendarView, cmd := m.calendarView.Update(msg)
	m.calendarView = newCalendarView.(views.CalendarView)
	return m, cmd
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	sections := []string{m.renderHeader(), m.calendarView.View(), m.renderFooter()}
	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("scheduler")

	indicatorStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	monthIndicator := indicatorStyle.Render(fmt.Sprintf("[%s]", m.calendarView.SelectedDate()))
	themeIndicator := indicatorStyle.Render(fmt.Sprintf("theme: %s", t.Name))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, monthIndicator)

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(themeIndicator)
	if gap < 0 {
		gap = 0
	}

	return leftSide + strings.Repeat(" ", gap) + themeIndicator
}

// renderFooter renders the status line and key hints
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var lines []string
	if m.errorMsg != "" {
		lines = append(lines, styles.Error.Render(m.errorMsg))
	} else if m.statusMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg))
	}

	m.help.Styles.ShortKey = styles.HelpKey
	m.help.Styles.ShortDesc = styles.HelpDesc
	m.help.Styles.FullKey = styles.HelpKey
	m.help.Styles.FullDesc = styles.HelpDesc
	lines = append(lines, m.help.View(m.keys))

	return strings.Join(lines, "\n")
}

// cycleTheme switches to the next available theme and reports it
func cycleTheme() tea.Cmd {
	themes := theme.Available()
	current := theme.Current.Theme.Name

	for i, t := range themes {
		if t.Name == current {
			next := themes[(i+1)%len(themes)]
			theme.SetTheme(next)
			return func() tea.Msg {
				return ThemeChangedMsg{ThemeName: next.Name}
			}
		}
	}
	return nil
}

// Browser runs the calendar interactively
type Browser struct {
	Source    views.Source
	Clock     calendar.Clock
	WeekStart time.Weekday
	Log       *zap.Logger
}

// Browse opens the browser at the month of first and blocks until quit
func (b *Browser) Browse(first time.Time) error {
	if b.Log != nil {
		b.Log.Debug("browse calendar", zap.Time("month", first))
	}

	p := tea.NewProgram(
		NewRootModel(b.Source, b.Clock, b.WeekStart, first),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
