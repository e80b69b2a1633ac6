package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme used for listings and the calendar
type Theme struct {
	Name string

	// Base colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	// Semantic colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color

	// Event field colors
	DateColor lipgloss.Color
	TimeColor lipgloss.Color
	NameColor lipgloss.Color
	NoteColor lipgloss.Color

	// Completion colors
	Pending lipgloss.Color
	Done    lipgloss.Color
}

// Styles holds pre-computed lipgloss styles based on theme
type Styles struct {
	// Listing
	Header  lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Row     lipgloss.Style
	RowDone lipgloss.Style
	Empty   lipgloss.Style
	Count   lipgloss.Style
	Error   lipgloss.Style

	// Event fields
	Date    lipgloss.Style
	Time    lipgloss.Style
	Name    lipgloss.Style
	Note    lipgloss.Style
	Pending lipgloss.Style
	Done    lipgloss.Style

	// Calendar grid
	Month    lipgloss.Style
	Weekday  lipgloss.Style
	Day      lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
	Busy     lipgloss.Style
	Panel    lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Underline(true),

		Label: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Row: lipgloss.NewStyle().
			Foreground(t.Foreground),

		RowDone: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Strikethrough(true),

		Empty: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true),

		Count: lipgloss.NewStyle().
			Foreground(t.Secondary),

		Error: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		Date:    lipgloss.NewStyle().Foreground(t.DateColor),
		Time:    lipgloss.NewStyle().Foreground(t.TimeColor),
		Name:    lipgloss.NewStyle().Foreground(t.NameColor).Bold(true),
		Note:    lipgloss.NewStyle().Foreground(t.NoteColor),
		Pending: lipgloss.NewStyle().Foreground(t.Pending),
		Done:    lipgloss.NewStyle().Foreground(t.Done),

		Month: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			Align(lipgloss.Center),

		Weekday: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Day: lipgloss.NewStyle().
			Width(3).
			Align(lipgloss.Center),

		Today: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(t.Highlight).
			Bold(true),

		Busy: lipgloss.NewStyle().
			Foreground(t.Info),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),
	}
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  Nord,
	Styles: NewStyles(Nord),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Available returns all available themes
func Available() []Theme {
	return []Theme{
		Nord,
		Dracula,
		Gruvbox,
		Catppuccin,
	}
}

// ByName returns a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range Available() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Names lists the names of the available themes
func Names() []string {
	var names []string
	for _, t := range Available() {
		names = append(names, t.Name)
	}
	return names
}
