package notify

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/dori/scheduler/internal/model"
)

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Runner executes an external command
type Runner func(name string, args ...string) error

func execRunner(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
	run     Runner
}

// NewNotifier creates a new notifier
func NewNotifier() *Notifier {
	return &Notifier{
		enabled: true,
		run:     execRunner,
	}
}

// WithRunner replaces the command runner, mostly for tests
func (n *Notifier) WithRunner(r Runner) *Notifier {
	n.run = r
	return n
}

// SetEnabled enables or disables notifications
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// Args builds the notify-send argument list
func (n Notification) Args() []string {
	args := []string{}

	switch n.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// milliseconds
	if n.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(n.Timeout.Milliseconds())))
	}

	if n.Icon != "" {
		args = append(args, "-i", n.Icon)
	}

	args = append(args, "-a", "scheduler")

	args = append(args, n.Title)
	if n.Body != "" {
		args = append(args, n.Body)
	}
	return args
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}
	if err := n.run("notify-send", notification.Args()...); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

// Reminder builds the notification for the pending events of one date.
// It returns false when nothing is pending.
func Reminder(date string, pending []model.Event) (Notification, bool) {
	if len(pending) == 0 {
		return Notification{}, false
	}

	lines := make([]string, 0, len(pending))
	for _, e := range pending {
		clock := "all day"
		if e.Time != nil {
			clock = *e.Time
		}
		line := clock + "  " + e.Name
		if e.Note != "" && e.Note != model.DefaultNote {
			line += " (" + e.Note + ")"
		}
		lines = append(lines, line)
	}

	title := fmt.Sprintf("%d pending on %s", len(pending), date)
	if len(pending) == 1 {
		title = fmt.Sprintf("1 pending on %s", date)
	}

	return Notification{
		Title:   title,
		Body:    strings.Join(lines, "\n"),
		Urgency: UrgencyNormal,
		Timeout: 15 * time.Second,
		Icon:    "appointment-soon-symbolic",
	}, true
}

// SendReminder notifies about the pending events of a date
func (n *Notifier) SendReminder(date string, pending []model.Event) error {
	notification, ok := Reminder(date, pending)
	if !ok {
		return nil
	}
	return n.Send(notification)
}
