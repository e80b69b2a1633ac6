package cli

import (
	"github.com/spf13/cobra"

	"github.com/dori/scheduler/internal/dispatch"
)

// NewShowCommand creates the calendar command.
func NewShowCommand(opts *RootOptions) *cobra.Command {
	var (
		prev        int
		next        int
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a month as a calendar",
		Long: `Print every day of a month with its events.

--next and --prev move the window from the current month and may be combined;
the net offset is next minus prev.`,
		Args: cobra.NoArgs,
		RunE: dispatchE(opts, func(c *cobra.Command) (dispatch.Command, error) {
			return dispatch.Command{
				Kind:        dispatch.KindShowCalendar,
				Prev:        prev,
				Next:        next,
				Interactive: interactive,
			}, nil
		}),
	}

	cmd.Flags().IntVar(&prev, "prev", 0, "months back from the current month")
	cmd.Flags().IntVar(&next, "next", 0, "months forward from the current month")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the calendar interactively")

	return cmd
}
