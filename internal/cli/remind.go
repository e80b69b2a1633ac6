package cli

import (
	"github.com/spf13/cobra"

	"github.com/dori/scheduler/internal/dispatch"
)

// NewRemindCommand creates the remind command.
func NewRemindCommand(opts *RootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Notify about pending events of a date",
		Args:  cobra.NoArgs,
		RunE: dispatchE(opts, func(c *cobra.Command) (dispatch.Command, error) {
			return dispatch.Command{Kind: dispatch.KindRemind, Date: date}, nil
		}),
	}

	cmd.Flags().StringVar(&date, "date", "", "date (default today)")

	return cmd
}
