package cli

import (
	"github.com/spf13/cobra"

	"github.com/dori/scheduler/internal/dispatch"
)

// NewDateCommand creates the date command.
func NewDateCommand(opts *RootOptions) *cobra.Command {
	var date, clock string

	cmd := &cobra.Command{
		Use:   "date",
		Short: "Print the events of one date",
		Args:  cobra.NoArgs,
		RunE: dispatchE(opts, func(c *cobra.Command) (dispatch.Command, error) {
			return dispatch.Command{
				Kind: dispatch.KindShowDate,
				Date: date,
				Time: changed(c, "time", clock),
			}, nil
		}),
	}

	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&clock, "time", "", "only events at this time (HH:MM:SS)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}
