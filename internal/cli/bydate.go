package cli

import (
	"github.com/spf13/cobra"

	"github.com/dori/scheduler/internal/dispatch"
)

// NewClearCommand creates the clear command.
func NewClearCommand(opts *RootOptions) *cobra.Command {
	return newByDateCommand(opts, dispatch.KindClearByDate, "clear", "Delete the completed events of a date")
}

// NewCompleteCommand creates the complete command.
func NewCompleteCommand(opts *RootOptions) *cobra.Command {
	return newByDateCommand(opts, dispatch.KindCompleteByDate, "complete", "Complete every event of a date")
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	return newByDateCommand(opts, dispatch.KindDeleteByDate, "delete", "Delete every event of a date")
}

func newByDateCommand(opts *RootOptions, kind dispatch.Kind, use, short string) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: dispatchE(opts, func(c *cobra.Command) (dispatch.Command, error) {
			return dispatch.Command{Kind: kind, Date: date}, nil
		}),
	}

	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}
