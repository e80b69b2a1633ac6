package cli

import (
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/dori/scheduler/internal/dispatch"
)

// NewExportCommand creates the export command.
func NewExportCommand(opts *RootOptions) *cobra.Command {
	var (
		f   criteriaFlags
		out string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write matching events as iCalendar",
		Args:  cobra.NoArgs,
		RunE: dispatchE(opts, func(c *cobra.Command) (dispatch.Command, error) {
			crit, err := f.criteria(c)
			if err != nil {
				return dispatch.Command{}, err
			}
			path, err := homedir.Expand(out)
			if err != nil {
				return dispatch.Command{}, err
			}
			return dispatch.Command{Kind: dispatch.KindExport, Criteria: crit, Out: path}, nil
		}),
	}

	addCriteriaFlags(cmd, &f)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	return cmd
}
