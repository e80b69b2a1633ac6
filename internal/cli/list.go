package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dori/scheduler/internal/dispatch"
	"github.com/dori/scheduler/internal/model"
)

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	var sortBy string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print all events",
		Args:  cobra.NoArgs,
		RunE: dispatchE(opts, func(c *cobra.Command) (dispatch.Command, error) {
			key, err := model.ParseSortKey(sortBy)
			if err != nil {
				return dispatch.Command{}, err
			}
			return dispatch.Command{Kind: dispatch.KindList, Sort: key}, nil
		}),
	}

	cmd.Flags().StringVar(&sortBy, "sort", "", fmt.Sprintf("sort by field %v", model.SortKeys()))

	return cmd
}
