package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dori/scheduler/internal/dispatch"
	"github.com/dori/scheduler/internal/model"
)

// NewEventCommand creates the event command group.
func NewEventCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Show, create and change events",
		Long: `Work with events selected by criteria.

Criteria flags combine with AND. Without any criteria, show prints every
event while complete, remove and update change nothing.`,
	}

	cmd.AddCommand(newEventShowCommand(opts))
	cmd.AddCommand(newEventCreateCommand(opts))
	cmd.AddCommand(newEventSelectCommand(opts, dispatch.KindEventComplete, "complete", "Mark matching events complete"))
	cmd.AddCommand(newEventSelectCommand(opts, dispatch.KindEventRemove, "remove", "Delete matching events"))
	cmd.AddCommand(newEventUpdateCommand(opts))

	return cmd
}

func newEventShowCommand(opts *RootOptions) *cobra.Command {
	var (
		f      criteriaFlags
		sortBy string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print matching events",
		Args:  cobra.NoArgs,
		RunE: dispatchE(opts, func(c *cobra.Command) (dispatch.Command, error) {
			crit, err := f.criteria(c)
			if err != nil {
				return dispatch.Command{}, err
			}
			key, err := model.ParseSortKey(sortBy)
			if err != nil {
				return dispatch.Command{}, err
			}
			return dispatch.Command{Kind: dispatch.KindEventShow, Criteria: crit, Sort: key}, nil
		}),
	}
	addCriteriaFlags(cmd, &f)
	cmd.Flags().StringVar(&sortBy, "sort", "", fmt.Sprintf("sort by field %v", model.SortKeys()))
	return cmd
}

func newEventCreateCommand(opts *RootOptions) *cobra.Command {
	var date, clock, name, note string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		Args:  cobra.NoArgs,
		RunE: dispatchE(opts, func(c *cobra.Command) (dispatch.Command, error) {
			return dispatch.Command{
				Kind: dispatch.KindEventCreate,
				Date: date,
				Time: &clock,
				Name: name,
				Note: changed(c, "note", note),
			}, nil
		}),
	}

	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&clock, "time", "", "time (HH:MM:SS)")
	cmd.Flags().StringVar(&name, "name", "", "unique name")
	cmd.Flags().StringVar(&note, "note", "", "note (default \"None\")")
	for _, flag := range []string{"date", "time", "name"} {
		_ = cmd.MarkFlagRequired(flag)
	}
	return cmd
}

func newEventSelectCommand(opts *RootOptions, kind dispatch.Kind, use, short string) *cobra.Command {
	var f criteriaFlags

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: dispatchE(opts, func(c *cobra.Command) (dispatch.Command, error) {
			crit, err := f.criteria(c)
			if err != nil {
				return dispatch.Command{}, err
			}
			return dispatch.Command{Kind: kind, Criteria: crit}, nil
		}),
	}
	addCriteriaFlags(cmd, &f)
	return cmd
}

func newEventUpdateCommand(opts *RootOptions) *cobra.Command {
	var (
		f criteriaFlags
		p patchFlags
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change fields of matching events",
		Args:  cobra.NoArgs,
		RunE: dispatchE(opts, func(c *cobra.Command) (dispatch.Command, error) {
			crit, err := f.criteria(c)
			if err != nil {
				return dispatch.Command{}, err
			}
			patch, err := p.patch(c)
			if err != nil {
				return dispatch.Command{}, err
			}
			return dispatch.Command{Kind: dispatch.KindEventUpdate, Criteria: crit, Patch: patch}, nil
		}),
	}
	addCriteriaFlags(cmd, &f)
	addPatchFlags(cmd, &p)
	return cmd
}
