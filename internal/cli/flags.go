package cli

import (
	"github.com/spf13/cobra"

	"github.com/dori/scheduler/internal/criteria"
	"github.com/dori/scheduler/internal/model"
)

// criteriaFlags are the selection flags shared by event commands
type criteriaFlags struct {
	date     string
	time     string
	name     string
	note     string
	complete string
}

func addCriteriaFlags(cmd *cobra.Command, f *criteriaFlags) {
	cmd.Flags().StringVar(&f.date, "date", "", "match date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.time, "time", "", "match time (HH:MM:SS)")
	cmd.Flags().StringVar(&f.name, "name", "", "match name")
	cmd.Flags().StringVar(&f.note, "note", "", "match note")
	cmd.Flags().StringVar(&f.complete, "complete", "", "match completion (true|false|1|0)")
}

// criteria builds a Criteria from the flags the user actually set
func (f *criteriaFlags) criteria(cmd *cobra.Command) (criteria.Criteria, error) {
	var c criteria.Criteria
	c.Date = changed(cmd, "date", f.date)
	c.Time = changed(cmd, "time", f.time)
	c.Name = changed(cmd, "name", f.name)
	c.Note = changed(cmd, "note", f.note)
	if cmd.Flags().Changed("complete") {
		complete, err := criteria.ParseComplete(f.complete)
		if err != nil {
			return criteria.Criteria{}, err
		}
		c.Complete = complete
	}
	return c, nil
}

// patchFlags are the --set-* flags of event update
type patchFlags struct {
	date     string
	time     string
	name     string
	note     string
	complete string
}

func addPatchFlags(cmd *cobra.Command, f *patchFlags) {
	cmd.Flags().StringVar(&f.date, "set-date", "", "new date")
	cmd.Flags().StringVar(&f.time, "set-time", "", "new time")
	cmd.Flags().StringVar(&f.name, "set-name", "", "new name")
	cmd.Flags().StringVar(&f.note, "set-note", "", "new note")
	cmd.Flags().StringVar(&f.complete, "set-complete", "", "new completion (true|false|1|0)")
}

func (f *patchFlags) patch(cmd *cobra.Command) (model.Patch, error) {
	var p model.Patch
	p.Date = changed(cmd, "set-date", f.date)
	p.Time = changed(cmd, "set-time", f.time)
	p.Name = changed(cmd, "set-name", f.name)
	p.Note = changed(cmd, "set-note", f.note)
	if cmd.Flags().Changed("set-complete") {
		complete, err := criteria.ParseComplete(f.complete)
		if err != nil {
			return model.Patch{}, err
		}
		p.Complete = complete
	}
	return p, nil
}

// changed returns a pointer to value when the flag was given
func changed(cmd *cobra.Command, flag, value string) *string {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &value
}
