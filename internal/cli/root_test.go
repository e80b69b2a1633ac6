package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dori/scheduler/internal/criteria"
	"github.com/dori/scheduler/internal/dispatch"
	"github.com/dori/scheduler/internal/model"
)

func ptr[T any](v T) *T { return &v }

type recorder struct {
	got   []dispatch.Command
	opts  *RootOptions
	err   error
	calls int
}

func (r *recorder) run(c *cobra.Command, opts *RootOptions, command dispatch.Command) error {
	r.calls++
	r.got = append(r.got, command)
	r.opts = opts
	return r.err
}

// build runs args through a root command whose runner only records
func build(t *testing.T, args ...string) (dispatch.Command, error) {
	t.Helper()
	rec := &recorder{}
	cmd := newRootCommand(rec.run)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err != nil {
		return dispatch.Command{}, err
	}
	require.Len(t, rec.got, 1)
	return rec.got[0], nil
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "scheduler", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"list"}, {"show"}, {"date"}, {"clear"}, {"complete"}, {"delete"},
		{"export"}, {"remind"}, {"version"},
		{"event", "show"}, {"event", "create"}, {"event", "complete"},
		{"event", "remove"}, {"event", "update"},
	}

	for _, path := range commands {
		sub, _, err := cmd.Find(path)
		require.NoError(t, err, "command %v should exist", path)
		assert.Equal(t, path[len(path)-1], sub.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	for _, name := range []string{"format", "db", "theme", "config"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestCommandsBuildDispatchCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want dispatch.Command
	}{
		{
			name: "list",
			args: []string{"list"},
			want: dispatch.Command{Kind: dispatch.KindList},
		},
		{
			name: "list sorted",
			args: []string{"list", "--sort", "Date"},
			want: dispatch.Command{Kind: dispatch.KindList, Sort: model.SortDate},
		},
		{
			name: "show composes offsets",
			args: []string{"show", "--prev", "2", "--next", "5"},
			want: dispatch.Command{Kind: dispatch.KindShowCalendar, Prev: 2, Next: 5},
		},
		{
			name: "show interactive",
			args: []string{"show", "-i"},
			want: dispatch.Command{Kind: dispatch.KindShowCalendar, Interactive: true},
		},
		{
			name: "date",
			args: []string{"date", "--date", "2024-03-01"},
			want: dispatch.Command{Kind: dispatch.KindShowDate, Date: "2024-03-01"},
		},
		{
			name: "date with time",
			args: []string{"date", "--date", "2024-03-01", "--time", "09:00:00"},
			want: dispatch.Command{Kind: dispatch.KindShowDate, Date: "2024-03-01", Time: ptr("09:00:00")},
		},
		{
			name: "event show without criteria",
			args: []string{"event", "show"},
			want: dispatch.Command{Kind: dispatch.KindEventShow},
		},
		{
			name: "event show with criteria",
			args: []string{"event", "show", "--date", "2024-03-01", "--complete", "1"},
			want: dispatch.Command{
				Kind:     dispatch.KindEventShow,
				Criteria: criteria.Criteria{Date: ptr("2024-03-01"), Complete: ptr(true)},
			},
		},
		{
			name: "event show sorted",
			args: []string{"event", "show", "--complete", "0", "--sort", "name"},
			want: dispatch.Command{
				Kind:     dispatch.KindEventShow,
				Criteria: criteria.Criteria{Complete: ptr(false)},
				Sort:     model.SortName,
			},
		},
		{
			name: "event show with empty note",
			args: []string{"event", "show", "--note", ""},
			want: dispatch.Command{Kind: dispatch.KindEventShow, Criteria: criteria.Criteria{Note: ptr("")}},
		},
		{
			name: "event create",
			args: []string{"event", "create", "--date", "2024-03-01", "--time", "10:00:00", "--name", "Dentist"},
			want: dispatch.Command{
				Kind: dispatch.KindEventCreate,
				Date: "2024-03-01",
				Time: ptr("10:00:00"),
				Name: "Dentist",
			},
		},
		{
			name: "event create with note",
			args: []string{"event", "create", "--date", "d", "--time", "t", "--name", "n", "--note", "x"},
			want: dispatch.Command{Kind: dispatch.KindEventCreate, Date: "d", Time: ptr("t"), Name: "n", Note: ptr("x")},
		},
		{
			name: "event create with empty note",
			args: []string{"event", "create", "--date", "d", "--time", "t", "--name", "n", "--note", ""},
			want: dispatch.Command{Kind: dispatch.KindEventCreate, Date: "d", Time: ptr("t"), Name: "n", Note: ptr("")},
		},
		{
			name: "event complete",
			args: []string{"event", "complete", "--name", "A"},
			want: dispatch.Command{Kind: dispatch.KindEventComplete, Criteria: criteria.Criteria{Name: ptr("A")}},
		},
		{
			name: "event remove without criteria",
			args: []string{"event", "remove"},
			want: dispatch.Command{Kind: dispatch.KindEventRemove},
		},
		{
			name: "event update",
			args: []string{"event", "update", "--name", "A", "--set-note", "moved", "--set-complete", "false"},
			want: dispatch.Command{
				Kind:     dispatch.KindEventUpdate,
				Criteria: criteria.Criteria{Name: ptr("A")},
				Patch:    model.Patch{Note: ptr("moved"), Complete: ptr(false)},
			},
		},
		{
			name: "clear",
			args: []string{"clear", "--date", "2024-03-01"},
			want: dispatch.Command{Kind: dispatch.KindClearByDate, Date: "2024-03-01"},
		},
		{
			name: "complete",
			args: []string{"complete", "--date", "2024-03-01"},
			want: dispatch.Command{Kind: dispatch.KindCompleteByDate, Date: "2024-03-01"},
		},
		{
			name: "delete",
			args: []string{"delete", "--date", "2024-03-01"},
			want: dispatch.Command{Kind: dispatch.KindDeleteByDate, Date: "2024-03-01"},
		},
		{
			name: "export",
			args: []string{"export", "--complete", "false", "-o", "/tmp/out.ics"},
			want: dispatch.Command{
				Kind:     dispatch.KindExport,
				Criteria: criteria.Criteria{Complete: ptr(false)},
				Out:      "/tmp/out.ics",
			},
		},
		{
			name: "remind",
			args: []string{"remind"},
			want: dispatch.Command{Kind: dispatch.KindRemind},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := build(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing date", []string{"date"}},
		{"create missing time", []string{"event", "create", "--date", "d", "--name", "n"}},
		{"clear missing date", []string{"clear"}},
		{"unknown flag", []string{"list", "--bogus"}},
		{"bad int", []string{"show", "--next", "soon"}},
		{"bad sort key", []string{"list", "--sort", "importance"}},
		{"bad event show sort key", []string{"event", "show", "--sort", "importance"}},
		{"bad complete", []string{"event", "show", "--complete", "maybe"}},
		{"bad format", []string{"list", "--format", "xml"}},
		{"unknown command", []string{"bogus"}},
		{"extra args", []string{"list", "now"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := build(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitUsage, GetExitCode(err))
		})
	}
}

func TestRunnerErrorsMapToExitCodes(t *testing.T) {
	tests := []struct {
		kind error
		want int
	}{
		{model.ErrMalformedInput, ExitUsage},
		{model.ErrConstraintViolation, ExitFailure},
		{model.ErrStorageUnavailable, ExitFailure},
		{model.ErrQueryFailure, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.kind.Error(), func(t *testing.T) {
			rec := &recorder{err: &model.Error{Kind: tt.kind, Op: "test"}}
			cmd := newRootCommand(rec.run)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetArgs([]string{"list"})

			err := cmd.Execute()
			require.Error(t, err)
			assert.Equal(t, tt.want, GetExitCode(err))
			assert.ErrorIs(t, err, tt.kind)
		})
	}

	rec := &recorder{err: errors.New("plain")}
	cmd := newRootCommand(rec.run)
	cmd.SetArgs([]string{"list"})
	assert.Equal(t, ExitFailure, GetExitCode(cmd.Execute()))
}

func TestGlobalFlagsReachRunner(t *testing.T) {
	rec := &recorder{}
	cmd := newRootCommand(rec.run)
	cmd.SetArgs([]string{"--verbose", "--db", "/tmp/x.db", "--format", "json", "list"})
	require.NoError(t, cmd.Execute())

	assert.True(t, rec.opts.Verbose)
	assert.Equal(t, "/tmp/x.db", rec.opts.DBPath)
	assert.Equal(t, "json", rec.opts.v.GetString("format"))
	assert.Equal(t, "/tmp/x.db", rec.opts.v.GetString("db_path"))
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "scheduler v"+Version+"\n", out.String())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(WrapExitError(ExitFailure, "x", nil)))
	assert.Equal(t, ExitUsage, GetExitCode(errors.New("cobra usage")))
	assert.Equal(t, "m: e", WrapExitError(ExitUsage, "m", errors.New("e")).Error())
}
