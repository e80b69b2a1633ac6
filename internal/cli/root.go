package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dori/scheduler/internal/config"
	"github.com/dori/scheduler/internal/dispatch"
	"github.com/dori/scheduler/internal/render"
)

// Version is the program version, overridden at link time
var Version = "0.1.0"

// Runner executes a dispatch command built by a subcommand
type Runner func(c *cobra.Command, opts *RootOptions, command dispatch.Command) error

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string
	DBPath     string
	Theme      string
	ConfigFile string

	// Run executes built commands
	Run Runner

	v *viper.Viper
}

// NewRootCommand creates the root command for the scheduler CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(runDispatch)
}

func newRootCommand(run Runner) *cobra.Command {
	opts := &RootOptions{
		Run: run,
		v:   config.New(),
	}

	cmd := &cobra.Command{
		Use:   "scheduler",
		Short: "A personal scheduler",
		Long: `scheduler keeps dated events in a local SQLite database.

List, filter, create, complete, update and delete events, or browse a month
as a calendar.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				if _, err := render.ParseFormat(opts.Format); err != nil {
					return WrapExitError(ExitUsage, "invalid flag", err)
				}
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database file (default <data_dir>/schedule.db)")
	cmd.PersistentFlags().StringVar(&opts.Theme, "theme", "nord", "color theme (nord|dracula|gruvbox|catppuccin)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default $XDG_CONFIG_HOME/scheduler/config.yaml)")

	for key, flag := range map[string]string{
		config.KeyDBPath: "db",
		config.KeyFormat: "format",
		config.KeyTheme:  "theme",
	} {
		if err := opts.v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return WrapExitError(ExitUsage, "invalid flag", err)
	})

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewDateCommand(opts))
	cmd.AddCommand(NewEventCommand(opts))
	cmd.AddCommand(NewClearCommand(opts))
	cmd.AddCommand(NewCompleteCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewRemindCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// Execute runs the CLI and returns the process exit code
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

// dispatchE returns a RunE that builds a command and hands it to the runner
func dispatchE(opts *RootOptions, build func(c *cobra.Command) (dispatch.Command, error)) func(*cobra.Command, []string) error {
	return func(c *cobra.Command, args []string) error {
		command, err := build(c)
		if err != nil {
			return exitError(err)
		}
		return exitError(opts.Run(c, opts, command))
	}
}
