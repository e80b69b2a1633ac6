package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dori/scheduler/internal/app"
	"github.com/dori/scheduler/internal/calendar"
	"github.com/dori/scheduler/internal/config"
	"github.com/dori/scheduler/internal/dispatch"
	"github.com/dori/scheduler/internal/logging"
	"github.com/dori/scheduler/internal/render"
	"github.com/dori/scheduler/internal/ui"
	"github.com/dori/scheduler/internal/ui/theme"
)

// runDispatch resolves configuration, opens the store and runs one command
func runDispatch(c *cobra.Command, opts *RootOptions, command dispatch.Command) error {
	cfg, err := config.Load(opts.v, opts.ConfigFile)
	if err != nil {
		return WrapExitError(ExitUsage, "invalid configuration", err)
	}

	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	t, ok := theme.ByName(cfg.Theme)
	if !ok {
		return WrapExitError(ExitUsage, "invalid configuration",
			fmt.Errorf("unknown theme %q: must be one of %v", cfg.Theme, theme.Names()))
	}
	theme.SetTheme(t)

	logger, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Verbose: opts.Verbose,
		Console: c.ErrOrStderr(),
	})
	if err != nil {
		return WrapExitError(ExitUsage, "invalid configuration", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.File != "" {
		logger.Debug("config loaded", zap.String("file", cfg.File))
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	d := dispatch.New(a.DB, render.New(c.OutOrStdout(), format), logger)
	d.Notifier = a.Notifier
	d.Browser = &ui.Browser{
		Source:    a.DB,
		Clock:     d.Clock,
		WeekStart: calendar.ParseWeekStart(cfg.WeekStart),
		Log:       logger,
	}

	return d.Run(command)
}
