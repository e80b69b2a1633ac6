package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/dori/scheduler/internal/config"
	"github.com/dori/scheduler/internal/db"
	"github.com/dori/scheduler/internal/model"
	"github.com/dori/scheduler/internal/notify"
)

// App holds the application state and dependencies
type App struct {
	DB       *db.DB
	Notifier *notify.Notifier
	Config   *config.Config
	Log      *zap.Logger
	lockFile *flock.Flock
}

// New creates a new application instance. It owns the data directory until
// Close: a second instance fails instead of sharing the database.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, &model.Error{Kind: model.ErrStorageUnavailable, Op: "create data directory", Err: err}
	}

	notifier := notify.NewNotifier()
	notifier.SetEnabled(cfg.Notify)

	app := &App{
		Config:   cfg,
		Notifier: notifier,
		Log:      logger,
	}

	// Acquire lock to ensure single instance
	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.DBPath, logger)
	if err != nil {
		app.releaseLock()
		return nil, err
	}
	app.DB = database

	return app, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := a.Config.LockPath()
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return &model.Error{Kind: model.ErrStorageUnavailable, Op: "acquire lock", Err: err}
	}

	if !locked {
		return &model.Error{
			Kind: model.ErrStorageUnavailable,
			Op:   "acquire lock",
			Err:  fmt.Errorf("another scheduler is using %s", a.Config.DataDir),
		}
	}

	a.Log.Debug("lock acquired", zap.String("path", lockPath))
	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()

	return errors.Join(errs...)
}
