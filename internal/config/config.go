// Package config resolves settings from defaults, an optional config file,
// SCHEDULER_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Keys understood in config files and the environment
const (
	KeyDataDir   = "data_dir"
	KeyDBPath    = "db_path"
	KeyFormat    = "format"
	KeyTheme     = "theme"
	KeyLogLevel  = "log_level"
	KeyLogFile   = "log_file"
	KeyWeekStart = "week_start"
	KeyNotify    = "notify"
)

const (
	EnvPrefix  = "SCHEDULER"
	configName = "config"
	appName    = "scheduler"
	dbFile     = "schedule.db"
	lockFile   = "scheduler.lock"
)

// Config holds resolved application settings
type Config struct {
	DataDir   string
	DBPath    string
	Format    string
	Theme     string
	LogLevel  string
	LogFile   string
	WeekStart string
	Notify    bool

	// File is the config file that was read, empty when none was found
	File string
}

// DefaultDataDir returns the directory holding the database and lock file
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := homedir.Dir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, ".local", "share", appName)
}

// DefaultConfigDir returns the directory searched for config.yaml
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := homedir.Dir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, ".config", appName)
}

// New returns a viper instance with defaults and environment binding set up
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDataDir, DefaultDataDir())
	v.SetDefault(KeyDBPath, "")
	v.SetDefault(KeyFormat, "text")
	v.SetDefault(KeyTheme, "nord")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyWeekStart, "sunday")
	v.SetDefault(KeyNotify, true)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads the config file and resolves every setting. An explicit file
// must exist; the default location is optional.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		path, err := homedir.Expand(file)
		if err != nil {
			return nil, fmt.Errorf("failed to expand config path: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName) // .yaml is implicit
		v.AddConfigPath(DefaultConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	dataDir, err := homedir.Expand(v.GetString(KeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("failed to expand data directory: %w", err)
	}
	dbPath, err := homedir.Expand(v.GetString(KeyDBPath))
	if err != nil {
		return nil, fmt.Errorf("failed to expand database path: %w", err)
	}
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, dbFile)
	}
	logFile, err := homedir.Expand(v.GetString(KeyLogFile))
	if err != nil {
		return nil, fmt.Errorf("failed to expand log file path: %w", err)
	}

	return &Config{
		DataDir:   dataDir,
		DBPath:    dbPath,
		Format:    v.GetString(KeyFormat),
		Theme:     v.GetString(KeyTheme),
		LogLevel:  v.GetString(KeyLogLevel),
		LogFile:   logFile,
		WeekStart: v.GetString(KeyWeekStart),
		Notify:    v.GetBool(KeyNotify),
		File:      v.ConfigFileUsed(),
	}, nil
}

// LockPath returns the path of the single-instance lock file
func (c *Config) LockPath() string {
	return filepath.Join(c.DataDir, lockFile)
}
