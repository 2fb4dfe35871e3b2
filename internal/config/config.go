// Package config resolves runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sadopc/studyplanner/internal/reminder"
	"github.com/sadopc/studyplanner/internal/store"
)

type Config struct {
	DBPath       string
	ExportDir    string
	ReminderLead time.Duration
	LogFile      string
}

// Load reads envFile (if it exists) into the environment without
// overriding variables already set, then resolves the configuration.
// An empty envFile means ".env" in the working directory.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}
	return FromEnv()
}

// FromEnv resolves the configuration from environment variables alone.
func FromEnv() (Config, error) {
	dbPath := env("STUDYPLANNER_DB_PATH")
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return Config{}, fmt.Errorf("resolve db path: %w", err)
		}
		dbPath = p
	}

	exportDir := env("STUDYPLANNER_EXPORT_DIR")
	if exportDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve export dir: %w", err)
		}
		exportDir = home
	}

	lead := reminder.DefaultLead
	if v := env("STUDYPLANNER_REMINDER_LEAD"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse STUDYPLANNER_REMINDER_LEAD: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("STUDYPLANNER_REMINDER_LEAD must be positive, got %s", d)
		}
		lead = d
	}

	logFile := env("STUDYPLANNER_LOG_FILE")
	if logFile == "" {
		logFile = filepath.Join(filepath.Dir(dbPath), "studyplanner.log")
	}

	return Config{
		DBPath:       dbPath,
		ExportDir:    exportDir,
		ReminderLead: lead,
		LogFile:      logFile,
	}, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
