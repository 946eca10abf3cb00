package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"log/slog"
)

// Settings holds all run configuration for the analyze command. Field
// names match ScanConfigFile for reflection-based merging (see
// scan_config.go).
type Settings struct {
	// Input/output
	Jars             []string
	ReportFile       string
	Offline          bool
	Limit            int
	SkipNotFound     bool
	ForceDetailedOutput bool

	// Selector tuning
	SelectorTopK       int
	SelectorScoreFloor int
	ExtraRepositories  []string

	// Logging
	LogLevel  slog.Level
	LogFormat string // "text" or "json"
	LogFile   string
}

// DefaultSettings returns default configuration.
func DefaultSettings() *Settings {
	return &Settings{
		ReportFile:          "mavenizer-report-{datetime}.json",
		Offline:             false,
		Limit:               0,
		SkipNotFound:        false,
		ForceDetailedOutput: false,
		SelectorTopK:        2,
		SelectorScoreFloor:  2,
		LogLevel:            slog.LevelInfo,
		LogFormat:           "text",
		LogFile:             "",
	}
}

// LoadSettingsFromEnvironment loads settings from environment variables,
// mirroring the teacher's STACK_ANALYZER_* convention under a new prefix.
func LoadSettingsFromEnvironment() *Settings {
	settings := DefaultSettings()

	if reportFile := os.Getenv("MAVENIZER_REPORT_FILE"); reportFile != "" {
		settings.ReportFile = reportFile
	}
	if offline := os.Getenv("MAVENIZER_OFFLINE"); offline != "" {
		settings.Offline = strings.ToLower(offline) == "true"
	}
	if skip := os.Getenv("MAVENIZER_SKIP_NOT_FOUND"); skip != "" {
		settings.SkipNotFound = strings.ToLower(skip) == "true"
	}
	if detailed := os.Getenv("MAVENIZER_FORCE_DETAILED_OUTPUT"); detailed != "" {
		settings.ForceDetailedOutput = strings.ToLower(detailed) == "true"
	}
	if repos := os.Getenv("MAVENIZER_EXTRA_REPOSITORIES"); repos != "" {
		settings.ExtraRepositories = splitAndTrim(repos)
	}
	if logLevel := os.Getenv("MAVENIZER_LOG_LEVEL"); logLevel != "" {
		if level, err := parseLogLevel(logLevel); err == nil {
			settings.LogLevel = level
		}
	}
	if logFormat := os.Getenv("MAVENIZER_LOG_FORMAT"); logFormat != "" {
		settings.LogFormat = logFormat
	}
	if logFile := os.Getenv("MAVENIZER_LOG_FILE"); logFile != "" {
		settings.LogFile = logFile
	}

	return settings
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// ConfigureLogger sets up the logger based on settings.
func (s *Settings) ConfigureLogger() *slog.Logger {
	var handler slog.Handler

	var output io.Writer = os.Stderr
	if s.LogFile != "" {
		file, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Cannot open log file %s: %v\n", s.LogFile, err)
			output = os.Stderr
		} else {
			output = file
		}
	}

	opts := &slog.HandlerOptions{Level: s.LogLevel}

	switch strings.ToLower(s.LogFormat) {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}

// Validate checks if the settings are internally consistent.
func (s *Settings) Validate() error {
	if len(s.Jars) == 0 {
		return fmt.Errorf("at least one --jars path is required")
	}
	if s.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative")
	}
	if s.SelectorTopK <= 0 {
		return fmt.Errorf("selector top-K must be positive")
	}
	return nil
}
