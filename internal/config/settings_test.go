package config

import (
	"os"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, "mavenizer-report-{datetime}.json", settings.ReportFile)
	assert.False(t, settings.Offline)
	assert.False(t, settings.SkipNotFound)
	assert.Equal(t, 2, settings.SelectorTopK)
	assert.Equal(t, 2, settings.SelectorScoreFloor)
	assert.Equal(t, slog.LevelInfo, settings.LogLevel)
	assert.Equal(t, "text", settings.LogFormat)
}

func TestLoadSettingsFromEnvironment_WithDefaults(t *testing.T) {
	clearEnvVars()

	settings := LoadSettingsFromEnvironment()
	defaultSettings := DefaultSettings()

	assert.Equal(t, defaultSettings.ReportFile, settings.ReportFile)
	assert.Equal(t, defaultSettings.Offline, settings.Offline)
	assert.Equal(t, defaultSettings.LogLevel, settings.LogLevel)
	assert.Equal(t, defaultSettings.LogFormat, settings.LogFormat)
}

func TestLoadSettingsFromEnvironment_Overrides(t *testing.T) {
	clearEnvVars()

	os.Setenv("MAVENIZER_REPORT_FILE", "/tmp/out.json")
	os.Setenv("MAVENIZER_OFFLINE", "true")
	os.Setenv("MAVENIZER_SKIP_NOT_FOUND", "true")
	os.Setenv("MAVENIZER_EXTRA_REPOSITORIES", "https://a.example/, https://b.example/")
	os.Setenv("MAVENIZER_LOG_LEVEL", "debug")
	os.Setenv("MAVENIZER_LOG_FORMAT", "json")
	defer clearEnvVars()

	settings := LoadSettingsFromEnvironment()

	assert.Equal(t, "/tmp/out.json", settings.ReportFile)
	assert.True(t, settings.Offline)
	assert.True(t, settings.SkipNotFound)
	assert.Equal(t, []string{"https://a.example/", "https://b.example/"}, settings.ExtraRepositories)
	assert.Equal(t, slog.LevelDebug, settings.LogLevel)
	assert.Equal(t, "json", settings.LogFormat)
}

func TestLoadSettingsFromEnvironment_InvalidLogLevel(t *testing.T) {
	clearEnvVars()

	os.Setenv("MAVENIZER_LOG_LEVEL", "invalid")
	defer clearEnvVars()

	settings := LoadSettingsFromEnvironment()

	assert.Equal(t, slog.LevelInfo, settings.LogLevel, "should keep default log level for invalid input")
}

func TestLoadSettingsFromEnvironment_BooleanParsing(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected bool
	}{
		{"true lowercase", "true", true},
		{"true uppercase", "TRUE", true},
		{"false lowercase", "false", false},
		{"invalid value", "maybe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars()
			os.Setenv("MAVENIZER_OFFLINE", tt.envValue)
			defer clearEnvVars()

			settings := LoadSettingsFromEnvironment()
			assert.Equal(t, tt.expected, settings.Offline)
		})
	}
}

func TestConfigureLogger_TextFormat(t *testing.T) {
	settings := &Settings{LogLevel: slog.LevelDebug, LogFormat: "text"}
	assert.NotNil(t, settings.ConfigureLogger())
}

func TestConfigureLogger_JSONFormat(t *testing.T) {
	settings := &Settings{LogLevel: slog.LevelWarn, LogFormat: "json"}
	assert.NotNil(t, settings.ConfigureLogger())
}

func TestValidate_RequiresJars(t *testing.T) {
	settings := DefaultSettings()
	err := settings.Validate()
	assert.Error(t, err, "Validate should require at least one jar path")
}

func TestValidate_AcceptsMinimalValidSettings(t *testing.T) {
	settings := DefaultSettings()
	settings.Jars = []string{"./testdata"}
	assert.NoError(t, settings.Validate())
}

func TestValidate_RejectsNegativeLimit(t *testing.T) {
	settings := DefaultSettings()
	settings.Jars = []string{"./testdata"}
	settings.Limit = -1
	assert.Error(t, settings.Validate())
}

func clearEnvVars() {
	envVars := []string{
		"MAVENIZER_REPORT_FILE",
		"MAVENIZER_OFFLINE",
		"MAVENIZER_SKIP_NOT_FOUND",
		"MAVENIZER_FORCE_DETAILED_OUTPUT",
		"MAVENIZER_EXTRA_REPOSITORIES",
		"MAVENIZER_LOG_LEVEL",
		"MAVENIZER_LOG_FORMAT",
		"MAVENIZER_LOG_FILE",
	}
	for _, envVar := range envVars {
		os.Unsetenv(envVar)
	}
}
