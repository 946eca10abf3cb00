package config

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/petrarca/mavenizer/internal/validation"
	"gopkg.in/yaml.v3"
)

// RunOptions are the project-config-overridable options, matching Settings
// field names for reflection-based merging.
type RunOptions struct {
	ReportFile          string `yaml:"report_file,omitempty" json:"report_file,omitempty"`
	Offline             bool   `yaml:"offline,omitempty" json:"offline,omitempty"`
	SkipNotFound        bool   `yaml:"skip_not_found,omitempty" json:"skip_not_found,omitempty"`
	ForceDetailedOutput bool   `yaml:"force_detailed_output,omitempty" json:"force_detailed_output,omitempty"`
	SelectorTopK        int    `yaml:"selector_top_k,omitempty" json:"selector_top_k,omitempty"`
	SelectorScoreFloor  int    `yaml:"selector_score_floor,omitempty" json:"selector_score_floor,omitempty"`
}

// ScanConfigFile is the optional `.mavenizer.yml` project config: its run
// options fill only Settings fields still at their zero value, so options
// with a non-zero default (report_file, selector_top_k,
// selector_score_floor) never replace that default; its repository URLs
// are used only when no extra repositories came from flags or environment,
// and are checked ahead of the settings-derived list.
type ScanConfigFile struct {
	Run               RunOptions `yaml:"run,omitempty" json:"run,omitempty"`
	ExtraRepositories []string   `yaml:"extra_repositories,omitempty" json:"extra_repositories,omitempty"`
}

// LoadScanConfig loads scan configuration from a YAML or JSON file path, or
// inline JSON starting with "{".
func LoadScanConfig(configPath string) (*ScanConfigFile, error) {
	if configPath == "" {
		return nil, nil
	}
	if strings.HasPrefix(strings.TrimSpace(configPath), "{") {
		return loadScanConfigFromJSON(configPath)
	}
	return loadScanConfigFromFile(configPath)
}

func loadScanConfigFromFile(configPath string) (*ScanConfigFile, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config ScanConfigFile
	if err := yaml.Unmarshal(data, &config); err != nil {
		if jsonErr := json.Unmarshal(data, &config); jsonErr != nil {
			return nil, fmt.Errorf("failed to parse config as YAML (%v) or JSON (%v)", err, jsonErr)
		}
	}

	if err := validation.ValidateStruct("mavenizer-config.json", &config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

func loadScanConfigFromJSON(jsonStr string) (*ScanConfigFile, error) {
	var config ScanConfigFile
	if err := json.Unmarshal([]byte(jsonStr), &config); err != nil {
		return nil, fmt.Errorf("failed to parse inline JSON config: %w", err)
	}
	if err := validation.ValidateYAML("mavenizer-config.json", []byte(jsonStr)); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// MergeWithSettings merges scan config with existing settings. CLI flags
// (already applied to settings before this call) take precedence over
// config file settings, per the teacher's "project config merges under
// CLI flags" precedence.
func (c *ScanConfigFile) MergeWithSettings(settings *Settings) {
	if c == nil || settings == nil {
		return
	}
	mergeStructFields(c.Run, settings)
	if len(c.ExtraRepositories) > 0 && len(settings.ExtraRepositories) == 0 {
		settings.ExtraRepositories = c.ExtraRepositories
	}
}

// mergeStructFields merges fields from source to target by name using
// reflection: only when target is at its zero value and source is not.
func mergeStructFields(source, target interface{}) {
	sourceValue := reflect.ValueOf(source)
	targetValue := reflect.ValueOf(target)

	if sourceValue.Kind() == reflect.Ptr {
		sourceValue = sourceValue.Elem()
	}
	if targetValue.Kind() == reflect.Ptr {
		targetValue = targetValue.Elem()
	}

	if sourceValue.Kind() != reflect.Struct || targetValue.Kind() != reflect.Struct {
		return
	}

	sourceType := sourceValue.Type()
	for i := 0; i < sourceValue.NumField(); i++ {
		field := sourceValue.Field(i)
		fieldType := sourceType.Field(i)
		targetField := targetValue.FieldByName(fieldType.Name)

		if !targetField.IsValid() || !targetField.CanSet() {
			continue
		}
		if isDefaultValue(targetField) && !isDefaultValue(field) {
			targetField.Set(field)
		}
	}
}

func isDefaultValue(field reflect.Value) bool {
	switch field.Kind() {
	case reflect.String:
		return field.String() == ""
	case reflect.Bool:
		return !field.Bool()
	case reflect.Slice:
		return field.Len() == 0
	case reflect.Interface:
		return field.IsNil()
	default:
		return field.IsZero()
	}
}
