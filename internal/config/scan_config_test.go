package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadScanConfig_EmptyPathReturnsNil(t *testing.T) {
	cfg, err := LoadScanConfig("")
	if err != nil {
		t.Fatalf("LoadScanConfig: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config for empty path, got %+v", cfg)
	}
}

func TestLoadScanConfig_ParsesYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".mavenizer.yml")
	yaml := `
run:
  offline: true
  selector_top_k: 3
extra_repositories:
  - https://repo.internal/maven2
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadScanConfig(path)
	if err != nil {
		t.Fatalf("LoadScanConfig: %v", err)
	}
	if !cfg.Run.Offline || cfg.Run.SelectorTopK != 3 {
		t.Errorf("unexpected run options: %+v", cfg.Run)
	}
	if len(cfg.ExtraRepositories) != 1 || cfg.ExtraRepositories[0] != "https://repo.internal/maven2" {
		t.Errorf("unexpected extra repositories: %v", cfg.ExtraRepositories)
	}
}

func TestLoadScanConfig_ParsesInlineJSON(t *testing.T) {
	cfg, err := LoadScanConfig(`{"run": {"skip_not_found": true}}`)
	if err != nil {
		t.Fatalf("LoadScanConfig: %v", err)
	}
	if !cfg.Run.SkipNotFound {
		t.Errorf("expected skip_not_found true, got %+v", cfg.Run)
	}
}

func TestLoadScanConfig_SchemaRejectsUnknownField(t *testing.T) {
	_, err := LoadScanConfig(`{"run": {"bogus_field": true}}`)
	if err == nil {
		t.Error("expected schema validation failure for unknown field")
	}
}

func TestMergeWithSettings_ConfigFillsZeroValueFields(t *testing.T) {
	settings := &Settings{SelectorTopK: 0, ReportFile: "out.json"}
	cfg := &ScanConfigFile{
		Run:               RunOptions{SelectorTopK: 5, ReportFile: "ignored.json"},
		ExtraRepositories: []string{"https://repo.internal/maven2"},
	}

	cfg.MergeWithSettings(settings)

	if settings.SelectorTopK != 5 {
		t.Errorf("expected config to fill zero-value SelectorTopK, got %d", settings.SelectorTopK)
	}
	if settings.ReportFile != "out.json" {
		t.Errorf("expected CLI-set ReportFile to take precedence, got %q", settings.ReportFile)
	}
	if len(settings.ExtraRepositories) != 1 {
		t.Errorf("expected extra repositories merged, got %v", settings.ExtraRepositories)
	}
}

func TestMergeWithSettings_NilConfigIsNoop(t *testing.T) {
	settings := &Settings{SelectorTopK: 2}
	var cfg *ScanConfigFile
	cfg.MergeWithSettings(settings)
	if settings.SelectorTopK != 2 {
		t.Errorf("expected unchanged settings, got %+v", settings)
	}
}
