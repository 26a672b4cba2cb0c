package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config == nil {
		t.Fatal("LoadConfig() returned nil config")
	}

	// Test default values
	if config.Location.Name != "Evanston" {
		t.Errorf("Expected default location Evanston, got %q", config.Location.Name)
	}
	if config.Weather.BaseURL != "https://api.weather.gov" {
		t.Errorf("Expected default weather base URL api.weather.gov, got %q", config.Weather.BaseURL)
	}
	if config.Weather.ForecastPeriods != 2 {
		t.Errorf("Expected default forecast periods 2, got %d", config.Weather.ForecastPeriods)
	}
	if config.Report.File != "weather_report.json" {
		t.Errorf("Expected default report file weather_report.json, got %q", config.Report.File)
	}
	if config.Report.Width != 80 {
		t.Errorf("Expected default report width 80, got %d", config.Report.Width)
	}
	if config.Git.Message != "Update weather report [skip ci]" {
		t.Errorf("Expected default commit message with [skip ci] marker, got %q", config.Git.Message)
	}
	if config.Git.AuthorName != "GitHub Action" || config.Git.AuthorEmail != "action@github.com" {
		t.Errorf("Expected default commit identity GitHub Action <action@github.com>, got %s <%s>",
			config.Git.AuthorName, config.Git.AuthorEmail)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foggybot.yaml")
	content := []byte(`
location:
  name: Chicago
  latitude: 41.8781
  longitude: -87.6298
report:
  width: 72
`)
	if err := os.WriteFile(path, content, 0o640); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	config, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() failed: %v", err)
	}

	if config.Location.Name != "Chicago" {
		t.Errorf("Expected file override Chicago, got %q", config.Location.Name)
	}
	if config.Report.Width != 72 {
		t.Errorf("Expected file override width 72, got %d", config.Report.Width)
	}
	// Untouched keys keep defaults
	if config.Capture.VideoID != "XP3Gle-S9lE" {
		t.Errorf("Expected default video ID to survive merge, got %q", config.Capture.VideoID)
	}
}

func TestLoadConfigFile_Missing(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Expected error for missing config file, got nil")
	}
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("FOGGYBOT_CAPTURE_VIDEO_ID", "abc123")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.Capture.VideoID != "abc123" {
		t.Errorf("Expected env override abc123, got %q", config.Capture.VideoID)
	}
}
