package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if cfg.Quiz.Words != nil || cfg.Speech.Accent != nil {
		t.Fatalf("missing config should yield zero values")
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
[quiz]
mode = "letter-puzzle"
words = 15

[speech]
accent = "uk"
rate = 0.7
audio = "synthesis"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Quiz.Mode == nil || *cfg.Quiz.Mode != "letter-puzzle" {
		t.Fatalf("unexpected mode: %+v", cfg.Quiz.Mode)
	}
	if cfg.Quiz.Words == nil || *cfg.Quiz.Words != 15 {
		t.Fatalf("unexpected words: %+v", cfg.Quiz.Words)
	}
	if cfg.Speech.Accent == nil || *cfg.Speech.Accent != "uk" {
		t.Fatalf("unexpected accent: %+v", cfg.Speech.Accent)
	}
	if cfg.Speech.Rate == nil || *cfg.Speech.Rate != 0.7 {
		t.Fatalf("unexpected rate: %+v", cfg.Speech.Rate)
	}
	if cfg.Speech.Audio == nil || *cfg.Speech.Audio != "synthesis" {
		t.Fatalf("unexpected audio source: %+v", cfg.Speech.Audio)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
