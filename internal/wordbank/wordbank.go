// Package wordbank loads the word dataset used by the quiz modes.
package wordbank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wordquiz/internal/model"
)

// Load reads word entries from a JSON file at the provided path.
func Load(path string) ([]model.WordEntry, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(contents)
}

// Parse decodes and validates a JSON word bank.
func Parse(contents []byte) ([]model.WordEntry, error) {
	var entries []model.WordEntry
	if err := json.Unmarshal(contents, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode word bank: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("word bank is empty")
	}
	for i, entry := range entries {
		if strings.TrimSpace(entry.Word) == "" {
			return nil, fmt.Errorf("entry %d has an empty word", i)
		}
		if strings.TrimSpace(entry.Meaning) == "" {
			return nil, fmt.Errorf("entry %d (%s) has an empty meaning", i, entry.Word)
		}
	}
	return entries, nil
}

// FilterUnit keeps entries belonging to the given unit. Unit 0 keeps all.
func FilterUnit(entries []model.WordEntry, unit int) []model.WordEntry {
	if unit <= 0 {
		return entries
	}
	var out []model.WordEntry
	for _, entry := range entries {
		if entry.Unit == unit {
			out = append(out, entry)
		}
	}
	return out
}

// EnsureDefault writes the embedded starter bank to path when no word bank
// exists yet, so a fresh install can play immediately.
func EnsureDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat word bank: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create word bank dir: %w", err)
	}
	if err := os.WriteFile(path, defaultBank, 0o644); err != nil {
		return fmt.Errorf("failed to write word bank: %w", err)
	}
	return nil
}

// Save validates and atomically replaces the word bank at path.
func Save(path string, contents []byte) error {
	if _, err := Parse(contents); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create word bank dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "words-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp word bank: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(contents); err != nil {
		return fmt.Errorf("failed to write word bank: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close word bank: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace word bank: %w", err)
	}
	return nil
}
