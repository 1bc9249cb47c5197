package wordbank

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDefaultBank(t *testing.T) {
	entries, err := Parse(defaultBank)
	if err != nil {
		t.Fatalf("embedded bank should parse: %v", err)
	}
	if len(entries) < 20 {
		t.Fatalf("expected a usable starter bank, got %d entries", len(entries))
	}
	for _, entry := range entries {
		if entry.Example == "" {
			t.Fatalf("starter entry %q is missing an example sentence", entry.Word)
		}
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"not json":      `{`,
		"empty list":    `[]`,
		"empty word":    `[{"word": " ", "meaning": "x"}]`,
		"empty meaning": `[{"word": "cat", "meaning": ""}]`,
	}
	for name, contents := range cases {
		if _, err := Parse([]byte(contents)); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}

func TestFilterUnit(t *testing.T) {
	entries, err := Parse(defaultBank)
	if err != nil {
		t.Fatalf("embedded bank should parse: %v", err)
	}
	unit1 := FilterUnit(entries, 1)
	if len(unit1) == 0 {
		t.Fatalf("expected unit 1 entries")
	}
	for _, entry := range unit1 {
		if entry.Unit != 1 {
			t.Fatalf("unexpected unit %d for %q", entry.Unit, entry.Word)
		}
	}
	if got := FilterUnit(entries, 0); len(got) != len(entries) {
		t.Fatalf("unit 0 should keep all entries")
	}
}

func TestEnsureDefaultAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank", "words.json")
	if err := EnsureDefault(path); err != nil {
		t.Fatalf("failed to write default bank: %v", err)
	}
	entries, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load bank: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("expected entries after EnsureDefault")
	}

	// A second call must not overwrite an existing bank.
	custom := []byte(`[{"word": "sun", "meaning": "the star we orbit", "example": "The sun is bright."}]`)
	if err := os.WriteFile(path, custom, 0o644); err != nil {
		t.Fatalf("failed to overwrite bank: %v", err)
	}
	if err := EnsureDefault(path); err != nil {
		t.Fatalf("EnsureDefault on existing bank: %v", err)
	}
	entries, err = Load(path)
	if err != nil {
		t.Fatalf("failed to reload bank: %v", err)
	}
	if len(entries) != 1 || entries[0].Word != "sun" {
		t.Fatalf("existing bank was overwritten: %+v", entries)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	if err := Save(path, []byte(`[]`)); err == nil {
		t.Fatalf("expected save to reject an empty bank")
	}
	if err := Save(path, []byte(`[{"word": "cat", "meaning": "a pet"}]`)); err != nil {
		t.Fatalf("valid bank should save: %v", err)
	}
}
