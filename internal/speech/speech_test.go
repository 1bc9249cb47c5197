package speech

import (
	"context"
	"strings"
	"testing"

	"wordquiz/internal/model"
)

func TestIsSingleWord(t *testing.T) {
	for _, word := range []string{"cat", "Apple", "zebra"} {
		if !IsSingleWord(word) {
			t.Fatalf("%q should be a single word", word)
		}
	}
	for _, text := range []string{"", "two words", "don't", "co-op", "word1"} {
		if IsSingleWord(text) {
			t.Fatalf("%q should not qualify for dictionary audio", text)
		}
	}
}

func TestDictionaryURL(t *testing.T) {
	got := DictionaryURL("apple", model.AccentUS)
	if got != "https://dict.youdao.com/dictvoice?audio=apple&type=2" {
		t.Fatalf("unexpected US url: %q", got)
	}
	got = DictionaryURL("apple", model.AccentUK)
	if !strings.HasSuffix(got, "type=1") {
		t.Fatalf("UK accent should request type 1: %q", got)
	}
}

func TestPickPreferredVoice(t *testing.T) {
	listing := strings.Join([]string{
		"Alex                en_US    # Most people recognize me by my voice.",
		"Daniel              en_GB    # Hello, my name is Daniel.",
		"Samantha            en_US    # Hello, my name is Samantha.",
		"Thomas              fr_FR    # Bonjour, je m'appelle Thomas.",
	}, "\n")

	if got := pickPreferredVoice(listing, "en-US"); got != "Samantha" {
		t.Fatalf("expected the preferred US voice, got %q", got)
	}
	if got := pickPreferredVoice(listing, "en-GB"); got != "Daniel" {
		t.Fatalf("expected the preferred GB voice, got %q", got)
	}
	// No preferred voice for the language: first match wins.
	if got := pickPreferredVoice(listing, "fr-FR"); got != "Thomas" {
		t.Fatalf("expected first matching voice, got %q", got)
	}
	if got := pickPreferredVoice(listing, "de-DE"); got != "" {
		t.Fatalf("expected no voice for unknown language, got %q", got)
	}
}

func TestSynthesisArgs(t *testing.T) {
	args := synthesisArgs("say", "apple", "en-US", "Samantha", 0.8)
	want := []string{"-r", "140", "-v", "Samantha", "apple"}
	assertArgs(t, args, want)

	args = synthesisArgs("espeak-ng", "apple", "en-GB", "", 1.0)
	want = []string{"-v", "en-gb", "-s", "175", "apple"}
	assertArgs(t, args, want)

	args = synthesisArgs("spd-say", "apple", "en-US", "", 0.5)
	want = []string{"-w", "-l", "en", "-r", "-50", "apple"}
	assertArgs(t, args, want)
}

func assertArgs(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("args = %v, want %v", got, want)
		}
	}
}

func TestRateMapping(t *testing.T) {
	if got := wordsPerMinute(0.1); got != 60 {
		t.Fatalf("very slow rates clamp to 60 wpm, got %d", got)
	}
	if got := relativeRate(3.0); got != 100 {
		t.Fatalf("relative rate clamps to 100, got %d", got)
	}
	if got := relativeRate(-1.0); got != -100 {
		t.Fatalf("relative rate clamps to -100, got %d", got)
	}
}

func TestSpeakPreferenceGating(t *testing.T) {
	// No player or synthesiser commands: a synthesis-only service must skip
	// the dictionary path and degrade to a silent no-op.
	s := &Service{opts: Options{Source: model.AudioSynthesis, Accent: model.AccentUS}}
	if err := s.Speak(context.Background(), "apple"); err != nil {
		t.Fatalf("missing synthesiser should no-op, got %v", err)
	}
	if s.IsSpeaking() {
		t.Fatalf("nothing should be speaking")
	}
	if !s.warned {
		t.Fatalf("missing synthesiser should warn once")
	}
	s.Speak(context.Background(), "apple")
	// Stop and Pause stay safe with no active process.
	s.Stop()
	s.Pause()
	s.Resume()
}

func TestDictionaryOnlyNeverSynthesizes(t *testing.T) {
	s := &Service{opts: Options{Source: model.AudioDictionary, Accent: model.AccentUS}}
	// Multi-word text cannot use the dictionary channel, and the preference
	// forbids synthesis: the call resolves silently.
	if err := s.Speak(context.Background(), "good morning"); err != nil {
		t.Fatalf("dictionary-only speak should resolve silently, got %v", err)
	}
	if s.warned {
		t.Fatalf("dictionary-only mode must not warn about synthesis")
	}
}
