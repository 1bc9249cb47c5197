// Package model defines shared data structures.
package model

import "time"

// Mode identifies a quiz game mode.
type Mode string

// Available game modes.
const (
	ModeListenSpell  Mode = "listen-spell"
	ModeFillBlank    Mode = "fill-blank"
	ModeLetterPuzzle Mode = "letter-puzzle"
)

// Title returns a human-readable mode name.
func (m Mode) Title() string {
	switch m {
	case ModeListenSpell:
		return "Listen & Spell"
	case ModeFillBlank:
		return "Fill in the Blank"
	case ModeLetterPuzzle:
		return "Letter Puzzle"
	default:
		return string(m)
	}
}

// WordEntry is one immutable record from the word bank.
type WordEntry struct {
	Word     string `json:"word"`
	Meaning  string `json:"meaning"`
	Phonetic string `json:"phonetic"`
	Example  string `json:"example"`
	Unit     int    `json:"unit,omitempty"`
}

// SessionWord is the mutable working copy of a word inside one session.
// RetryCount is 0 for the original attempt and 1 for a re-inserted retry.
type SessionWord struct {
	WordEntry
	RetryCount int
}

// AnswerResult records one attempt, including skips and retried repeats.
type AnswerResult struct {
	Word       string
	Correct    bool
	UserAnswer string
	HintsUsed  int
	TimedOut   bool
}

// SessionStats aggregates a results sequence. Accuracy covers only the
// attempts made without hints; hint-assisted answers are excluded from both
// sides of the ratio.
type SessionStats struct {
	Total          int
	Correct        int
	Incorrect      int
	Accuracy       int
	WithHints      int
	TotalHintsUsed int
	TimeoutCount   int
}

// HistoryEntry is one persisted completed session. ID is the creation time
// in Unix milliseconds.
type HistoryEntry struct {
	ID             int64
	Timestamp      time.Time
	Mode           Mode
	WordCount      int
	Correct        int
	Incorrect      int
	Accuracy       int
	WithHints      int
	TotalHintsUsed int
	TimeoutCount   int
}

// Accent selects the dictionary audio voice.
type Accent string

// Supported accents.
const (
	AccentUS Accent = "us"
	AccentUK Accent = "uk"
)

// AudioSource selects how pronunciation is produced.
type AudioSource string

// Audio source preferences.
const (
	AudioHybrid     AudioSource = "hybrid"
	AudioDictionary AudioSource = "dictionary"
	AudioSynthesis  AudioSource = "synthesis"
)

// RunConfig defines settings for one quiz run.
type RunConfig struct {
	Mode   Mode
	Words  int
	Unit   int
	Accent Accent
	Rate   float64
	Audio  AudioSource
}
