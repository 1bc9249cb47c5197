package quiz

import (
	"testing"

	"wordquiz/internal/model"
)

func newTestSession(mode model.Mode, words ...string) *Session {
	bank := bankOf(words...)
	return NewSession(mode, bank, bank, NewPickerWithSeed(42))
}

func TestSessionAllCorrect(t *testing.T) {
	s := newTestSession(model.ModeListenSpell, "a", "b", "c", "d", "e")
	for s.Phase() != PhaseComplete {
		if s.Phase() != PhasePresenting {
			t.Fatalf("expected presenting phase, got %v", s.Phase())
		}
		s.Submit(s.Current().Word)
		if s.Phase() != PhaseAnswered {
			t.Fatalf("expected answered phase after submit")
		}
		s.Advance()
	}
	results := s.Results()
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	stats := CalculateStats(results)
	if stats.Total != 5 || stats.Correct != 5 || stats.Incorrect != 0 || stats.Accuracy != 100 {
		t.Fatalf("unexpected stats for a perfect run: %+v", stats)
	}
}

func TestSessionRetryInsertion(t *testing.T) {
	s := newTestSession(model.ModeListenSpell, "A", "B", "C", "D")
	s.Submit("wrong")
	s.Advance()

	words := s.Words()
	if len(words) != 5 {
		t.Fatalf("expected one retry insertion, got %d words", len(words))
	}
	if words[3].Word != "A" || words[3].RetryCount != 1 {
		t.Fatalf("retry of A should sit at index 3 with RetryCount 1, got %+v", words[3])
	}

	// B and C correct, then the retry of A wrong again: no second insertion.
	s.Submit("B")
	s.Advance()
	s.Submit("C")
	s.Advance()
	if s.Current().Word != "A" || s.Current().RetryCount != 1 {
		t.Fatalf("expected the retry of A, got %+v", s.Current())
	}
	s.Submit("wrong again")
	s.Advance()
	if got := len(s.Words()); got != 5 {
		t.Fatalf("a missed retry must not be re-inserted, got %d words", got)
	}
	s.Submit("D")
	s.Advance()
	if s.Phase() != PhaseComplete {
		t.Fatalf("expected complete phase")
	}
	if got := len(s.Results()); got != 5 {
		t.Fatalf("retried attempts count again, expected 5 results, got %d", got)
	}
}

func TestSessionRetryNearEnd(t *testing.T) {
	s := newTestSession(model.ModeListenSpell, "A", "B")
	s.Submit("B") // miss A at index 0
	s.Advance()
	words := s.Words()
	// min(0+3, 2) == 2: the retry lands at the end.
	if len(words) != 3 || words[2].Word != "A" || words[2].RetryCount != 1 {
		t.Fatalf("retry should be appended at the end, got %+v", words)
	}
}

func TestSessionSkip(t *testing.T) {
	s := newTestSession(model.ModeLetterPuzzle, "garden")
	s.Skip()
	results := s.Results()
	if len(results) != 1 {
		t.Fatalf("expected one result after skip")
	}
	if results[0].Correct || results[0].UserAnswer != SkippedAnswer {
		t.Fatalf("skip should record an incorrect placeholder answer: %+v", results[0])
	}
}

func TestSessionHintsOnlyInPuzzleMode(t *testing.T) {
	s := newTestSession(model.ModeLetterPuzzle, "umbrella")
	before := MaskedCount(s.Prompt().Puzzle)
	if before == 0 {
		t.Fatalf("puzzle should start with masked letters")
	}
	s.Hint()
	if MaskedCount(s.Prompt().Puzzle) != before-1 {
		t.Fatalf("hint should reveal one letter")
	}
	if s.HintsUsed() != 1 {
		t.Fatalf("expected hint counter 1, got %d", s.HintsUsed())
	}
	s.Submit("umbrella")
	results := s.Results()
	if results[0].HintsUsed != 1 {
		t.Fatalf("result should carry the hint count: %+v", results[0])
	}

	other := newTestSession(model.ModeListenSpell, "cat")
	other.Hint()
	if other.HintsUsed() != 0 {
		t.Fatalf("hints are a letter-puzzle action only")
	}
}

func TestSessionHintStopsAtSolvedPuzzle(t *testing.T) {
	s := newTestSession(model.ModeLetterPuzzle, "cat")
	s.Hint()
	count := s.HintsUsed()
	s.Hint() // nothing left to reveal
	if s.HintsUsed() != count {
		t.Fatalf("hint on a solved puzzle must not increment the counter")
	}
}

func TestSessionTimeoutAdvisory(t *testing.T) {
	s := newTestSession(model.ModeListenSpell, "cat", "dog")
	s.MarkTimedOut()
	if s.Phase() != PhasePresenting {
		t.Fatalf("timeout must not force a transition")
	}
	s.Submit("cat")
	results := s.Results()
	if !results[0].TimedOut || !results[0].Correct {
		t.Fatalf("result should carry the timeout flag: %+v", results[0])
	}
	s.Advance()
	if s.TimedOut() {
		t.Fatalf("timeout flag must reset for the next word")
	}

	// The flag is listen-spell only.
	puzzle := newTestSession(model.ModeLetterPuzzle, "cat")
	puzzle.MarkTimedOut()
	puzzle.Submit("cat")
	if puzzle.Results()[0].TimedOut {
		t.Fatalf("letter-puzzle results must not carry timeouts")
	}
}

func TestSessionFillBlankPrompt(t *testing.T) {
	bank := bankOf("cat", "dog", "fish", "bird", "frog")
	s := NewSession(model.ModeFillBlank, bank[:1], bank, NewPickerWithSeed(5))
	prompt := s.Prompt()
	if prompt.Sentence == "" || prompt.Sentence == bank[0].Example {
		t.Fatalf("fill-blank prompt should blank the sentence: %q", prompt.Sentence)
	}
	if len(prompt.Options) != 4 {
		t.Fatalf("expected 4 options, got %v", prompt.Options)
	}
	found := false
	for _, opt := range prompt.Options {
		if opt == "cat" {
			found = true
		}
	}
	if !found {
		t.Fatalf("options must include the correct word: %v", prompt.Options)
	}
	s.Submit(prompt.Options[0])
	if s.Phase() != PhaseAnswered {
		t.Fatalf("selecting an option should answer the word")
	}
}

func TestSessionSubmitIgnoredAfterAnswer(t *testing.T) {
	s := newTestSession(model.ModeListenSpell, "cat")
	s.Submit("cat")
	s.Submit("cat")
	if got := len(s.Results()); got != 1 {
		t.Fatalf("double submit should record once, got %d", got)
	}
}

func TestSessionEmptyWordList(t *testing.T) {
	s := NewSession(model.ModeListenSpell, nil, nil, NewPickerWithSeed(1))
	if s.Phase() != PhaseComplete {
		t.Fatalf("empty session should complete immediately")
	}
}
