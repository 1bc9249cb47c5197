package quiz

import (
	"strings"

	"wordquiz/internal/model"
)

// Phase is the state of a session for the current word.
type Phase int

// Session phases. A session moves Presenting -> Answered per word and ends
// in Complete after advancing past the last word.
const (
	PhasePresenting Phase = iota
	PhaseAnswered
	PhaseComplete
)

// Prompt carries the mode-specific presentation for the current word.
type Prompt struct {
	Puzzle   string   // letter-puzzle: current mask state
	Sentence string   // fill-blank: example with the word blanked out
	Options  []string // fill-blank: shuffled choices, one correct
}

// Session drives one quiz run over a word list. The three modes share the
// same state machine and differ only in prompt setup and available actions.
type Session struct {
	mode   model.Mode
	picker *Picker
	bank   []model.WordEntry

	words []model.SessionWord
	index int
	phase Phase

	prompt      Prompt
	hintsUsed   int
	timedOut    bool
	lastCorrect bool

	results []model.AnswerResult
}

// NewSession starts a session over the selected words. The full bank is kept
// for drawing wrong options in fill-blank mode.
func NewSession(mode model.Mode, selected, bank []model.WordEntry, picker *Picker) *Session {
	words := make([]model.SessionWord, 0, len(selected))
	for _, entry := range selected {
		words = append(words, model.SessionWord{WordEntry: entry})
	}
	s := &Session{
		mode:   mode,
		picker: picker,
		bank:   bank,
		words:  words,
	}
	if len(s.words) == 0 {
		s.phase = PhaseComplete
		return s
	}
	s.enterPresenting()
	return s
}

// Mode returns the session's game mode.
func (s *Session) Mode() model.Mode { return s.mode }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Current returns the word being presented or answered.
func (s *Session) Current() model.SessionWord {
	if s.index >= len(s.words) {
		return model.SessionWord{}
	}
	return s.words[s.index]
}

// Prompt returns the presentation data for the current word.
func (s *Session) Prompt() Prompt { return s.prompt }

// Progress reports the 1-based position and the working sequence length.
// Retry insertions grow the total mid-session.
func (s *Session) Progress() (position, total int) {
	position = s.index + 1
	if position > len(s.words) {
		position = len(s.words)
	}
	return position, len(s.words)
}

// HintsUsed returns the hint count for the current word.
func (s *Session) HintsUsed() int { return s.hintsUsed }

// TimedOut reports whether the advisory timer expired for the current word.
func (s *Session) TimedOut() bool { return s.timedOut }

// LastCorrect reports the outcome of the most recent answer.
func (s *Session) LastCorrect() bool { return s.lastCorrect }

func (s *Session) enterPresenting() {
	s.phase = PhasePresenting
	s.hintsUsed = 0
	s.timedOut = false
	s.prompt = Prompt{}

	word := s.words[s.index]
	switch s.mode {
	case model.ModeLetterPuzzle:
		s.prompt.Puzzle = GenerateLetterPuzzle(word.Word)
	case model.ModeFillBlank:
		s.prompt.Sentence = CreateBlankSentence(word.Example, word.Word)
		wrongs := s.picker.WrongOptions(s.bank, word.Word, 3)
		s.prompt.Options = Shuffle(s.picker, append([]string{word.Word}, wrongs...))
	case model.ModeListenSpell:
		// Audio is played by the shell; no prompt payload.
	}
}

// Hint reveals one more masked letter in letter-puzzle mode. It is a no-op
// in other modes, after answering, or once nothing is masked.
func (s *Session) Hint() string {
	if s.mode != model.ModeLetterPuzzle || s.phase != PhasePresenting {
		return s.prompt.Puzzle
	}
	revealed := s.picker.Hint(s.prompt.Puzzle, s.words[s.index].Word)
	if revealed == s.prompt.Puzzle {
		return s.prompt.Puzzle
	}
	s.prompt.Puzzle = revealed
	s.hintsUsed++
	return s.prompt.Puzzle
}

// MarkTimedOut flags the current word after the advisory answer timer
// expires. It never forces a transition.
func (s *Session) MarkTimedOut() {
	if s.mode == model.ModeListenSpell && s.phase == PhasePresenting {
		s.timedOut = true
	}
}

// Submit records the user's answer and moves to Answered.
func (s *Session) Submit(answer string) {
	if s.phase != PhasePresenting {
		return
	}
	word := s.words[s.index]
	correct := CheckAnswer(answer, word.Word)
	s.record(model.AnswerResult{
		Word:       word.Word,
		Correct:    correct,
		UserAnswer: strings.TrimSpace(answer),
		HintsUsed:  s.hintsUsed,
		TimedOut:   s.timedOut,
	})
}

// Skip records the current word as incorrect with a placeholder answer.
func (s *Session) Skip() {
	if s.phase != PhasePresenting {
		return
	}
	word := s.words[s.index]
	s.record(model.AnswerResult{
		Word:       word.Word,
		Correct:    false,
		UserAnswer: SkippedAnswer,
		HintsUsed:  s.hintsUsed,
		TimedOut:   s.timedOut,
	})
}

func (s *Session) record(result model.AnswerResult) {
	s.results = append(s.results, result)
	s.lastCorrect = result.Correct
	s.phase = PhaseAnswered
}

// Advance leaves the Answered phase. A first miss re-inserts the word with
// RetryCount 1 at min(index+3, len); a missed retry is never re-inserted.
func (s *Session) Advance() {
	if s.phase != PhaseAnswered {
		return
	}
	word := s.words[s.index]
	if !s.lastCorrect && word.RetryCount == 0 {
		retry := word
		retry.RetryCount = 1
		pos := s.index + 3
		if pos > len(s.words) {
			pos = len(s.words)
		}
		s.words = append(s.words[:pos], append([]model.SessionWord{retry}, s.words[pos:]...)...)
	}
	s.index++
	if s.index >= len(s.words) {
		s.phase = PhaseComplete
		return
	}
	s.enterPresenting()
}

// Results returns the attempt-ordered result list.
func (s *Session) Results() []model.AnswerResult {
	out := make([]model.AnswerResult, len(s.results))
	copy(out, s.results)
	return out
}

// Words exposes the working sequence, including retry insertions.
func (s *Session) Words() []model.SessionWord {
	out := make([]model.SessionWord, len(s.words))
	copy(out, s.words)
	return out
}
