// Package quiz contains the game rules shared by all quiz modes.
package quiz

import (
	"math"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"wordquiz/internal/model"
)

const maskRune = '_'

// BlankMarker replaces the target word inside an example sentence.
const BlankMarker = "____"

// SkippedAnswer is recorded as the user answer when a word is skipped.
const SkippedAnswer = "(skipped)"

// CheckAnswer reports whether the user's answer matches the word, ignoring
// case and surrounding whitespace.
func CheckAnswer(user, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(user), strings.TrimSpace(correct))
}

// GenerateLetterPuzzle masks letters of a word with a length-keyed policy:
// up to 3 letters mask only the middle one, up to 6 mask the odd positions,
// longer words mask positions where i%3 == 1 or i%5 == 2.
func GenerateLetterPuzzle(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	masked := make([]rune, len(runes))
	copy(masked, runes)
	switch {
	case len(runes) <= 3:
		masked[len(runes)/2] = maskRune
	case len(runes) <= 6:
		for i := range masked {
			if i%2 == 1 {
				masked[i] = maskRune
			}
		}
	default:
		for i := range masked {
			if i%3 == 1 || i%5 == 2 {
				masked[i] = maskRune
			}
		}
	}
	return string(masked)
}

// MaskedCount returns how many positions of a puzzle are still hidden.
func MaskedCount(puzzle string) int {
	count := 0
	for _, r := range puzzle {
		if r == maskRune {
			count++
		}
	}
	return count
}

// CreateBlankSentence replaces every whole-word, case-insensitive occurrence
// of word in sentence with the blank marker.
func CreateBlankSentence(sentence, word string) string {
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return sentence
	}
	return re.ReplaceAllString(sentence, BlankMarker)
}

// CalculateStats aggregates a results sequence. Hint-assisted attempts are
// excluded from both sides of the accuracy ratio.
func CalculateStats(results []model.AnswerResult) model.SessionStats {
	stats := model.SessionStats{Total: len(results)}
	correctNoHint := 0
	noHintCount := 0
	for _, r := range results {
		if r.Correct {
			stats.Correct++
		} else {
			stats.Incorrect++
		}
		if r.HintsUsed > 0 {
			stats.WithHints++
			stats.TotalHintsUsed += r.HintsUsed
		} else {
			noHintCount++
			if r.Correct {
				correctNoHint++
			}
		}
		if r.TimedOut {
			stats.TimeoutCount++
		}
	}
	if noHintCount > 0 {
		stats.Accuracy = int(math.Round(100 * float64(correctNoHint) / float64(noHintCount)))
	}
	return stats
}

// Picker performs the random draws used by the quiz modes.
type Picker struct {
	rnd *rand.Rand
}

// NewPicker returns a Picker seeded with the current time.
func NewPicker() *Picker {
	return &Picker{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewPickerWithSeed returns a deterministic Picker for tests.
func NewPickerWithSeed(seed int64) *Picker {
	return &Picker{rnd: rand.New(rand.NewSource(seed))}
}

// Shuffle returns a uniformly shuffled copy; the input is left unmodified.
func Shuffle[T any](p *Picker, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := p.rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// SelectRandomWords shuffles the entries and takes the first count.
func (p *Picker) SelectRandomWords(entries []model.WordEntry, count int) []model.WordEntry {
	shuffled := Shuffle(p, entries)
	if count <= 0 || count >= len(shuffled) {
		return shuffled
	}
	return shuffled[:count]
}

// WrongOptions draws up to count words distinct from the correct one.
func (p *Picker) WrongOptions(entries []model.WordEntry, correct string, count int) []string {
	seen := map[string]struct{}{strings.ToLower(correct): {}}
	var pool []string
	for _, entry := range entries {
		key := strings.ToLower(entry.Word)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		pool = append(pool, entry.Word)
	}
	pool = Shuffle(p, pool)
	if count < len(pool) {
		pool = pool[:count]
	}
	return pool
}

// Hint reveals one randomly chosen still-masked position of the puzzle.
// It returns the puzzle unchanged when nothing is masked.
func (p *Picker) Hint(puzzle, correct string) string {
	puzzleRunes := []rune(puzzle)
	correctRunes := []rune(correct)
	var hidden []int
	for i, r := range puzzleRunes {
		if r == maskRune && i < len(correctRunes) {
			hidden = append(hidden, i)
		}
	}
	if len(hidden) == 0 {
		return puzzle
	}
	idx := hidden[p.rnd.Intn(len(hidden))]
	puzzleRunes[idx] = correctRunes[idx]
	return string(puzzleRunes)
}
