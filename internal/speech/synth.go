package speech

import (
	"os/exec"
	"strconv"
	"strings"
)

// Player and synthesiser candidates, in preference order.
var (
	playerCommands = []string{"afplay", "mpv", "ffplay", "paplay"}
	synthCommands  = []string{"say", "espeak-ng", "espeak", "spd-say"}
)

// Extra flags per player so they stay quiet and exit after playback.
var playerArgs = map[string][]string{
	"mpv":    {"--no-video", "--really-quiet"},
	"ffplay": {"-nodisp", "-autoexit", "-loglevel", "quiet"},
}

// Voices preferred for clarity when the synthesiser lists them.
var preferredVoices = []string{"Samantha", "Karen", "Daniel", "Moira", "Tessa"}

const baseWordsPerMinute = 175

func firstCommand(candidates []string) string {
	for _, name := range candidates {
		if _, err := exec.LookPath(name); err == nil {
			return name
		}
	}
	return ""
}

// resolveVoice asks the say command for its installed voices and picks a
// preferred one for the configured language. Other synthesisers take a
// language flag directly and need no voice name.
func (s *Service) resolveVoice() string {
	if s.synth != "say" {
		return ""
	}
	out, err := exec.Command("say", "-v", "?").Output()
	if err != nil {
		return ""
	}
	return pickPreferredVoice(string(out), s.opts.Language)
}

// pickPreferredVoice parses `say -v ?` output (name, language tag, sample)
// and returns a known-quality voice for the language, else the first voice
// matching the language, else empty.
func pickPreferredVoice(listing, language string) string {
	langKey := strings.ReplaceAll(strings.ToLower(language), "-", "_")
	var firstMatch string
	matches := map[string]struct{}{}
	for _, line := range strings.Split(listing, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name := fields[0]
		tag := strings.ToLower(fields[1])
		if !strings.HasPrefix(tag, langKey) {
			continue
		}
		if firstMatch == "" {
			firstMatch = name
		}
		matches[name] = struct{}{}
	}
	for _, preferred := range preferredVoices {
		if _, ok := matches[preferred]; ok {
			return preferred
		}
	}
	return firstMatch
}

// synthesisArgs maps the shared (text, language, rate) contract onto each
// synthesiser's flags. Pitch and volume stay at the command defaults.
func synthesisArgs(command, text, language, voice string, rate float64) []string {
	switch command {
	case "say":
		args := []string{"-r", strconv.Itoa(wordsPerMinute(rate))}
		if voice != "" {
			args = append(args, "-v", voice)
		}
		return append(args, text)
	case "espeak-ng", "espeak":
		return []string{
			"-v", espeakVoice(language),
			"-s", strconv.Itoa(wordsPerMinute(rate)),
			text,
		}
	case "spd-say":
		return []string{
			"-w",
			"-l", languageRoot(language),
			"-r", strconv.Itoa(relativeRate(rate)),
			text,
		}
	default:
		return []string{text}
	}
}

func wordsPerMinute(rate float64) int {
	wpm := int(baseWordsPerMinute * rate)
	if wpm < 60 {
		wpm = 60
	}
	return wpm
}

// relativeRate maps a multiplier onto spd-say's -100..100 scale.
func relativeRate(rate float64) int {
	r := int((rate - 1.0) * 100)
	if r < -100 {
		r = -100
	}
	if r > 100 {
		r = 100
	}
	return r
}

func espeakVoice(language string) string {
	switch strings.ToLower(language) {
	case "en-gb":
		return "en-gb"
	case "en-us", "en":
		return "en-us"
	default:
		return strings.ToLower(languageRoot(language))
	}
}

func languageRoot(language string) string {
	if idx := strings.IndexAny(language, "-_"); idx > 0 {
		return language[:idx]
	}
	return language
}
