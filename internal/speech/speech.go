// Package speech resolves a request to speak a word into remote dictionary
// audio playback or local speech synthesis, with timeout-based fallback.
package speech

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sync"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"

	"wordquiz/internal/model"
)

const (
	dictionaryHost    = "dict.youdao.com"
	dictionaryTimeout = 3 * time.Second
)

var singleWordRe = regexp.MustCompile(`^[A-Za-z]+$`)

// Options configures a speech Service.
type Options struct {
	Accent   model.Accent
	Rate     float64
	Language string
	Source   model.AudioSource
	CacheDir string
}

// Service plays pronunciation over two channels: cached dictionary audio via
// an external player, and a local synthesiser command. Dictionary failures
// fall back to synthesis silently.
type Service struct {
	opts   Options
	client *resty.Client
	player string
	synth  string
	voice  string

	mu       sync.Mutex
	speaking bool
	current  *exec.Cmd
	warned   bool
}

// NewService resolves the player and synthesiser commands available on this
// machine. A missing synthesiser is not an error; Speak degrades.
func NewService(opts Options) *Service {
	if opts.Rate <= 0 {
		opts.Rate = 1.0
	}
	if opts.Language == "" {
		opts.Language = languageForAccent(opts.Accent)
	}
	s := &Service{
		opts:   opts,
		client: resty.New().SetTimeout(dictionaryTimeout),
		player: firstCommand(playerCommands),
		synth:  firstCommand(synthCommands),
	}
	s.voice = s.resolveVoice()
	return s
}

// Supported reports whether local synthesis is available.
func (s *Service) Supported() bool { return s.synth != "" }

// IsSpeaking reports whether a playback channel is currently active.
func (s *Service) IsSpeaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking
}

// IsSingleWord reports whether text is one alphabetic token, the only shape
// the dictionary endpoint can pronounce.
func IsSingleWord(text string) bool {
	return singleWordRe.MatchString(text)
}

// DictionaryURL builds the remote audio request for a word and accent.
func DictionaryURL(word string, accent model.Accent) string {
	return fmt.Sprintf("https://%s/dictvoice?audio=%s&type=%d",
		dictionaryHost, url.QueryEscape(word), accentType(accent))
}

func accentType(accent model.Accent) int {
	if accent == model.AccentUK {
		return 1
	}
	return 2
}

func languageForAccent(accent model.Accent) string {
	if accent == model.AccentUK {
		return "en-GB"
	}
	return "en-US"
}

// Speak cancels any in-flight playback and pronounces text. Single words
// prefer dictionary audio unless the preference is synthesis-only; any
// dictionary failure falls through to the synthesiser. The call returns once
// playback has started; completion is observed via IsSpeaking.
func (s *Service) Speak(ctx context.Context, text string) error {
	s.Stop()
	if IsSingleWord(text) && s.opts.Source != model.AudioSynthesis {
		if err := s.playDictionary(ctx, text); err == nil {
			return nil
		}
	}
	if s.opts.Source == model.AudioDictionary {
		return nil
	}
	return s.synthesize(text)
}

// Stop kills both playback channels. Safe to call when nothing is playing.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.Process != nil {
		_ = s.current.Process.Kill()
	}
	s.current = nil
	s.speaking = false
}

// Pause suspends the active playback process. No-op when idle.
func (s *Service) Pause() {
	s.signalCurrent(syscall.SIGSTOP)
}

// Resume continues a paused playback process. No-op when idle.
func (s *Service) Resume() {
	s.signalCurrent(syscall.SIGCONT)
}

func (s *Service) signalCurrent(sig syscall.Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.Process == nil {
		return
	}
	_ = s.current.Process.Signal(sig)
}

func (s *Service) playDictionary(ctx context.Context, word string) error {
	if s.player == "" {
		return fmt.Errorf("no audio player available")
	}
	path, err := s.fetchAudio(ctx, word)
	if err != nil {
		return err
	}
	return s.startProcess(exec.Command(s.player, append(playerArgs[s.player], path)...))
}

// fetchAudio downloads dictionary audio into the cache, keyed by word and
// accent. The request is bounded by the dictionary timeout.
func (s *Service) fetchAudio(ctx context.Context, word string) (string, error) {
	name := fmt.Sprintf("%s_%s.mp3", word, s.opts.Accent)
	path := filepath.Join(s.opts.CacheDir, name)
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		return path, nil
	}

	ctx, cancel := context.WithTimeout(ctx, dictionaryTimeout)
	defer cancel()
	res, err := s.client.R().
		SetContext(ctx).
		Get(DictionaryURL(word, s.opts.Accent))
	if err != nil {
		return "", fmt.Errorf("dictionary audio request: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("dictionary audio status %d", res.StatusCode())
	}
	body := res.Body()
	if len(body) == 0 {
		return "", fmt.Errorf("dictionary audio response is empty")
	}
	if err := os.MkdirAll(s.opts.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio cache: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to cache audio: %w", err)
	}
	return path, nil
}

func (s *Service) synthesize(text string) error {
	if s.synth == "" {
		s.warnOnce()
		return nil
	}
	args := synthesisArgs(s.synth, text, s.opts.Language, s.voice, s.opts.Rate)
	return s.startProcess(exec.Command(s.synth, args...))
}

func (s *Service) startProcess(cmd *exec.Cmd) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", cmd.Path, err)
	}
	s.current = cmd
	s.speaking = true
	go func() {
		_ = cmd.Wait()
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.current == cmd {
			s.current = nil
			s.speaking = false
		}
	}()
	return nil
}

func (s *Service) warnOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.warned {
		return
	}
	s.warned = true
	fmt.Fprintln(os.Stderr, "speech synthesis is not available on this system; words will not be spoken")
}
