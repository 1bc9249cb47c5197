// Package main provides the CLI entrypoint for wordquiz.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"wordquiz/internal/config"
	"wordquiz/internal/history"
	"wordquiz/internal/model"
	"wordquiz/internal/quiz"
	"wordquiz/internal/speech"
	"wordquiz/internal/tui"
	"wordquiz/internal/wordbank"
)

const (
	defaultRate  = 0.8
	defaultWords = 10
)

var (
	playMode   string
	playWords  int
	playUnit   int
	playAccent string
	playRate   float64
	playAudio  string
	playMenu   bool

	historyClear bool
	historyLast  int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordquiz",
		Short:         "Vocabulary quiz trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playMode, "mode", "", "game mode: listen-spell, fill-blank, letter-puzzle (default: ask)")
	rootCmd.Flags().IntVar(&playWords, "words", 0, "words per session (default: ask)")
	rootCmd.Flags().IntVar(&playUnit, "unit", 0, "restrict to one unit of the word bank (0 = all)")
	rootCmd.Flags().StringVar(&playAccent, "accent", string(model.AccentUS), "pronunciation accent: us or uk")
	rootCmd.Flags().Float64Var(&playRate, "rate", defaultRate, "speech rate multiplier")
	rootCmd.Flags().StringVar(&playAudio, "audio", string(model.AudioHybrid), "audio source: hybrid, dictionary, synthesis")
	rootCmd.Flags().BoolVar(&playMenu, "menu", false, "always start at the mode menu")

	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &playMode, fileCfg.Quiz.Mode)
	applyIntConfig(cmd, "words", &playWords, fileCfg.Quiz.Words)
	applyIntConfig(cmd, "unit", &playUnit, fileCfg.Quiz.Unit)
	applyStringConfig(cmd, "accent", &playAccent, fileCfg.Speech.Accent)
	applyFloatConfig(cmd, "rate", &playRate, fileCfg.Speech.Rate)
	applyStringConfig(cmd, "audio", &playAudio, fileCfg.Speech.Audio)

	cfg := model.RunConfig{
		Mode:   model.Mode(playMode),
		Words:  playWords,
		Unit:   playUnit,
		Accent: model.Accent(strings.ToLower(playAccent)),
		Rate:   playRate,
		Audio:  model.AudioSource(strings.ToLower(playAudio)),
	}
	if playMenu {
		cfg.Mode = ""
		cfg.Words = 0
	}
	if err := validateRunConfig(cfg); err != nil {
		return err
	}

	bankPath := config.DefaultWordBankPath()
	if err := wordbank.EnsureDefault(bankPath); err != nil {
		return err
	}
	bank, err := wordbank.Load(bankPath)
	if err != nil {
		return fmt.Errorf("failed to load word bank: %w", err)
	}
	pool := wordbank.FilterUnit(bank, cfg.Unit)
	if len(pool) == 0 {
		return fmt.Errorf("no words in unit %d (word bank: %s)", cfg.Unit, bankPath)
	}
	if cfg.Words > len(pool) {
		cfg.Words = len(pool)
	}

	store, err := history.Open(config.DefaultHistoryDBPath())
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logErrf("failed to close history: %v\n", cerr)
		}
	}()

	speaker := speech.NewService(speech.Options{
		Accent:   cfg.Accent,
		Rate:     cfg.Rate,
		Source:   cfg.Audio,
		CacheDir: config.DefaultAudioCacheDir(),
	})
	if !speaker.Supported() && cfg.Audio == model.AudioSynthesis {
		logErrln("speech synthesis is not available; listen-spell will be silent")
	}

	m := tui.NewModel(cfg, bank, pool, store, speaker, quiz.NewPicker())
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	speaker.Stop()
	return nil
}

func validateRunConfig(cfg model.RunConfig) error {
	switch cfg.Mode {
	case "", model.ModeListenSpell, model.ModeFillBlank, model.ModeLetterPuzzle:
	default:
		return fmt.Errorf("--mode must be one of listen-spell, fill-blank, letter-puzzle")
	}
	if cfg.Words < 0 {
		return fmt.Errorf("--words must be >= 0")
	}
	if cfg.Unit < 0 {
		return fmt.Errorf("--unit must be >= 0")
	}
	switch cfg.Accent {
	case model.AccentUS, model.AccentUK:
	default:
		return fmt.Errorf("--accent must be us or uk")
	}
	if cfg.Rate <= 0 || cfg.Rate > 3 {
		return fmt.Errorf("--rate must be between 0 and 3")
	}
	switch cfg.Audio {
	case model.AudioHybrid, model.AudioDictionary, model.AudioSynthesis:
	default:
		return fmt.Errorf("--audio must be hybrid, dictionary, or synthesis")
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear session history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().BoolVar(&historyClear, "clear", false, "delete the whole history log")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N sessions")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	store, err := history.Open(config.DefaultHistoryDBPath())
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logErrf("failed to close history: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	if historyClear {
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return err
	}

	entries, err := store.List(ctx, historyLast)
	if err != nil {
		// Degrade to an empty report rather than failing the command.
		logErrf("failed to read history: %v\n", err)
		entries = nil
	}
	return history.RenderReport(cmd.OutOrStdout(), entries)
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "List the word bank",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Replace the word bank from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE:  runWordsImportCmd,
	})
	return cmd
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
	bankPath := config.DefaultWordBankPath()
	if err := wordbank.EnsureDefault(bankPath); err != nil {
		return err
	}
	entries, err := wordbank.Load(bankPath)
	if err != nil {
		return fmt.Errorf("failed to load word bank: %w", err)
	}
	for _, entry := range entries {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-16s unit %d  %s\n", entry.Word, entry.Unit, entry.Meaning); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runWordsImportCmd(cmd *cobra.Command, args []string) error {
	contents, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	bankPath := config.DefaultWordBankPath()
	if err := wordbank.Save(bankPath, contents); err != nil {
		return fmt.Errorf("failed to import word bank: %w", err)
	}
	entries, err := wordbank.Load(bankPath)
	if err != nil {
		return fmt.Errorf("failed to reload word bank: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d words into %s\n", len(entries), bankPath)
	return err
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordquiz configuration
# Uncomment a value to enable it. CLI flags override config values.

[quiz]
# mode = "listen-spell"   # Default game mode (listen-spell, fill-blank, letter-puzzle)
# words = %d              # Words per session
# unit = 0                # Restrict to one unit of the word bank (0 = all)

[speech]
# accent = "us"           # Dictionary audio accent (us or uk)
# rate = %.1f             # Speech rate multiplier
# audio = "hybrid"        # Audio source (hybrid, dictionary, synthesis)
`,
		defaultWords,
		defaultRate,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
