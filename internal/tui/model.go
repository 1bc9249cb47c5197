package tui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wordquiz/internal/history"
	"wordquiz/internal/model"
	"wordquiz/internal/quiz"
	"wordquiz/internal/speech"
)

type screen int

const (
	screenMenu screen = iota
	screenCount
	screenQuiz
	screenResults
	screenHistory
)

const answerTimeout = 30

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	puzzleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

type menuItem struct {
	label string
	mode  model.Mode
}

// tickMsg carries the timer generation so ticks from an already-finished
// word cannot speed up the next word's countdown.
type tickMsg int

// Model implements the Bubble Tea quiz UI.
type Model struct {
	cfg    model.RunConfig
	store  *history.Store
	speech *speech.Service
	picker *quiz.Picker
	bank   []model.WordEntry
	pool   []model.WordEntry

	screen screen
	width  int
	height int

	menuItems []menuItem
	menuIndex int

	countPresets []int
	countIndex   int
	countInput   textinput.Model
	countError   string

	session     *quiz.Session
	input       textinput.Model
	optionIndex int
	timeLeft    int
	timerSeq    int
	notice      string

	stats     model.SessionStats
	saveError string

	historyTable   table.Model
	historyEntries []model.HistoryEntry
	historyError   string
}

// NewModel constructs the quiz shell. A preselected mode and word count in
// cfg skip the menu and start a session immediately.
func NewModel(cfg model.RunConfig, bank, pool []model.WordEntry, store *history.Store, sp *speech.Service, picker *quiz.Picker) *Model {
	input := textinput.New()
	input.CharLimit = 64
	input.Width = 32

	countInput := textinput.New()
	countInput.CharLimit = 3
	countInput.Width = 8
	countInput.Placeholder = "count"

	m := &Model{
		cfg:    cfg,
		store:  store,
		speech: sp,
		picker: picker,
		bank:   bank,
		pool:   pool,
		menuItems: []menuItem{
			{label: model.ModeListenSpell.Title(), mode: model.ModeListenSpell},
			{label: model.ModeFillBlank.Title(), mode: model.ModeFillBlank},
			{label: model.ModeLetterPuzzle.Title(), mode: model.ModeLetterPuzzle},
			{label: "History", mode: ""},
		},
		countPresets: []int{5, 10, 15, 20},
		input:        input,
		countInput:   countInput,
		screen:       screenMenu,
	}
	m.initHistoryTable()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.cfg.Mode != "" && m.cfg.Words > 0 {
		return m.startSession(m.cfg.Mode, m.cfg.Words)
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m.updateTick(int(msg))
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.speech.Stop()
			return m, tea.Quit
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenCount:
			return m.updateCount(msg)
		case screenQuiz:
			return m.updateQuiz(msg)
		case screenResults:
			return m.updateResults(msg)
		case screenHistory:
			return m.updateHistory(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.screen {
	case screenMenu:
		body = m.viewMenu()
	case screenCount:
		body = m.viewCount()
	case screenQuiz:
		body = m.viewQuiz()
	case screenResults:
		body = m.viewResults()
	case screenHistory:
		body = m.viewHistory()
	}
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(m.menuItems)-1 {
			m.menuIndex++
		}
	case "enter":
		item := m.menuItems[m.menuIndex]
		if item.mode == "" {
			return m.openHistory()
		}
		m.cfg.Mode = item.mode
		m.screen = screenCount
		m.countError = ""
		m.countIndex = 0
		m.countInput.SetValue("")
		m.countInput.Blur()
	case "q", "esc":
		m.speech.Stop()
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("wordquiz"))
	b.WriteString("\n\n")
	for i, item := range m.menuItems {
		cursor := "  "
		label := mutedStyle.Render(item.label)
		if i == m.menuIndex {
			cursor = "> "
			label = selectedStyle.Render(item.label)
		}
		b.WriteString(cursor + label + "\n")
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("up/down select · enter confirm · q quit"))
	return b.String()
}

func (m *Model) updateCount(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.countInput.Focused() {
		switch msg.String() {
		case "enter":
			count, err := strconv.Atoi(strings.TrimSpace(m.countInput.Value()))
			if err != nil || count <= 0 {
				m.countError = "enter a number greater than 0"
				return m, nil
			}
			if count > len(m.pool) {
				count = len(m.pool)
			}
			return m, m.startSession(m.cfg.Mode, count)
		case "esc":
			m.countInput.Blur()
			m.countError = ""
			return m, nil
		}
		var cmd tea.Cmd
		m.countInput, cmd = m.countInput.Update(msg)
		return m, cmd
	}

	options := len(m.countPresets) + 2 // presets, all, custom
	switch msg.String() {
	case "up", "k":
		if m.countIndex > 0 {
			m.countIndex--
		}
	case "down", "j":
		if m.countIndex < options-1 {
			m.countIndex++
		}
	case "enter":
		switch {
		case m.countIndex < len(m.countPresets):
			count := m.countPresets[m.countIndex]
			if count > len(m.pool) {
				count = len(m.pool)
			}
			return m, m.startSession(m.cfg.Mode, count)
		case m.countIndex == len(m.countPresets):
			return m, m.startSession(m.cfg.Mode, len(m.pool))
		default:
			m.countInput.SetValue("")
			return m, m.countInput.Focus()
		}
	case "esc":
		m.screen = screenMenu
	}
	return m, nil
}

func (m *Model) viewCount() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.cfg.Mode.Title()))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d words available", len(m.pool))))
	b.WriteString("\n\n")
	labels := make([]string, 0, len(m.countPresets)+2)
	for _, preset := range m.countPresets {
		labels = append(labels, fmt.Sprintf("%d words", preset))
	}
	labels = append(labels, "All words", "Custom")
	for i, label := range labels {
		cursor := "  "
		rendered := mutedStyle.Render(label)
		if i == m.countIndex {
			cursor = "> "
			rendered = selectedStyle.Render(label)
		}
		b.WriteString(cursor + rendered + "\n")
	}
	if m.countInput.Focused() {
		b.WriteString("\n" + m.countInput.View() + "\n")
	}
	if m.countError != "" {
		b.WriteString("\n" + wrongStyle.Render(m.countError) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("enter confirm · esc back"))
	return b.String()
}

func (m *Model) startSession(mode model.Mode, count int) tea.Cmd {
	selected := m.picker.SelectRandomWords(m.pool, count)
	m.session = quiz.NewSession(mode, selected, m.bank, m.picker)
	m.screen = screenQuiz
	m.saveError = ""
	return m.enterWord()
}

// enterWord prepares UI state for a freshly presented word.
func (m *Model) enterWord() tea.Cmd {
	m.input.SetValue("")
	m.optionIndex = 0
	m.notice = ""
	m.timeLeft = answerTimeout
	m.timerSeq++

	var cmds []tea.Cmd
	cmds = append(cmds, m.input.Focus())
	if m.session.Mode() == model.ModeListenSpell {
		cmds = append(cmds, m.speakCmd(m.session.Current().Word), tickCmd(m.timerSeq))
	}
	return tea.Batch(cmds...)
}

func (m *Model) speakCmd(word string) tea.Cmd {
	return func() tea.Msg {
		if err := m.speech.Speak(context.Background(), word); err != nil {
			// Pronunciation is best-effort; the quiz stays playable.
			_ = err
		}
		return nil
	}
}

func tickCmd(seq int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg(seq)
	})
}

func (m *Model) updateTick(seq int) (tea.Model, tea.Cmd) {
	if seq != m.timerSeq || m.screen != screenQuiz || m.session == nil ||
		m.session.Mode() != model.ModeListenSpell || m.session.Phase() != quiz.PhasePresenting {
		return m, nil
	}
	if m.timeLeft <= 0 {
		return m, nil
	}
	m.timeLeft--
	if m.timeLeft == 0 {
		m.session.MarkTimedOut()
		m.notice = "Time is up! Your answer still counts."
		return m, nil
	}
	return m, tickCmd(seq)
}

func (m *Model) updateQuiz(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.session.Phase() == quiz.PhaseAnswered {
		switch msg.String() {
		case "enter", " ":
			return m.advance()
		case "esc":
			return m.abandonSession()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m.abandonSession()
	case "ctrl+r":
		if m.session.Mode() == model.ModeListenSpell {
			return m, m.speakCmd(m.session.Current().Word)
		}
	case "ctrl+k":
		m.speech.Stop()
		m.session.Skip()
		return m, nil
	case "tab":
		if m.session.Mode() == model.ModeLetterPuzzle {
			m.session.Hint()
			return m, nil
		}
	}

	if m.session.Mode() == model.ModeFillBlank {
		return m.updateOptions(msg)
	}

	if msg.String() == "enter" {
		answer := m.input.Value()
		if strings.TrimSpace(answer) == "" {
			return m, nil
		}
		m.speech.Stop()
		m.session.Submit(answer)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateOptions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := m.session.Prompt().Options
	switch msg.String() {
	case "up", "k":
		if m.optionIndex > 0 {
			m.optionIndex--
		}
	case "down", "j":
		if m.optionIndex < len(options)-1 {
			m.optionIndex++
		}
	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		if idx < len(options) {
			m.session.Submit(options[idx])
		}
	case "enter":
		if m.optionIndex < len(options) {
			m.session.Submit(options[m.optionIndex])
		}
	}
	return m, nil
}

func (m *Model) advance() (tea.Model, tea.Cmd) {
	m.session.Advance()
	if m.session.Phase() == quiz.PhaseComplete {
		return m.finishSession()
	}
	return m, m.enterWord()
}

func (m *Model) abandonSession() (tea.Model, tea.Cmd) {
	m.speech.Stop()
	m.session = nil
	m.screen = screenMenu
	return m, nil
}

func (m *Model) finishSession() (tea.Model, tea.Cmd) {
	m.speech.Stop()
	results := m.session.Results()
	m.stats = quiz.CalculateStats(results)
	entry := history.NewEntry(m.session.Mode(), m.stats)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.store.Append(ctx, entry); err != nil {
		m.saveError = fmt.Sprintf("failed to save session: %v", err)
		logErrf("%s\n", m.saveError)
	}
	m.screen = screenResults
	return m, nil
}

func (m *Model) viewQuiz() string {
	var b strings.Builder
	word := m.session.Current()
	position, total := m.session.Progress()

	b.WriteString(titleStyle.Render(m.session.Mode().Title()))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d", position, total)))
	if word.RetryCount > 0 {
		b.WriteString(noticeStyle.Render("  retry"))
	}
	b.WriteString("\n\n")

	switch m.session.Mode() {
	case model.ModeListenSpell:
		m.viewListenSpell(&b, word)
	case model.ModeFillBlank:
		m.viewFillBlank(&b, word)
	case model.ModeLetterPuzzle:
		m.viewLetterPuzzle(&b, word)
	}

	if m.notice != "" {
		b.WriteString("\n" + noticeStyle.Render(m.notice) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.quizFooter()))
	return b.String()
}

func (m *Model) viewListenSpell(b *strings.Builder, word model.SessionWord) {
	if m.session.Phase() == quiz.PhasePresenting {
		b.WriteString(mutedStyle.Render("Listen carefully and type the word you hear."))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Meaning: %s", word.Meaning)))
		b.WriteString("\n\n")
		if m.timeLeft > 0 {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("%2ds left", m.timeLeft)))
		} else {
			b.WriteString(noticeStyle.Render("time is up"))
		}
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		return
	}
	m.viewFeedback(b, word)
}

func (m *Model) viewFillBlank(b *strings.Builder, word model.SessionWord) {
	prompt := m.session.Prompt()
	b.WriteString(wrapText(prompt.Sentence, m.contentWidth()))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Meaning: %s", word.Meaning)))
	b.WriteString("\n\n")
	if m.session.Phase() == quiz.PhasePresenting {
		for i, option := range prompt.Options {
			cursor := "  "
			label := fmt.Sprintf("%d. %s", i+1, option)
			rendered := mutedStyle.Render(label)
			if i == m.optionIndex {
				cursor = "> "
				rendered = selectedStyle.Render(label)
			}
			b.WriteString(cursor + rendered + "\n")
		}
		return
	}
	m.viewFeedback(b, word)
}

func (m *Model) viewLetterPuzzle(b *strings.Builder, word model.SessionWord) {
	prompt := m.session.Prompt()
	if m.session.Phase() == quiz.PhasePresenting {
		b.WriteString(puzzleStyle.Render(spacedPuzzle(prompt.Puzzle)))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Meaning: %s", word.Meaning)))
		if m.session.HintsUsed() > 0 {
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render(fmt.Sprintf("Hints used: %d", m.session.HintsUsed())))
		}
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		return
	}
	m.viewFeedback(b, word)
}

func (m *Model) viewFeedback(b *strings.Builder, word model.SessionWord) {
	if m.session.LastCorrect() {
		b.WriteString(correctStyle.Render("Correct!"))
	} else {
		b.WriteString(wrongStyle.Render("Not quite."))
	}
	b.WriteString("\n\n")
	b.WriteString(selectedStyle.Render(word.Word))
	if word.Phonetic != "" {
		b.WriteString("  " + mutedStyle.Render(word.Phonetic))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(word.Meaning))
	if word.Example != "" {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(wrapText(word.Example, m.contentWidth())))
	}
}

func (m *Model) quizFooter() string {
	if m.session.Phase() == quiz.PhaseAnswered {
		return "enter next · esc menu"
	}
	parts := []string{"enter answer"}
	switch m.session.Mode() {
	case model.ModeListenSpell:
		parts = append(parts, "ctrl+r replay")
	case model.ModeLetterPuzzle:
		parts = append(parts, "tab hint")
	case model.ModeFillBlank:
		parts = []string{"1-4 or enter choose"}
	}
	parts = append(parts, "ctrl+k skip", "esc menu")
	return strings.Join(parts, " · ")
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "q":
		m.session = nil
		m.screen = screenMenu
	}
	return m, nil
}

func (m *Model) viewResults() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Session complete"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Words     %d\n", m.stats.Total))
	b.WriteString(correctStyle.Render(fmt.Sprintf("Correct   %d", m.stats.Correct)) + "\n")
	b.WriteString(wrongStyle.Render(fmt.Sprintf("Wrong     %d", m.stats.Incorrect)) + "\n")
	b.WriteString(fmt.Sprintf("Accuracy  %d%%\n", m.stats.Accuracy))
	if m.stats.WithHints > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Hints     %d (on %d words)", m.stats.TotalHintsUsed, m.stats.WithHints)) + "\n")
	}
	if m.stats.TimeoutCount > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Timeouts  %d", m.stats.TimeoutCount)) + "\n")
	}
	if m.saveError != "" {
		b.WriteString("\n" + wrongStyle.Render(m.saveError) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("enter menu"))
	return b.String()
}

func (m *Model) initHistoryTable() {
	columns := []table.Column{
		{Title: "When", Width: 16},
		{Title: "Mode", Width: 18},
		{Title: "Words", Width: 6},
		{Title: "Correct", Width: 8},
		{Title: "Wrong", Width: 6},
		{Title: "Accuracy", Width: 9},
	}
	m.historyTable = table.New(
		table.WithColumns(columns),
		table.WithHeight(12),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	m.historyTable.SetStyles(styles)
}

func (m *Model) openHistory() (tea.Model, tea.Cmd) {
	m.screen = screenHistory
	m.refreshHistory()
	return m, nil
}

// refreshHistory reloads the log; read failures degrade to an empty list.
func (m *Model) refreshHistory() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	entries, err := m.store.List(ctx, 0)
	if err != nil {
		logErrf("failed to load history: %v\n", err)
		m.historyError = "history could not be loaded"
		entries = nil
	} else {
		m.historyError = ""
	}
	m.historyEntries = entries

	rows := make([]table.Row, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, table.Row{
			entry.Timestamp.Format("2006-01-02 15:04"),
			entry.Mode.Title(),
			strconv.Itoa(entry.WordCount),
			strconv.Itoa(entry.Correct),
			strconv.Itoa(entry.Incorrect),
			fmt.Sprintf("%d%%", entry.Accuracy),
		})
	}
	m.historyTable.SetRows(rows)
}

func (m *Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.screen = screenMenu
		return m, nil
	case "c":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.store.Clear(ctx); err != nil {
			logErrf("failed to clear history: %v\n", err)
			m.historyError = "history could not be cleared"
		}
		m.refreshHistory()
		return m, nil
	}
	var cmd tea.Cmd
	m.historyTable, cmd = m.historyTable.Update(msg)
	return m, cmd
}

func (m *Model) viewHistory() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("History"))
	b.WriteString("\n\n")
	if len(m.historyEntries) == 0 {
		b.WriteString(mutedStyle.Render("No sessions recorded yet."))
	} else {
		b.WriteString(m.historyTable.View())
	}
	if m.historyError != "" {
		b.WriteString("\n" + wrongStyle.Render(m.historyError))
	}
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("up/down scroll · c clear all · esc menu"))
	return b.String()
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 60
	}
	width := int(float64(m.width) * 0.70)
	if width < 20 {
		width = 20
	}
	return width
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
