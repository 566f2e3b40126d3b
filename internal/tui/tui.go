package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/tatianab/connections/internal/config"
	"github.com/tatianab/connections/internal/engine"
	"github.com/tatianab/connections/internal/models"
)

const (
	columns   = models.GroupSize
	cardWidth = 20
)

type model struct {
	engine  *engine.Engine
	snap    engine.Snapshot
	cursor  int
	timeout time.Duration
	help    help.Model
	log     zerolog.Logger
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	cardStyle = lipgloss.NewStyle().
			Width(cardWidth).
			Align(lipgloss.Center).
			Padding(1, 0).
			Margin(0, 1, 1, 0).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#EFEFE6"))

	selectedCardStyle = cardStyle.
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#5A594E"))

	cursorStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("#FFA500"))

	noCursorStyle = lipgloss.NewStyle().
			Border(lipgloss.HiddenBorder(), false, false, true, false)

	foundStyle = lipgloss.NewStyle().
			Width(columns*(cardWidth+1) - 1).
			Align(lipgloss.Center).
			Padding(0, 0, 1, 0).
			MarginBottom(1).
			Foreground(lipgloss.Color("#000000"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#3C3C3C")).
			Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	colourBackgrounds = map[models.Colour]lipgloss.Color{
		models.Yellow: lipgloss.Color("#F9DF6D"),
		models.Green:  lipgloss.Color("#A0C35A"),
		models.Blue:   lipgloss.Color("#B0C4EF"),
		models.Purple: lipgloss.Color("#BA81C5"),
	}
)

// NewModel wraps eng in a bubbletea model. Messages clear after timeout.
func NewModel(eng *engine.Engine, timeout time.Duration, log zerolog.Logger) model {
	h := help.New()
	h.Styles.ShortKey = helpStyle
	h.Styles.ShortDesc = helpStyle

	return model{
		engine:  eng,
		snap:    eng.Snapshot(),
		timeout: timeout,
		help:    h,
		log:     log,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

type clearMessageMsg struct {
	id uint64
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case clearMessageMsg:
		if m.engine.ClearMessage(msg.id) {
			m.snap = m.engine.Snapshot()
		}
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.snap.MessageID

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, keys.Up):
		m.moveCursor(-columns)
	case key.Matches(msg, keys.Down):
		m.moveCursor(columns)
	case key.Matches(msg, keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Right):
		m.moveCursor(1)

	case key.Matches(msg, keys.Toggle):
		if m.cursor < len(m.snap.Remaining) {
			if err := m.engine.ToggleSelect(m.snap.Remaining[m.cursor]); err != nil {
				m.log.Warn().Err(err).Msg("toggle rejected")
			}
		}

	case key.Matches(msg, keys.Submit):
		outcome := m.engine.Submit()
		m.log.Debug().Str("outcome", string(outcome)).Msg("submit")

	case key.Matches(msg, keys.Deselect):
		m.engine.DeselectAll()

	case key.Matches(msg, keys.Reset):
		m.engine.Reset()
		m.cursor = 0
	}

	m.snap = m.engine.Snapshot()
	if m.cursor >= len(m.snap.Remaining) {
		m.cursor = max(len(m.snap.Remaining)-1, 0)
	}
	return m, m.scheduleClear(before)
}

// scheduleClear starts the auto-clear timer when a new, non-sticky message
// has appeared since before.
func (m model) scheduleClear(before uint64) tea.Cmd {
	if m.snap.MessageID == before || m.snap.Message == "" || m.snap.MessageSticky {
		return nil
	}
	id := m.snap.MessageID
	return tea.Tick(m.timeout, func(time.Time) tea.Msg {
		return clearMessageMsg{id: id}
	})
}

func (m *model) moveCursor(delta int) {
	next := m.cursor + delta
	if next >= 0 && next < len(m.snap.Remaining) {
		m.cursor = next
	}
}

func (m model) View() string {
	title := titleStyle.Render(strings.ToUpper(m.snap.Title))
	intro := "Create four groups of four!"

	sections := []string{title, intro, m.renderMessage(), m.renderBoard(), m.renderAttempts(), m.renderStatus(), m.help.View(keys)}
	return "\n" + lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m model) renderMessage() string {
	if m.snap.Message == "" {
		return ""
	}
	return messageStyle.Render(m.snap.Message) + "\n"
}

func (m model) renderBoard() string {
	var rows []string
	for _, c := range m.snap.Found {
		style := foundStyle.Background(colourBackgrounds[c.Colour])
		rows = append(rows, style.Render(lipgloss.NewStyle().Bold(true).Render(c.Name)+"\n"+strings.Join(c.Words, ", ")))
	}

	for start := 0; start < len(m.snap.Remaining); start += columns {
		end := min(start+columns, len(m.snap.Remaining))
		var cards []string
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m model) renderCard(i int) string {
	word := m.snap.Remaining[i]
	style := cardStyle
	if m.snap.IsSelected(word) {
		style = selectedCardStyle
	}
	card := style.Render(word)
	if i == m.cursor && m.snap.Status == engine.StatusInProgress {
		return cursorStyle.Render(card)
	}
	return noCursorStyle.Render(card)
}

func (m model) renderAttempts() string {
	return fmt.Sprintf("Attempts remaining: %s", strings.Repeat("x ", m.snap.AttemptsRemaining))
}

func (m model) renderStatus() string {
	switch m.snap.Status {
	case engine.StatusWin:
		return helpStyle.Render("Solved! Press r to play again.")
	case engine.StatusLoss:
		return helpStyle.Render("Out of attempts. Press r to reset.")
	}
	if m.snap.CanSubmit() {
		return helpStyle.Render("Press enter to submit.")
	}
	return helpStyle.Render(fmt.Sprintf("%d of %d selected.", len(m.snap.Selected), models.GroupSize))
}

// Run starts the interactive board on eng.
func Run(eng *engine.Engine, timeout time.Duration, log zerolog.Logger) error {
	p := tea.NewProgram(NewModel(eng, timeout, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Start loads the configuration and puzzle and runs the board.
func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logFile, err := cfg.OpenLogFile()
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log := cfg.Logger(logFile)

	puzzle, err := models.ResolvePuzzle(cfg.PuzzleDir, cfg.PuzzlePath)
	if err != nil {
		return fmt.Errorf("load puzzle: %w", err)
	}

	eng, err := engine.NewEngine(*puzzle,
		engine.WithAttemptLimit(cfg.AttemptLimit),
		engine.WithOneAway(cfg.OneAway),
		engine.WithLogger(log),
	)
	if err != nil {
		return err
	}

	log.Info().Str("puzzle", puzzle.Title).Msg("starting board")
	return Run(eng, cfg.MessageTimeout, log)
}
