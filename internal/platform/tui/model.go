package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapdojo/internal/audio"
	"github.com/vovakirdan/flapdojo/internal/core"
	"github.com/vovakirdan/flapdojo/internal/registry"
	"github.com/vovakirdan/flapdojo/internal/storage"
)

// ScoreRecorder stores finished session scores.
type ScoreRecorder interface {
	SaveScore(gameID string, score int) (int64, error)
}

// Options configures a game Model. Zero values are valid: no persistence,
// silent audio, discarded logs.
type Options struct {
	Scores   ScoreRecorder
	Progress core.ProgressStore
	Audio    audio.Player
	Logger   *log.Logger

	// ScreenshotDir defaults to ~/.flapdojo/screenshots.
	ScreenshotDir string

	// AllowBack lets Back leave a finished or paused game instead of
	// being ignored. Used when the model runs inside a SessionModel.
	AllowBack bool
}

// cellClick is a queued pointer press.
type cellClick struct {
	col, row int
}

// Model is the Bubble Tea model for running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	scores     ScoreRecorder
	audio      audio.Player
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	clicks     []cellClick
	gameState  core.GameState
	celebrate  celebration

	screenshotDir string
	allowBack     bool

	pendingScore int // Score of the last game over, not yet recorded
	quitting     bool
	backToMenu   bool
}

// NewModel creates a Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.ScreenshotDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			opts.ScreenshotDir = filepath.Join(home, ".flapdojo", "screenshots")
		}
	}

	if p, ok := game.(registry.Persistent); ok && opts.Progress != nil {
		p.SetProgressStore(WithLogging(opts.Progress, opts.Logger))
	}

	return Model{
		game:          game,
		screen:        core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		scores:        opts.Scores,
		audio:         opts.Audio,
		logger:        opts.Logger,
		config:        cfg,
		keyMapper:     NewKeyMapper(),
		inputFrame:    core.NewInputFrame(),
		screenshotDir: opts.ScreenshotDir,
		allowBack:     opts.AllowBack,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case celebrateTickMsg:
		return m, m.celebrate.update(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}

	if m.allowBack && m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.finish()
		m.backToMenu = true
	}
	return m, nil
}

// handleMouse queues left-button presses for the next tick.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if _, ok := m.game.(registry.Clickable); ok {
		m.clicks = append(m.clicks, cellClick{col: msg.X, row: msg.Y})
	} else {
		m.inputFrame.Set(core.ActionJump)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// A resize rebuilds the world; a finished game keeps its overlay
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	prev := m.gameState

	if c, ok := m.game.(registry.Clickable); ok {
		for _, click := range m.clicks {
			c.Click(click.col, click.row)
		}
	}
	m.clicks = nil

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	cmds = append(cmds, m.handleEvents(result.Events)...)
	m.trackScore(prev, m.gameState)

	return m, tea.Batch(cmds...)
}

// handleEvents forwards tick events to audio and the celebration banner.
func (m *Model) handleEvents(events []core.Event) []tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range events {
		if cue, ok := audio.CueForEvent(e.Kind); ok {
			m.audio.Play(cue)
		}
		if e.Kind == core.EventTierUp {
			cmds = append(cmds, m.celebrate.start(e.Label, e.Color))
		}
	}
	return cmds
}

// trackScore records one score per finished run. A run that may still be
// revived is recorded once it is restarted or left.
func (m *Model) trackScore(prev, now core.GameState) {
	switch {
	case now.GameOver && !prev.GameOver:
		m.pendingScore = now.Score
		if !now.CanRevive {
			m.recordScore()
		}
	case prev.GameOver && !now.GameOver && now.Score == 0:
		// Restarted
		m.recordScore()
		m.celebrate.cancel()
	}
}

// recordScore saves the pending score, best-effort.
func (m *Model) recordScore() {
	score := m.pendingScore
	m.pendingScore = 0
	if score <= 0 || m.scores == nil {
		return
	}
	if _, err := m.scores.SaveScore(m.game.ID(), score); err != nil {
		m.logger.Warn("cannot save score", "game", m.game.ID(), "score", score, "err", err)
	}
}

// finish flushes everything that must outlive the model.
func (m *Model) finish() {
	m.recordScore()
	if p, ok := m.game.(registry.Persistent); ok {
		p.Flush()
	}
	m.celebrate.cancel()
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if m.screenshotDir == "" {
		return
	}
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	m.celebrate.draw(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for one game in the current terminal.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

// WithStore wires s as both score recorder and progress store. A nil store
// leaves the options untouched so no typed-nil interfaces leak through.
func (o Options) WithStore(s *storage.Store) Options {
	if s == nil {
		return o
	}
	o.Scores = s
	o.Progress = s
	return o
}
