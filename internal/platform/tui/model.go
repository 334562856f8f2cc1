package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/logging"
)

// helpRows is the height reserved under the playfield for the help line.
const helpRows = 1

// DefaultScreenshotDir is where ctrl+s writes plain-text screen dumps.
const DefaultScreenshotDir = "~/.arcade/screenshots"

// Game is the simulation driven by the terminal loop.
type Game interface {
	ID() string
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
	WorldSize() (int, int)
}

// Reconfigurable games accept a reloaded config while running.
type Reconfigurable interface {
	Reconfigure(cfg config.FlappyConfig)
}

// Options configures a terminal session.
type Options struct {
	Runtime       core.RuntimeConfig
	Width         int // Terminal columns
	Height        int // Terminal rows
	ScreenshotDir string
	Logger        *log.Logger

	// Reload delivers configs from a file watcher. Nil disables reloading.
	Reload <-chan config.FlappyConfig
}

// ReloadMsg carries a reloaded config into the update loop.
type ReloadMsg struct {
	Config config.FlappyConfig
}

// waitReload blocks on the watcher until the next config arrives.
func waitReload(ch <-chan config.FlappyConfig) tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return ReloadMsg{Config: cfg}
	}
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       Game
	screen     *core.Screen
	keys       *KeyMapper
	help       help.Model
	config     core.RuntimeConfig
	shotDir    string
	logger     *log.Logger
	reload     <-chan config.FlappyConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
}

// NewModel creates a Bubble Tea model for the given game.
func NewModel(game Game, opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	shotDir := opts.ScreenshotDir
	if shotDir == "" {
		shotDir = DefaultScreenshotDir
	}

	h := help.New()
	h.Width = opts.Width

	return Model{
		game:       game,
		screen:     core.NewScreen(max(opts.Width, 1), max(opts.Height-helpRows, 1)),
		keys:       NewKeyMapper(DefaultKeyMap()),
		help:       h,
		config:     cfg,
		shotDir:    shotDir,
		logger:     logger,
		reload:     opts.Reload,
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts a run and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("run started", "seed", m.config.Seed, "tick_rate", m.config.TickRate)
	if m.reload != nil {
		return tea.Batch(tickCmd(m.config.TickRate), waitReload(m.reload))
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keys.MapMouseToFrame(msg, m.viewport(), &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case ReloadMsg:
		return m.handleReload(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys().Screenshot) {
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("could not save screenshot", "error", err)
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize only changes the projection; world state is untouched.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.screen.Resize(max(msg.Width, 1), max(msg.Height-helpRows, 1))
	m.help.Width = msg.Width
	m.logger.Debug("terminal resized", "width", msg.Width, "height", msg.Height)
	return m, nil
}

// handleTick runs one simulation step with the input gathered since the last tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case result.Ended:
		m.logger.Debug("run ended", "score", result.State.Score)
	case result.Restarted:
		m.logger.Debug("run restarted")
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// handleReload hands the new config to the game and waits for the next one.
func (m Model) handleReload(msg ReloadMsg) (tea.Model, tea.Cmd) {
	if g, ok := m.game.(Reconfigurable); ok {
		g.Reconfigure(msg.Config)
		m.logger.Info("config reloaded, applies on next restart")
	}
	return m, waitReload(m.reload)
}

// viewport maps the game world onto the current screen buffer.
func (m Model) viewport() core.Viewport {
	w, h := m.game.WorldSize()
	return core.NewViewport(w, h, m.screen.Width(), m.screen.Height())
}

// saveScreenshot writes the current screen as plain text.
func (m Model) saveScreenshot() error {
	m.game.Render(m.screen)

	dir, err := config.ExpandHome(m.shotDir)
	if err != nil {
		return fmt.Errorf("tui: screenshot dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("tui: create screenshot dir: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return fmt.Errorf("tui: write screenshot: %w", err)
	}

	m.logger.Info("screenshot saved", "path", path)
	return nil
}

// State returns the game state seen on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// Run starts the Bubble Tea program for the game.
func Run(game Game, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
