// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps in vertical pipes.
package flappy

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/highscore"
	"github.com/vovakirdan/flappy-arcade/internal/logging"
)

// ID is the game identifier used for score storage.
const ID = "flappy"

// Phase is the state of the game state machine.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "Running"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Game implements the Flappy Bird game logic.
type Game struct {
	cfg     config.FlappyConfig
	runtime core.RuntimeConfig
	store   highscore.Store
	logger  *log.Logger

	bird      Bird
	pipes     *PipeManager
	score     int
	highScore int // session state, survives restarts
	phase     Phase
	tickCount int

	pending *config.FlappyConfig // applied on the next restart
}

// New creates a game. The high score is loaded once from store; a nil store
// means nothing is persisted. A nil logger discards log output.
func New(cfg config.FlappyConfig, store highscore.Store, logger *log.Logger) *Game {
	if logger == nil {
		logger = logging.Discard()
	}

	g := &Game{
		cfg:    cfg,
		store:  store,
		logger: logger,
	}

	if store != nil {
		high, err := store.Load()
		if err != nil {
			logger.Warn("could not load high score, starting from 0", "error", err)
		}
		g.highScore = high
	}

	g.Reset(core.RuntimeConfig{
		ScreenW:  cfg.Screen.Width,
		ScreenH:  cfg.Screen.Height,
		TickRate: cfg.Screen.TickRate,
	})
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset starts a fresh run with the given world size and seed.
// A zero world size falls back to the configured screen. The high score is kept.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if rc.ScreenW <= 0 || rc.ScreenH <= 0 {
		rc.ScreenW = g.cfg.Screen.Width
		rc.ScreenH = g.cfg.Screen.Height
	}
	g.runtime = rc
	g.pipes = NewPipeManager(rc.Seed, rc.ScreenW, rc.ScreenH, g.cfg.Obstacles, g.cfg.Physics.PipeSpeed)
	g.restart()
}

// Reconfigure replaces the gameplay settings from the next restart on, so a
// run never changes rules midway. The world size stays as set by Reset.
func (g *Game) Reconfigure(cfg config.FlappyConfig) {
	g.pending = &cfg
}

// restart reinitializes the run but keeps the pipe RNG sequence going.
func (g *Game) restart() {
	if g.pending != nil {
		g.cfg = *g.pending
		g.pending = nil
		g.pipes.Reconfigure(g.cfg.Obstacles, g.cfg.Physics.PipeSpeed)
		g.logger.Info("config applied", "gravity", g.cfg.Physics.Gravity, "pipe_speed", g.cfg.Physics.PipeSpeed)
	}
	g.bird = NewBird(g.runtime.ScreenW/4, g.runtime.ScreenH/2, g.cfg.Bird.Width, g.cfg.Bird.Height)
	g.pipes.Clear()
	g.score = 0
	g.phase = PhaseRunning
	g.tickCount = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.phase == PhaseGameOver {
		return g.stepGameOver(in)
	}

	g.tickCount++

	if in.Has(core.ActionJump) {
		g.bird.Flap(g.cfg.Physics.FlapImpulse)
	}
	g.bird.Update(g.cfg.Physics.Gravity)

	g.pipes.MaybeSpawn()
	g.pipes.Advance()
	// Score before pruning so a pipe leaving the screen still counts
	g.score += g.pipes.Score(g.bird.Rect().Right())
	g.pipes.Prune()

	birdRect := g.bird.Rect()
	if g.pipes.Collides(birdRect) || OutOfBounds(birdRect, g.runtime.ScreenH) {
		g.phase = PhaseGameOver
		g.recordHighScore()
		return core.StepResult{State: g.State(), Ended: true}
	}

	return core.StepResult{State: g.State()}
}

// stepGameOver only processes the restart transition; flaps are ignored.
func (g *Game) stepGameOver(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) || in.ClickedIn(g.RestartButton()) {
		g.restart()
		g.logger.Debug("game restarted", "high_score", g.highScore)
		return core.StepResult{State: g.State(), Restarted: true}
	}
	return core.StepResult{State: g.State()}
}

// recordHighScore runs once per transition into GameOver. A failed write is
// logged and does not affect the session.
func (g *Game) recordHighScore() {
	g.logger.Info("game over", "score", g.score, "ticks", g.tickCount)

	if g.score <= g.highScore {
		return
	}
	g.highScore = g.score

	if g.store == nil {
		return
	}
	if err := g.store.Save(g.highScore); err != nil {
		g.logger.Warn("could not save high score", "score", g.highScore, "error", err)
		return
	}
	g.logger.Info("new high score", "score", g.highScore)
}

// RestartButton returns the restart button's world rectangle.
// Renderers and click handling both use this.
func (g *Game) RestartButton() core.Rect {
	return core.CenteredRect(
		g.runtime.ScreenW/2, g.runtime.ScreenH/2,
		g.cfg.RestartButton.Width, g.cfg.RestartButton.Height,
	)
}

// WorldSize returns the world dimensions.
func (g *Game) WorldSize() (int, int) {
	return g.runtime.ScreenW, g.runtime.ScreenH
}

// Bird returns a copy of the bird.
func (g *Game) Bird() Bird {
	return g.bird
}

// Pipes returns the active pipes, leftmost first. The slice must not be modified.
func (g *Game) Pipes() []Pipe {
	return g.pipes.Pipes()
}

// Phase returns the current state machine phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Score returns the current run's score.
func (g *Game) Score() int {
	return g.score
}

// HighScore returns the best score seen, including this session.
func (g *Game) HighScore() int {
	return g.highScore
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		HighScore: g.highScore,
		GameOver:  g.phase == PhaseGameOver,
	}
}
