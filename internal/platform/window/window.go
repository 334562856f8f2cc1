// Package window runs the game in a desktop window with Ebitengine.
// The logical screen is the game world, so one pixel is one world unit.
package window

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
	"github.com/vovakirdan/flappy-arcade/internal/logging"
)

var (
	skyColor    = colornames.Skyblue
	pipeColor   = colornames.Forestgreen
	capColor    = colornames.Darkgreen
	birdColor   = colornames.Gold
	buttonColor = colornames.Lime
	shadeColor  = color.NRGBA{A: 96}
)

const (
	capHeight = 8 // Pipe rim next to the gap
	textScale = 2
)

var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

// Options configures a window session.
type Options struct {
	Runtime core.RuntimeConfig
	Scale   int // Window pixels per world unit
	Logger  *log.Logger

	// Reload delivers configs from a file watcher. Nil disables reloading.
	Reload <-chan config.FlappyConfig
}

// Window adapts a flappy game to ebiten.Game.
type Window struct {
	game   *flappy.Game
	input  core.InputFrame
	source InputSource
	logger *log.Logger
	reload <-chan config.FlappyConfig
}

// New creates a window frontend reading input from src.
func New(game *flappy.Game, src InputSource, logger *log.Logger) *Window {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Window{
		game:   game,
		input:  core.NewInputFrame(),
		source: src,
		logger: logger,
	}
}

// Update runs one simulation tick. Returning ebiten.Termination ends RunGame cleanly.
func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() {
		w.logger.Debug("window closed")
		return ebiten.Termination
	}
	return w.tick()
}

// tick gathers this frame's input and steps the game.
func (w *Window) tick() error {
	select {
	case cfg, ok := <-w.reload:
		if ok {
			w.game.Reconfigure(cfg)
			w.logger.Info("config reloaded, applies on next restart")
		} else {
			w.reload = nil
		}
	default:
	}

	if Collect(w.source, &w.input) {
		w.logger.Debug("quit requested")
		return ebiten.Termination
	}

	result := w.game.Step(w.input)
	w.input.Clear()

	switch {
	case result.Ended:
		w.logger.Debug("run ended", "score", result.State.Score)
	case result.Restarted:
		w.logger.Debug("run restarted")
	}
	return nil
}

// Draw renders the scene in world pixels.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)

	_, worldH := w.game.WorldSize()
	for _, p := range w.game.Pipes() {
		if top := p.TopRect(); !top.Empty() {
			fillRect(screen, top, pipeColor)
			fillRect(screen, core.NewRect(top.X, top.Bottom()-capHeight, top.W, capHeight), capColor)
		}
		if bottom := p.BottomRect(worldH); !bottom.Empty() {
			fillRect(screen, bottom, pipeColor)
			fillRect(screen, core.NewRect(bottom.X, bottom.Y, bottom.W, capHeight), capColor)
		}
	}
	fillRect(screen, w.game.Bird().Rect(), birdColor)

	drawText(screen, flappy.ScoreText(w.game.Score()), 10, 10, colornames.Black, ebtext.AlignStart)
	drawText(screen, flappy.HighScoreText(w.game.HighScore()), 10, 50, colornames.Black, ebtext.AlignStart)

	if w.game.Phase() == flappy.PhaseGameOver {
		w.drawGameOver(screen)
	}
}

func (w *Window) drawGameOver(screen *ebiten.Image) {
	worldW, worldH := w.game.WorldSize()
	fillRect(screen, core.NewRect(0, 0, worldW, worldH), shadeColor)

	drawText(screen, flappy.GameOverLabel, worldW/2, worldH/3, colornames.Red, ebtext.AlignCenter)

	button := w.game.RestartButton()
	fillRect(screen, button, buttonColor)
	cx, cy := button.Center()
	drawText(screen, flappy.RestartLabel, cx, cy, colornames.White, ebtext.AlignCenter)
}

// Layout fixes the logical screen to the world, so cursor positions are world coordinates.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.game.WorldSize()
}

func fillRect(dst *ebiten.Image, r core.Rect, c color.Color) {
	if r.Empty() {
		return
	}
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

// drawText draws s at (x, y). AlignStart anchors the top-left corner;
// AlignCenter anchors the center of the text.
func drawText(dst *ebiten.Image, s string, x, y int, clr color.Color, align ebtext.Align) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	op.SecondaryAlign = align
	ebtext.Draw(dst, s, face, op)
}

// Run opens the window and blocks until it is closed or the player quits.
func Run(game *flappy.Game, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	rc := opts.Runtime
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	if rc.TickRate <= 0 {
		rc.TickRate = core.DefaultConfig().TickRate
	}
	game.Reset(rc)

	scale := max(opts.Scale, 1)
	worldW, worldH := game.WorldSize()
	ebiten.SetWindowSize(worldW*scale, worldH*scale)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(rc.TickRate)

	logger.Info("window opened", "width", worldW*scale, "height", worldH*scale, "seed", rc.Seed)
	win := New(game, EbitenInput{}, logger)
	win.reload = opts.Reload
	if err := ebiten.RunGame(win); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
