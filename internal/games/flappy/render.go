package flappy

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Visual characters for rendering
const (
	BirdChar      = '●'
	BirdBeakChar  = '▶'
	PipeChar      = '█'
	PipeCapTop    = '▀'
	PipeCapBottom = '▄'
	ButtonChar    = '░'
)

// Labels shared by every frontend.
const (
	GameOverLabel = "Game Over"
	RestartLabel  = "Restart"
)

// HUD positions in world units, top-left.
const (
	hudX          = 10
	hudScoreY     = 10
	hudHighScoreY = 50
)

// ScoreText returns the current score overlay.
func ScoreText(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

// HighScoreText returns the high score overlay.
func HighScoreText(high int) string {
	return fmt.Sprintf("High Score: %d", high)
}

// Render draws the current game state onto dst, scaling the world to its size.
func (g *Game) Render(dst *core.Screen) {
	dst.Fill(' ', core.ColorSky)

	worldW, worldH := g.WorldSize()
	vp := core.NewViewport(worldW, worldH, dst.Width(), dst.Height())

	for _, p := range g.Pipes() {
		drawPipe(dst, vp, p, worldH)
	}
	drawBird(dst, vp, g.bird)

	col, row := vp.Point(hudX, hudScoreY)
	_, hsRow := vp.Point(hudX, hudHighScoreY)
	hsRow = core.Clamp(hsRow, row+1, dst.Height()-1)
	dst.DrawText(col, row, ScoreText(g.score), core.ColorText)
	dst.DrawText(col, hsRow, HighScoreText(g.highScore), core.ColorText)

	if g.phase == PhaseGameOver {
		g.drawGameOver(dst, vp)
	}
}

// drawPipe renders the top and bottom segments, each with a rim facing the gap.
func drawPipe(dst *core.Screen, vp core.Viewport, p Pipe, worldH int) {
	top := vp.Rect(p.TopRect())
	dst.FillRect(top, PipeChar, core.ColorPipe)
	if !top.Empty() {
		dst.DrawHLine(top.X, top.Bottom()-1, top.W, PipeCapTop, core.ColorPipeCap)
	}

	bottom := vp.Rect(p.BottomRect(worldH))
	dst.FillRect(bottom, PipeChar, core.ColorPipe)
	if !bottom.Empty() {
		dst.DrawHLine(bottom.X, bottom.Y, bottom.W, PipeCapBottom, core.ColorPipeCap)
	}
}

func drawBird(dst *core.Screen, vp core.Viewport, b Bird) {
	r := vp.VisibleRect(b.Rect())
	dst.FillRect(r, BirdChar, core.ColorBird)
	dst.SetCell(r.Right()-1, r.Y, BirdBeakChar, core.ColorBird)
}

// drawGameOver renders the label and the restart button from RestartButton.
// The button covers only cells whose center hits it, so a screen too small
// for one such cell shows no button and restarts by key only.
func (g *Game) drawGameOver(dst *core.Screen, vp core.Viewport) {
	worldW, worldH := g.WorldSize()

	cx, row := vp.Point(worldW/2, worldH/3)
	dst.DrawTextCentered(cx, row, GameOverLabel, core.ColorAlert)

	button := vp.Rect(g.RestartButton())
	if button.Empty() {
		return
	}
	dst.FillRect(button, ButtonChar, core.ColorButton)
	if utf8.RuneCountInString(RestartLabel) > button.W {
		return
	}
	bx, by := button.Center()
	if button.H > 1 {
		// Center() rounds down; keep the label on the button's middle row
		by = button.Y + (button.H-1)/2
	}
	dst.DrawTextCentered(bx, by, RestartLabel, core.ColorButton)
}
