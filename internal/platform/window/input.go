package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Key bindings, edge triggered.
var (
	FlapKeys    = []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW}
	RestartKeys = []ebiten.Key{ebiten.KeyR}
	QuitKeys    = []ebiten.Key{ebiten.KeyQ, ebiten.KeyEscape}
)

// InputSource reports presses that started this tick.
type InputSource interface {
	KeyJustPressed(k ebiten.Key) bool
	// ClickJustPressed returns the cursor position in world units when the
	// left button went down this tick.
	ClickJustPressed() (x, y int, ok bool)
}

// EbitenInput reads the live keyboard and mouse state.
type EbitenInput struct{}

func (EbitenInput) KeyJustPressed(k ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(k)
}

func (EbitenInput) ClickJustPressed() (int, int, bool) {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return 0, 0, false
	}
	x, y := ebiten.CursorPosition()
	return x, y, true
}

// Collect adds this tick's actions and clicks to frame.
// Returns true if the player asked to quit.
func Collect(src InputSource, frame *core.InputFrame) bool {
	if anyPressed(src, QuitKeys) {
		return true
	}
	if anyPressed(src, FlapKeys) {
		frame.Set(core.ActionJump)
	}
	if anyPressed(src, RestartKeys) {
		frame.Set(core.ActionRestart)
	}
	if x, y, ok := src.ClickJustPressed(); ok {
		frame.AddClick(x, y)
	}
	return false
}

func anyPressed(src InputSource, keys []ebiten.Key) bool {
	for _, k := range keys {
		if src.KeyJustPressed(k) {
			return true
		}
	}
	return false
}
