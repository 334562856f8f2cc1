package flappy

import (
	"math"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Bird is the player. X never changes; Y and Velocity change every running tick.
type Bird struct {
	X        int     // Left edge
	Y        float64 // Top edge; only ever moved by whole units
	Velocity float64 // Vertical velocity, positive is down
	Width    int
	Height   int
}

// NewBird creates a resting bird whose box is centered on (cx, cy).
func NewBird(cx, cy, width, height int) Bird {
	r := core.CenteredRect(cx, cy, width, height)
	return Bird{
		X:      r.X,
		Y:      float64(r.Y),
		Width:  width,
		Height: height,
	}
}

// Update applies one tick of gravity. The position moves by the velocity
// truncated toward zero, so fractional velocity builds up over ticks.
func (b *Bird) Update(gravity float64) {
	b.Velocity += gravity
	b.Y += math.Trunc(b.Velocity)
}

// Flap replaces the current velocity with the impulse.
func (b *Bird) Flap(impulse float64) {
	b.Velocity = impulse
}

// Rect returns the bird's collision box.
func (b Bird) Rect() core.Rect {
	return core.NewRect(b.X, int(b.Y), b.Width, b.Height)
}

// OutOfBounds reports whether r leaves the vertical extent [0, screenH].
func OutOfBounds(r core.Rect, screenH int) bool {
	return r.Y < 0 || r.Bottom() > screenH
}
