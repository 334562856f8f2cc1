package flappy

import (
	"math/rand"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Pipe is a pair of vertical segments with a gap between them.
type Pipe struct {
	X         int  // Left edge
	GapY      int  // Top of the gap
	GapHeight int  // Height of the passable gap
	Width     int  // Segment width
	Passed    bool // Whether the bird has passed this pipe (for scoring)
}

// Right returns the trailing edge.
func (p Pipe) Right() int {
	return p.X + p.Width
}

// TopRect returns the collision rectangle above the gap.
func (p Pipe) TopRect() core.Rect {
	return core.NewRect(p.X, 0, p.Width, p.GapY)
}

// BottomRect returns the collision rectangle below the gap.
func (p Pipe) BottomRect(screenH int) core.Rect {
	bottomY := p.GapY + p.GapHeight
	return core.NewRect(p.X, bottomY, p.Width, screenH-bottomY)
}

// PipeManager handles spawning, movement, scoring and removal of pipes.
// Pipes are kept in spawn order, which is also left-to-right order.
type PipeManager struct {
	pipes   []Pipe
	rng     *rand.Rand
	screenW int
	screenH int
	cfg     config.FlappyObstacles
	speed   int
}

// NewPipeManager creates an empty pipe manager with the given RNG seed.
func NewPipeManager(seed int64, screenW, screenH int, cfg config.FlappyObstacles, speed int) *PipeManager {
	pm := &PipeManager{
		pipes:   make([]Pipe, 0, 8),
		screenW: screenW,
		screenH: screenH,
		cfg:     cfg,
		speed:   speed,
	}
	pm.Reset(seed)
	return pm
}

// Reset clears all pipes and reseeds the RNG.
func (pm *PipeManager) Reset(seed int64) {
	pm.pipes = pm.pipes[:0]
	pm.rng = rand.New(rand.NewSource(seed))
}

// Clear removes all pipes but keeps the RNG sequence going.
func (pm *PipeManager) Clear() {
	pm.pipes = pm.pipes[:0]
}

// Reconfigure changes pipe geometry and speed for pipes spawned from now on.
func (pm *PipeManager) Reconfigure(cfg config.FlappyObstacles, speed int) {
	pm.cfg = cfg
	pm.speed = speed
}

// MaybeSpawn adds a pipe at the right edge when there are none, or when the
// newest pipe's trailing edge has moved left of screenW - spawnDistance.
// Spacing is gated on position, so it does not depend on frame timing.
func (pm *PipeManager) MaybeSpawn() bool {
	if n := len(pm.pipes); n > 0 && pm.pipes[n-1].Right() >= pm.screenW-pm.cfg.SpawnDistance {
		return false
	}
	pm.spawnPipe()
	return true
}

// spawnPipe creates a new pipe with a gap top drawn uniformly from
// [GapMinTop, screenH-GapBottomMargin].
func (pm *PipeManager) spawnPipe() {
	minGapY := pm.cfg.GapMinTop
	maxGapY := pm.screenH - pm.cfg.GapBottomMargin
	if maxGapY < minGapY {
		maxGapY = minGapY
	}

	pm.pipes = append(pm.pipes, Pipe{
		X:         pm.screenW,
		GapY:      minGapY + pm.rng.Intn(maxGapY-minGapY+1),
		GapHeight: pm.cfg.GapHeight,
		Width:     pm.cfg.PipeWidth,
	})
}

// Advance moves every pipe left by the pipe speed.
func (pm *PipeManager) Advance() {
	for i := range pm.pipes {
		pm.pipes[i].X -= pm.speed
	}
}

// Prune drops pipes whose trailing edge has left the screen.
// Filters in place in a single pass; survivors keep their order.
func (pm *PipeManager) Prune() {
	kept := pm.pipes[:0]
	for _, p := range pm.pipes {
		if p.Right() >= 0 {
			kept = append(kept, p)
		}
	}
	pm.pipes = kept
}

// Score marks pipes whose trailing edge is left of the bird's leading edge
// as passed and returns how many were newly passed. A pipe counts at most once.
func (pm *PipeManager) Score(birdX int) int {
	passed := 0
	for i := range pm.pipes {
		if !pm.pipes[i].Passed && pm.pipes[i].Right() < birdX {
			pm.pipes[i].Passed = true
			passed++
		}
	}
	return passed
}

// Collides reports whether r overlaps any pipe segment.
func (pm *PipeManager) Collides(r core.Rect) bool {
	for _, p := range pm.pipes {
		if r.Intersects(p.TopRect()) || r.Intersects(p.BottomRect(pm.screenH)) {
			return true
		}
	}
	return false
}

// Pipes returns the active pipes, leftmost first.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}
