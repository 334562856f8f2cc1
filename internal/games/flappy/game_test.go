package flappy

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/highscore"
)

// memStore is an in-memory highscore.Store that records writes.
type memStore struct {
	value   int
	saves   []int
	loadErr error
	saveErr error
}

func (m *memStore) Load() (int, error) {
	if m.loadErr != nil {
		return 0, m.loadErr
	}
	return m.value, nil
}

func (m *memStore) Save(score int) error {
	m.saves = append(m.saves, score)
	if m.saveErr != nil {
		return m.saveErr
	}
	m.value = score
	return nil
}

func newTestGame(t *testing.T, store highscore.Store) *Game {
	t.Helper()
	g := New(config.DefaultFlappyConfig(), store, nil)
	g.Reset(core.RuntimeConfig{ScreenW: 400, ScreenH: 600, TickRate: 60, Seed: 42})
	return g
}

// harmlessConfig produces pipes with no solid segments, so only the
// screen bounds can end a run.
func harmlessConfig() config.FlappyConfig {
	cfg := config.DefaultFlappyConfig()
	cfg.Obstacles.GapMinTop = 0
	cfg.Obstacles.GapBottomMargin = cfg.Screen.Height
	cfg.Obstacles.GapHeight = cfg.Screen.Height
	return cfg
}

func noInput() core.InputFrame {
	return core.NewInputFrame()
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// crash forces the bird out of the bottom of the screen on the next tick.
func crash(t *testing.T, g *Game) core.StepResult {
	t.Helper()
	g.bird.Y = 700
	res := g.Step(noInput())
	if !res.State.GameOver {
		t.Fatal("bird below the screen should end the game")
	}
	return res
}

func TestGameInitialState(t *testing.T) {
	g := newTestGame(t, nil)

	if g.Phase() != PhaseRunning {
		t.Errorf("initial phase = %v, expected Running", g.Phase())
	}
	if g.Score() != 0 || len(g.Pipes()) != 0 {
		t.Errorf("initial score = %d, pipes = %d; expected 0 and none", g.Score(), len(g.Pipes()))
	}

	b := g.Bird()
	if b.X != 83 || b.Y != 288 || b.Velocity != 0 {
		t.Errorf("bird = %+v, expected centered on (100, 300) at rest", b)
	}
}

func TestGameGravity(t *testing.T) {
	g := newTestGame(t, nil)

	prevVel := g.Bird().Velocity
	prevY := g.Bird().Y
	for i := 0; i < 20; i++ {
		g.Step(noInput())
		b := g.Bird()
		if b.Velocity != prevVel+0.5 {
			t.Fatalf("tick %d: velocity = %v, expected %v", i, b.Velocity, prevVel+0.5)
		}
		if b.Y < prevY {
			t.Fatalf("tick %d: bird rose without flapping (%v -> %v)", i, prevY, b.Y)
		}
		if b.X != 83 {
			t.Fatalf("tick %d: bird moved horizontally to %d", i, b.X)
		}
		prevVel, prevY = b.Velocity, b.Y
	}

	// Displacement is the truncated velocity: 0+1+1+2+2+...+10
	if got := g.Bird().Y; got != 388 {
		t.Errorf("after 20 ticks Y = %v, expected 388", got)
	}
}

func TestBirdFlapOverwritesVelocity(t *testing.T) {
	for _, prior := range []float64{0, 7.3, -4, 25} {
		b := NewBird(100, 300, 34, 24)
		b.Velocity = prior
		b.Flap(-10)
		if b.Velocity != -10 {
			t.Errorf("Flap with prior velocity %v gave %v, expected -10", prior, b.Velocity)
		}
	}
}

func TestGameFlapPhysics(t *testing.T) {
	g := newTestGame(t, nil)

	// Build up downward speed first
	for i := 0; i < 10; i++ {
		g.Step(noInput())
	}
	beforeY := g.Bird().Y

	g.Step(input(core.ActionJump))

	// Flap to -10 then one tick of gravity
	if got := g.Bird().Velocity; got != -9.5 {
		t.Errorf("velocity after flap tick = %v, expected -9.5", got)
	}
	if got := g.Bird().Y; got != beforeY-9 {
		t.Errorf("Y after flap tick = %v, expected %v", got, beforeY-9)
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() (*Game, []Pipe) {
		g := New(harmlessConfig(), nil, nil)
		g.Reset(core.RuntimeConfig{ScreenW: 400, ScreenH: 600, Seed: 12345})
		for i := 0; i < 300; i++ {
			in := noInput()
			if i%40 == 0 {
				in.Set(core.ActionJump)
			}
			g.Step(in)
		}
		return g, append([]Pipe(nil), g.Pipes()...)
	}

	g1, pipes1 := run()
	g2, pipes2 := run()

	if g1.Score() != g2.Score() || g1.tickCount != g2.tickCount {
		t.Errorf("runs differ: score %d vs %d, ticks %d vs %d", g1.Score(), g2.Score(), g1.tickCount, g2.tickCount)
	}
	if len(pipes1) != len(pipes2) {
		t.Fatalf("pipe counts differ: %d vs %d", len(pipes1), len(pipes2))
	}
	for i := range pipes1 {
		if pipes1[i] != pipes2[i] {
			t.Errorf("pipe %d differs: %+v vs %+v", i, pipes1[i], pipes2[i])
		}
	}
}

func TestGameScoresPassedPipes(t *testing.T) {
	g := New(harmlessConfig(), nil, nil)
	g.Reset(core.RuntimeConfig{ScreenW: 400, ScreenH: 600, Seed: 7})

	for i := 0; i < 1000; i++ {
		in := noInput()
		if i%40 == 0 {
			in.Set(core.ActionJump)
		}
		if res := g.Step(in); res.State.GameOver {
			t.Fatalf("unexpected game over at tick %d, bird %+v", i, g.Bird())
		}
	}

	// A pipe spawns every 51 ticks and passes the bird 68 ticks after spawning
	if g.Score() != 19 {
		t.Errorf("score after 1000 ticks = %d, expected 19", g.Score())
	}
	for _, p := range g.Pipes() {
		if p.Right() < 0 {
			t.Errorf("pipe %+v should have been pruned", p)
		}
	}
}

func TestGamePipeCollision(t *testing.T) {
	g := newTestGame(t, nil)

	// Solid top segment from 0 to 500 right over the bird
	g.pipes.pipes = append(g.pipes.pipes, Pipe{X: 80, GapY: 500, GapHeight: 50, Width: 52})

	res := g.Step(noInput())
	if !res.State.GameOver || !res.Ended {
		t.Fatalf("overlapping pipe should end the game on this tick, got %+v", res)
	}
	if g.Phase() != PhaseGameOver {
		t.Errorf("phase = %v, expected GameOver", g.Phase())
	}
}

func TestGameBottomPipeCollision(t *testing.T) {
	g := newTestGame(t, nil)

	// Gap ends above the bird, so it hits the bottom segment
	g.pipes.pipes = append(g.pipes.pipes, Pipe{X: 90, GapY: 100, GapHeight: 150, Width: 52})

	if res := g.Step(noInput()); !res.State.GameOver {
		t.Error("bird overlapping the bottom segment should end the game")
	}
}

func TestGameBirdInGapIsSafe(t *testing.T) {
	g := newTestGame(t, nil)

	// Gap [250, 400) contains the bird's box [288, 312)
	g.pipes.pipes = append(g.pipes.pipes, Pipe{X: 90, GapY: 250, GapHeight: 150, Width: 52})

	if res := g.Step(noInput()); res.State.GameOver {
		t.Errorf("bird inside the gap should be safe, bird %+v", g.Bird().Rect())
	}
}

func TestGameBounds(t *testing.T) {
	tests := []struct {
		name     string
		y        float64
		gameOver bool
	}{
		{"above the top", -5, true},
		{"touching the top", 0, false},
		{"touching the bottom", 576, false},
		{"past the bottom", 577, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, nil)
			g.bird.Y = tc.y
			// First tick adds 0.5 velocity, which truncates to no movement
			res := g.Step(noInput())
			if res.State.GameOver != tc.gameOver {
				t.Errorf("bird at Y=%v: game over = %v, expected %v", tc.y, res.State.GameOver, tc.gameOver)
			}
		})
	}
}

func TestGameOverIsSticky(t *testing.T) {
	g := newTestGame(t, nil)
	crash(t, g)

	frozen := g.Bird()
	pipes := len(g.Pipes())

	for i := 0; i < 100; i++ {
		res := g.Step(input(core.ActionJump))
		if !res.State.GameOver {
			t.Fatalf("tick %d: left GameOver without a reset", i)
		}
		if res.Ended {
			t.Fatalf("tick %d: Ended should only be set on the transition tick", i)
		}
	}

	if g.Bird() != frozen {
		t.Errorf("bird changed during GameOver: %+v -> %+v", frozen, g.Bird())
	}
	if len(g.Pipes()) != pipes {
		t.Errorf("pipes changed during GameOver")
	}
}

func TestGameRestartKey(t *testing.T) {
	store := &memStore{value: 3}
	g := newTestGame(t, store)

	for i := 0; i < 30; i++ {
		g.Step(noInput())
	}
	g.score = 9
	crash(t, g)

	res := g.Step(input(core.ActionRestart))
	if !res.Restarted || res.State.GameOver {
		t.Fatalf("restart key in GameOver should reset, got %+v", res)
	}

	if g.Score() != 0 {
		t.Errorf("score after reset = %d, expected 0", g.Score())
	}
	if len(g.Pipes()) != 0 {
		t.Errorf("pipes after reset = %d, expected none", len(g.Pipes()))
	}
	if b := g.Bird(); b.X != 83 || b.Y != 288 || b.Velocity != 0 {
		t.Errorf("bird after reset = %+v, expected spawn point at rest", b)
	}
	if g.HighScore() != 9 {
		t.Errorf("high score after reset = %d, expected 9 to survive", g.HighScore())
	}
}

func TestGameRestartKeyIgnoredWhileRunning(t *testing.T) {
	g := newTestGame(t, nil)
	for i := 0; i < 5; i++ {
		g.Step(noInput())
	}
	before := g.Bird()

	res := g.Step(input(core.ActionRestart))
	if res.Restarted {
		t.Error("restart should be ignored while running")
	}
	if g.Bird().Y < before.Y || g.tickCount != 6 {
		t.Error("running tick should have advanced normally")
	}
}

func TestGameRestartButtonClick(t *testing.T) {
	g := newTestGame(t, nil)
	crash(t, g)

	button := g.RestartButton()
	if button != core.NewRect(150, 275, 100, 50) {
		t.Errorf("RestartButton() = %+v, expected 100x50 centered on (200, 300)", button)
	}

	miss := noInput()
	miss.AddClick(10, 10)
	miss.AddClick(button.Right(), button.Y) // right edge is exclusive
	if res := g.Step(miss); res.Restarted {
		t.Fatal("click outside the button should not restart")
	}

	hit := noInput()
	hit.AddClick(button.X, button.Y)
	if res := g.Step(hit); !res.Restarted {
		t.Fatal("click on the button should restart")
	}
	if g.Phase() != PhaseRunning {
		t.Errorf("phase = %v, expected Running", g.Phase())
	}
}

func TestGameClickIgnoredWhileRunning(t *testing.T) {
	g := newTestGame(t, nil)

	in := noInput()
	in.AddClick(200, 300)
	if res := g.Step(in); res.Restarted {
		t.Error("clicks only restart from GameOver")
	}
}

func TestHighScorePersistedWhenBeaten(t *testing.T) {
	store := &memStore{value: 5}
	g := newTestGame(t, store)

	if g.HighScore() != 5 {
		t.Fatalf("loaded high score = %d, expected 5", g.HighScore())
	}

	g.score = 7
	crash(t, g)

	if len(store.saves) != 1 || store.value != 7 {
		t.Errorf("saves = %v, persisted = %d; expected one write of 7", store.saves, store.value)
	}
	if g.State().HighScore != 7 {
		t.Errorf("state high score = %d, expected 7", g.State().HighScore)
	}

	// Lingering in GameOver must not write again
	for i := 0; i < 10; i++ {
		g.Step(noInput())
	}
	if len(store.saves) != 1 {
		t.Errorf("saves = %v, expected at most one write per transition", store.saves)
	}
}

func TestHighScoreNotPersistedWhenLower(t *testing.T) {
	store := &memStore{value: 5}
	g := newTestGame(t, store)

	g.score = 3
	crash(t, g)

	if len(store.saves) != 0 {
		t.Errorf("saves = %v, expected no write", store.saves)
	}
	if store.value != 5 || g.HighScore() != 5 {
		t.Errorf("high score = %d (stored %d), expected 5", g.HighScore(), store.value)
	}
}

func TestHighScoreTieNotPersisted(t *testing.T) {
	store := &memStore{value: 5}
	g := newTestGame(t, store)

	g.score = 5
	crash(t, g)

	if len(store.saves) != 0 {
		t.Errorf("equal score should not be written, saves = %v", store.saves)
	}
}

func TestHighScoreSaveFailureKeepsPlaying(t *testing.T) {
	store := &memStore{value: 5, saveErr: errors.New("disk full")}
	g := newTestGame(t, store)

	g.score = 8
	crash(t, g)

	if g.HighScore() != 8 {
		t.Errorf("in-memory high score = %d, expected 8 despite failed write", g.HighScore())
	}
	if res := g.Step(input(core.ActionRestart)); !res.Restarted {
		t.Error("game should still restart after a failed write")
	}
	if res := g.Step(noInput()); res.State.GameOver {
		t.Error("game should keep running after a failed write")
	}
}

func TestHighScoreLoadFailureStartsAtZero(t *testing.T) {
	g := newTestGame(t, &memStore{value: 99, loadErr: errors.New("permission denied")})

	if g.HighScore() != 0 {
		t.Errorf("high score = %d, expected 0 when load fails", g.HighScore())
	}
}

func TestHighScoreFileRoundTripThroughGame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_score.txt")
	if err := highscore.NewFileStore(path).Save(5); err != nil {
		t.Fatal(err)
	}

	g := newTestGame(t, highscore.NewFileStore(path))
	g.score = 12
	crash(t, g)

	// A fresh process would load this value
	again := newTestGame(t, highscore.NewFileStore(path))
	if again.HighScore() != 12 {
		t.Errorf("reloaded high score = %d, expected 12", again.HighScore())
	}
}

func TestRenderRunning(t *testing.T) {
	g := newTestGame(t, &memStore{value: 4})
	for i := 0; i < 5; i++ {
		g.Step(noInput())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, "Score: 0") || !strings.Contains(out, "High Score: 4") {
		t.Errorf("HUD missing from render:\n%s", out)
	}
	if !strings.ContainsRune(out, BirdChar) && !strings.ContainsRune(out, BirdBeakChar) {
		t.Errorf("bird missing from render:\n%s", out)
	}
	if !strings.ContainsRune(out, PipeChar) {
		t.Errorf("spawned pipe missing from render:\n%s", out)
	}
	if strings.Contains(out, GameOverLabel) {
		t.Error("Game Over label shown while running")
	}
}

func TestRenderGameOver(t *testing.T) {
	g := newTestGame(t, nil)
	crash(t, g)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, GameOverLabel) || !strings.Contains(out, RestartLabel) {
		t.Errorf("game over overlay missing:\n%s", out)
	}

	// The drawn button covers the cells whose world point is inside RestartButton
	vp := core.NewViewport(400, 600, 80, 24)
	cells := vp.Rect(g.RestartButton())
	if got := screen.GetCell(cells.X, cells.Y); got.Color != core.ColorButton {
		t.Errorf("button corner cell = %+v, expected button color", got)
	}
}

func TestRenderHUDOnShortScreen(t *testing.T) {
	g := newTestGame(t, &memStore{value: 7})

	// Both HUD lines fall in row 0 at this scale
	screen := core.NewScreen(80, 3)
	g.Render(screen)

	if row := screen.Row(0); !strings.Contains(row, "Score: 0") {
		t.Errorf("row 0 = %q, expected the score", row)
	}
	if row := screen.Row(1); !strings.Contains(row, "High Score: 7") {
		t.Errorf("row 1 = %q, expected the high score pushed below the score", row)
	}
}

func TestRenderButtonCellsHitButton(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		visible       bool
	}{
		{"terminal", 80, 24, true},
		{"half size", 40, 12, true},
		{"button under one row", 20, 8, false},
		{"tiny", 10, 5, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, nil)
			crash(t, g)

			screen := core.NewScreen(tc.width, tc.height)
			g.Render(screen)
			vp := core.NewViewport(400, 600, tc.width, tc.height)

			var drawn []core.Click
			for y := 0; y < tc.height; y++ {
				for x := 0; x < tc.width; x++ {
					if screen.GetCell(x, y).Color != core.ColorButton {
						continue
					}
					wx, wy := vp.ToWorld(x, y)
					if !g.RestartButton().Contains(wx, wy) {
						t.Errorf("cell (%d, %d) is drawn as button but maps to (%d, %d)", x, y, wx, wy)
					}
					drawn = append(drawn, core.Click{X: wx, Y: wy})
				}
			}
			if got := len(drawn) > 0; got != tc.visible {
				t.Fatalf("button drawn = %v, expected %v", got, tc.visible)
			}
			if !tc.visible {
				return
			}

			in := core.NewInputFrame()
			in.AddClick(drawn[0].X, drawn[0].Y)
			g.Step(in)
			if g.Phase() != PhaseRunning {
				t.Error("click on a drawn button cell should restart")
			}
		})
	}
}

func TestReconfigureAppliesOnRestart(t *testing.T) {
	g := newTestGame(t, nil)

	cfg := config.DefaultFlappyConfig()
	cfg.Physics.Gravity = 1
	cfg.Obstacles.GapHeight = 200
	g.Reconfigure(cfg)

	// The current run keeps its rules
	g.Step(noInput())
	if v := g.Bird().Velocity; v != 0.5 {
		t.Fatalf("velocity = %v, expected old gravity until restart", v)
	}

	crash(t, g)
	g.Step(input(core.ActionRestart))
	g.Step(noInput())

	if v := g.Bird().Velocity; v != 1 {
		t.Errorf("velocity = %v, expected new gravity after restart", v)
	}
	if pipes := g.Pipes(); len(pipes) != 1 || pipes[0].GapHeight != 200 {
		t.Errorf("pipes = %+v, expected one with the new gap height", pipes)
	}
}
