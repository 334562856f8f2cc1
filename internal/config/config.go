// Package config provides YAML-based configuration loading for the game.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all configuration for the Flappy Bird game.
type FlappyConfig struct {
	Screen        ScreenConfig    `yaml:"screen"`
	Physics       FlappyPhysics   `yaml:"physics"`
	Obstacles     FlappyObstacles `yaml:"obstacles"`
	Bird          FlappyBird      `yaml:"bird"`
	RestartButton ButtonConfig    `yaml:"restart_button"`
	HighScore     HighScoreConfig `yaml:"highscore"`
}

// ScreenConfig defines the world size and simulation rate.
type ScreenConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	TickRate int `yaml:"tick_rate"`
}

// FlappyPhysics defines per-tick physics constants.
type FlappyPhysics struct {
	Gravity     float64 `yaml:"gravity"`
	FlapImpulse float64 `yaml:"flap_impulse"`
	PipeSpeed   int     `yaml:"pipe_speed"`
}

// FlappyObstacles defines pipe geometry and spawning.
type FlappyObstacles struct {
	PipeWidth       int `yaml:"pipe_width"`
	GapHeight       int `yaml:"gap_height"`
	SpawnDistance   int `yaml:"spawn_distance"`
	GapMinTop       int `yaml:"gap_min_top"`
	GapBottomMargin int `yaml:"gap_bottom_margin"`
}

// FlappyBird defines the bird's bounding box.
type FlappyBird struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ButtonConfig is the size of an on-screen button.
type ButtonConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// HighScoreBackend selects where the high score is persisted.
type HighScoreBackend string

const (
	BackendFile   HighScoreBackend = "file"
	BackendSQLite HighScoreBackend = "sqlite"
)

// HighScoreConfig defines high score persistence.
type HighScoreConfig struct {
	Backend HighScoreBackend `yaml:"backend"`
	Path    string           `yaml:"path"`
	DBPath  string           `yaml:"db_path"`
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks that the geometry can produce a playable game.
func (c FlappyConfig) Validate() error {
	positive := []struct {
		name string
		val  int
	}{
		{"screen.width", c.Screen.Width},
		{"screen.height", c.Screen.Height},
		{"screen.tick_rate", c.Screen.TickRate},
		{"physics.pipe_speed", c.Physics.PipeSpeed},
		{"obstacles.pipe_width", c.Obstacles.PipeWidth},
		{"obstacles.gap_height", c.Obstacles.GapHeight},
		{"bird.width", c.Bird.Width},
		{"bird.height", c.Bird.Height},
		{"restart_button.width", c.RestartButton.Width},
		{"restart_button.height", c.RestartButton.Height},
	}
	for _, p := range positive {
		if p.val <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, p.name, p.val)
		}
	}

	if c.Obstacles.SpawnDistance < 0 || c.Obstacles.SpawnDistance >= c.Screen.Width {
		return fmt.Errorf("%w: obstacles.spawn_distance %d outside [0, %d)",
			ErrInvalidConfig, c.Obstacles.SpawnDistance, c.Screen.Width)
	}

	maxTop := c.Screen.Height - c.Obstacles.GapBottomMargin
	if c.Obstacles.GapMinTop < 0 || maxTop < c.Obstacles.GapMinTop {
		return fmt.Errorf("%w: gap top range [%d, %d] is empty",
			ErrInvalidConfig, c.Obstacles.GapMinTop, maxTop)
	}

	if maxTop+c.Obstacles.GapHeight > c.Screen.Height {
		return fmt.Errorf("%w: obstacles.gap_height %d below a gap top of %d passes screen.height %d",
			ErrInvalidConfig, c.Obstacles.GapHeight, maxTop, c.Screen.Height)
	}

	switch c.HighScore.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("%w: unknown highscore.backend %q", ErrInvalidConfig, c.HighScore.Backend)
	}

	return nil
}
