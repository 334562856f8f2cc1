package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration.
// It matches defaults/flappy.yaml and is used if the embedded file fails to parse.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Screen: ScreenConfig{
			Width:    400,
			Height:   600,
			TickRate: 60,
		},
		Physics: FlappyPhysics{
			Gravity:     0.5,
			FlapImpulse: -10,
			PipeSpeed:   5,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:       52,
			GapHeight:       150,
			SpawnDistance:   200,
			GapMinTop:       100,
			GapBottomMargin: 200,
		},
		Bird: FlappyBird{
			Width:  34,
			Height: 24,
		},
		RestartButton: ButtonConfig{
			Width:  100,
			Height: 50,
		},
		HighScore: HighScoreConfig{
			Backend: BackendFile,
			Path:    "~/.arcade/high_score.txt",
			DBPath:  "~/.arcade/scores.db",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
