package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/platform/window"
)

var flagScale int

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open the game in a desktop window.

Controls:
  Space/Up/W   - Flap
  R / click    - Restart (after game over)
  Q/Esc        - Quit

Examples:
  flappy window
  flappy window --scale 2 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagScale, "scale", 1, "Window pixels per world unit")
}

func runWindow(cmd *cobra.Command, args []string) error {
	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	return window.Run(s.newGame(), window.Options{
		Runtime: s.runtime(),
		Scale:   flagScale,
		Logger:  s.logger,
		Reload:  s.reloads(),
	})
}
