package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in game configuration as YAML.

Save it to ~/.arcade/configs/flappy.yaml or ./configs/flappy.yaml and
edit it to change physics, pipe layout or high score storage.

Examples:
  flappy config > ~/.arcade/configs/flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	},
}
