// flappy is a Flappy Bird clone for the terminal and the desktop.
//
// Usage:
//
//	flappy play      - Play in the terminal
//	flappy window    - Play in a desktop window
//	flappy score     - Show the stored high score
//	flappy config    - Print the default configuration
//
// Global flags:
//
//	--config <path>     - Custom game config YAML
//	--seed <value>      - RNG seed for reproducible pipes
//	--fps <rate>        - Tick rate (default: from config)
//	--store <backend>   - High score backend: file or sqlite
//	--highscore <path>  - High score file (file backend)
//	--db <path>         - Scores database (sqlite backend)
//	--log-file <path>   - Write logs to a file
//	--log-level <level> - debug, info, warn or error
//	--watch             - Reload the config file when it changes
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig    string
	flagSeed      int64
	flagFPS       int
	flagStore     string
	flagHighScore string
	flagDBPath    string
	flagLogFile   string
	flagLogLevel  string
	flagWatch     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal or a window",
	Long: `Guide the bird through the gaps between the pipes.
Every pipe you pass scores a point; touching a pipe or leaving the
screen ends the run. Your best score is kept between sessions.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  score    - Show the stored high score
  config   - Print the default configuration

Examples:
  flappy play
  flappy play --seed 42
  flappy window --scale 2
  flappy score --store sqlite`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.IntVar(&flagFPS, "fps", 0, "Tick rate (0 = use config)")
	pf.StringVar(&flagStore, "store", "", "High score backend: file or sqlite (default from config)")
	pf.StringVar(&flagHighScore, "highscore", "", "Path to high score file (default from config)")
	pf.StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagWatch, "watch", false, "Reload the config file on change (applies on restart)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(configCmd)
}
