package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
	"github.com/vovakirdan/flappy-arcade/internal/highscore"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the stored high score",
	Long: `Print the high score from the configured backend.

Examples:
  flappy score
  flappy score --highscore ./high_score.txt
  flappy score --store sqlite --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return printScore(cmd.OutOrStdout(), cfg.HighScore)
}

// printScore writes the stored high score, with its date when the backend keeps one.
func printScore(w io.Writer, cfg config.HighScoreConfig) error {
	if cfg.Backend == config.BackendSQLite {
		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		entry, err := db.Entry(flappy.ID)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, flappy.HighScoreText(entry.Score))
		if !entry.UpdatedAt.IsZero() {
			fmt.Fprintf(w, "Set: %s\n", entry.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	}

	store, closer, err := highscore.Open(cfg, flappy.ID)
	if err != nil {
		return err
	}
	defer closer.Close()

	score, err := store.Load()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, flappy.HighScoreText(score))
	return nil
}
