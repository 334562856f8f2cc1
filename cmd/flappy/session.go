package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
	"github.com/vovakirdan/flappy-arcade/internal/highscore"
	"github.com/vovakirdan/flappy-arcade/internal/logging"
)

// overrides are the command-line values that replace config fields when set.
type overrides struct {
	fps       int
	store     string
	highScore string
	dbPath    string
}

func flagOverrides() overrides {
	return overrides{
		fps:       flagFPS,
		store:     flagStore,
		highScore: flagHighScore,
		dbPath:    flagDBPath,
	}
}

// apply copies every non-zero override into cfg.
func (o overrides) apply(cfg *config.FlappyConfig) {
	if o.fps > 0 {
		cfg.Screen.TickRate = o.fps
	}
	if o.store != "" {
		cfg.HighScore.Backend = config.HighScoreBackend(o.store)
	}
	if o.highScore != "" {
		cfg.HighScore.Path = o.highScore
	}
	if o.dbPath != "" {
		cfg.HighScore.DBPath = o.dbPath
	}
}

// loadConfig reads the game config and applies flag overrides.
func loadConfig() (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return cfg, err
	}
	flagOverrides().apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// session bundles what the game commands share.
type session struct {
	cfg     config.FlappyConfig
	store   highscore.Store
	logger  *log.Logger
	watcher *config.Watcher
	closers []io.Closer
}

// openSession loads config, the logger and the high score store.
// With no --log-file, logs go to stderr only when toStderr is set.
func openSession(toStderr bool) (*session, error) {
	s := &session{}

	var err error
	switch {
	case flagLogFile != "":
		var closer io.Closer
		s.logger, closer, err = logging.OpenFile(flagLogFile, flagLogLevel)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, closer)
	case toStderr:
		s.logger, err = logging.New(os.Stderr, flagLogLevel)
		if err != nil {
			return nil, err
		}
	default:
		s.logger = logging.Discard()
	}

	s.cfg, err = loadConfig()
	if err != nil {
		s.Close()
		return nil, err
	}

	if flagWatch {
		s.watch()
	}

	store, closer, err := highscore.Open(s.cfg.HighScore, flappy.ID)
	if err != nil {
		// Play on without persistence
		s.logger.Warn("high score storage unavailable", "backend", s.cfg.HighScore.Backend, "error", err)
	} else {
		s.store = store
		s.closers = append(s.closers, closer)
	}

	s.logger.Debug("session opened", "backend", s.cfg.HighScore.Backend, "tick_rate", s.cfg.Screen.TickRate)
	return s, nil
}

// watch starts reloading the active config file. Failures only disable reloading.
func (s *session) watch() {
	path := config.ResolveFlappy(flagConfig)
	if path == "" {
		s.logger.Warn("no config file to watch, using built-in defaults")
		return
	}

	w, err := config.WatchFlappy(path, flagOverrides().apply)
	if err != nil {
		s.logger.Warn("config watch unavailable", "error", err)
		return
	}
	s.watcher = w
	s.closers = append(s.closers, w)

	go func() {
		for err := range w.Errors {
			s.logger.Warn("config reload failed", "error", err)
		}
	}()
	s.logger.Info("watching config", "path", w.Path())
}

// reloads returns the channel of reloaded configs, or nil when not watching.
func (s *session) reloads() <-chan config.FlappyConfig {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Configs
}

// newGame builds a game backed by the session's store.
func (s *session) newGame() *flappy.Game {
	return flappy.New(s.cfg, s.store, s.logger)
}

// runtime returns the runtime config for a new run.
func (s *session) runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  s.cfg.Screen.Width,
		ScreenH:  s.cfg.Screen.Height,
		TickRate: s.cfg.Screen.TickRate,
		Seed:     flagSeed,
	}
}

// Close releases the store and log file, newest first.
func (s *session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	if len(errs) > 0 {
		return fmt.Errorf("close session: %w", errors.Join(errs...))
	}
	return nil
}
