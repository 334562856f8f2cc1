// Package highscore persists the single best-score integer between runs.
package highscore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

// Store loads and saves a high score.
type Store interface {
	// Load returns the persisted value, or 0 when nothing usable is stored.
	Load() (int, error)
	// Save overwrites the persisted value.
	Save(score int) error
}

// FileStore keeps the high score as a decimal integer in a text file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the file. A missing or malformed file yields 0 with no error;
// other read failures yield 0 and the error so the caller can log it.
func (f *FileStore) Load() (int, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("highscore: cannot read %s: %w", f.path, err)
	}
	return parse(data), nil
}

// Save overwrites the file with score, creating parent directories as needed.
func (f *FileStore) Save(score int) error {
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("highscore: cannot create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(f.path, []byte(strconv.Itoa(score)), 0o644); err != nil {
		return fmt.Errorf("highscore: cannot write %s: %w", f.path, err)
	}
	return nil
}

// parse accepts a non-negative decimal integer with optional surrounding
// whitespace. Anything else is treated as no record.
func parse(data []byte) int {
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SQLiteStore keeps the high score as one row in the scores database.
type SQLiteStore struct {
	db     *storage.Store
	gameID string
}

// NewSQLiteStore binds a store to one game's row in db.
func NewSQLiteStore(db *storage.Store, gameID string) *SQLiteStore {
	return &SQLiteStore{db: db, gameID: gameID}
}

// Load returns the stored high score for the game.
func (s *SQLiteStore) Load() (int, error) {
	return s.db.HighScore(s.gameID)
}

// Save replaces the stored high score for the game.
func (s *SQLiteStore) Save(score int) error {
	return s.db.SetHighScore(s.gameID, score)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the store selected by cfg. The returned closer releases any
// database handle and must be called when the game exits.
func Open(cfg config.HighScoreConfig, gameID string) (Store, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLiteStore(db, gameID), db, nil
	case config.BackendFile, "":
		path, err := config.ExpandHome(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return NewFileStore(path), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("highscore: unknown backend %q", cfg.Backend)
	}
}
