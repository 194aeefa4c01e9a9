// Package sqlite provides SQLite-based persistence for high scores, saves and
// the play history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/ice-jumper/internal/config"
	"github.com/vovakirdan/ice-jumper/internal/registry"
	"github.com/vovakirdan/ice-jumper/internal/storage"
)

// BackendName is the registry name of this backend.
const BackendName = "sqlite"

// DBFile is the database file name inside the data directory.
const DBFile = "icejumper.db"

func init() {
	registry.Register(BackendName, func(opts storage.Options) (storage.Backend, error) {
		return Open(filepath.Join(config.ExpandHome(opts.Dir), DBFile), opts.Logger)
	})
}

// Store manages the SQLite database connection.
type Store struct {
	db     *sql.DB
	path   string
	logger *log.Logger
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// A nil logger discards the warnings about skipped rows.
func Open(dbPath string, logger *log.Logger) (*Store, error) {
	dbPath = config.ExpandHome(dbPath)

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w: %w", dir, storage.ErrIO, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}
	store := &Store{db: db, path: dbPath, logger: logger}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS high_scores (
			position INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			score INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS saves (
			name TEXT PRIMARY KEY,
			lives INTEGER NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_name ON games(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Name implements storage.Backend.
func (s *Store) Name() string { return BackendName }

// Paths implements storage.Backend.
func (s *Store) Paths() []string { return []string{s.path} }

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadTop10 retrieves the high-score table in rank order.
func (s *Store) LoadTop10() ([]storage.HighScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT name, score
		 FROM high_scores
		 ORDER BY position
		 LIMIT ?`,
		storage.TableSize,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w: %w", storage.ErrIO, err)
	}
	defer rows.Close()

	entries := make([]storage.HighScoreEntry, 0, storage.TableSize)
	for rows.Next() {
		var e storage.HighScoreEntry
		if err := rows.Scan(&e.PlayerName, &e.Score); err != nil {
			s.logger.Warn("skipping malformed score row", "err", err)
			continue
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w: %w", storage.ErrIO, err)
	}

	return entries, nil
}

// SaveTop10 replaces the high-score table in one transaction.
func (s *Store) SaveTop10(entries []storage.HighScoreEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w: %w", storage.ErrIO, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM high_scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w: %w", storage.ErrIO, err)
	}
	for i, e := range entries {
		if i == storage.TableSize {
			break
		}
		if _, err := tx.Exec(
			"INSERT INTO high_scores (position, name, score) VALUES (?, ?, ?)",
			i, storage.NormalizeName(e.PlayerName), e.Score,
		); err != nil {
			return fmt.Errorf("storage: cannot save score: %w: %w", storage.ErrIO, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit scores: %w: %w", storage.ErrIO, err)
	}
	return nil
}

// FindByName retrieves the save for name.
func (s *Store) FindByName(name string) (storage.SaveRecord, bool, error) {
	rec := storage.SaveRecord{PlayerName: storage.NormalizeName(name)}
	err := s.db.QueryRow(
		"SELECT lives, score, level FROM saves WHERE name = ?",
		rec.PlayerName,
	).Scan(&rec.Lives, &rec.Score, &rec.Level)

	if errors.Is(err, sql.ErrNoRows) {
		return storage.SaveRecord{}, false, nil
	}
	if err != nil {
		return storage.SaveRecord{}, false, fmt.Errorf("storage: cannot query save: %w: %w", storage.ErrIO, err)
	}
	return rec, true, nil
}

// Upsert inserts or replaces the save of rec.PlayerName.
func (s *Store) Upsert(rec storage.SaveRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (name, lives, score, level)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   lives = excluded.lives,
		   score = excluded.score,
		   level = excluded.level,
		   updated_at = CURRENT_TIMESTAMP`,
		storage.NormalizeName(rec.PlayerName), rec.Lives, rec.Score, rec.Level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w: %w", storage.ErrIO, err)
	}
	return nil
}

// Delete removes the save of name.
func (s *Store) Delete(name string) error {
	_, err := s.db.Exec("DELETE FROM saves WHERE name = ?", storage.NormalizeName(name))
	if err != nil {
		return fmt.Errorf("storage: cannot delete save: %w: %w", storage.ErrIO, err)
	}
	return nil
}

// Saves retrieves every save ordered by name.
func (s *Store) Saves() ([]storage.SaveRecord, error) {
	rows, err := s.db.Query("SELECT name, lives, score, level FROM saves ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w: %w", storage.ErrIO, err)
	}
	defer rows.Close()

	var recs []storage.SaveRecord
	for rows.Next() {
		var r storage.SaveRecord
		if err := rows.Scan(&r.PlayerName, &r.Lives, &r.Score, &r.Level); err != nil {
			s.logger.Warn("skipping malformed save row", "err", err)
			continue
		}
		recs = append(recs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w: %w", storage.ErrIO, err)
	}

	return recs, nil
}

// RecordGame appends a finished game to the history.
func (s *Store) RecordGame(rec storage.GameRecord) error {
	won := 0
	if rec.Won {
		won = 1
	}
	playedAt := rec.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}

	_, err := s.db.Exec(
		"INSERT INTO games (name, score, level, won, created_at) VALUES (?, ?, ?, ?, ?)",
		storage.NormalizeName(rec.PlayerName), rec.Score, rec.Level, won,
		playedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record game: %w: %w", storage.ErrIO, err)
	}
	return nil
}

// Stats retrieves aggregated statistics over the play history.
func (s *Store) Stats() (storage.Stats, error) {
	var stats storage.Stats

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		 FROM games`,
	).Scan(&stats.Games, &stats.Wins, &stats.HighScore, &stats.AvgScore)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get game stats: %w: %w", storage.ErrIO, err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		"SELECT created_at FROM games ORDER BY created_at DESC LIMIT 1",
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return stats, fmt.Errorf("storage: cannot get last played: %w: %w", storage.ErrIO, err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

const timeLayout = "2006-01-02 15:04:05"

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

var (
	_ storage.Backend           = (*Store)(nil)
	_ storage.HistoryRepository = (*Store)(nil)
)
