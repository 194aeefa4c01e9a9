// Package storage defines the persistence contracts for high scores and
// saved games. Backends live in subpackages and register themselves with
// internal/registry.
package storage

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// TableSize is the number of entries kept in the high-score table.
const TableSize = 10

// HighScoreEntry is one line of the high-score table.
type HighScoreEntry struct {
	PlayerName string
	Score      int
}

// SaveRecord is a player's saved progress. There is at most one record per name.
type SaveRecord struct {
	PlayerName string
	Lives      int
	Score      int
	Level      int // Next level to play
}

// ScoreRepository loads and stores the ordered top-10 table.
type ScoreRepository interface {
	LoadTop10() ([]HighScoreEntry, error)
	SaveTop10(entries []HighScoreEntry) error
}

// SaveRepository stores one SaveRecord per player name.
type SaveRepository interface {
	// FindByName returns the record and true if a save exists for name.
	FindByName(name string) (SaveRecord, bool, error)
	Upsert(rec SaveRecord) error
	Delete(name string) error
}

// GameRecord is one finished game kept in the play history.
type GameRecord struct {
	PlayerName string
	Score      int
	Level      int // Last level reached
	Won        bool
	PlayedAt   time.Time
}

// Stats aggregates the play history.
type Stats struct {
	Games      int
	Wins       int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// HistoryRepository is implemented by backends that keep a play history.
type HistoryRepository interface {
	RecordGame(rec GameRecord) error
	Stats() (Stats, error)
}

// Options configures a backend when it is opened.
type Options struct {
	Dir    string // Data directory, "~" is expanded
	Logger *log.Logger
}

// Backend is a complete persistence implementation.
type Backend interface {
	ScoreRepository
	SaveRepository
	// Saves returns every saved game ordered by name.
	Saves() ([]SaveRecord, error)
	// Name returns the registry name of the backend ("file", "sqlite").
	Name() string
	// Paths returns the files the backend reads and writes.
	Paths() []string
	Close() error
}

// Error taxonomy. Backends wrap these with context; callers compare with errors.Is.
var (
	ErrMissingSaveFile       = errors.New("save file is missing")
	ErrMissingSaveDirectory  = errors.New("save file directory is missing")
	ErrMissingScoreFile      = errors.New("score file is missing")
	ErrMissingScoreDirectory = errors.New("score file directory is missing")
	ErrIO                    = errors.New("cannot access file")
	ErrMalformedRecord       = errors.New("malformed record")
)

// IsMissing reports whether err only says that a file or directory is absent.
// Such errors degrade to an empty table or "no save".
func IsMissing(err error) bool {
	return errors.Is(err, ErrMissingSaveFile) ||
		errors.Is(err, ErrMissingSaveDirectory) ||
		errors.Is(err, ErrMissingScoreFile) ||
		errors.Is(err, ErrMissingScoreDirectory)
}

// NormalizeName upper-cases and trims a player name the way it is stored.
// The field separator of the text format is removed.
func NormalizeName(name string) string {
	name = strings.ReplaceAll(name, "|", "")
	return strings.ToUpper(strings.TrimSpace(name))
}
