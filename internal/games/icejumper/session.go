package icejumper

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ice-jumper/internal/storage"
)

// SessionState is the overall state of a game.
type SessionState int

const (
	SessionPlaying SessionState = iota
	SessionWon
	SessionLost
)

func (s SessionState) String() string {
	switch s {
	case SessionWon:
		return "won"
	case SessionLost:
		return "lost"
	default:
		return "playing"
	}
}

// HighScoreResult reports what happened to the final score of a won game.
type HighScoreResult struct {
	Rank  int // Index in Table, -1 if the score did not place
	Table []storage.HighScoreEntry
}

// Session sequences levels 1..LastLevel and owns the player.
type Session struct {
	params   Params
	rng      *rand.Rand
	player   Player
	level    int
	state    SessionState
	attempts int

	scores  storage.ScoreRepository
	saves   storage.SaveRepository
	history storage.HistoryRepository
	logger  *log.Logger

	highScore   *HighScoreResult
	persistErrs []error
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithScores attaches the high-score repository.
func WithScores(r storage.ScoreRepository) SessionOption {
	return func(s *Session) { s.scores = r }
}

// WithSaves attaches the save-game repository.
func WithSaves(r storage.SaveRepository) SessionOption {
	return func(s *Session) { s.saves = r }
}

// WithHistory records every finished game.
func WithHistory(r storage.HistoryRepository) SessionOption {
	return func(s *Session) { s.history = r }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// NewSession starts a new game at level 1 for the named player.
func NewSession(p Params, name string, seed int64, opts ...SessionOption) *Session {
	s := &Session{
		params: p,
		rng:    rand.New(rand.NewSource(seed)),
		player: Player{
			Name:  storage.NormalizeName(name),
			Lives: p.Lives,
		},
		level:  1,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindSave looks up a save for the session's player.
func (s *Session) FindSave() (storage.SaveRecord, bool, error) {
	if s.saves == nil {
		return storage.SaveRecord{}, false, nil
	}
	rec, ok, err := s.saves.FindByName(s.player.Name)
	if err != nil && storage.IsMissing(err) {
		s.logger.Warn("no save file", "error", err)
		return storage.SaveRecord{}, false, nil
	}
	return rec, ok, err
}

// Resume restores lives, score and level from a save.
func (s *Session) Resume(rec storage.SaveRecord) error {
	if rec.Level < 1 || rec.Level > s.params.LastLevel || rec.Lives < 1 || rec.Score < 0 {
		return fmt.Errorf("icejumper: save for %s is out of range: %w", rec.PlayerName, storage.ErrMalformedRecord)
	}
	s.player.Lives = rec.Lives
	s.player.Score = rec.Score
	s.player.Loaded = true
	s.level = rec.Level
	s.logger.Info("save loaded", "player", s.player.Name, "level", rec.Level, "lives", rec.Lives, "score", rec.Score)
	return nil
}

// NewAttempt builds a fresh floe field for the current level and starts a simulator.
func (s *Session) NewAttempt(r Renderer) *Simulator {
	lp := s.params.LevelParams(s.level)
	field := GenerateFloes(s.rng, lp.Layout, s.params.Floes)
	s.attempts++
	s.logger.Debug("attempt started", "level", s.level, "attempt", s.attempts, "height", lp.Layout.Height)
	return NewSimulator(lp, field, &s.player, r)
}

// Record applies an attempt outcome and returns the new session state.
func (s *Session) Record(o Outcome) SessionState {
	if s.state != SessionPlaying {
		return s.state
	}

	if o.Completed {
		s.player.Score += o.Bonus
		s.logger.Info("level complete", "level", s.level, "bonus", o.Bonus, "score", s.player.Score)
		s.level++
		if s.level > s.params.LastLevel {
			s.state = SessionWon
			s.complete()
		}
		return s.state
	}

	s.player.Lives--
	s.logger.Info("level failed", "level", s.level, "reason", o.Reason, "lives", s.player.Lives)
	if s.player.Lives <= 0 {
		s.player.Lives = 0
		s.state = SessionLost
		s.logger.Info("game over", "player", s.player.Name, "score", s.player.Score)
		s.recordHistory()
	}
	return s.state
}

// complete runs the end-of-game persistence for a won game.
func (s *Session) complete() {
	s.logger.Info("game complete", "player", s.player.Name, "score", s.player.Score)

	if s.player.Loaded && s.saves != nil {
		if err := s.saves.Delete(s.player.Name); err != nil {
			s.persistFailed("cannot delete save", err)
		}
	}

	result, err := s.submitHighScore()
	if err != nil {
		s.persistFailed("cannot record high score", err)
	}
	s.highScore = &result
	s.recordHistory()
}

// recordHistory appends the finished game to the play history.
func (s *Session) recordHistory() {
	if s.history == nil {
		return
	}
	rec := storage.GameRecord{
		PlayerName: s.player.Name,
		Score:      s.player.Score,
		Level:      min(s.level, s.params.LastLevel),
		Won:        s.state == SessionWon,
		PlayedAt:   time.Now(),
	}
	if err := s.history.RecordGame(rec); err != nil {
		s.persistFailed("cannot record game", err)
	}
}

// submitHighScore ranks the final score into the top-10 table and stores it.
func (s *Session) submitHighScore() (HighScoreResult, error) {
	if s.scores == nil {
		return HighScoreResult{Rank: -1}, nil
	}

	table, err := s.scores.LoadTop10()
	if err != nil {
		if !storage.IsMissing(err) {
			return HighScoreResult{Rank: -1}, err
		}
		s.logger.Warn("starting a new high-score table", "error", err)
		table = nil
	}

	cand := storage.HighScoreEntry{PlayerName: s.player.Name, Score: s.player.Score}
	ranked, rank := RankScore(table, cand, storage.TableSize)
	if rank < 0 {
		return HighScoreResult{Rank: -1, Table: table}, nil
	}
	if err := s.scores.SaveTop10(ranked); err != nil {
		return HighScoreResult{Rank: -1, Table: table}, err
	}
	s.logger.Info("new high score", "player", cand.PlayerName, "score", cand.Score, "rank", rank+1)
	return HighScoreResult{Rank: rank, Table: ranked}, nil
}

// SaveProgress stores the player's progress so the next level can be resumed.
func (s *Session) SaveProgress() error {
	if s.saves == nil {
		return nil
	}
	rec := s.SaveRecord()
	if err := s.saves.Upsert(rec); err != nil {
		s.persistFailed("cannot save progress", err)
		return err
	}
	s.logger.Info("progress saved", "player", rec.PlayerName, "level", rec.Level)
	return nil
}

// persistFailed logs a non-fatal persistence error and keeps it for the UI.
func (s *Session) persistFailed(msg string, err error) {
	s.logger.Error(msg, "player", s.player.Name, "error", err)
	s.persistErrs = append(s.persistErrs, err)
}

// SaveRecord returns the record SaveProgress would write.
func (s *Session) SaveRecord() storage.SaveRecord {
	return storage.SaveRecord{
		PlayerName: s.player.Name,
		Lives:      s.player.Lives,
		Score:      s.player.Score,
		Level:      s.level,
	}
}

// Player returns a copy of the player.
func (s *Session) Player() Player {
	return s.player
}

// Level returns the current level number.
func (s *Session) Level() int {
	return s.level
}

// LastLevel returns the number of levels in a game.
func (s *Session) LastLevel() int {
	return s.params.LastLevel
}

// Layout returns the river geometry of the current level.
func (s *Session) Layout() Layout {
	return NewLayout(s.level, s.params.Width, s.params.BaseHeight)
}

// State returns the session state.
func (s *Session) State() SessionState {
	return s.state
}

// Attempts returns the number of attempts started.
func (s *Session) Attempts() int {
	return s.attempts
}

// HighScore returns the high-score result once the game is won.
func (s *Session) HighScore() (HighScoreResult, bool) {
	if s.highScore == nil {
		return HighScoreResult{}, false
	}
	return *s.highScore, true
}

// PersistErrors returns persistence errors collected so far, oldest first.
func (s *Session) PersistErrors() []error {
	return s.persistErrs
}

// SessionSnapshot is the read-only state of a session between attempts.
type SessionSnapshot struct {
	Player   Player
	Level    int
	Layout   Layout
	State    SessionState
	Attempts int
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		Player:   s.player,
		Level:    s.level,
		Layout:   s.Layout(),
		State:    s.state,
		Attempts: s.attempts,
	}
}
