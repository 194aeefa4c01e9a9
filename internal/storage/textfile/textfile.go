// Package textfile stores high scores and saves in pipe-separated text files.
//
// HighScores.txt holds one "NAME|score" line per entry in rank order and
// Saves.txt one "NAME|lives|score|level" line per player. Malformed lines are
// skipped with a warning; files are replaced atomically on write.
package textfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ice-jumper/internal/config"
	"github.com/vovakirdan/ice-jumper/internal/registry"
	"github.com/vovakirdan/ice-jumper/internal/storage"
)

// BackendName is the registry name of this backend.
const BackendName = "file"

const (
	ScoreFile = "HighScores.txt"
	SaveFile  = "Saves.txt"
)

func init() {
	registry.Register(BackendName, func(opts storage.Options) (storage.Backend, error) {
		return Open(opts)
	})
}

// Store is a flat-file backend rooted at a data directory.
type Store struct {
	dir    string
	logger *log.Logger
}

// Open returns a store for opts.Dir. The directory is created on first write.
func Open(opts storage.Options) (*Store, error) {
	if opts.Dir == "" {
		return nil, errors.New("storage: no data directory")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		dir:    config.ExpandHome(opts.Dir),
		logger: logger,
	}, nil
}

// Name implements storage.Backend.
func (s *Store) Name() string { return BackendName }

// Paths implements storage.Backend.
func (s *Store) Paths() []string {
	return []string{s.scorePath(), s.savePath()}
}

// Close implements storage.Backend.
func (s *Store) Close() error { return nil }

func (s *Store) scorePath() string { return filepath.Join(s.dir, ScoreFile) }
func (s *Store) savePath() string  { return filepath.Join(s.dir, SaveFile) }

// LoadTop10 reads the high-score table in file order.
func (s *Store) LoadTop10() ([]storage.HighScoreEntry, error) {
	lines, err := s.readLines(s.scorePath(), storage.ErrMissingScoreFile, storage.ErrMissingScoreDirectory)
	if err != nil {
		return nil, err
	}

	entries := make([]storage.HighScoreEntry, 0, storage.TableSize)
	for _, l := range lines {
		e, err := parseScore(l.text)
		if err != nil {
			s.skip(s.scorePath(), l, err)
			continue
		}
		entries = append(entries, e)
		if len(entries) == storage.TableSize {
			break
		}
	}
	return entries, nil
}

// SaveTop10 replaces the high-score table.
func (s *Store) SaveTop10(entries []storage.HighScoreEntry) error {
	var buf bytes.Buffer
	for i, e := range entries {
		if i == storage.TableSize {
			break
		}
		fmt.Fprintf(&buf, "%s|%d\n", storage.NormalizeName(e.PlayerName), e.Score)
	}
	return s.writeFile(s.scorePath(), buf.Bytes())
}

// FindByName returns the save for name. A missing file is reported with
// storage.ErrMissingSaveFile so callers can treat it as "no save".
func (s *Store) FindByName(name string) (storage.SaveRecord, bool, error) {
	recs, _, err := s.loadSaves()
	if err != nil {
		return storage.SaveRecord{}, false, err
	}
	name = storage.NormalizeName(name)
	for _, r := range recs {
		if r.PlayerName == name {
			return r, true, nil
		}
	}
	return storage.SaveRecord{}, false, nil
}

// Upsert replaces the save of rec.PlayerName or appends a new one.
// Lines that did not parse are written back unchanged.
func (s *Store) Upsert(rec storage.SaveRecord) error {
	recs, rest, err := s.loadSaves()
	if err != nil && !storage.IsMissing(err) {
		return err
	}

	rec.PlayerName = storage.NormalizeName(rec.PlayerName)
	replaced := false
	for i := range recs {
		if recs[i].PlayerName == rec.PlayerName {
			recs[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		recs = append(recs, rec)
	}
	return s.writeSaves(recs, rest, rec.PlayerName)
}

// Delete removes the save of name, including duplicate lines for it.
// Deleting a missing save is not an error.
func (s *Store) Delete(name string) error {
	recs, rest, err := s.loadSaves()
	if err != nil {
		if storage.IsMissing(err) {
			return nil
		}
		return err
	}

	name = storage.NormalizeName(name)
	kept := recs[:0]
	for _, r := range recs {
		if r.PlayerName != name {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(recs) {
		return nil
	}
	return s.writeSaves(kept, rest, name)
}

// Saves returns every save ordered by name.
func (s *Store) Saves() ([]storage.SaveRecord, error) {
	recs, _, err := s.loadSaves()
	if err != nil {
		return nil, err
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].PlayerName < recs[j].PlayerName
	})
	return recs, nil
}

// unreadLine is a save line that did not become a record. name is set for
// duplicates of an earlier record.
type unreadLine struct {
	name string
	text string
}

// loadSaves parses the save file. Malformed and duplicate lines are returned
// separately so rewrites can keep them.
func (s *Store) loadSaves() ([]storage.SaveRecord, []unreadLine, error) {
	lines, err := s.readLines(s.savePath(), storage.ErrMissingSaveFile, storage.ErrMissingSaveDirectory)
	if err != nil {
		return nil, nil, err
	}

	recs := make([]storage.SaveRecord, 0, len(lines))
	var rest []unreadLine
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		r, err := parseSave(l.text)
		if err != nil {
			s.skip(s.savePath(), l, err)
			rest = append(rest, unreadLine{text: l.text})
			continue
		}
		// First record wins when a name appears twice.
		if seen[r.PlayerName] {
			s.logger.Warn("skipping duplicate save", "file", s.savePath(), "line", l.num, "player", r.PlayerName)
			rest = append(rest, unreadLine{name: r.PlayerName, text: l.text})
			continue
		}
		seen[r.PlayerName] = true
		recs = append(recs, r)
	}
	return recs, rest, nil
}

// writeSaves writes recs followed by the unread lines. Duplicates of name are
// dropped, since that record was just replaced or deleted.
func (s *Store) writeSaves(recs []storage.SaveRecord, rest []unreadLine, name string) error {
	var buf bytes.Buffer
	for _, r := range recs {
		fmt.Fprintf(&buf, "%s|%d|%d|%d\n", r.PlayerName, r.Lives, r.Score, r.Level)
	}
	for _, u := range rest {
		if u.name != "" && u.name == name {
			continue
		}
		buf.WriteString(u.text)
		buf.WriteByte('\n')
	}
	return s.writeFile(s.savePath(), buf.Bytes())
}

type line struct {
	num  int
	text string
}

// readLines returns the non-empty lines of path. A missing file or directory
// is reported with the given sentinels.
func (s *Store) readLines(path string, missingFile, missingDir error) ([]line, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if _, dirErr := os.Stat(filepath.Dir(path)); errors.Is(dirErr, fs.ErrNotExist) {
				return nil, fmt.Errorf("storage: cannot read %s: %w", path, missingDir)
			}
			return nil, fmt.Errorf("storage: cannot read %s: %w", path, missingFile)
		}
		return nil, fmt.Errorf("storage: cannot open %s: %w: %w", path, storage.ErrIO, err)
	}
	defer f.Close()

	var lines []line
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		lines = append(lines, line{num: n, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot read %s: %w: %w", path, storage.ErrIO, err)
	}
	return lines, nil
}

// writeFile replaces path through a temporary file in the same directory.
func (s *Store) writeFile(path string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w: %w", s.dir, storage.ErrIO, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("storage: cannot write %s: %w: %w", path, storage.ErrIO, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: cannot write %s: %w: %w", path, storage.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: cannot write %s: %w: %w", path, storage.ErrIO, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: cannot replace %s: %w: %w", path, storage.ErrIO, err)
	}
	return nil
}

func (s *Store) skip(path string, l line, err error) {
	s.logger.Warn("skipping malformed line", "file", path, "line", l.num, "error", err)
}

func parseScore(text string) (storage.HighScoreEntry, error) {
	fields := strings.Split(text, "|")
	if len(fields) != 2 {
		return storage.HighScoreEntry{}, fmt.Errorf("%w: want 2 fields, got %d", storage.ErrMalformedRecord, len(fields))
	}
	name := storage.NormalizeName(fields[0])
	if name == "" {
		return storage.HighScoreEntry{}, fmt.Errorf("%w: empty name", storage.ErrMalformedRecord)
	}
	score, err := parseCount(fields[1], "score")
	if err != nil {
		return storage.HighScoreEntry{}, err
	}
	return storage.HighScoreEntry{PlayerName: name, Score: score}, nil
}

func parseSave(text string) (storage.SaveRecord, error) {
	fields := strings.Split(text, "|")
	if len(fields) != 4 {
		return storage.SaveRecord{}, fmt.Errorf("%w: want 4 fields, got %d", storage.ErrMalformedRecord, len(fields))
	}
	name := storage.NormalizeName(fields[0])
	if name == "" {
		return storage.SaveRecord{}, fmt.Errorf("%w: empty name", storage.ErrMalformedRecord)
	}

	var nums [3]int
	for i, label := range []string{"lives", "score", "level"} {
		n, err := parseCount(fields[i+1], label)
		if err != nil {
			return storage.SaveRecord{}, err
		}
		nums[i] = n
	}
	if nums[2] < 1 {
		return storage.SaveRecord{}, fmt.Errorf("%w: level %d", storage.ErrMalformedRecord, nums[2])
	}
	return storage.SaveRecord{PlayerName: name, Lives: nums[0], Score: nums[1], Level: nums[2]}, nil
}

// parseCount parses a non-negative integer field.
func parseCount(field, label string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s %q", storage.ErrMalformedRecord, label, field)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative %s", storage.ErrMalformedRecord, label)
	}
	return n, nil
}

var _ storage.Backend = (*Store)(nil)
