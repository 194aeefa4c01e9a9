package textfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/ice-jumper/internal/storage"
)

func openStore(t *testing.T, dir string) *Store {
	t.Helper()
	s, err := Open(storage.Options{Dir: dir})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return s
}

func TestScoresRoundTrip(t *testing.T) {
	s := openStore(t, t.TempDir())

	in := []storage.HighScoreEntry{
		{PlayerName: "alice", Score: 300},
		{PlayerName: "BOB", Score: 120},
		{PlayerName: "carol", Score: 120},
	}
	if err := s.SaveTop10(in); err != nil {
		t.Fatalf("SaveTop10() failed: %v", err)
	}

	got, err := s.LoadTop10()
	if err != nil {
		t.Fatalf("LoadTop10() failed: %v", err)
	}
	want := []storage.HighScoreEntry{
		{PlayerName: "ALICE", Score: 300},
		{PlayerName: "BOB", Score: 120},
		{PlayerName: "CAROL", Score: 120},
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	data, err := os.ReadFile(filepath.Join(s.dir, ScoreFile))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "ALICE|300\nBOB|120\nCAROL|120\n" {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestScoresTruncatedToTable(t *testing.T) {
	s := openStore(t, t.TempDir())

	var in []storage.HighScoreEntry
	for i := 0; i < 15; i++ {
		in = append(in, storage.HighScoreEntry{PlayerName: "P", Score: 100 - i})
	}
	if err := s.SaveTop10(in); err != nil {
		t.Fatalf("SaveTop10() failed: %v", err)
	}
	got, _ := s.LoadTop10()
	if len(got) != storage.TableSize {
		t.Errorf("Expected %d entries, got %d", storage.TableSize, len(got))
	}
}

func loadScores(s *Store) error {
	_, err := s.LoadTop10()
	return err
}

func findSave(s *Store) error {
	_, _, err := s.FindByName("x")
	return err
}

func TestMissingFiles(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		dir  string
		want error
		load func(s *Store) error
	}{
		{
			name: "score file",
			dir:  dir,
			want: storage.ErrMissingScoreFile,
			load: loadScores,
		},
		{
			name: "score directory",
			dir:  filepath.Join(dir, "nope"),
			want: storage.ErrMissingScoreDirectory,
			load: loadScores,
		},
		{
			name: "save file",
			dir:  dir,
			want: storage.ErrMissingSaveFile,
			load: findSave,
		},
		{
			name: "save directory",
			dir:  filepath.Join(dir, "nope"),
			want: storage.ErrMissingSaveDirectory,
			load: findSave,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.load(openStore(t, tt.dir))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if !storage.IsMissing(err) {
				t.Error("IsMissing should report true")
			}
		})
	}
}

func TestMalformedLinesSkipped(t *testing.T) {
	dir := t.TempDir()
	content := "ALICE|300\nnot a line\nBOB|abc\n\nCAROL|-5\nDAVE|100|7\nERIN|90\n"
	if err := os.WriteFile(filepath.Join(dir, ScoreFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	saves := "ALICE|3|100|2\nBOB|x|1|1\nCAROL|1|1|0\nDAVE|2|50|4\n"
	if err := os.WriteFile(filepath.Join(dir, SaveFile), []byte(saves), 0o644); err != nil {
		t.Fatal(err)
	}

	s := openStore(t, dir)
	got, err := s.LoadTop10()
	if err != nil {
		t.Fatalf("LoadTop10() failed: %v", err)
	}
	if len(got) != 2 || got[0].PlayerName != "ALICE" || got[1].PlayerName != "ERIN" {
		t.Errorf("unexpected entries %+v", got)
	}

	recs, err := s.Saves()
	if err != nil {
		t.Fatalf("Saves() failed: %v", err)
	}
	if len(recs) != 2 || recs[0].PlayerName != "ALICE" || recs[1].PlayerName != "DAVE" {
		t.Errorf("unexpected saves %+v", recs)
	}
}

func TestSaveUpsertFindDelete(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "data"))

	if err := s.Upsert(storage.SaveRecord{PlayerName: "alice", Lives: 3, Score: 100, Level: 2}); err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}
	if err := s.Upsert(storage.SaveRecord{PlayerName: "BOB", Lives: 1, Score: 5, Level: 4}); err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}
	if err := s.Upsert(storage.SaveRecord{PlayerName: "Alice", Lives: 2, Score: 400, Level: 5}); err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}

	rec, ok, err := s.FindByName("alice")
	if err != nil || !ok {
		t.Fatalf("FindByName() = %v, %v", ok, err)
	}
	want := storage.SaveRecord{PlayerName: "ALICE", Lives: 2, Score: 400, Level: 5}
	if rec != want {
		t.Errorf("record = %+v, want %+v", rec, want)
	}

	recs, _ := s.Saves()
	if len(recs) != 2 {
		t.Fatalf("Expected one record per name, got %+v", recs)
	}

	if err := s.Delete("ALICE"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := s.FindByName("ALICE"); ok {
		t.Error("record should be gone after Delete")
	}
	if _, ok, _ := s.FindByName("BOB"); !ok {
		t.Error("other records must survive Delete")
	}
}

func TestRewriteKeepsUnreadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SaveFile)
	saves := "ALICE|3|100|2\nBOB|x|1|1\nALICE|1|5|9\nCAROL|2|50|4\n"
	if err := os.WriteFile(path, []byte(saves), 0o644); err != nil {
		t.Fatal(err)
	}
	s := openStore(t, dir)

	tests := []struct {
		name string
		op   func() error
		want string
	}{
		{
			name: "upsert keeps malformed and duplicate lines",
			op: func() error {
				return s.Upsert(storage.SaveRecord{PlayerName: "DAVE", Lives: 1, Score: 7, Level: 1})
			},
			want: "ALICE|3|100|2\nCAROL|2|50|4\nDAVE|1|7|1\nBOB|x|1|1\nALICE|1|5|9\n",
		},
		{
			name: "upsert drops duplicates of the replaced name",
			op: func() error {
				return s.Upsert(storage.SaveRecord{PlayerName: "ALICE", Lives: 2, Score: 200, Level: 3})
			},
			want: "ALICE|2|200|3\nCAROL|2|50|4\nDAVE|1|7|1\nBOB|x|1|1\n",
		},
		{
			name: "delete keeps malformed lines",
			op:   func() error { return s.Delete("CAROL") },
			want: "ALICE|2|200|3\nDAVE|1|7|1\nBOB|x|1|1\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.op(); err != nil {
				t.Fatalf("operation failed: %v", err)
			}
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("file =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestDeleteRemovesDuplicates(t *testing.T) {
	dir := t.TempDir()
	saves := "ALICE|3|100|2\nALICE|1|5|9\nBOB|1|1|1\n"
	if err := os.WriteFile(filepath.Join(dir, SaveFile), []byte(saves), 0o644); err != nil {
		t.Fatal(err)
	}
	s := openStore(t, dir)

	if err := s.Delete("alice"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if rec, ok, _ := s.FindByName("ALICE"); ok {
		t.Errorf("shadowed duplicate came back after Delete: %+v", rec)
	}
	if _, ok, _ := s.FindByName("BOB"); !ok {
		t.Error("other records must survive Delete")
	}
}

func TestDeleteWithoutFile(t *testing.T) {
	s := openStore(t, t.TempDir())
	if err := s.Delete("ALICE"); err != nil {
		t.Errorf("Delete() on a missing file should succeed, got %v", err)
	}
}

func TestNoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	s := openStore(t, dir)
	s.SaveTop10([]storage.HighScoreEntry{{PlayerName: "A", Score: 1}})
	s.Upsert(storage.SaveRecord{PlayerName: "A", Lives: 1, Score: 1, Level: 1})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("Expected only the two data files, got %v", names)
	}
}
