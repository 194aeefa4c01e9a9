package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/ice-jumper/internal/storage"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath, nil)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, dbPath
}

func TestStoreOpenClose(t *testing.T) {
	_, dbPath := openTestStore(t)

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreScoresRoundTrip(t *testing.T) {
	store, _ := openTestStore(t)

	// Empty table is not an error
	scores, err := store.LoadTop10()
	if err != nil {
		t.Fatalf("LoadTop10() failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("Expected empty table, got %v", scores)
	}

	in := []storage.HighScoreEntry{
		{PlayerName: "alice", Score: 100},
		{PlayerName: "bob", Score: 300},
		{PlayerName: "carol", Score: 50},
	}
	if err := store.SaveTop10(in); err != nil {
		t.Fatalf("SaveTop10() failed: %v", err)
	}

	scores, err = store.LoadTop10()
	if err != nil {
		t.Fatalf("LoadTop10() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Order is the stored rank order, not the score order.
	if scores[0].PlayerName != "ALICE" || scores[1].PlayerName != "BOB" || scores[2].PlayerName != "CAROL" {
		t.Errorf("Scores not in stored order: %v", scores)
	}
}

func TestStoreSaveTop10Replaces(t *testing.T) {
	store, _ := openTestStore(t)

	var in []storage.HighScoreEntry
	for i := 0; i < 12; i++ {
		in = append(in, storage.HighScoreEntry{PlayerName: "P", Score: 1000 - i})
	}
	store.SaveTop10(in)
	store.SaveTop10(in[:2])

	scores, err := store.LoadTop10()
	if err != nil {
		t.Fatalf("LoadTop10() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Errorf("Expected 2 scores after replace, got %d", len(scores))
	}
}

func TestStoreSaves(t *testing.T) {
	store, _ := openTestStore(t)

	if _, ok, err := store.FindByName("alice"); ok || err != nil {
		t.Fatalf("FindByName() on empty store = %v, %v", ok, err)
	}

	store.Upsert(storage.SaveRecord{PlayerName: "alice", Lives: 3, Score: 10, Level: 2})
	store.Upsert(storage.SaveRecord{PlayerName: "bob", Lives: 1, Score: 20, Level: 3})
	if err := store.Upsert(storage.SaveRecord{PlayerName: "ALICE", Lives: 2, Score: 90, Level: 4}); err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}

	rec, ok, err := store.FindByName("Alice")
	if err != nil || !ok {
		t.Fatalf("FindByName() = %v, %v", ok, err)
	}
	want := storage.SaveRecord{PlayerName: "ALICE", Lives: 2, Score: 90, Level: 4}
	if rec != want {
		t.Errorf("record = %+v, want %+v", rec, want)
	}

	all, err := store.Saves()
	if err != nil {
		t.Fatalf("Saves() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 saves, got %d", len(all))
	}

	if err := store.Delete("alice"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := store.FindByName("ALICE"); ok {
		t.Error("save should be gone after Delete")
	}
}

func TestStoreSkipsMalformedRows(t *testing.T) {
	store, _ := openTestStore(t)

	if err := store.SaveTop10([]storage.HighScoreEntry{
		{PlayerName: "ALICE", Score: 300},
		{PlayerName: "BOB", Score: 100},
	}); err != nil {
		t.Fatalf("SaveTop10() failed: %v", err)
	}
	store.Upsert(storage.SaveRecord{PlayerName: "carol", Lives: 2, Score: 40, Level: 3})

	// Text that is not a number keeps TEXT storage and cannot scan into an int.
	if _, err := store.db.Exec("UPDATE high_scores SET position = 2 WHERE name = 'BOB'"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.db.Exec("INSERT INTO high_scores (position, name, score) VALUES (1, 'EVE', 'lots')"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.db.Exec("INSERT INTO saves (name, lives, score, level) VALUES ('DAVE', 'many', 1, 1)"); err != nil {
		t.Fatal(err)
	}

	entries, err := store.LoadTop10()
	if err != nil {
		t.Fatalf("LoadTop10() failed: %v", err)
	}
	if len(entries) != 2 || entries[0].PlayerName != "ALICE" || entries[1].PlayerName != "BOB" {
		t.Errorf("entries = %+v, want ALICE and BOB", entries)
	}

	saves, err := store.Saves()
	if err != nil {
		t.Fatalf("Saves() failed: %v", err)
	}
	if len(saves) != 1 || saves[0].PlayerName != "CAROL" {
		t.Errorf("saves = %+v, want only CAROL", saves)
	}
}

func TestStoreStats(t *testing.T) {
	store, _ := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Games != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.RecordGame(storage.GameRecord{PlayerName: "a", Score: 100, Level: 10, Won: true, PlayedAt: base})
	store.RecordGame(storage.GameRecord{PlayerName: "b", Score: 300, Level: 4, PlayedAt: base.Add(time.Hour)})

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Games != 2 || stats.Wins != 1 || stats.HighScore != 300 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("Expected average 200, got %v", stats.AvgScore)
	}
	if !stats.LastPlayed.Equal(base.Add(time.Hour)) {
		t.Errorf("Expected last played %v, got %v", base.Add(time.Hour), stats.LastPlayed)
	}
}
