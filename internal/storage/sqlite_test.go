package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/games/blast/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *Store, gameID string, score int) {
	t.Helper()
	if _, err := store.SaveScore(RoundResult{GameID: gameID, Score: score}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	save(t, store, "blast", 120)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if high, _ := store.HighScore("blast"); high != 120 {
		t.Errorf("HighScore after reopen = %d, expected 120", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore(RoundResult{GameID: "blast", Profile: "ann", Score: 100, Blasts: 12, LargestGroup: 9}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	save(t, store, "blast", 50)
	save(t, store, "blast", 200)
	save(t, store, "blast_endless", 500)

	scores, err := store.TopScores("blast", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %+v", scores)
	}
	if scores[0].Profile != DefaultProfile {
		t.Errorf("empty profile should be stored as %q, got %q", DefaultProfile, scores[0].Profile)
	}
	if got := scores[1]; got.Profile != "ann" || got.Blasts != 12 || got.LargestGroup != 9 {
		t.Errorf("round details not stored: %+v", got)
	}

	endless, err := store.TopScores("blast_endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(endless) != 1 {
		t.Errorf("Expected 1 endless score, got %d", len(endless))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		save(t, store, "blast", (i+1)*100)
	}

	scores, err := store.TopScores("blast", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("blast")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	save(t, store, "blast", 100)
	save(t, store, "blast", 300)
	save(t, store, "blast", 200)

	if high, _ = store.HighScore("blast"); high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "blast", 100)
	save(t, store, "blast", 200)
	save(t, store, "blast_endless", 300)

	if err := store.ClearScores("blast"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("blast", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("blast_endless", 10); len(scores) != 1 {
		t.Errorf("Endless scores should not be affected by clearing blast")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		save(t, store, "blast", i*10)
	}

	scores, err := store.AllScores("blast")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSettings(t *testing.T) {
	store := openTestStore(t)
	base := config.DefaultBlastConfig()

	cfg, found, err := store.LoadSettings("ann", base)
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if found || cfg != base {
		t.Errorf("unknown profile should return base, got found=%v cfg=%+v", found, cfg)
	}

	want := base
	want.Board.Rows = 6
	want.Board.Colors = 5
	want.Board.Thresholds = config.ThresholdsConfig{A: 3, B: 5, C: 7}
	want.Gameplay.Moves = 15
	if err := store.SaveSettings("ann", want); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}

	cfg, found, err = store.LoadSettings("ann", base)
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if !found || cfg != want {
		t.Errorf("LoadSettings() = %+v (found %v), expected %+v", cfg, found, want)
	}

	// Saving again replaces the row.
	want.Board.Columns = 4
	if err := store.SaveSettings("ann", want); err != nil {
		t.Fatalf("second SaveSettings() failed: %v", err)
	}
	if cfg, _, _ = store.LoadSettings("ann", base); cfg.Board.Columns != 4 {
		t.Errorf("settings not updated, columns = %d", cfg.Board.Columns)
	}

	// Other profiles are unaffected.
	if _, found, _ = store.LoadSettings("bob", base); found {
		t.Error("bob should have no stored settings")
	}
}

func TestStoreSettingsRejectsInvalid(t *testing.T) {
	store := openTestStore(t)

	bad := config.DefaultBlastConfig()
	bad.Board.Thresholds.B = bad.Board.Thresholds.A

	err := store.SaveSettings("", bad)
	if !errors.Is(err, engine.ErrInvalidConfig) {
		t.Fatalf("SaveSettings() error = %v, expected ErrInvalidConfig", err)
	}
	if _, found, _ := store.LoadSettings("", config.DefaultBlastConfig()); found {
		t.Error("invalid settings should not be stored")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("blast")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	rounds := []RoundResult{
		{GameID: "blast", Score: 100, Blasts: 10, LargestGroup: 6},
		{GameID: "blast", Score: 300, Blasts: 20, LargestGroup: 11},
		{GameID: "blast_endless", Score: 50, Blasts: 4, LargestGroup: 3},
	}
	for _, r := range rounds {
		if _, err := store.SaveScore(r); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	stats, err := store.GetGameStats("blast")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 || stats.AvgScore != 200 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.TotalBlasts != 30 || stats.LargestGroup != 11 {
		t.Errorf("blast stats = %+v", stats)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["blast_endless"].HighScore != 50 {
		t.Errorf("all stats = %+v", all)
	}
}
