package storage

import (
	"os"
	"path/filepath"
	"testing"
)

// SaveScore records a bare score for gameID.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	return s.SaveResult(RoundResult{GameID: gameID, Score: score, TopRank: -1})
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("fruitdrop", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("fruitdrop_hardcore", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("fruitdrop", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %+v", scores)
	}
	for _, s := range scores {
		if s.RoundID == "" {
			t.Error("saved score has no round id")
		}
	}

	hardcore, err := store.TopScores("fruitdrop_hardcore", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(hardcore) != 1 {
		t.Errorf("Expected 1 hardcore score, got %d", len(hardcore))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
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

func TestSaveResultUpsertsRound(t *testing.T) {
	store := openTestStore(t)
	roundID := NewRoundID()

	first, err := store.SaveResult(RoundResult{RoundID: roundID, GameID: "fruitdrop", Score: 40, Merges: 5, TopRank: 3})
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	second, err := store.SaveResult(RoundResult{RoundID: roundID, GameID: "fruitdrop", Score: 90, Merges: 11, TopRank: 5, MaxCombo: 3, Continues: 1})
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if first != second {
		t.Errorf("continued round got a new row: %d != %d", first, second)
	}

	scores, _ := store.TopScores("fruitdrop", 10)
	if len(scores) != 1 {
		t.Fatalf("Expected 1 row for the round, got %d", len(scores))
	}
	got := scores[0]
	if got.Score != 90 || got.Merges != 11 || got.TopRank != 5 || got.MaxCombo != 3 || got.Continues != 1 {
		t.Errorf("row = %+v, expected the latest values", got)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("fruitdrop")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("fruitdrop", 100)
	store.SaveScore("fruitdrop", 300)
	store.SaveScore("fruitdrop", 200)

	high, err = store.HighScore("fruitdrop")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("fruitdrop", 100)
	store.SaveScore("fruitdrop_hardcore", 200)

	if err := store.ClearScores("fruitdrop"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("fruitdrop", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	other, _ := store.TopScores("fruitdrop_hardcore", 10)
	if len(other) != 1 {
		t.Errorf("Expected other mode to keep 1 score, got %d", len(other))
	}
}

func TestGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("fruitdrop")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveResult(RoundResult{GameID: "fruitdrop", Score: 10, MaxCombo: 2, TopRank: 3})
	store.SaveResult(RoundResult{GameID: "fruitdrop", Score: 30, MaxCombo: 4, TopRank: 6})

	stats, err := store.GetGameStats("fruitdrop")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.AvgScore != 20 || stats.TotalScore != 40 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.BestCombo != 4 || stats.TopRank != 6 {
		t.Errorf("BestCombo, TopRank = %d, %d, expected 4, 6", stats.BestCombo, stats.TopRank)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["fruitdrop"] == nil || all["fruitdrop"].GamesCount != 2 {
		t.Errorf("GetAllGamesStats() = %+v", all)
	}
}

func TestCounters(t *testing.T) {
	store := openTestStore(t)

	v, err := store.ReadCounter("missing")
	if err != nil || v != 0 {
		t.Errorf("ReadCounter(missing) = %d, %v, expected 0, nil", v, err)
	}

	if err := store.WriteCounter("best", 10); err != nil {
		t.Fatalf("WriteCounter() failed: %v", err)
	}
	if err := store.WriteCounter("best", 25); err != nil {
		t.Fatalf("WriteCounter() failed: %v", err)
	}
	if v, _ := store.ReadCounter("best"); v != 25 {
		t.Errorf("ReadCounter(best) = %d, expected 25", v)
	}
}

func TestCountersAdapterScopes(t *testing.T) {
	store := openTestStore(t)
	normal := NewCounters(store, "fruitdrop", nil)
	hardcore := NewCounters(store, "fruitdrop_hardcore", nil)

	normal.WriteInt("best_score", 120)
	hardcore.WriteInt("best_score", 40)

	if got := normal.ReadInt("best_score"); got != 120 {
		t.Errorf("normal best = %d, expected 120", got)
	}
	if got := hardcore.ReadInt("best_score"); got != 40 {
		t.Errorf("hardcore best = %d, expected 40", got)
	}
	if got := normal.ReadInt("games_played"); got != 0 {
		t.Errorf("unset counter = %d, expected 0", got)
	}
}

func TestCountersAdapterSurvivesClosedStore(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	c := NewCounters(store, "fruitdrop", nil)
	store.Close()

	c.WriteInt("best_score", 5)
	if got := c.ReadInt("best_score"); got != 0 {
		t.Errorf("ReadInt() on a closed store = %d, expected 0", got)
	}
}
