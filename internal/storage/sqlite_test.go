package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreKV(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want absent", ok, err)
	}

	if err := store.Set("gameSettings", []byte("gameDuration: 30\n")); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	got, ok, err := store.Get("gameSettings")
	if err != nil || !ok {
		t.Fatalf("Get() = ok=%v err=%v", ok, err)
	}
	if string(got) != "gameDuration: 30\n" {
		t.Errorf("Get() = %q", got)
	}

	// Overwrite
	if err := store.Set("gameSettings", []byte("v2")); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}
	got, _, _ = store.Get("gameSettings")
	if string(got) != "v2" {
		t.Errorf("Get() after overwrite = %q, want v2", got)
	}

	if err := store.Delete("gameSettings"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := store.Get("gameSettings"); ok {
		t.Error("key should be gone after Delete")
	}
}

func TestStoreKVPersistsAcrossOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "persist.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Set("highScores", []byte("- name: ann\n  score: 3\n")); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	store.Close()

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	if _, ok, err := reopened.Get("highScores"); err != nil || !ok {
		t.Errorf("value lost across reopen: ok=%v err=%v", ok, err)
	}
}

func TestStoreClosedIsUnavailable(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "closed.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.Close()

	if _, _, err := store.Get("k"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Get on closed store err = %v, want ErrUnavailable", err)
	}
	if err := store.Set("k", []byte("v")); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Set on closed store err = %v, want ErrUnavailable", err)
	}
}

func TestStoreMemoryPath(t *testing.T) {
	store, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer store.Close()

	if err := store.Set("a", []byte("1")); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if _, ok, _ := store.Get("a"); !ok {
		t.Error("in-memory database lost a value")
	}
}

func TestStoreSaveAndRetrieveRounds(t *testing.T) {
	store := openTestStore(t)

	rounds := []RoundRecord{
		{PlayerName: "ann", Score: 100, Duration: 60, MaxBubbles: 15, Pops: 40},
		{PlayerName: "bob", Score: 50, Duration: 60, MaxBubbles: 15, Pops: 20},
		{PlayerName: "cat", Score: 200, Duration: 30, MaxBubbles: 10, Pops: 70, BestStreak: 4},
		{PlayerName: "dan", Score: 100, Duration: 60, MaxBubbles: 15, Pops: 35, EndedEarly: true},
	}
	for _, r := range rounds {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	top, err := store.TopRounds(10)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(top) != 4 {
		t.Fatalf("Expected 4 rounds, got %d", len(top))
	}

	wantOrder := []string{"cat", "ann", "dan", "bob"}
	for i, name := range wantOrder {
		if top[i].PlayerName != name {
			t.Errorf("TopRounds[%d] = %s, want %s", i, top[i].PlayerName, name)
		}
	}
	if top[0].BestStreak != 4 || top[0].Duration != 30 {
		t.Errorf("round fields not round-tripped: %+v", top[0])
	}
	if !top[2].EndedEarly {
		t.Error("EndedEarly not round-tripped")
	}

	limited, _ := store.TopRounds(2)
	if len(limited) != 2 {
		t.Errorf("Expected 2 rounds with limit, got %d", len(limited))
	}
}

func TestStoreRecentAndPlayerRounds(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRound(RoundRecord{PlayerName: "ann", Score: i})
	}
	store.SaveRound(RoundRecord{PlayerName: "bob", Score: 99})

	recent, err := store.RecentRounds(3)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(recent) != 3 || recent[0].PlayerName != "bob" || recent[1].Score != 4 {
		t.Errorf("RecentRounds() not most-recent-first: %+v", recent)
	}

	ann, err := store.PlayerRounds("ann", 0)
	if err != nil {
		t.Fatalf("PlayerRounds() failed: %v", err)
	}
	if len(ann) != 5 {
		t.Errorf("Expected 5 rounds for ann, got %d", len(ann))
	}
}

func TestStoreHighScoreAndStats(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty history, got %d", high)
	}

	store.SaveRound(RoundRecord{PlayerName: "a", Score: 10, Pops: 5})
	store.SaveRound(RoundRecord{PlayerName: "b", Score: 30, Pops: 7})
	store.SaveRound(RoundRecord{PlayerName: "c", Score: 20, Pops: 8})

	high, _ = store.HighScore()
	if high != 30 {
		t.Errorf("Expected high score of 30, got %d", high)
	}

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.RoundsCount != 3 || stats.HighScore != 30 || stats.TotalPops != 20 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %f, want 20", stats.AvgScore)
	}
}

func TestStoreClearRounds(t *testing.T) {
	store := openTestStore(t)

	store.SaveRound(RoundRecord{PlayerName: "a", Score: 10})
	store.Set("gameSettings", []byte("x"))

	if err := store.ClearRounds(); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}

	rounds, _ := store.TopRounds(10)
	if len(rounds) != 0 {
		t.Errorf("Expected 0 rounds after clear, got %d", len(rounds))
	}
	if _, ok, _ := store.Get("gameSettings"); !ok {
		t.Error("ClearRounds must not touch the key-value table")
	}
}

func TestMemoryKV(t *testing.T) {
	m := NewMemory()

	if _, ok, _ := m.Get("k"); ok {
		t.Fatal("empty memory store returned a value")
	}

	value := []byte("abc")
	m.Set("k", value)
	value[0] = 'X'

	got, ok, err := m.Get("k")
	if err != nil || !ok || string(got) != "abc" {
		t.Errorf("Get() = %q ok=%v err=%v, want abc", got, ok, err)
	}

	got[1] = 'Y'
	again, _, _ := m.Get("k")
	if string(again) != "abc" {
		t.Error("Memory must copy values on Get")
	}
}
