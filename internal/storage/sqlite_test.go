package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arkanoid/internal/progress"
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

func openTestSync(t *testing.T) *SyncProgress {
	t.Helper()
	sync, err := OpenSync(context.Background(), filepath.Join(t.TempDir(), "sync", "progress.db"))
	if err != nil {
		t.Fatalf("OpenSync() failed: %v", err)
	}
	t.Cleanup(func() { sync.Close() })
	return sync
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("classic", "alice", s, 3); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("modern", "", 500, 7); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("TopScores() returned %d scores, expected 3", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("TopScores() = %v, expected 200, 100, 50", scores)
	}
	if scores[0].Profile != "alice" || scores[0].Level != 3 {
		t.Errorf("entry = %+v, expected alice on level 3", scores[0])
	}

	modern, err := store.TopScores("modern", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(modern) != 1 || modern[0].Profile != "default" {
		t.Errorf("modern scores = %+v, expected one default-profile entry", modern)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	for i := range 5 {
		store.SaveScore("classic", "p", (i+1)*100, 1)
	}

	scores, err := store.TopScores("classic", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("TopScores() returned %d, expected 3", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("TopScores() = %v, expected 500, 400, 300", scores)
	}
}

func TestStoreProfileScores(t *testing.T) {
	store := openTestStore(t)
	runs := []struct {
		profile string
		score   int
	}{
		{"alice", 300}, {"bob", 900}, {"alice", 700}, {"bob", 100}, {"alice", 50},
	}
	for _, r := range runs {
		if _, err := store.SaveScore("classic", r.profile, r.score, 2); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	tests := []struct {
		profile string
		limit   int
		want    []int
	}{
		{"alice", 10, []int{700, 300, 50}},
		{"alice", 2, []int{700, 300}},
		{"bob", 0, []int{900, 100}},
		{"carol", 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			scores, err := store.ProfileScores("classic", tt.profile, tt.limit)
			if err != nil {
				t.Fatalf("ProfileScores() failed: %v", err)
			}
			if len(scores) != len(tt.want) {
				t.Fatalf("ProfileScores() returned %d entries, expected %d", len(scores), len(tt.want))
			}
			for i, e := range scores {
				if e.Score != tt.want[i] || e.Profile != tt.profile {
					t.Errorf("entry %d = %s/%d, expected %s/%d", i, e.Profile, e.Score, tt.profile, tt.want[i])
				}
			}
		})
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d, expected 0", high)
	}

	store.SaveScore("classic", "p", 100, 1)
	store.SaveScore("classic", "p", 300, 2)
	store.SaveScore("classic", "p", 200, 2)

	high, err = store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("HighScore() = %d, expected 300", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("classic", "p", 100, 1)
	store.SaveScore("classic", "p", 200, 1)
	store.SaveScore("modern", "p", 300, 1)

	if err := store.ClearScores("classic"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	classic, _ := store.TopScores("classic", 10)
	if len(classic) != 0 {
		t.Errorf("classic scores = %d, expected 0", len(classic))
	}
	modern, _ := store.TopScores("modern", 10)
	if len(modern) != 1 {
		t.Errorf("modern scores = %d, expected 1", len(modern))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("classic", "p", 100, 2)
	store.SaveScore("classic", "p", 300, 9)

	stats, err := store.GameStats()
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	gs := stats["classic"]
	if gs == nil {
		t.Fatal("GameStats() has no classic entry")
	}
	if gs.GamesCount != 2 || gs.HighScore != 300 || gs.AvgScore != 200 || gs.BestLevel != 9 {
		t.Errorf("GameStats()[classic] = %+v", gs)
	}
	if _, ok := stats["modern"]; ok {
		t.Error("GameStats() reported an unplayed mode")
	}
}

func TestStoreProgressMaxMerge(t *testing.T) {
	store := openTestStore(t)

	level, err := store.LoadUnlocked("alice", "classic")
	if err != nil {
		t.Fatalf("LoadUnlocked() failed: %v", err)
	}
	if level != 1 {
		t.Errorf("LoadUnlocked() = %d, expected 1 for a new profile", level)
	}

	tests := []struct {
		save     int
		expected int
	}{
		{6, 6},
		{3, 6},
		{9, 9},
	}
	for _, tt := range tests {
		if err := store.SaveUnlocked("alice", "classic", tt.save); err != nil {
			t.Fatalf("SaveUnlocked(%d) failed: %v", tt.save, err)
		}
		got, _ := store.LoadUnlocked("alice", "classic")
		if got != tt.expected {
			t.Errorf("after SaveUnlocked(%d): LoadUnlocked() = %d, expected %d", tt.save, got, tt.expected)
		}
	}

	other, _ := store.LoadUnlocked("bob", "classic")
	if other != 1 {
		t.Errorf("other profile = %d, expected 1", other)
	}
}

func TestStoreProgressListAndReset(t *testing.T) {
	store := openTestStore(t)
	store.SaveUnlocked("alice", "classic", 12)
	store.SaveUnlocked("alice", "modern", 4)

	all, err := store.Progress("alice")
	if err != nil {
		t.Fatalf("Progress() failed: %v", err)
	}
	if all["classic"] != 12 || all["modern"] != 4 {
		t.Errorf("Progress() = %v", all)
	}

	if err := store.ResetUnlocked("alice", "classic"); err != nil {
		t.Fatalf("ResetUnlocked() failed: %v", err)
	}
	level, _ := store.LoadUnlocked("alice", "classic")
	if level != 1 {
		t.Errorf("LoadUnlocked() after reset = %d, expected 1", level)
	}
}

func TestSyncProgressHonoursContext(t *testing.T) {
	sync := openTestSync(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sync.LoadUnlocked(ctx, "alice", "classic"); err == nil {
		t.Error("LoadUnlocked() with a cancelled context succeeded")
	}

	if err := sync.SaveUnlocked(context.Background(), "alice", "classic", 8); err != nil {
		t.Fatalf("SaveUnlocked() failed: %v", err)
	}
	level, err := sync.LoadUnlocked(context.Background(), "alice", "classic")
	if err != nil || level != 8 {
		t.Errorf("LoadUnlocked() = %d, %v, expected 8", level, err)
	}
}

func TestTrackerOverStores(t *testing.T) {
	local := openTestStore(t)
	remote := openTestSync(t)
	if err := remote.SaveUnlocked(context.Background(), "alice", "classic", 3); err != nil {
		t.Fatal(err)
	}

	newTracker := func() *progress.Tracker {
		return progress.New(progress.Options{
			Profile:  "alice",
			Mode:     "classic",
			MaxLevel: 200,
			Local:    local,
			Remote:   remote,
			Logger:   log.New(io.Discard),
		})
	}

	tr := newTracker()
	if got := tr.Complete(5); got != 6 {
		t.Errorf("Complete(5) = %d, expected 6", got)
	}
	tr.Wait()
	tr.Wait()

	if tr.Unlocked() != 6 {
		t.Errorf("Unlocked() = %d, expected 6 after a lower remote value", tr.Unlocked())
	}
	if level, _ := local.LoadUnlocked("alice", "classic"); level != 6 {
		t.Errorf("local = %d, expected 6", level)
	}
	if level, _ := remote.LoadUnlocked(context.Background(), "alice", "classic"); level != 6 {
		t.Errorf("remote = %d, expected 6", level)
	}

	// A fresh tracker picks the value up from the local store.
	if again := newTracker(); again.Unlocked() != 6 {
		t.Errorf("reloaded Unlocked() = %d, expected 6", again.Unlocked())
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in, want string
	}{
		{"~/.arkanoid/arkanoid.db", filepath.Join(home, ".arkanoid", "arkanoid.db")},
		{"/tmp/x.db", "/tmp/x.db"},
		{"rel/x.db", "rel/x.db"},
	}
	for _, tt := range tests {
		got, err := expandHome(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("expandHome(%q) = %q, %v, expected %q", tt.in, got, err, tt.want)
		}
	}
}
