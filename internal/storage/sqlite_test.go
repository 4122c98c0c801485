package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/snake-world/internal/core"
	"github.com/vovakirdan/snake-world/internal/world"
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
	dbPath := filepath.Join(tmpDir, "test.db")

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

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.snakeworld/runs.db")
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(home, ".snakeworld", "runs.db"))
	assert.NoError(t, err)
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for seed := int64(1); seed <= 3; seed++ {
		_, err := store.SaveRun(RunSummary{Seed: seed, Width: 11, Height: 9, Spawned: int(seed)})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Newest first
	for i, expected := range []int64{3, 2, 1} {
		if runs[i].Seed != expected {
			t.Errorf("runs[%d].Seed = %d, expected %d", i, runs[i].Seed, expected)
		}
	}

	for _, r := range runs {
		_, err := ulid.ParseStrict(r.RunID)
		assert.NoError(t, err, "run id %q should be a ULID", r.RunID)
		assert.Equal(t, uint16(11), r.Width)
		assert.Equal(t, uint16(9), r.Height)
		assert.False(t, r.CreatedAt.IsZero(), "created_at should be parsed")
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(RunSummary{Seed: int64(i)})
	}

	runs, err := store.RecentRuns(3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, int64(4), runs[0].Seed)
	assert.Equal(t, int64(2), runs[2].Seed)

	// Non-positive limit falls back to the default page size.
	runs, err = store.RecentRuns(0)
	require.NoError(t, err)
	assert.Len(t, runs, 5)
}

func TestStoreRunByID(t *testing.T) {
	store := openTestStore(t)

	runID := store.NewRunID()
	want := RunSummary{
		RunID:    runID,
		Seed:     42,
		Width:    21,
		Height:   17,
		Offset:   2,
		Spawned:  6,
		Cherries: 3,
		Mice:     2,
		Bombs:    1,
		NetMeals: -3,
	}
	id, err := store.SaveRun(want)
	require.NoError(t, err)

	got, err := store.RunByID(runID)
	require.NoError(t, err)
	require.NotNil(t, got)

	want.ID = id
	want.CreatedAt = got.CreatedAt
	assert.Equal(t, want, *got)

	missing, err := store.RunByID(store.NewRunID())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStoreSaveRunRejectsBadID(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveRun(RunSummary{RunID: "not-a-ulid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid run id")
}

func TestStoreSaveRunDuplicateID(t *testing.T) {
	store := openTestStore(t)

	run := RunSummary{RunID: store.NewRunID()}
	_, err := store.SaveRun(run)
	require.NoError(t, err)

	_, err = store.SaveRun(run)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage: cannot save run")
}

func TestStoreKindTotals(t *testing.T) {
	store := openTestStore(t)

	totals, err := store.KindTotals()
	require.NoError(t, err)
	assert.Equal(t, map[world.FoodKind]int{world.Cherry: 0, world.Mouse: 0, world.Bomb: 0}, totals)

	store.SaveRun(RunSummary{Cherries: 3, Mice: 1, Bombs: 0})
	store.SaveRun(RunSummary{Cherries: 1, Mice: 4, Bombs: 2})

	totals, err = store.KindTotals()
	require.NoError(t, err)
	assert.Equal(t, map[world.FoodKind]int{world.Cherry: 4, world.Mouse: 5, world.Bomb: 2}, totals)
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunSummary{Seed: 1})
	store.SaveRun(RunSummary{Seed: 2})

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.RecentRuns(10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
}

func TestSummaryFromTally(t *testing.T) {
	tally := world.NewTally()
	tally.Add(world.NewFood(world.Cherry, core.Pos(2, 2)))
	tally.Add(world.NewFood(world.Cherry, core.Pos(3, 2)))
	tally.Add(world.NewFood(world.Mouse, core.Pos(4, 5)))
	tally.Add(world.NewFood(world.Bomb, core.Pos(6, 3)))

	s := SummaryFromTally(7, 11, 9, 1, tally)

	assert.Equal(t, RunSummary{
		Seed:     7,
		Width:    11,
		Height:   9,
		Offset:   1,
		Spawned:  4,
		Cherries: 2,
		Mice:     1,
		Bombs:    1,
		NetMeals: -6,
	}, s)
}
