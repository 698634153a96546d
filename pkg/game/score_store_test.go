package game

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func openTestScoreStore(t *testing.T) *ScoreStore {
	t.Helper()
	store, err := OpenScoreStore("", zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenScoreStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestScoreStoreBestOrdering(t *testing.T) {
	store := openTestScoreStore(t)

	for _, kills := range []int{12, 40, 7, 40, 25} {
		if err := store.Record(&SessionRecord{Kills: kills, Stage: 1, Ships: 1}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	best, err := store.Best(3)
	if err != nil {
		t.Fatalf("Best failed: %v", err)
	}
	if len(best) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(best))
	}
	want := []int{40, 40, 25}
	for i, rec := range best {
		if rec.Kills != want[i] {
			t.Errorf("best[%d].Kills = %d, want %d", i, rec.Kills, want[i])
		}
	}
	if best[0].ID > best[1].ID {
		t.Error("Ties should be ordered by insertion")
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 5 {
		t.Errorf("Count = %d, want 5", count)
	}
}

func TestScoreStoreFilePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")

	store, err := OpenScoreStore(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenScoreStore failed: %v", err)
	}
	if err := store.Record(&SessionRecord{Kills: 99, Stage: 3, Victory: true, Ships: 2}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	store.Close()

	reopened, err := OpenScoreStore(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	best, err := reopened.Best(1)
	if err != nil {
		t.Fatalf("Best failed: %v", err)
	}
	if len(best) != 1 || best[0].Kills != 99 || !best[0].Victory {
		t.Errorf("Unexpected persisted record: %+v", best)
	}
}
