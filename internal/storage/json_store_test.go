package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/challenge-radar/internal/constants"
	"github.com/julianstephens/challenge-radar/internal/models"
)

func testChallenge(id string) models.Challenge {
	return models.Challenge{
		ID:           id,
		Title:        "Challenge " + id,
		StartDate:    "2026-01-05",
		TotalDays:    10,
		ReminderTime: "09:00",
		Entries:      map[string]bool{"2026-01-05": true},
		UpdatedAt:    "2026-01-05T09:00:00Z",
	}
}

func TestJSONStoreInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "board.json")
	store := NewJSONStore(path)

	if err := store.Init(); err != nil {
		t.Fatalf("Init() returned unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Init() did not create the board file: %v", err)
	}

	// Second init must refuse to clobber existing data.
	if err := store.Init(); err == nil {
		t.Error("Init() succeeded over an existing board file")
	}
}

func TestJSONStoreLoadMissing(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "board.json"))
	if err := store.Load(); err == nil {
		t.Error("Load() succeeded on a missing board file")
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "board.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() returned unexpected error: %v", err)
	}

	want := []models.Challenge{testChallenge("a"), testChallenge("b")}
	if err := store.SaveChallenges(want); err != nil {
		t.Fatalf("SaveChallenges() returned unexpected error: %v", err)
	}

	// Re-open from disk to prove the data persisted.
	reopened := NewJSONStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	got, err := reopened.GetChallenges()
	if err != nil {
		t.Fatalf("GetChallenges() returned unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("GetChallenges() = %v, want %v", got, want)
	}
	if !got[0].Entries["2026-01-05"] {
		t.Error("entries were lost in the round trip")
	}
}

func TestJSONStoreFileLayout(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "board.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() returned unexpected error: %v", err)
	}
	if err := store.SaveChallenges([]models.Challenge{testChallenge("a")}); err != nil {
		t.Fatalf("SaveChallenges() returned unexpected error: %v", err)
	}

	data, err := os.ReadFile(store.GetConfigPath())
	if err != nil {
		t.Fatalf("failed to read board file: %v", err)
	}
	var file map[string]json.RawMessage
	if err := json.Unmarshal(data, &file); err != nil {
		t.Fatalf("board file is not valid JSON: %v", err)
	}
	if _, ok := file[constants.StorageKey]; !ok {
		t.Errorf("board file lacks the versioned storage key %q", constants.StorageKey)
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() on a corrupt file must not fail, got: %v", err)
	}
	got, err := store.GetChallenges()
	if err != nil {
		t.Fatalf("GetChallenges() returned unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("corrupt file should load as empty, got %v", got)
	}
}

func TestJSONStoreMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	if err := os.WriteFile(path, []byte(`{"some-other-key": []}`), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	got, _ := store.GetChallenges()
	if len(got) != 0 {
		t.Errorf("unknown keys should load as empty, got %v", got)
	}
}

func TestJSONStoreReturnsClones(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "board.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() returned unexpected error: %v", err)
	}
	if err := store.SaveChallenges([]models.Challenge{testChallenge("a")}); err != nil {
		t.Fatalf("SaveChallenges() returned unexpected error: %v", err)
	}

	first, _ := store.GetChallenges()
	first[0].Entries["2026-01-06"] = true

	second, _ := store.GetChallenges()
	if second[0].Entries["2026-01-06"] {
		t.Error("GetChallenges() hands out shared entries maps")
	}
}
