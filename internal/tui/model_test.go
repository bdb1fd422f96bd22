package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/challenge-radar/internal/constants"
	"github.com/julianstephens/challenge-radar/internal/models"
	"github.com/julianstephens/challenge-radar/internal/remote"
	"github.com/julianstephens/challenge-radar/internal/storage"
	"github.com/julianstephens/challenge-radar/internal/sync"
)

func newTestModel(t *testing.T, seed []models.Challenge) Model {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "board.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if len(seed) > 0 {
		if err := store.SaveChallenges(seed); err != nil {
			t.Fatalf("failed to seed store: %v", err)
		}
	}
	coord, err := sync.New(store, remote.NewDisabled())
	if err != nil {
		t.Fatalf("sync.New() returned unexpected error: %v", err)
	}
	return NewModel(coord)
}

func boardSeed() []models.Challenge {
	today := time.Now().Format(constants.DateFormat)
	return []models.Challenge{
		{
			ID: "a", Title: "Alpha", StartDate: today, TotalDays: 10,
			ReminderTime: "09:00", Entries: map[string]bool{},
		},
		{
			ID: "b", Title: "Beta", StartDate: today, TotalDays: 10,
			ReminderTime: "09:00", Entries: map[string]bool{},
		},
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelShowsBoard(t *testing.T) {
	m := newTestModel(t, boardSeed())

	if len(m.visible) != 2 {
		t.Fatalf("visible = %d challenges, want 2", len(m.visible))
	}
	view := m.View()
	if !strings.Contains(view, "Alpha") || !strings.Contains(view, "Beta") {
		t.Error("view does not render the board rows")
	}
	if !strings.Contains(view, "Challenge Radar") {
		t.Error("view lost its header")
	}
}

func TestEmptyBoardView(t *testing.T) {
	m := newTestModel(t, nil)
	if !strings.Contains(m.View(), "Nothing in this view") {
		t.Error("empty board should render the placeholder message")
	}
}

func TestCursorMovement(t *testing.T) {
	m := newTestModel(t, boardSeed())

	next, _ := m.Update(keyMsg("j"))
	m = next.(Model)
	if m.cursor != 1 {
		t.Errorf("cursor = %d after down, want 1", m.cursor)
	}

	// Clamp at the bottom.
	next, _ = m.Update(keyMsg("j"))
	m = next.(Model)
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1 at the last row", m.cursor)
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(Model)
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up, want 0", m.cursor)
	}
}

func TestFilterCycle(t *testing.T) {
	m := newTestModel(t, boardSeed())
	if m.filter != constants.FilterAll {
		t.Fatalf("initial filter = %q, want all", m.filter)
	}

	next, _ := m.Update(keyMsg("f"))
	m = next.(Model)
	if m.filter != constants.FilterToday {
		t.Errorf("filter = %q after one cycle, want today", m.filter)
	}

	for i := 0; i < len(filterCycle)-1; i++ {
		next, _ = m.Update(keyMsg("f"))
		m = next.(Model)
	}
	if m.filter != constants.FilterAll {
		t.Errorf("filter = %q after a full cycle, want all", m.filter)
	}
}

func TestCheckTogglesSelection(t *testing.T) {
	m := newTestModel(t, boardSeed())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if !strings.Contains(m.message, "Checked in: Alpha") {
		t.Errorf("message = %q, want a check-in confirmation", m.message)
	}
	today := time.Now().Format(constants.DateFormat)
	current, _ := m.coord.Find("a")
	if !current.Entries[today] {
		t.Error("check key did not toggle the selected challenge")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, nil)

	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	if !m.quitting {
		t.Error("quit key did not set the quitting flag")
	}
	if cmd == nil {
		t.Error("quit key should return the quit command")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestTickRefreshes(t *testing.T) {
	m := newTestModel(t, boardSeed())

	// Simulate an external mutation, then a tick.
	if _, err := m.coord.ToggleToday(nil, "a"); err != nil {
		t.Fatalf("ToggleToday() returned unexpected error: %v", err)
	}
	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)

	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	today := time.Now().Format(constants.DateFormat)
	found := false
	for _, c := range m.visible {
		if c.ID == "a" && c.Entries[today] {
			found = true
		}
	}
	if !found {
		t.Error("tick did not refresh the visible collection")
	}
}
