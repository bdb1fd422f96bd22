package models

import (
	"testing"
	"time"
)

func TestTouch(t *testing.T) {
	c := Challenge{ID: "a"}
	stamp := time.Date(2026, 1, 10, 8, 30, 0, 0, time.FixedZone("EST", -5*3600))
	c.Touch(stamp)

	if c.UpdatedAt != "2026-01-10T13:30:00Z" {
		t.Errorf("Touch() stamped %q, want UTC RFC 3339", c.UpdatedAt)
	}
}

func TestUpdatedTime(t *testing.T) {
	tests := []struct {
		name      string
		updatedAt string
		wantZero  bool
	}{
		{"valid", "2026-01-10T13:30:00Z", false},
		{"empty", "", true},
		{"garbage", "yesterday", true},
		{"date only", "2026-01-10", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Challenge{UpdatedAt: tt.updatedAt}
			got := c.UpdatedTime()
			if got.IsZero() != tt.wantZero {
				t.Errorf("UpdatedTime() = %v, wantZero = %v", got, tt.wantZero)
			}
		})
	}

	// A real stamp must beat a missing one.
	stamped := Challenge{UpdatedAt: "2000-01-01T00:00:00Z"}
	blank := Challenge{}
	if !stamped.UpdatedTime().After(blank.UpdatedTime()) {
		t.Error("a parseable stamp should order after a missing one")
	}
}

func TestCheckIns(t *testing.T) {
	c := Challenge{
		StartDate: "2026-01-10",
		Entries: map[string]bool{
			"2026-01-10": true,
			"2026-01-11": false,
			"2026-01-12": true,
			"2025-12-31": true, // before the start date, still counted
		},
	}
	if got := c.CheckIns(); got != 3 {
		t.Errorf("CheckIns() = %d, want 3", got)
	}

	empty := Challenge{}
	if got := empty.CheckIns(); got != 0 {
		t.Errorf("CheckIns() on empty challenge = %d, want 0", got)
	}
}

func TestClone(t *testing.T) {
	orig := Challenge{
		ID:      "a",
		Title:   "Original",
		Entries: map[string]bool{"2026-01-10": true},
	}

	clone := orig.Clone()
	clone.Entries["2026-01-11"] = true

	if len(orig.Entries) != 1 {
		t.Error("Clone() shares the entries map with the original")
	}
}

func TestCloneAll(t *testing.T) {
	src := []Challenge{
		{ID: "a", Entries: map[string]bool{"2026-01-10": true}},
		{ID: "b"},
	}

	out := CloneAll(src)
	if len(out) != 2 {
		t.Fatalf("CloneAll() returned %d items, want 2", len(out))
	}
	out[0].Entries["2026-01-11"] = true
	if len(src[0].Entries) != 1 {
		t.Error("CloneAll() shares entries maps with the source")
	}
}
