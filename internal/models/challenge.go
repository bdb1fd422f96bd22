package models

import (
	"time"

	"github.com/julianstephens/challenge-radar/internal/constants"
)

// Challenge is one tracked multi-day streak. Dates are day-granular
// YYYY-MM-DD keys; UpdatedAt is an RFC 3339 timestamp and is the sole
// ordering signal used during sync reconciliation.
type Challenge struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	StartDate    string          `json:"start_date"`            // YYYY-MM-DD
	TotalDays    int             `json:"total_days"`
	ReminderTime string          `json:"reminder_time"`         // HH:MM
	RemindersOn  bool            `json:"reminders_on"`
	Entries      map[string]bool `json:"entries"`               // day key -> checked in
	LastNotified string          `json:"last_notified,omitempty"` // YYYY-MM-DD
	UpdatedAt    string          `json:"updated_at,omitempty"`  // RFC 3339
}

// Touch stamps the challenge's last-mutation instant. Every synced
// mutation must refresh it so reconciliation can order the copies.
func (c *Challenge) Touch(now time.Time) {
	c.UpdatedAt = now.UTC().Format(time.RFC3339)
}

// UpdatedTime parses UpdatedAt. A missing or unparseable timestamp
// reports the zero time, which loses against any real one.
func (c *Challenge) UpdatedTime() time.Time {
	if c.UpdatedAt == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, c.UpdatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CheckIns counts true entries regardless of the start date. Board-wide
// stats use this raw count; per-challenge progress filters by start.
func (c *Challenge) CheckIns() int {
	count := 0
	for _, done := range c.Entries {
		if done {
			count++
		}
	}
	return count
}

// Clone returns a deep copy so callers can hand challenges out without
// sharing the entries map.
func (c Challenge) Clone() Challenge {
	entries := make(map[string]bool, len(c.Entries))
	for k, v := range c.Entries {
		entries[k] = v
	}
	c.Entries = entries
	return c
}

// CloneAll deep-copies a collection.
func CloneAll(challenges []Challenge) []Challenge {
	out := make([]Challenge, len(challenges))
	for i, c := range challenges {
		out[i] = c.Clone()
	}
	return out
}

// Progress is derived from a challenge and a reference instant; it is
// never persisted.
type Progress struct {
	Done     int
	Expected int
	Percent  int
	Status   constants.Status
}

// Stats aggregates counts over the full collection.
type Stats struct {
	Total          int
	Active         int
	Completed      int
	CompletionRate int
	CheckIns       int
}

// MergeConflict holds both snapshots found at hydration time. It lives
// only in memory and is cleared once a strategy is applied.
type MergeConflict struct {
	Local  []Challenge
	Remote []Challenge
}

// Template is a starter preset offered by the interactive add form.
type Template struct {
	Label        string
	Title        string
	Description  string
	TotalDays    int
	ReminderTime string
}

// Templates are the built-in challenge presets.
var Templates = []Template{
	{
		Label:        "30-day Photos",
		Title:        "30-Day Photo Sprint",
		Description:  "Shoot one photo daily that captures your mood.",
		TotalDays:    30,
		ReminderTime: "09:00",
	},
	{
		Label:        "21-day Move",
		Title:        "21-Day Move Streak",
		Description:  "15-minute movement every day.",
		TotalDays:    21,
		ReminderTime: "07:30",
	},
	{
		Label:        "14-day Reading",
		Title:        "14-Day Reading",
		Description:  "Read 10 pages daily.",
		TotalDays:    14,
		ReminderTime: "20:30",
	},
}
