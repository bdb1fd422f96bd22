package remote

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/challenge-radar/internal/models"
)

// challengeRow is the persisted column shape. Column names are
// snake_case, entries travel as an opaque JSON blob, and optional fields
// map to nullable columns. The mapping must round-trip losslessly.
type challengeRow struct {
	ID           string
	OwnerID      string
	Title        string
	Description  sql.NullString
	StartDate    string
	TotalDays    int
	ReminderTime string
	RemindersOn  bool
	Entries      []byte
	LastNotified sql.NullString
	UpdatedAt    sql.NullString
}

func newChallengeRow(c models.Challenge, ownerID string) (challengeRow, error) {
	entries := c.Entries
	if entries == nil {
		entries = map[string]bool{}
	}
	blob, err := json.Marshal(entries)
	if err != nil {
		return challengeRow{}, fmt.Errorf("failed to serialize entries for %s: %w", c.ID, err)
	}

	return challengeRow{
		ID:           c.ID,
		OwnerID:      ownerID,
		Title:        c.Title,
		Description:  nullable(c.Description),
		StartDate:    c.StartDate,
		TotalDays:    c.TotalDays,
		ReminderTime: c.ReminderTime,
		RemindersOn:  c.RemindersOn,
		Entries:      blob,
		LastNotified: nullable(c.LastNotified),
		UpdatedAt:    nullable(c.UpdatedAt),
	}, nil
}

func (r challengeRow) challenge() (models.Challenge, error) {
	entries := map[string]bool{}
	if len(r.Entries) > 0 {
		if err := json.Unmarshal(r.Entries, &entries); err != nil {
			return models.Challenge{}, fmt.Errorf("failed to parse entries for %s: %w", r.ID, err)
		}
	}

	return models.Challenge{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description.String,
		StartDate:    r.StartDate,
		TotalDays:    r.TotalDays,
		ReminderTime: r.ReminderTime,
		RemindersOn:  r.RemindersOn,
		Entries:      entries,
		LastNotified: r.LastNotified.String,
		UpdatedAt:    r.UpdatedAt.String,
	}, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
