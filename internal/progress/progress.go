// Package progress derives completion state from a challenge's check-in
// history. All functions are pure: the same challenge and reference
// instant always produce the same result.
package progress

import (
	"time"

	"github.com/julianstephens/challenge-radar/internal/constants"
	"github.com/julianstephens/challenge-radar/internal/models"
	"github.com/julianstephens/challenge-radar/internal/utils"
)

// Compute derives {done, expected, percent, status} for one challenge at
// the given reference instant.
//
// Expected counts the start day as day 1 and is zero before the start.
// Entries dated before the start day never count toward done; neither do
// entries with malformed day keys. Completed takes priority over behind.
func Compute(c models.Challenge, ref time.Time) models.Progress {
	elapsed, err := utils.DaysBetween(c.StartDate, ref)
	if err != nil {
		// Unparseable start date: treat the challenge as not yet started.
		elapsed = -1
	}

	expected := 0
	if elapsed >= 0 {
		expected = elapsed + 1
		if expected > c.TotalDays {
			expected = c.TotalDays
		}
	}

	start, startErr := utils.ParseDay(c.StartDate)
	done := 0
	for day, checked := range c.Entries {
		if !checked {
			continue
		}
		entryDay, err := utils.ParseDay(day)
		if err != nil || startErr != nil {
			continue
		}
		if !entryDay.Before(start) {
			done++
		}
	}

	percent := 0
	if c.TotalDays > 0 {
		percent = int(float64(done)/float64(c.TotalDays)*100 + 0.5)
		if percent > 100 {
			percent = 100
		}
	}

	status := constants.StatusOnTrack
	switch {
	case done >= c.TotalDays:
		status = constants.StatusCompleted
	case expected > done:
		status = constants.StatusBehind
	}

	return models.Progress{
		Done:     done,
		Expected: expected,
		Percent:  percent,
		Status:   status,
	}
}

// ComputeNow derives progress against the current instant.
func ComputeNow(c models.Challenge) models.Progress {
	return Compute(c, time.Now())
}
