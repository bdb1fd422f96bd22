// Package validation normalizes challenge input before it reaches the
// board. Problems are corrected by clamping or trimming where possible;
// only an unusable value is rejected.
package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/challenge-radar/internal/constants"
	"github.com/julianstephens/challenge-radar/internal/models"
	"github.com/julianstephens/challenge-radar/internal/utils"
)

// NormalizeChallenge trims free text, clamps the day count to at least
// one, and verifies date and time formats. It mutates the challenge in
// place and returns an error only for values that cannot be corrected.
func NormalizeChallenge(c *models.Challenge) error {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return fmt.Errorf("challenge title cannot be empty")
	}

	c.Description = strings.TrimSpace(c.Description)

	if c.TotalDays < 1 {
		c.TotalDays = 1
	}

	if c.StartDate == "" {
		c.StartDate = utils.TodayKey()
	}
	if !utils.ValidateDayFormat(c.StartDate) {
		return fmt.Errorf("invalid start date %q (expected YYYY-MM-DD)", c.StartDate)
	}

	if c.ReminderTime == "" {
		c.ReminderTime = constants.DefaultReminderTime
	}
	if !utils.ValidateClockFormat(c.ReminderTime) {
		return fmt.Errorf("invalid reminder time %q (expected HH:MM)", c.ReminderTime)
	}

	if c.Entries == nil {
		c.Entries = make(map[string]bool)
	}

	return nil
}
