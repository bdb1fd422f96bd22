package progress

import (
	"sort"
	"time"

	"github.com/julianstephens/challenge-radar/internal/constants"
	"github.com/julianstephens/challenge-radar/internal/models"
	"github.com/julianstephens/challenge-radar/internal/utils"
)

// FilterCounts holds per-filter totals for one pass over the board.
type FilterCounts struct {
	Today     int
	Active    int
	Completed int
	Upcoming  int
	All       int
}

// Sorted returns the collection ordered for display: incomplete
// challenges before completed ones, ascending start date within each
// group. The sort is stable so ties keep their original order.
func Sorted(challenges []models.Challenge, ref time.Time) []models.Challenge {
	out := models.CloneAll(challenges)
	sort.SliceStable(out, func(i, j int) bool {
		iDone := Compute(out[i], ref).Status == constants.StatusCompleted
		jDone := Compute(out[j], ref).Status == constants.StatusCompleted
		if iDone != jDone {
			return !iDone
		}
		iStart, iErr := utils.ParseDay(out[i].StartDate)
		jStart, jErr := utils.ParseDay(out[j].StartDate)
		if iErr != nil || jErr != nil {
			return false
		}
		return iStart.Before(jStart)
	})
	return out
}

// upcoming reports whether the challenge's start day is still ahead of
// the reference instant.
func upcoming(c models.Challenge, ref time.Time) bool {
	start, err := utils.ParseDay(c.StartDate)
	if err != nil {
		return false
	}
	return start.After(ref)
}

// Matches evaluates one filter predicate against the reference instant.
// Callers should share a single instant across a whole pass so every
// predicate agrees on "now".
func Matches(c models.Challenge, filter constants.Filter, ref time.Time) bool {
	p := Compute(c, ref)
	switch filter {
	case constants.FilterToday, constants.FilterActive:
		return !upcoming(c, ref) && p.Status != constants.StatusCompleted
	case constants.FilterCompleted:
		return p.Status == constants.StatusCompleted
	case constants.FilterUpcoming:
		return upcoming(c, ref)
	default:
		return true
	}
}

// Filtered returns the subset of challenges matching the filter.
func Filtered(challenges []models.Challenge, filter constants.Filter, ref time.Time) []models.Challenge {
	out := make([]models.Challenge, 0, len(challenges))
	for _, c := range challenges {
		if Matches(c, filter, ref) {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Counts tallies every filter in one pass.
func Counts(challenges []models.Challenge, ref time.Time) FilterCounts {
	counts := FilterCounts{All: len(challenges)}
	for _, c := range challenges {
		p := Compute(c, ref)
		up := upcoming(c, ref)
		if !up && p.Status != constants.StatusCompleted {
			counts.Today++
			counts.Active++
		}
		if up {
			counts.Upcoming++
		}
		if p.Status == constants.StatusCompleted {
			counts.Completed++
		}
	}
	return counts
}

// BuildStats aggregates board-wide statistics. Completed is recomputed
// from check-in counts, never cached; check-ins count every true entry
// even ones dated before a challenge's start.
func BuildStats(challenges []models.Challenge, ref time.Time) models.Stats {
	stats := models.Stats{Total: len(challenges)}
	for _, c := range challenges {
		if Compute(c, ref).Done >= c.TotalDays {
			stats.Completed++
		}
		stats.CheckIns += c.CheckIns()
	}
	stats.Active = stats.Total - stats.Completed
	if stats.Active < 0 {
		stats.Active = 0
	}
	if stats.Total > 0 {
		stats.CompletionRate = int(float64(stats.Completed)/float64(stats.Total)*100 + 0.5)
	}
	return stats
}

// TodayFocus returns the first few started, unfinished challenges from
// the sorted board; the shortlist the user should act on today.
func TodayFocus(challenges []models.Challenge, ref time.Time) []models.Challenge {
	focus := make([]models.Challenge, 0, constants.TodayFocusLimit)
	for _, c := range Sorted(challenges, ref) {
		if upcoming(c, ref) || Compute(c, ref).Status == constants.StatusCompleted {
			continue
		}
		focus = append(focus, c)
		if len(focus) == constants.TodayFocusLimit {
			break
		}
	}
	return focus
}
