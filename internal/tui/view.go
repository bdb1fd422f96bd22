package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/challenge-radar/internal/constants"
	"github.com/julianstephens/challenge-radar/internal/models"
	"github.com/julianstephens/challenge-radar/internal/progress"
	"github.com/julianstephens/challenge-radar/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	now := time.Now()
	var b strings.Builder

	b.WriteString(headerStyle.Render("Challenge Radar"))
	b.WriteString("\n")

	stats := progress.BuildStats(m.coord.Challenges(), now)
	counts := progress.Counts(m.coord.Challenges(), now)
	b.WriteString(statsStyle.Render(fmt.Sprintf(
		"%d challenges · %d active · %d completed (%d%%) · %d check-ins · filter: %s (%d)",
		stats.Total, stats.Active, stats.Completed, stats.CompletionRate,
		stats.CheckIns, m.filter, countFor(counts, m.filter))))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(mutedStyle.Render("  Nothing in this view. Try another filter or create a new challenge."))
		b.WriteString("\n")
	}

	today := utils.DayKey(now)
	for i, challenge := range m.visible {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		marker := "[ ]"
		if challenge.Entries[today] {
			marker = "[x]"
		}

		b.WriteString(fmt.Sprintf("%s%s %s %s\n", cursor, marker,
			titleStyle.Render(challenge.Title), renderProgress(challenge, now)))
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(messageStyle.Render(m.message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func renderProgress(c models.Challenge, now time.Time) string {
	p := progress.Compute(c, now)

	var status string
	switch p.Status {
	case constants.StatusCompleted:
		status = completedStyle.Render("completed")
	case constants.StatusBehind:
		status = behindStyle.Render("behind")
	default:
		status = onTrackStyle.Render("on track")
	}

	return mutedStyle.Render(fmt.Sprintf("%d/%d · %d%% · ", p.Done, c.TotalDays, p.Percent)) + status
}

func countFor(counts progress.FilterCounts, filter constants.Filter) int {
	switch filter {
	case constants.FilterToday:
		return counts.Today
	case constants.FilterActive:
		return counts.Active
	case constants.FilterCompleted:
		return counts.Completed
	case constants.FilterUpcoming:
		return counts.Upcoming
	default:
		return counts.All
	}
}
