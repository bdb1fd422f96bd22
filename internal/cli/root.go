package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/challenge-radar/internal/constants"
	"github.com/julianstephens/challenge-radar/internal/models"
	"github.com/julianstephens/challenge-radar/internal/progress"
	"github.com/julianstephens/challenge-radar/internal/remote"
	"github.com/julianstephens/challenge-radar/internal/storage"
	"github.com/julianstephens/challenge-radar/internal/sync"
)

// Context is handed to every command Run method.
type Context struct {
	Store  storage.Provider
	Client remote.Client
	Coord  *sync.Coordinator
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	behindStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	onTrackStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

// FindChallenge locates a challenge by id or by exact (case-insensitive)
// title.
func (c *Context) FindChallenge(ref string) (models.Challenge, error) {
	if challenge, ok := c.Coord.Find(ref); ok {
		return challenge, nil
	}
	for _, challenge := range c.Coord.Challenges() {
		if strings.EqualFold(challenge.Title, ref) {
			return challenge, nil
		}
	}
	return models.Challenge{}, fmt.Errorf("no challenge matching %q", ref)
}

// ParseFilter validates a filter name.
func ParseFilter(name string) (constants.Filter, error) {
	switch constants.Filter(name) {
	case constants.FilterToday, constants.FilterActive, constants.FilterCompleted,
		constants.FilterUpcoming, constants.FilterAll:
		return constants.Filter(name), nil
	default:
		return "", fmt.Errorf("unknown filter %q (today|active|completed|upcoming|all)", name)
	}
}

// FormatChallengeLine renders one board row.
func FormatChallengeLine(c models.Challenge, ref time.Time) string {
	p := progress.Compute(c, ref)

	var status string
	switch p.Status {
	case constants.StatusCompleted:
		status = completedStyle.Render("completed")
	case constants.StatusBehind:
		status = behindStyle.Render(fmt.Sprintf("behind (%d/%d expected)", p.Done, p.Expected))
	default:
		status = onTrackStyle.Render("on track")
	}

	return fmt.Sprintf("%s  %s\n   %s",
		titleStyle.Render(c.Title),
		mutedStyle.Render(fmt.Sprintf("starts %s, %d days", c.StartDate, c.TotalDays)),
		fmt.Sprintf("%3d%%  %d/%d done  %s  %s", p.Percent, p.Done, c.TotalDays, status, mutedStyle.Render("id "+c.ID)))
}
