package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/challenge-radar/internal/constants"
	"github.com/julianstephens/challenge-radar/internal/models"
	"github.com/julianstephens/challenge-radar/internal/progress"
	"github.com/julianstephens/challenge-radar/internal/sync"
)

// filterCycle is the order the filter key steps through.
var filterCycle = []constants.Filter{
	constants.FilterAll,
	constants.FilterToday,
	constants.FilterCompleted,
	constants.FilterUpcoming,
}

// tickMsg refreshes derived progress so the board stays current across
// midnight and reminder updates.
type tickMsg time.Time

type Model struct {
	coord    *sync.Coordinator
	keys     KeyMap
	help     help.Model
	filter   constants.Filter
	visible  []models.Challenge
	cursor   int
	message  string
	quitting bool
	width    int
}

func NewModel(coord *sync.Coordinator) Model {
	m := Model{
		coord:  coord,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		filter: constants.FilterAll,
	}
	m.refresh(time.Now())
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh rebuilds the visible slice from the coordinator's collection.
func (m *Model) refresh(now time.Time) {
	sorted := progress.Sorted(m.coord.Challenges(), now)
	m.visible = progress.Filtered(sorted, m.filter, now)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selected() (models.Challenge, bool) {
	if len(m.visible) == 0 {
		return models.Challenge{}, false
	}
	return m.visible[m.cursor], true
}
