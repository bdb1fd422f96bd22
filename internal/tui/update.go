package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.refresh(time.Time(msg))
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Filter):
			for i, f := range filterCycle {
				if f == m.filter {
					m.filter = filterCycle[(i+1)%len(filterCycle)]
					break
				}
			}
			m.cursor = 0
			m.refresh(time.Now())
			return m, nil

		case key.Matches(msg, m.keys.Check):
			if challenge, ok := m.selected(); ok {
				checked, err := m.coord.ToggleToday(context.Background(), challenge.ID)
				switch {
				case err != nil:
					m.message = err.Error()
				case checked:
					m.message = fmt.Sprintf("Checked in: %s", challenge.Title)
				default:
					m.message = fmt.Sprintf("Unchecked today for: %s", challenge.Title)
				}
				m.refresh(time.Now())
			}
			return m, nil

		case key.Matches(msg, m.keys.Reminders):
			if challenge, ok := m.selected(); ok {
				on, err := m.coord.ToggleReminders(context.Background(), challenge.ID)
				switch {
				case err != nil:
					m.message = err.Error()
				case on:
					m.message = fmt.Sprintf("Reminders on for: %s", challenge.Title)
				default:
					m.message = fmt.Sprintf("Reminders off for: %s", challenge.Title)
				}
				m.refresh(time.Now())
			}
			return m, nil
		}
	}

	return m, nil
}
