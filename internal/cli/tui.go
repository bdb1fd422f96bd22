package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/challenge-radar/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	defer ctx.Coord.Flush()

	ctx.Coord.Bootstrap(context.Background())

	p := tea.NewProgram(tui.NewModel(ctx.Coord), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
