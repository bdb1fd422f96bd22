package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/julianstephens/challenge-radar/internal/notifier"
	"github.com/julianstephens/challenge-radar/internal/reminder"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized board at %s\n", ctx.Store.GetConfigPath())
	return nil
}

type WatchCmd struct{}

// Run keeps the reminder scanner alive until interrupted. Reminders are
// delivered through the tray app; if it is not running the scan idles.
func (c *WatchCmd) Run(ctx *Context) error {
	n := notifier.New()
	if n.Permission() != notifier.PermissionGranted {
		fmt.Println("Notifications are not available (tray app not running); waiting anyway.")
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx.Coord.Bootstrap(runCtx)

	fmt.Println("Watching for due reminders. Press Ctrl+C to stop.")
	reminder.New(ctx.Coord, n).Run(runCtx)

	ctx.Coord.Flush()
	return nil
}
