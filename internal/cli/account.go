package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/challenge-radar/internal/constants"
	"github.com/julianstephens/challenge-radar/internal/sync"
)

type AccountCmd struct {
	SignIn  SignInCmd  `cmd:"" help:"Sign in to cloud sync."`
	SignOut SignOutCmd `cmd:"" help:"Sign out of cloud sync."`
	Status  StatusCmd  `cmd:"" help:"Show sync status."`
}

type SignInCmd struct {
	Email string `arg:"" help:"Account email."`
}

func (c *SignInCmd) Run(ctx *Context) error {
	defer ctx.Coord.Flush()

	if err := ctx.Coord.SignIn(context.Background(), c.Email); err != nil {
		return err
	}

	if msg := ctx.Coord.Message(); msg != "" {
		fmt.Println(msg)
	}
	if ctx.Coord.State() == sync.StateConflictPending {
		fmt.Println("Run 'radar resolve' to choose a merge strategy.")
	} else if session := ctx.Coord.Session(); session != nil {
		fmt.Printf("Signed in as %s\n", session.Email)
	}
	return nil
}

type SignOutCmd struct{}

func (c *SignOutCmd) Run(ctx *Context) error {
	if err := ctx.Coord.SignOut(context.Background()); err != nil {
		return err
	}
	fmt.Println(ctx.Coord.Message())
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	session := ctx.Coord.Session()
	if session == nil {
		if ctx.Client.Available() {
			fmt.Println("Not signed in. Local data stays on this device.")
		} else {
			fmt.Println("Cloud sync is not configured. Local data stays on this device.")
		}
		return nil
	}

	ctx.Coord.Bootstrap(context.Background())
	fmt.Printf("Signed in as %s (%s)\n", session.Email, ctx.Coord.State())
	if msg := ctx.Coord.Message(); msg != "" {
		fmt.Println(msg)
	}
	return nil
}

type SyncCmd struct{}

func (c *SyncCmd) Run(ctx *Context) error {
	defer ctx.Coord.Flush()

	if ctx.Coord.Session() == nil {
		fmt.Println("Not signed in, nothing to sync.")
		return nil
	}

	ctx.Coord.Bootstrap(context.Background())
	if msg := ctx.Coord.Message(); msg != "" {
		fmt.Println(msg)
	}
	if ctx.Coord.State() == sync.StateConflictPending {
		fmt.Println("Run 'radar resolve' to choose a merge strategy.")
	}
	return nil
}

type ResolveCmd struct {
	Strategy string `help:"Resolution strategy: remote, local, or merge." enum:",remote,local,merge" default:""`
}

func (c *ResolveCmd) Run(ctx *Context) error {
	defer ctx.Coord.Flush()

	// Re-detect the divergence for this process before resolving.
	ctx.Coord.Bootstrap(context.Background())

	conflict := ctx.Coord.Conflict()
	if conflict == nil {
		fmt.Println("No sync conflict to resolve.")
		return nil
	}

	strategy := constants.Strategy(c.Strategy)
	if strategy == "" {
		picked, err := pickStrategy(len(conflict.Local), len(conflict.Remote))
		if err != nil {
			return err
		}
		strategy = picked
	}

	if err := ctx.Coord.Resolve(context.Background(), strategy); err != nil {
		return err
	}

	fmt.Println(ctx.Coord.Message())
	return nil
}

func pickStrategy(localCount, remoteCount int) (constants.Strategy, error) {
	var strategy constants.Strategy
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[constants.Strategy]().
			Title("Found data in cloud and on this device. Choose how to merge.").
			Options(
				huh.NewOption(fmt.Sprintf("Keep cloud data (%d challenges)", remoteCount), constants.StrategyRemote),
				huh.NewOption(fmt.Sprintf("Keep this device's data (%d challenges)", localCount), constants.StrategyLocal),
				huh.NewOption("Merge both, newest edit wins", constants.StrategyMerge),
			).
			Value(&strategy),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return strategy, nil
}
