package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/challenge-radar/internal/cli"
	"github.com/julianstephens/challenge-radar/internal/constants"
	"github.com/julianstephens/challenge-radar/internal/keyring"
	"github.com/julianstephens/challenge-radar/internal/logger"
	"github.com/julianstephens/challenge-radar/internal/remote"
	"github.com/julianstephens/challenge-radar/internal/storage"
	"github.com/julianstephens/challenge-radar/internal/sync"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Board file path. A .db suffix selects SQLite storage." default:"~/.config/challenge-radar/board.json"`
	Debug   bool   `help:"Enable debug logging."`

	Init    cli.InitCmd    `cmd:"" help:"Initialize the local board."`
	Tui     cli.TuiCmd     `cmd:"" default:"1" help:"Launch the interactive board."`
	Add     cli.AddCmd     `cmd:"" help:"Add a new challenge."`
	List    cli.ListCmd    `cmd:"" help:"List challenges."`
	Today   cli.TodayCmd   `cmd:"" help:"Show today's check-in shortlist."`
	Check   cli.CheckCmd   `cmd:"" help:"Toggle today's check-in for a challenge."`
	Edit    cli.EditCmd    `cmd:"" help:"Edit a challenge."`
	Remove  cli.RemoveCmd  `cmd:"" help:"Remove a challenge."`
	Stats   cli.StatsCmd   `cmd:"" help:"Show board statistics."`
	Export  cli.ExportCmd  `cmd:"" help:"Export a challenge as a calendar file."`
	Watch   cli.WatchCmd   `cmd:"" help:"Run the reminder scanner."`
	Account cli.AccountCmd `cmd:"" help:"Manage cloud sync sign-in."`
	Sync    cli.SyncCmd    `cmd:"" help:"Pull and reconcile with the cloud now."`
	Resolve cli.ResolveCmd `cmd:"" help:"Resolve a pending sync conflict."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("radar"),
		kong.Description("Personal habit board: multi-day challenges with daily check-ins"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := expandHome(CLI.Config)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(configPath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var store storage.Provider
	if strings.HasSuffix(configPath, ".db") {
		store = storage.NewSQLiteStore(configPath)
	} else {
		store = storage.NewJSONStore(configPath)
	}

	client := buildRemoteClient()

	appCtx := &cli.Context{
		Store:  store,
		Client: client,
	}

	// The init command creates storage itself; every other command needs
	// it loaded and a coordinator over it.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		coord, err := sync.New(store, client)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		appCtx.Coord = coord
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildRemoteClient wires the cloud store when a connection string is
// configured, from the environment or the OS keyring. Credentials must
// never be embedded in the string itself.
func buildRemoteClient() remote.Client {
	connStr := os.Getenv("RADAR_DB_CONNECTION")
	if connStr == "" {
		if stored, err := keyring.Get(constants.KeyringConnectionKey); err == nil {
			connStr = stored
		}
	}
	if connStr == "" {
		return remote.NewDisabled()
	}

	if remote.HasEmbeddedCredentials(connStr) {
		fmt.Fprintln(os.Stderr, "Error: connection strings with embedded credentials are not allowed.")
		fmt.Fprintln(os.Stderr, "       Use the OS keyring, RADAR_DB_CONNECTION, or a .pgpass file instead.")
		os.Exit(1)
	}

	return remote.NewPostgresClient(connStr)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
