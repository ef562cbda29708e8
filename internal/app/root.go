package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
	"github.com/blackwell-systems/filmshelf/internal/config"
	ghclient "github.com/blackwell-systems/filmshelf/internal/github"
	"github.com/blackwell-systems/filmshelf/internal/logging"
	"github.com/blackwell-systems/filmshelf/internal/query"
	"github.com/blackwell-systems/filmshelf/internal/storage"
	"github.com/blackwell-systems/filmshelf/internal/store"
	"github.com/blackwell-systems/filmshelf/internal/tui"
	"github.com/blackwell-systems/filmshelf/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	gh      *ghclient.Client
	logger  *slog.Logger
	st      *store.Store
	backend storage.Backend

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
)

// noLibrary marks commands that run without opening the film library.
const noLibrary = "filmshelf/no-library"

// closeTimeout bounds the final remote push when the CLI exits.
const closeTimeout = 30 * time.Second

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "filmshelf",
		Short: "Catalog, search and browse a personal film collection",
		Long: `filmshelf keeps a catalog of the films you own.

Films live in a local data directory (YAML files or a bbolt database).
Optionally the catalog is backed up to a GitHub repository and restored
from it on the next start.

Run 'filmshelf' with no arguments to browse the collection interactively.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui.ShouldUseTUI(cmd) {
				return runBrowse(cmd, query.Query{Sort: defaultSort()})
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/filmshelf/config.yml)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger, err = logging.Setup(&cfg.Log)
		if err != nil {
			return err
		}
		if cfg.Remote.Token != "" {
			gh = ghclient.New(cfg.Remote.Token, cfg.Remote.APIBase)
		} else {
			gh = nil
		}

		if cmd.Annotations[noLibrary] == "true" || cmd.Name() == "help" {
			return nil
		}
		return openLibrary()
	}

	root.AddCommand(
		newInitCmd(),
		newAddCmd(),
		newImportCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newShowCmd(),
		newListCmd(),
		newSearchCmd(),
		newHistoryCmd(),
		newRecentCmd(),
		newStatsCmd(),
		newFacetsCmd(),
		newExportCmd(),
		newLookupCmd(),
		newSyncCmd(),
		newStatusCmd(),
		newBrowseCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)
	return root
}

// Execute is the entry point called from main.
func Execute() {
	err := rootCmd.Execute()
	if cerr := closeLibrary(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

// openLibrary opens the configured backend and the store on top of it,
// attaching the GitHub backup when it is enabled and has a token.
func openLibrary() error {
	b, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return err
	}

	opts := []store.Option{
		store.WithLogger(logger),
		store.WithSearchCache(cfg.Search.CacheSize, cfg.Search.CacheTTL),
	}
	if cfg.RemoteReady() {
		remote := catalog.NewManager(gh, cfg.Remote.Owner, cfg.Remote.Repo, cfg.Remote.EffectiveRemotePath())
		opts = append(opts, store.WithRemote(remote))
	} else if cfg.Remote.Enabled {
		warn("Remote backup is enabled but not ready (set %s and remote.owner/remote.repo)", cfg.Remote.TokenEnv)
	}

	s, err := store.Open(b, opts...)
	if err != nil {
		_ = b.Close()
		return fmt.Errorf("opening library: %w", err)
	}
	st, backend = s, b
	return nil
}

// closeLibrary waits for the last remote push and releases the backend.
func closeLibrary() error {
	if st == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	err := st.Close(ctx)
	if status := st.Status(); status.LastError != "" {
		warn("Remote backup failed: %s", status.LastError)
	}
	if cerr := backend.Close(); err == nil {
		err = cerr
	}
	st, backend = nil, nil
	return err
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
