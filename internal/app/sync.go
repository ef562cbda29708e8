package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blackwell-systems/filmshelf/internal/readme"
	"github.com/blackwell-systems/filmshelf/internal/store"
	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	var (
		timeout  time.Duration
		noReadme bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push the catalog to the GitHub backup now",
		Long: `Upload the current catalog to the configured GitHub repository and wait
for the result. Every change is already pushed in the background; use
this after fixing a failed backup or to check that the remote works.

After a successful push the backup repo's README.md is refreshed with
the film count, quick stats and the most recently added films.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			err := st.Sync(ctx)
			if errors.Is(err, store.ErrNoRemote) {
				return fmt.Errorf("%w: enable remote in the config and set $%s", err, cfg.Remote.TokenEnv)
			}
			if err != nil {
				return err
			}
			ok("Pushed %d films to %s/%s:%s", st.Len(), cfg.Remote.Owner, cfg.Remote.Repo, cfg.Remote.EffectiveRemotePath())

			if noReadme {
				return nil
			}
			changed, err := readme.NewUpdater(gh, cfg.Remote.Owner, cfg.Remote.Repo).Update(st.Films())
			switch {
			case err != nil:
				warn("README not updated: %v", err)
			case changed:
				ok("Updated %s", readme.FileName)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "Give up waiting after this long")
	cmd.Flags().BoolVar(&noReadme, "no-readme", false, "Skip refreshing the backup repo README")

	return cmd
}
