package app

import (
	"fmt"
	"io"
	"time"

	"github.com/blackwell-systems/filmshelf/internal/store"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type statusOutput struct {
	Films   int              `json:"films"`
	Driver  string           `json:"driver"`
	Path    string           `json:"path"`
	Remote  string           `json:"remote,omitempty"`
	Sync    store.SyncStatus `json:"sync"`
	Healthy bool             `json:"healthy"`
}

func newStatusCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show where the catalog lives and how backups are doing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := st.Status()
			res := statusOutput{
				Films:   st.Len(),
				Driver:  cfg.Storage.Driver,
				Path:    cfg.Storage.Path,
				Sync:    s,
				Healthy: s.Healthy(),
			}
			if cfg.Remote.Enabled {
				res.Remote = fmt.Sprintf("%s/%s:%s", cfg.Remote.Owner, cfg.Remote.Repo, cfg.Remote.EffectiveRemotePath())
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, res)
			}
			printStatus(out, res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}

func printStatus(w io.Writer, res statusOutput) {
	fmt.Fprintf(w, "Films:    %d (loaded from %s)\n", res.Films, res.Sync.Source)
	fmt.Fprintf(w, "Storage:  %s (%s)\n", res.Path, res.Driver)
	if res.Sync.LocalError != "" {
		fmt.Fprintf(w, "          %s %s\n", color.RedString("✗"), res.Sync.LocalError)
	}

	switch {
	case res.Remote == "":
		fmt.Fprintln(w, "Backup:   off")
	case !res.Sync.RemoteConfigured:
		fmt.Fprintf(w, "Backup:   %s %s\n", res.Remote, color.YellowString("(no token)"))
	default:
		fmt.Fprintf(w, "Backup:   %s\n", res.Remote)
		if !res.Sync.LastSuccess.IsZero() {
			fmt.Fprintf(w, "          last success %s\n", res.Sync.LastSuccess.Local().Format(time.DateTime))
		}
		if res.Sync.LastError != "" {
			fmt.Fprintf(w, "          %s %s\n", color.RedString("✗"), res.Sync.LastError)
		}
	}

	if res.Healthy {
		fmt.Fprintln(w, color.GreenString("✓ healthy"))
	} else {
		fmt.Fprintln(w, color.RedString("✗ persistence errors, see above"))
	}
}
