package app

import (
	"fmt"

	"github.com/blackwell-systems/filmshelf/internal/tui"
	"github.com/blackwell-systems/filmshelf/internal/util"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of one film",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFilm(args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), f)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderDetails(f, util.TermWidth(80)))
			fmt.Fprintf(cmd.OutOrStdout(), "\nID: %s\n", f.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}
