package app

import (
	"fmt"
	"io"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
	"github.com/spf13/cobra"
)

type recentOutput struct {
	Added    []catalog.Film `json:"added,omitempty"`
	Searched []catalog.Film `json:"searched,omitempty"`
}

func newRecentCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:       "recent [added|searched]",
		Short:     "Show recently added and recently searched films",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"added", "searched"},
		RunE: func(cmd *cobra.Command, args []string) error {
			which := ""
			if len(args) > 0 {
				which = args[0]
			}

			var res recentOutput
			if which != "searched" {
				res.Added = st.RecentAdded()
			}
			if which != "added" {
				res.Searched = st.RecentSearched()
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, res)
			}
			if which != "searched" {
				printSection(out, "Recently added", res.Added)
			}
			if which != "added" {
				printSection(out, "Recently searched", res.Searched)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}

func printSection(w io.Writer, title string, films []catalog.Film) {
	header("── %s", title)
	if len(films) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	printFilms(w, films)
}
