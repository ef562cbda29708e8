package app

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/filmshelf/internal/query"
	"github.com/blackwell-systems/filmshelf/internal/tui"
	"github.com/blackwell-systems/filmshelf/internal/util"
	"github.com/spf13/cobra"
)

func newBrowseCmd() *cobra.Command {
	var qf queryFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse films interactively",
		Long: `Open the film browser. Type / to filter, enter for details, e to edit,
d to delete and tab to toggle the details pane.

Without a terminal (or with --no-interactive) the matching films are
listed instead.`,
		Example: `  filmshelf browse
  filmshelf browse --filter genre=Horror --sort yearDesc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := qf.build()
			if err != nil {
				return err
			}
			return runBrowse(cmd, q)
		},
	}

	qf.register(cmd)

	return cmd
}

func runBrowse(cmd *cobra.Command, q query.Query) error {
	films := st.Query(q)
	out := cmd.OutOrStdout()

	if !tui.ShouldUseTUI(cmd) {
		if len(films) == 0 {
			fmt.Fprintln(out, "No films found.")
			return nil
		}
		printFilms(out, films)
		return nil
	}

	title := fmt.Sprintf("Films (%d)", len(films))
	res, err := tui.RunListBrowser(title, films)
	if errors.Is(err, tui.ErrNoFilms) {
		fmt.Fprintln(out, "No films found. Add one with 'filmshelf add' or 'filmshelf import'.")
		return nil
	}
	if err != nil {
		return err
	}
	if res.Film == nil {
		return nil
	}

	f := *res.Film
	switch res.Action {
	case tui.ActionShowDetails:
		fmt.Fprintln(out, tui.RenderDetails(f, util.TermWidth(80)))
		fmt.Fprintf(out, "\nID: %s\n", f.ID)
	case tui.ActionEdit:
		fmt.Fprintf(out, "filmshelf edit %s --title %q\n", shortID(f.ID), f.Title)
		fmt.Fprintln(out, "Run the command above with the fields you want to change.")
	case tui.ActionDelete:
		if !confirm(fmt.Sprintf("Delete %q?", f.Title)) {
			fmt.Fprintln(out, "Not deleted.")
			return nil
		}
		if deleteFilm(f) {
			ok("Deleted %q", f.Title)
		}
	}
	return nil
}
