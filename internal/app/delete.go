package app

import (
	"fmt"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Remove films from the collection",
		Long: `Remove one or more films. They also disappear from the recent-additions
and recent-searches lists.

Without a terminal, --yes is required.`,
		Example: `  filmshelf delete 019251a3
  filmshelf delete 019251a3 019251b7 --yes`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			films := make([]catalog.Film, 0, len(args))
			for _, ref := range args {
				f, err := resolveFilm(ref)
				if err != nil {
					return err
				}
				films = append(films, f)
			}

			if !skipConfirm {
				fmt.Println(color.YellowString("⚠ About to delete %d film(s):", len(films)))
				printFilms(cmd.OutOrStdout(), films)
				if !confirm("Delete?") {
					return fmt.Errorf("not deleted (confirm on a terminal or pass --yes)")
				}
			}

			for _, f := range films {
				if deleteFilm(f) {
					ok("Deleted %q", f.Title)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// deleteFilm removes f, warning when it was already gone.
func deleteFilm(f catalog.Film) bool {
	if !st.Remove(f.ID) {
		warn("%q was already removed", f.Title)
		return false
	}
	return true
}
