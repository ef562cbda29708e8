package app

import (
	"errors"

	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	var (
		ff      filmFlags
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a film",
		Long: `Change one or more fields of a film. Only the flags you pass are changed;
pass an empty value (--tags "") to clear a field.

The id is the film's ID or an unambiguous prefix of it, as printed by
'filmshelf list'.`,
		Example: `  filmshelf edit 019251a3 --year 1995 --genre Crime`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFilm(args[0])
			if err != nil {
				return err
			}
			in, changed := ff.overlay(cmd, f.Input())
			if !changed {
				return errors.New("nothing to change (pass at least one field flag)")
			}

			updated, err := st.Update(f.ID, in)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), updated)
			}
			ok("Updated %q", updated.Title)
			return nil
		},
	}

	ff.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the updated film as JSON")

	return cmd
}
