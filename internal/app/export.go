package app

import (
	"bytes"
	"fmt"

	"github.com/blackwell-systems/filmshelf/internal/util"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the whole catalog as YAML (or JSON)",
		Long: `Write every film to a file, or to standard output when no file is given.
The YAML form is the same document the GitHub backup stores.`,
		Example: `  filmshelf export > films.yml
  filmshelf export backup.json --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var buf bytes.Buffer
			if jsonOut {
				if err := writeJSON(&buf, st.Films()); err != nil {
					return err
				}
			} else if err := st.Export(&buf); err != nil {
				return err
			}

			if len(args) == 0 {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := util.WriteAtomic(args[0], buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			ok("Exported %d films to %s", st.Len(), args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Write JSON instead of YAML")

	return cmd
}
