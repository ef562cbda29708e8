package app

import (
	"fmt"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
	"github.com/blackwell-systems/filmshelf/internal/ingest"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var (
		template bool
		dryRun   bool
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:   "import <source>",
		Short: "Add many films from a comma-separated list",
		Long: `Import films from a text document with one film per line, fields in
the order printed by --template. Quoted fields may contain commas.

Lines without a title or catalog number are skipped and reported; the
remaining films are added in one batch.

Sources:
  -                          standard input
  films.csv                  local file
  https://example.com/f.csv  HTTP(S) URL
  github:owner/repo@ref:path file in a GitHub repo (uses the configured token)`,
		Example: `  filmshelf import --template > films.csv
  filmshelf import films.csv --dry-run
  filmshelf import github:alice/films@main:import/films.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if template {
				fmt.Fprintln(out, catalog.BulkTemplate)
				fmt.Fprintln(out, `Heat,Michael Mann,"Al Pacino, Robert De Niro",Crime,17,1995,heist`)
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("a source is required (run 'filmshelf import --template' for the format)")
			}

			src, err := ingest.Resolve(args[0], gh)
			if err != nil {
				return err
			}
			res, size, err := ingest.ReadBulk(src)
			if err != nil {
				return err
			}
			logger.Debug("bulk import parsed", "source", src.Name, "bytes", size,
				"films", len(res.Films), "skipped", len(res.Skipped))

			for _, s := range res.Skipped {
				warn("line %d skipped (%s): %s", s.Line, s.Reason, s.Text)
			}
			if len(res.Films) == 0 {
				return fmt.Errorf("%s: no importable films", src.Name)
			}

			if dryRun {
				header("Would import %d films from %s", len(res.Films), src.Name)
				for _, in := range res.Films {
					fmt.Fprintf(out, "  %-8s  %s %s\n", color.WhiteString(in.IDNumber), in.Title, color.HiBlackString(in.Director))
				}
				return nil
			}

			added, err := st.AddBatch(res.Films)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(out, added)
			}
			ok("Imported %d films from %s (%d lines skipped)", len(added), src.Name, len(res.Skipped))
			return nil
		},
	}

	cmd.Flags().BoolVar(&template, "template", false, "Print the field order and an example line")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and report without adding anything")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the added films as JSON")

	return cmd
}
