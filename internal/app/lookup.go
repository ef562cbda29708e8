package app

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/filmshelf/internal/barcode"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newLookupCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "lookup <barcode>",
		Short: "Look up film details for a UPC/EAN barcode",
		Long: `Query the barcode service without adding anything. Uses barcode.endpoint
from the config, or a small built-in table when no endpoint is set.`,
		Example:     `  filmshelf lookup 9780201379624`,
		Annotations: map[string]string{noLibrary: "true"},
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := lookupBarcode(cmd.Context(), args[0])
			if errors.Is(err, barcode.ErrNotFound) {
				return fmt.Errorf("no film found for barcode %s", args[0])
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, in)
			}
			fmt.Fprintf(out, "%s\n", color.WhiteString(in.Title))
			for _, row := range [][2]string{
				{"Director", in.Director},
				{"Actors", in.Actors},
				{"Genre", in.Genre},
				{"Year", in.Year},
				{"Image", in.ImageURL},
			} {
				if row[1] != "" {
					fmt.Fprintf(out, "  %-9s %s\n", row[0]+":", row[1])
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}
