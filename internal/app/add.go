package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/blackwell-systems/filmshelf/internal/barcode"
	"github.com/blackwell-systems/filmshelf/internal/catalog"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var (
		ff      filmFlags
		code    string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a film to the collection",
		Long: `Add one film. A title and a catalog number (--id-number) are required.

With --barcode the fields are prefilled from the barcode lookup service;
any field flag given alongside overrides the prefilled value.`,
		Example: `  filmshelf add --title "Heat" --director "Michael Mann" --year 1995 --id-number 17
  filmshelf add --barcode 9780201379624 --id-number 18`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var base catalog.FilmInput
			if code != "" {
				prefill, err := lookupBarcode(cmd.Context(), code)
				switch {
				case errors.Is(err, barcode.ErrNotFound):
					warn("No film found for barcode %s; using the flags only", code)
				case err != nil:
					return err
				default:
					ok("Barcode %s: %s", code, prefill.Title)
					base = prefill
				}
			}

			in, _ := ff.overlay(cmd, base)
			f, err := st.Add(in)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), f)
			}
			ok("Added %q (#%s, id %s)", f.Title, f.IDNumber, shortID(f.ID))
			return nil
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVar(&code, "barcode", "", "Prefill fields from a UPC/EAN barcode lookup")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the new film as JSON")

	return cmd
}

// lookupBarcode queries the configured barcode service.
func lookupBarcode(ctx context.Context, code string) (catalog.FilmInput, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !barcode.ValidCode(code) {
		return catalog.FilmInput{}, fmt.Errorf("%w: %q", barcode.ErrInvalidCode, code)
	}
	return barcode.New(cfg.Barcode).Lookup(ctx, code)
}
