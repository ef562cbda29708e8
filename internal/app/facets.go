package app

import (
	"fmt"

	"github.com/blackwell-systems/filmshelf/internal/query"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newFacetsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "facets <facet> [needle]",
		Short: "List the values of a facet with film counts",
		Long: `List every value of a facet (genre, director, year, actor or id) and how
many films carry it.

With a needle, only values containing its letters in order are shown,
closest matches first, which is handy for finding the exact spelling to
pass to --filter.`,
		Example: `  filmshelf facets genre
  filmshelf facets actor rbt`,
		Args: cobra.RangeArgs(1, 2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			names := make([]string, len(query.Facets))
			for i, f := range query.Facets {
				names[i] = string(f)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			facet, err := query.ParseFacet(args[0])
			if err != nil {
				return err
			}
			films := st.Films()
			counts := query.FacetCounts(films, facet)

			if len(args) == 2 {
				byValue := make(map[string]int, len(counts))
				for _, c := range counts {
					byValue[c.Value] = c.Count
				}
				narrowed := query.NarrowValues(query.DistinctValues(films, facet), args[1])
				counts = make([]query.FacetCount, len(narrowed))
				for i, v := range narrowed {
					counts[i] = query.FacetCount{Value: v, Count: byValue[v]}
				}
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, counts)
			}
			if len(counts) == 0 {
				fmt.Fprintf(out, "No %s values found.\n", facet)
				return nil
			}
			for _, c := range counts {
				fmt.Fprintf(out, "  %-32s %s\n", c.Value, color.CyanString("%d", c.Count))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}
