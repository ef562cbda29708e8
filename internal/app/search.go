package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
	"github.com/blackwell-systems/filmshelf/internal/query"
	"github.com/spf13/cobra"
)

type searchOutput struct {
	Term  string         `json:"term"`
	State string         `json:"state"`
	Films []catalog.Film `json:"films"`
}

func newSearchCmd() *cobra.Command {
	var (
		qf      queryFlags
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search films by title, director, cast, genre or tags",
		Long: `Search for films whose title, director, cast, genre or tags contain
the term (case-insensitive).

Each search is added to the history and its results to the recently
searched list. Facet filters and sort apply to the displayed results only.`,
		Example: `  filmshelf search heat
  filmshelf search "de niro" --filter genre=Crime --sort year`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := qf.build()
			if err != nil {
				return err
			}
			term := strings.Join(args, " ")

			res := st.Search(term)
			films := query.Filter(res.Films, q.Facets)
			if q.Sort != "" {
				films = query.Sort(films, q.Sort)
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, searchOutput{Term: res.Term, State: res.State.String(), Films: films})
			}

			switch res.State {
			case query.StateNoTerm:
				fmt.Fprintln(out, "Type a search term.")
				return nil
			case query.StateEmpty:
				fmt.Fprintf(out, "No films match %q.\n", term)
				return nil
			}
			header("── %q  (%d matches)", term, len(films))
			printFilms(out, films)
			return nil
		},
	}

	qf.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}
