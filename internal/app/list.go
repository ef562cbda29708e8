package app

import (
	"fmt"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
	"github.com/blackwell-systems/filmshelf/internal/query"
	"github.com/spf13/cobra"
)

type listOutput struct {
	Films   []catalog.Film `json:"films"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	HasMore bool           `json:"has_more"`
}

func newListCmd() *cobra.Command {
	var (
		qf       queryFlags
		page     int
		pageSize int
		all      bool
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List films with facet filters, sorting and paging",
		Long: `List the collection one page at a time.

Facet filters narrow the list and combine with AND. The actor facet
matches any one name in a film's cast.`,
		Example: `  filmshelf list
  filmshelf list --filter genre=Drama --sort titleDesc
  filmshelf list -f director="Michael Mann" -f year=1995 --page 2
  filmshelf list --all --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := qf.build()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("page-size") {
				pageSize = cfg.Library.PageSize
			}
			if all {
				pageSize = 0
			}
			if page < 1 {
				page = 1
			}

			matched := st.Query(q)
			films, hasMore := query.Paginate(matched, page, pageSize)

			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, listOutput{Films: films, Total: len(matched), Page: page, HasMore: hasMore})
			}

			if len(matched) == 0 {
				fmt.Fprintln(out, "No films found.")
				return nil
			}
			header("── %d film(s), sorted by %s", len(matched), q.Sort)
			printFilms(out, films)
			if hasMore {
				fmt.Fprintf(out, "\nMore: filmshelf list --page %d\n", page+1)
			}
			return nil
		},
	}

	qf.register(cmd)
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number, starting at 1")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Films per page (default: library.page_size)")
	cmd.Flags().BoolVar(&all, "all", false, "Show every match on one page")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}
