package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := st.Stats()
			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, s)
			}

			fmt.Fprintf(out, "Films:            %s\n", color.WhiteString("%d", s.Total))
			if s.Total > 0 {
				fmt.Fprintf(out, "Last added:       %d day(s) ago\n", s.DaysSinceLastAdded)
			}
			fmt.Fprintf(out, "Top genre:        %s (%d)\n", color.CyanString(s.TopGenre.Genre), s.TopGenre.Count)
			fmt.Fprintf(out, "Image storage:    %s (%.2f%% of capacity)\n", s.Storage.Human, s.Storage.Percent)
			if s.Malformed > 0 {
				warn("%d film(s) have an unreadable date added", s.Malformed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}
