package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent search terms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := st.History()
			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No searches yet.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "  %-24s %s  %s\n",
					color.WhiteString(e.Term),
					color.CyanString("%d result(s)", e.ResultCount),
					color.HiBlackString(formatStamp(e.Timestamp)),
				)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}
