package cli

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/abacus/internal/store"
	"github.com/spf13/cobra"
)

var (
	historyLimit   int
	historySession string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List evaluations recorded in the journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, j, err := openJournal(cmd)
		if err != nil {
			return err
		}
		defer j.Close()

		var entries []*store.Entry
		if historySession != "" {
			entries, err = j.ListEntries(historySession)
		} else {
			entries, err = j.RecentEntries(historyLimit)
		}
		if err != nil {
			return fmt.Errorf("failed to read journal: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No History")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%s  %s = %s\n", e.CreatedAt.Local().Format(time.DateTime), e.Expression, e.Result)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
	historyCmd.Flags().StringVar(&historySession, "session", "", "Only show entries from this journal session")
}
