// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-assistant/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously built queries",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := history.NewStore(historyConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No query sessions recorded.")
			return nil
		}

		w := os.Stdout
		fmt.Fprintf(w, "%-36s  %-16s  %-40s  %s\n", "ID", "Date", "Question", "Query")
		fmt.Fprintln(w, strings.Repeat("-", 120))
		for _, e := range entries {
			fmt.Fprintf(w, "%-36s  %-16s  %-40s  %s\n",
				e.ID, e.CreatedAt.Format("2006-01-02 15:04"), truncateQuestion(e.Question, 40), e.FinalQuery)
		}
		return nil
	},
}

// truncateQuestion shortens a question for the table. It counts runes so a
// multi-byte character is never split mid-sequence.
func truncateQuestion(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum number of sessions to list")

	rootCmd.AddCommand(historyCmd)
}
