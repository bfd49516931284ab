// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-assistant/internal/genai"
	"github.com/pdiddy/pubmed-assistant/internal/history"
	"github.com/pdiddy/pubmed-assistant/internal/query"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Build an optimized PubMed query from a research question",
	Long: `Query turns a natural-language research question into a structured PubMed
boolean query. The AI model proposes base search terms and detects filter
parameters; high-confidence detections are offered for confirmation and the
rest are chosen interactively. The finished query is printed and recorded
in the session history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		question, _ := cmd.Flags().GetString("question")
		noDetect, _ := cmd.Flags().GetBool("no-detect")
		noHistory, _ := cmd.Flags().GetBool("no-history")

		prompter := newTerminalPrompter(os.Stdin, os.Stdout)

		if strings.TrimSpace(question) == "" {
			var err error
			question, err = prompter.Input("What are you looking to find in the medical literature?", "")
			if err != nil {
				return err
			}
			if strings.TrimSpace(question) == "" {
				return fmt.Errorf("research question is empty")
			}
		}

		ai := aiConfig()
		backend := genai.NewGeminiBackend(ai, nil)
		session := query.NewSession(backend, ai, prompter, os.Stdout, query.Options{
			DisableDetection: noDetect,
		})

		final, err := session.Run(cmd.Context(), question)
		if err != nil {
			return err
		}

		fmt.Printf("\nYour optimized PubMed query:\n\n  %s\n\n", final)
		fmt.Println("Copy this query into PubMed's search box, or run it with:")
		fmt.Printf("  pubmed-assistant search --query '%s'\n", final)

		if !noHistory {
			store, err := history.NewStore(historyConfig())
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not open history: %v\n", err)
				return nil
			}
			defer store.Close()
			if _, err := store.Record(cmd.Context(), question, final, dbName(pubmedConfig()), 0); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not record session: %v\n", err)
			}
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().String("question", "", "research question (prompted for when omitted)")
	queryCmd.Flags().Bool("no-detect", false, "skip AI parameter detection; choose every filter manually")
	queryCmd.Flags().Bool("no-history", false, "do not record the session in history")

	rootCmd.AddCommand(queryCmd)
}
