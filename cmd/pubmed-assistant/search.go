// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-assistant/internal/pubmed"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a query against PubMed or PMC",
	Long: `Search runs a boolean query against NCBI E-utilities, fetches article
metadata and abstracts, and prints the results as a table or JSON. Results
can be saved as a JSON file for later export to Obsidian notes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		queryStr, _ := cmd.Flags().GetString("query")
		if queryStr == "" {
			return fmt.Errorf("--query is required")
		}
		maxResults, _ := cmd.Flags().GetInt("max-results")
		recentDays, _ := cmd.Flags().GetInt("recent-days")
		sortOrder, _ := cmd.Flags().GetString("sort")
		usePMC, _ := cmd.Flags().GetBool("pmc")
		asJSON, _ := cmd.Flags().GetBool("json")
		save, _ := cmd.Flags().GetBool("save")

		cfg := pubmedConfig()
		if usePMC {
			cfg.UsePMC = true
		}
		client := pubmed.NewClient(cfg, nil)

		ids, total, err := client.Search(cmd.Context(), queryStr, pubmed.SearchOptions{
			MaxResults: maxResults,
			RecentDays: recentDays,
			Sort:       sortOrder,
		})
		if err != nil {
			return err
		}

		articles, err := client.FetchArticles(cmd.Context(), ids, os.Stderr)
		if err != nil {
			return err
		}

		run := pubmed.NewRun(queryStr, client.DB(), total, articles)

		if asJSON {
			if err := pubmed.FormatJSON(run, os.Stdout); err != nil {
				return err
			}
		} else {
			pubmed.FormatTable(run, os.Stdout)
		}

		if save {
			path, err := pubmed.SaveRun(run, cfg.ResultsDir)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save results: %v\n", err)
			} else {
				fmt.Fprintf(os.Stderr, "Saved results to %s\n", path)
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().String("query", "", "boolean query string (use the query command to build one)")
	searchCmd.Flags().Int("max-results", 0, "maximum number of results to fetch")
	searchCmd.Flags().Int("recent-days", 0, "restrict to articles entered within the last N days")
	searchCmd.Flags().String("sort", "relevance", "sort order: relevance, pub_date, first_author, journal, title")
	searchCmd.Flags().Bool("pmc", false, "search PMC full text instead of PubMed")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("save", false, "save results as JSON in the results directory")

	rootCmd.AddCommand(searchCmd)
}
