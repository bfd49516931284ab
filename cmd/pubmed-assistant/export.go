// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-assistant/internal/export"
	"github.com/pdiddy/pubmed-assistant/internal/pubmed"
	"github.com/pdiddy/pubmed-assistant/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export <results.json>",
	Short: "Export saved search results as an Obsidian Markdown note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notesDir, _ := cmd.Flags().GetString("notes-dir")
		if notesDir == "" {
			notesDir = viper.GetString("export.notes_dir")
		}
		if notesDir == "" {
			notesDir = "notes"
		}

		run, err := pubmed.LoadRun(args[0])
		if err != nil {
			return err
		}

		path, err := export.WriteNote(run, types.ExportConfig{NotesDir: notesDir})
		if err != nil {
			return err
		}
		fmt.Printf("Created Obsidian note: %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("notes-dir", "", "directory for Markdown notes (default: notes/)")

	rootCmd.AddCommand(exportCmd)
}
