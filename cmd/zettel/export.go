package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportNoteID string
	exportZip    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes as Markdown",
	Long: `Export writes the knowledge base to stdout as one Markdown document.
With --note only that note is exported; with --zip a per-note archive is
written to the given path instead.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()
		ctx := context.Background()

		if exportZip != "" {
			f, err := os.Create(exportZip)
			if err != nil {
				fatal("Error creating archive", err)
			}
			if err := app.Exporter.ExportZip(ctx, f); err != nil {
				f.Close()
				fatal("Error exporting archive", err)
			}
			if err := f.Close(); err != nil {
				fatal("Error closing archive", err)
			}
			fmt.Printf("Wrote %s\n", exportZip)
			return
		}

		var (
			doc string
			err error
		)
		if exportNoteID != "" {
			doc, err = app.Exporter.ExportNote(ctx, exportNoteID)
		} else {
			doc, err = app.Exporter.ExportAll(ctx)
		}
		if err != nil {
			fatal("Error exporting", err)
		}
		fmt.Println(doc)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportNoteID, "note", "", "Export a single note by ID")
	exportCmd.Flags().StringVar(&exportZip, "zip", "", "Write a zip archive to this path")
}
