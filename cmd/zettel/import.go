package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/zettelhaus/zettel"
)

var (
	importOverwrite bool
	importSkipDup   bool
)

var importCmd = &cobra.Command{
	Use:   "import <glob>...",
	Short: "Import Markdown documents",
	Long: `Import reads every file matching the given globs (doublestar patterns
like 'notes/**/*.md' work) and imports each one as a note with its
flashcards.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var docs []zettel.Document
		for _, pattern := range args {
			base, pat := doublestar.SplitPattern(pattern)
			matches, err := doublestar.Glob(os.DirFS(base), pat)
			if err != nil {
				fatal("Invalid glob pattern", err)
			}
			for _, m := range matches {
				path := filepath.Join(base, m)
				content, err := os.ReadFile(path)
				if err != nil {
					fatal("Error reading "+path, err)
				}
				docs = append(docs, zettel.Document{Name: filepath.Base(path), Content: string(content)})
			}
		}
		if len(docs) == 0 {
			fmt.Println("No files matched.")
			return
		}

		app := openApp()
		defer app.Close()

		sum := app.Importer.ImportBatch(context.Background(), docs, zettel.ImportOptions{
			Overwrite:      importOverwrite,
			SkipDuplicates: importSkipDup,
		})

		for _, f := range sum.Files {
			switch {
			case f.Err != nil:
				fmt.Printf("FAIL  %s: %v\n", f.Name, f.Err)
			case f.Skipped:
				fmt.Printf("SKIP  %s (duplicate title %q)\n", f.Name, f.Title)
			default:
				fmt.Printf("OK    %s -> %s (%d flashcards)\n", f.Name, f.NoteID, f.Flashcards)
			}
		}
		fmt.Printf("\nImported %d, skipped %d, failed %d\n", sum.Imported, sum.Skipped, sum.Failed)
		if sum.Failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "Overwrite notes with duplicate titles")
	importCmd.Flags().BoolVar(&importSkipDup, "skip-duplicates", false, "Skip documents with duplicate titles")
}
