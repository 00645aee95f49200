package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zettelhaus/zettel"
	"github.com/zettelhaus/zettel/pkg/markdown"
)

var addTags []string

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a note from stdin",
	Long:  `Add reads the note content from stdin and creates a note with the given title.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			fatal("Error reading stdin", err)
		}

		app := openApp()
		defer app.Close()

		note, err := app.Service.CreateNote(context.Background(), args[0], string(content), addTags, nil)
		if err != nil {
			fatal("Error creating note", err)
		}
		fmt.Println(note.ID)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check Markdown documents without importing them",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		failed := false
		for _, path := range args {
			content, err := os.ReadFile(path)
			if err != nil {
				fatal("Error reading "+path, err)
			}
			issues := zettel.ValidateDocument(string(content))
			if len(issues) == 0 {
				fmt.Printf("OK    %s\n", path)
				continue
			}
			for _, issue := range issues {
				fmt.Printf("%s  %s:%d  %s\n", issue.Severity, path, issue.Line, issue.Message)
				if issue.Severity == markdown.SeverityError {
					failed = true
				}
			}
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(validateCmd)
	addCmd.Flags().StringSliceVar(&addTags, "tag", nil, "Tag to attach (repeatable)")
}
