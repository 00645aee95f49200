package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zettelhaus/zettel/pkg/core"
)

var (
	listJSON   bool
	filterTag  string
	searchTerm string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes in the knowledge base",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		notes, err := queryNotes(cmd.Context(), app.Service)
		if err != nil {
			fatal("Error listing notes", err)
		}

		out := cmd.OutOrStdout()
		if listJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(notes); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, note := range notes {
			tags := ""
			if len(note.Tags) > 0 {
				tags = fmt.Sprintf(" %v", note.Tags)
			}
			fmt.Fprintf(out, "%s  %s%s\n", note.ID, note.Title, tags)
		}
	},
}

// queryNotes runs exactly one query, picked by the filter flags.
func queryNotes(ctx context.Context, svc *core.Service) ([]core.Note, error) {
	switch {
	case filterTag != "":
		return svc.NotesByTag(ctx, filterTag)
	case searchTerm != "":
		return svc.SearchNotes(ctx, searchTerm)
	default:
		return svc.ListNotes(ctx)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&filterTag, "tag", "", "Filter notes by tag")
	listCmd.Flags().StringVar(&searchTerm, "search", "", "Full-text search term")
}
