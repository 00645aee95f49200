package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zettelhaus/zettel"
)

var (
	verbose bool
	dataDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zettel",
	Short: "A personal knowledge base with flashcards and Markdown round trips",
	Long: `Zettel stores notes and spaced-repetition flashcards in a local data
directory and speaks canonical Markdown on the way in and out.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "./data", "Data directory")
}

// openApp assembles the application for a command run.
func openApp() *zettel.App {
	app, err := zettel.New(dataDir, zettel.WithLogger(slog.Default()))
	if err != nil {
		fatal("Error opening data directory", err)
	}
	return app
}
