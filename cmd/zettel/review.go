package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show the flashcards due for review",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		cards, err := app.Service.DueFlashcards(context.Background())
		if err != nil {
			fatal("Error listing due flashcards", err)
		}
		if len(cards) == 0 {
			fmt.Println("Nothing due. Come back later.")
			return
		}
		for _, c := range cards {
			fmt.Printf("%s  %s\n", c.ID, c.Question)
		}
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review the due flashcards interactively",
	Long: `Review walks through every due flashcard: it shows the question, waits
for Enter to reveal the answer, then asks whether you remembered it.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()
		ctx := context.Background()

		cards, err := app.Service.DueFlashcards(ctx)
		if err != nil {
			fatal("Error listing due flashcards", err)
		}
		if len(cards) == 0 {
			fmt.Println("Nothing due. Come back later.")
			return
		}

		reader := bufio.NewReader(os.Stdin)
		for i, c := range cards {
			fmt.Printf("\n[%d/%d] %s\n", i+1, len(cards), c.Question)
			fmt.Print("Press Enter to reveal...")
			reader.ReadString('\n')
			fmt.Printf("-> %s\n", c.Answer)

			fmt.Print("Did you remember? [y/N] ")
			answer, _ := reader.ReadString('\n')
			remembered := strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")

			updated, err := app.Service.ReviewFlashcard(ctx, c.ID, remembered)
			if err != nil {
				fatal("Error recording review", err)
			}
			fmt.Printf("Next review: %s\n", updated.NextReviewDate.Format("2006-01-02"))
		}
		fmt.Println("\nDone.")
	},
}

func init() {
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(reviewCmd)
}
