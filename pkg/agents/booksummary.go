package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/zettelhaus/zettel/pkg/core"
)

// Input keys understood by the agents.
const (
	InputBookTitle  = "bookTitle"
	InputBookAuthor = "bookAuthor"
	InputURL        = "url"
)

// TypeBookSummary identifies the book summary agent.
const TypeBookSummary = "book-summary"

const bookSummarySystem = `You are a knowledge base assistant. You reply with a single JSON object and nothing else, using this shape:
{"title": string, "content": string (markdown), "tags": [string], "flashcards": [{"question": string, "answer": string}]}`

// BookSummaryAgent generates a summary note for a book, with flashcards
// covering its key ideas.
type BookSummaryAgent struct {
	svc       *core.Service
	completer Completer
}

// NewBookSummaryAgent wires the agent to the service and a completer.
func NewBookSummaryAgent(svc *core.Service, completer Completer) *BookSummaryAgent {
	return &BookSummaryAgent{svc: svc, completer: completer}
}

func (a *BookSummaryAgent) Type() string { return TypeBookSummary }

// Run summarizes the book named by the input and stores the result as a
// note. The input must carry bookTitle; bookAuthor is optional.
func (a *BookSummaryAgent) Run(ctx context.Context, input map[string]string) (map[string]any, error) {
	title := strings.TrimSpace(input[InputBookTitle])
	if title == "" {
		return nil, fmt.Errorf("%s is required", InputBookTitle)
	}
	author := strings.TrimSpace(input[InputBookAuthor])

	book := title
	if author != "" {
		book = fmt.Sprintf("%s by %s", title, author)
	}
	prompt := fmt.Sprintf(
		"Summarize the book %q for a personal knowledge base. "+
			"Cover its core thesis and main ideas in the content, pick 2-5 topical tags, "+
			"and write 3-5 flashcards testing the key takeaways.", book)

	reply, err := a.completer.Complete(ctx, bookSummarySystem, prompt)
	if err != nil {
		return nil, err
	}
	gen, err := decodeGeneratedNote(reply)
	if err != nil {
		return nil, err
	}

	extra := map[string]string{"source": "book", "bookTitle": title}
	if author != "" {
		extra["bookAuthor"] = author
	}
	return persistGeneratedNote(ctx, a.svc, gen, extra)
}
