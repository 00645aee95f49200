package zettel

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/zettelhaus/zettel/internal/platform"
	"github.com/zettelhaus/zettel/pkg/agents"
	"github.com/zettelhaus/zettel/pkg/core"
	"github.com/zettelhaus/zettel/pkg/markdown"
	"github.com/zettelhaus/zettel/pkg/porter"
)

// --- Types ---

// Note is the atomic unit of the knowledge base.
type Note = core.Note

// Flashcard is one spaced-repetition card attached to a note.
type Flashcard = core.Flashcard

// Task tracks an asynchronous agent run.
type Task = core.Task

// App is the assembled application: store, service, importer, exporter,
// and (when a completer is configured) the agent orchestrator.
type App = platform.App

// ImportOptions controls duplicate handling during import.
type ImportOptions = porter.ImportOptions

// Document is a named Markdown document handed to the importer.
type Document = porter.Document

// Issue is one problem found while parsing or validating a document.
type Issue = markdown.Issue

// --- Configuration ---

// Option defines a functional option for configuring the application.
type Option = platform.Option

// WithLogger sets the logger shared across the components.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithCompleter enables the agents by providing the model client.
func WithCompleter(c agents.Completer) Option {
	return platform.WithCompleter(c)
}

// WithFetcher replaces the HTTP client used by the web extractor.
func WithFetcher(hc *http.Client) Option {
	return platform.WithFetcher(hc)
}

// WithClock overrides the wall clock, mainly for deterministic tests.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// --- Factory ---

// New opens (or initializes) the data directory and assembles the
// application.
func New(dir string, opts ...Option) (*App, error) {
	return platform.New(dir, opts...)
}

// NewLLMClient creates the hosted-model completer used by the agents.
func NewLLMClient(apiKey string, opts ...agents.LLMOption) *agents.LLMClient {
	return agents.NewLLMClient(apiKey, opts...)
}

// --- Document helpers ---

// ParseDocument reads a canonical Markdown document into a note and its
// flashcards.
func ParseDocument(doc string) markdown.ParseResult {
	return markdown.Parse(doc)
}

// ValidateDocument reports the structural problems of a document without
// importing it.
func ValidateDocument(doc string) []Issue {
	return markdown.Validate(doc)
}

// ExportDocument renders one note and its flashcards as a canonical
// Markdown document.
func ExportDocument(note Note, cards []Flashcard) (string, error) {
	return markdown.ExportNote(note, cards)
}
