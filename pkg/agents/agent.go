// Package agents runs background content producers: each agent turns an
// input (a book reference, a web page) into a note with flashcards,
// tracked as an asynchronous task.
package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zettelhaus/zettel/pkg/core"
)

// Agent executes one kind of generation job.
type Agent interface {
	// Type identifies the agent, e.g. "book-summary".
	Type() string
	// Run executes the job and returns the result payload stored on the
	// task.
	Run(ctx context.Context, input map[string]string) (map[string]any, error)
}

// generatedNote is the JSON shape every agent asks the model to produce.
type generatedNote struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	Flashcards []struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	} `json:"flashcards"`
}

// decodeGeneratedNote parses a model reply into the expected shape,
// tolerating a ```json fence around the payload.
func decodeGeneratedNote(reply string) (generatedNote, error) {
	payload := extractJSON(reply)
	var gen generatedNote
	if err := json.Unmarshal([]byte(payload), &gen); err != nil {
		return generatedNote{}, fmt.Errorf("model did not return valid JSON: %w", err)
	}
	if strings.TrimSpace(gen.Title) == "" || strings.TrimSpace(gen.Content) == "" {
		return generatedNote{}, fmt.Errorf("model reply is missing a title or content")
	}
	return gen, nil
}

// extractJSON cuts the first top-level JSON object out of a reply that
// may carry a code fence or surrounding prose.
func extractJSON(reply string) string {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || end < start {
		return reply
	}
	return reply[start : end+1]
}

// persistGeneratedNote stores the generated note and its flashcards and
// returns the result payload for the task record.
func persistGeneratedNote(ctx context.Context, svc *core.Service, gen generatedNote, extra map[string]string) (map[string]any, error) {
	note, err := svc.CreateNote(ctx, gen.Title, gen.Content, gen.Tags, extra)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	created := 0
	for _, f := range gen.Flashcards {
		if _, err := svc.CreateFlashcard(ctx, note.ID, f.Question, f.Answer, gen.Tags); err != nil {
			return nil, fmt.Errorf("failed to create flashcard: %w", err)
		}
		created++
	}
	return map[string]any{
		"noteId":     note.ID,
		"title":      note.Title,
		"flashcards": created,
	}, nil
}
