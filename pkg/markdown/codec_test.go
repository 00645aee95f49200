package markdown

import (
	"strings"
	"testing"
	"time"

	"github.com/zettelhaus/zettel/pkg/core"
)

func sampleNote() core.Note {
	return core.Note{
		ID:      "note-1",
		Title:   "Go Routines",
		Content: "Goroutines are lightweight threads.",
		Tags:    []string{"go", "concurrency"},
		Meta: core.Meta{
			CreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
			Extra:     map[string]string{"source": "manual"},
		},
	}
}

func sampleCards() []core.Flashcard {
	return []core.Flashcard{
		{
			Question:     "What is a goroutine?",
			Answer:       "A lightweight thread managed by the Go runtime.",
			SourceNoteID: "note-1",
		},
		{
			Question:     "What synchronizes goroutines?",
			Answer:       "Channels, or the sync package primitives.",
			SourceNoteID: "note-1",
		},
	}
}

func TestExportNote_CanonicalShape(t *testing.T) {
	doc, err := ExportNote(sampleNote(), sampleCards())
	if err != nil {
		t.Fatalf("ExportNote failed: %v", err)
	}

	want := `---
title: Go Routines
tags:
  - go
  - concurrency
source: manual
---

# Go Routines

## Tags

- go
- concurrency

## Contenu

Goroutines are lightweight threads.

## Flashcards

### Question
What is a goroutine?

### Réponse
A lightweight thread managed by the Go runtime.

### Question
What synchronizes goroutines?

### Réponse
Channels, or the sync package primitives.

## Métadonnées

- Date de création : 2024-01-01T10:00:00Z
- Dernière modification : 2024-01-02T10:00:00Z
- source : manual`

	if doc != want {
		t.Errorf("document mismatch.\nwant:\n%s\n\ngot:\n%s", want, doc)
	}
}

func TestExportNote_OmitsEmptySections(t *testing.T) {
	note := sampleNote()
	note.Tags = nil
	note.Meta.Extra = nil

	doc, err := ExportNote(note, nil)
	if err != nil {
		t.Fatalf("ExportNote failed: %v", err)
	}

	if strings.Contains(doc, "## Tags") {
		t.Error("Tags section must be omitted for a tagless note")
	}
	if strings.Contains(doc, "## Flashcards") {
		t.Error("Flashcards section must be omitted when there are no cards")
	}
	if !strings.Contains(doc, "tags: []") {
		t.Error("front matter should still declare an empty tags array")
	}
	if !strings.Contains(doc, "## Métadonnées") {
		t.Error("Métadonnées section is always present")
	}
}

func TestParse_RoundTrip(t *testing.T) {
	note := sampleNote()
	cards := sampleCards()

	doc, err := ExportNote(note, cards)
	if err != nil {
		t.Fatalf("ExportNote failed: %v", err)
	}

	res := Parse(doc)
	if !res.Success {
		t.Fatalf("Parse failed: %+v", res.Issues)
	}

	if res.Note.Title != note.Title {
		t.Errorf("title mismatch: want %q, got %q", note.Title, res.Note.Title)
	}
	if strings.TrimSpace(res.Note.Content) != strings.TrimSpace(note.Content) {
		t.Errorf("content mismatch: want %q, got %q", note.Content, res.Note.Content)
	}
	if len(res.Note.Tags) != 2 || res.Note.Tags[0] != "go" || res.Note.Tags[1] != "concurrency" {
		t.Errorf("tags mismatch: %v", res.Note.Tags)
	}
	if len(res.Flashcards) != len(cards) {
		t.Fatalf("expected %d flashcards, got %d", len(cards), len(res.Flashcards))
	}
	for i, c := range cards {
		if res.Flashcards[i].Question != c.Question || res.Flashcards[i].Answer != c.Answer {
			t.Errorf("flashcard %d mismatch: %+v", i, res.Flashcards[i])
		}
	}
	if !res.Note.Meta.CreatedAt.Equal(note.Meta.CreatedAt) {
		t.Errorf("createdAt not restored: %v", res.Note.Meta.CreatedAt)
	}
	if res.Note.Meta.Extra["source"] != "manual" {
		t.Errorf("extra metadata not restored: %v", res.Note.Meta.Extra)
	}
}

func TestParse_ExportIsIdempotent(t *testing.T) {
	first, err := ExportNote(sampleNote(), sampleCards())
	if err != nil {
		t.Fatalf("ExportNote failed: %v", err)
	}

	res := Parse(first)
	if !res.Success {
		t.Fatalf("Parse failed: %+v", res.Issues)
	}

	second, err := ExportNote(res.Note, res.Flashcards)
	if err != nil {
		t.Fatalf("second ExportNote failed: %v", err)
	}
	if first != second {
		t.Errorf("export is not idempotent.\nfirst:\n%s\n\nsecond:\n%s", first, second)
	}
}

func TestParse_MinimalDocument(t *testing.T) {
	doc := "---\ntitle: \"T\"\ntags: [\"x\"]\n---\n\n## Contenu\nBody text"

	res := ParseAt(doc, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	if !res.Success {
		t.Fatalf("Parse failed: %+v", res.Issues)
	}
	if res.Note.Title != "T" {
		t.Errorf("expected title T, got %q", res.Note.Title)
	}
	if len(res.Note.Tags) != 1 || res.Note.Tags[0] != "x" {
		t.Errorf("expected tags [x], got %v", res.Note.Tags)
	}
	if res.Note.Content != "Body text" {
		t.Errorf("expected content %q, got %q", "Body text", res.Note.Content)
	}
	if len(res.Flashcards) != 0 {
		t.Errorf("expected zero flashcards, got %d", len(res.Flashcards))
	}
}

func TestParse_MissingFence(t *testing.T) {
	res := Parse("# Just a markdown file\n\nNo front matter here.")

	if res.Success {
		t.Fatal("expected failure for a document without front matter")
	}
	if len(res.Issues) == 0 {
		t.Fatal("expected at least one issue")
	}
	if res.Issues[0].Line != 1 {
		t.Errorf("expected the issue to reference line 1, got %d", res.Issues[0].Line)
	}
	if res.Issues[0].Severity != SeverityError {
		t.Errorf("expected an error severity, got %s", res.Issues[0].Severity)
	}
}

func TestParse_UnclosedFence(t *testing.T) {
	res := Parse("---\ntitle: Broken\n\n# Body without a closing fence")
	if res.Success {
		t.Fatal("expected failure for an unclosed front matter")
	}
}

func TestParse_MissingTitle(t *testing.T) {
	res := Parse("---\ntags: [a]\n---\n\n## Contenu\nText")
	if res.Success {
		t.Fatal("expected failure when the title is missing")
	}
	if res.Issues[0].Line != 3 {
		t.Errorf("expected the issue at the closing fence (line 3), got %d", res.Issues[0].Line)
	}
}

func TestParse_DropsIncompleteFlashcardBlocks(t *testing.T) {
	doc := `---
title: Incomplete
tags: []
---

## Contenu

Text

## Flashcards

### Question
Orphan question without an answer

### Question
Complete question

### Réponse
Complete answer`

	res := Parse(doc)
	if !res.Success {
		t.Fatalf("Parse failed: %+v", res.Issues)
	}
	if len(res.Flashcards) != 1 {
		t.Fatalf("expected the incomplete block to be dropped, got %d cards", len(res.Flashcards))
	}
	if res.Flashcards[0].Question != "Complete question" {
		t.Errorf("wrong surviving card: %+v", res.Flashcards[0])
	}
}

func TestParse_Fallbacks(t *testing.T) {
	// No sections at all: tags come from the front matter, the content is
	// the whole body.
	doc := "---\ntitle: Legacy\ntags: [old]\n---\n\nJust some prose, written by hand."

	res := Parse(doc)
	if !res.Success {
		t.Fatalf("Parse failed: %+v", res.Issues)
	}
	if len(res.Note.Tags) != 1 || res.Note.Tags[0] != "old" {
		t.Errorf("expected front matter tag fallback, got %v", res.Note.Tags)
	}
	if res.Note.Content != "Just some prose, written by hand." {
		t.Errorf("expected whole-body fallback, got %q", res.Note.Content)
	}
}

func TestParse_IgnoresUnknownSections(t *testing.T) {
	doc := "---\ntitle: T\ntags: []\n---\n\n## Contenu\nBody\n\n## Scratchpad\nIgnored entirely"

	res := Parse(doc)
	if !res.Success {
		t.Fatalf("Parse failed: %+v", res.Issues)
	}
	if res.Note.Content != "Body" {
		t.Errorf("unknown section leaked into the content: %q", res.Note.Content)
	}
}

func TestExportCollection(t *testing.T) {
	notes := []core.Note{sampleNote(), {
		ID:      "note-2",
		Title:   "Second",
		Content: "Other body.",
		Meta:    core.Meta{CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), UpdatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}}
	cards := map[string][]core.Flashcard{"note-1": sampleCards()}

	doc, errs := ExportCollection(notes, cards)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !strings.Contains(doc, "\n\n---\n\n") {
		t.Error("expected the multi-document separator")
	}
	if !strings.Contains(doc, "# Go Routines") || !strings.Contains(doc, "# Second") {
		t.Error("expected both notes in the collection")
	}

	_, errs = ExportCollection(nil, nil)
	if len(errs) == 0 {
		t.Error("expected an error for an empty collection")
	}
}

func TestExportFiles(t *testing.T) {
	files, errs := ExportFiles([]core.Note{sampleNote()}, map[string][]core.Flashcard{})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(files) != 1 {
		t.Fatalf("expected one file, got %d", len(files))
	}
	if files[0].Name != "go-routines.md" {
		t.Errorf("expected go-routines.md, got %s", files[0].Name)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello, World! 2024", "hello-world-2024.md"},
		{"Simple", "simple.md"},
		{"  spaced   out  ", "spaced-out.md"},
		{"---", ".md"}, // degenerate but deterministic
		{"UPPER case", "upper-case.md"},
	}
	for _, tc := range tests {
		got := Filename(core.Note{Title: tc.title})
		if got != tc.want {
			t.Errorf("Filename(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}
