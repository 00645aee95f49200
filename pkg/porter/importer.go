// Package porter moves notes across the Markdown boundary: it imports
// documents into the knowledge base and exports the base back out as
// documents, single files, or a zip archive.
package porter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zettelhaus/zettel/pkg/core"
	"github.com/zettelhaus/zettel/pkg/markdown"
)

// ImportOptions controls how duplicate titles are handled. With neither
// flag set, a duplicate is an error.
type ImportOptions struct {
	// Overwrite replaces the existing note (and its flashcards) when a
	// document carries an already-known title.
	Overwrite bool
	// SkipDuplicates silently skips documents whose title already exists.
	SkipDuplicates bool
}

// Document is one named Markdown document handed to the importer.
type Document struct {
	Name    string
	Content string
}

// FileReport is the outcome of importing one document.
type FileReport struct {
	Name       string
	NoteID     string
	Title      string
	Flashcards int
	Skipped    bool
	Err        error
	Issues     []markdown.Issue
}

// Summary aggregates a batch import. Failed documents never abort the
// batch; each one is reported and the rest proceed.
type Summary struct {
	Imported int
	Skipped  int
	Failed   int
	Files    []FileReport
}

// ErrInvalidDocument wraps the parse issues of a rejected document.
var ErrInvalidDocument = errors.New("invalid markdown document")

// Importer reads canonical Markdown documents into the knowledge base.
type Importer struct {
	svc    *core.Service
	logger *slog.Logger
}

// NewImporter creates an Importer on top of the service.
func NewImporter(svc *core.Service, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{svc: svc, logger: logger}
}

// ImportDocument parses one document and persists its note and
// flashcards. Duplicate titles follow opts; on overwrite the previous
// flashcards of the note are replaced by the parsed ones.
func (im *Importer) ImportDocument(ctx context.Context, doc Document, opts ImportOptions) FileReport {
	report := FileReport{Name: doc.Name}

	res := markdown.Parse(doc.Content)
	report.Issues = res.Issues
	if !res.Success {
		report.Err = fmt.Errorf("%w: %s", ErrInvalidDocument, firstIssue(res.Issues))
		return report
	}
	report.Title = res.Note.Title

	existing, err := im.svc.FindNoteByTitle(ctx, res.Note.Title)
	switch {
	case err == nil:
		if opts.SkipDuplicates {
			report.Skipped = true
			report.NoteID = existing.ID
			im.logger.Debug("duplicate title skipped", "title", res.Note.Title, "file", doc.Name)
			return report
		}
		if !opts.Overwrite {
			report.Err = fmt.Errorf("note %q: %w", res.Note.Title, core.ErrDuplicateTitle)
			return report
		}
		return im.overwrite(ctx, existing, res, report)

	case errors.Is(err, core.ErrNotFound):
		// New title, fall through to create.

	default:
		report.Err = err
		return report
	}

	note := res.Note
	saved, err := im.svc.RestoreNote(ctx, note)
	if err != nil {
		report.Err = err
		return report
	}
	report.NoteID = saved.ID

	report.Flashcards, report.Err = im.attachFlashcards(ctx, saved.ID, res.Flashcards)
	im.logger.Info("document imported", "file", doc.Name, "note", saved.ID, "flashcards", report.Flashcards)
	return report
}

// overwrite replaces the existing note's body and cards with the parsed
// document, keeping the note's identity and creation date.
func (im *Importer) overwrite(ctx context.Context, existing core.Note, res markdown.ParseResult, report FileReport) FileReport {
	updated := res.Note
	updated.ID = existing.ID
	updated.Meta.CreatedAt = existing.Meta.CreatedAt

	saved, err := im.svc.RestoreNote(ctx, updated)
	if err != nil {
		report.Err = err
		return report
	}
	report.NoteID = saved.ID

	old, err := im.svc.FlashcardsByNote(ctx, saved.ID)
	if err != nil {
		report.Err = err
		return report
	}
	for _, c := range old {
		if err := im.svc.DeleteFlashcard(ctx, c.ID); err != nil {
			report.Err = err
			return report
		}
	}

	report.Flashcards, report.Err = im.attachFlashcards(ctx, saved.ID, res.Flashcards)
	im.logger.Info("document overwrote note", "file", report.Name, "note", saved.ID)
	return report
}

func (im *Importer) attachFlashcards(ctx context.Context, noteID string, cards []core.Flashcard) (int, error) {
	created := 0
	for _, c := range cards {
		if _, err := im.svc.CreateFlashcard(ctx, noteID, c.Question, c.Answer, c.Tags); err != nil {
			return created, fmt.Errorf("flashcard %q: %w", c.Question, err)
		}
		created++
	}
	return created, nil
}

// ImportBatch imports every document and tallies the outcomes.
func (im *Importer) ImportBatch(ctx context.Context, docs []Document, opts ImportOptions) Summary {
	var sum Summary
	for _, doc := range docs {
		report := im.ImportDocument(ctx, doc, opts)
		sum.Files = append(sum.Files, report)
		switch {
		case report.Err != nil:
			sum.Failed++
			im.logger.Warn("import failed", "file", doc.Name, "error", report.Err)
		case report.Skipped:
			sum.Skipped++
		default:
			sum.Imported++
		}
	}
	return sum
}

func firstIssue(issues []markdown.Issue) string {
	if len(issues) == 0 {
		return "unknown parse failure"
	}
	return fmt.Sprintf("line %d: %s", issues[0].Line, issues[0].Message)
}
