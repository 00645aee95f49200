package porter

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/zettelhaus/zettel/pkg/core"
	"github.com/zettelhaus/zettel/pkg/markdown"
)

// Exporter renders the knowledge base back into Markdown.
type Exporter struct {
	svc    *core.Service
	logger *slog.Logger
}

// NewExporter creates an Exporter on top of the service.
func NewExporter(svc *core.Service, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{svc: svc, logger: logger}
}

// ExportNote renders one note, with its flashcards, as a document.
func (ex *Exporter) ExportNote(ctx context.Context, id string) (string, error) {
	note, err := ex.svc.GetNote(ctx, id)
	if err != nil {
		return "", err
	}
	cards, err := ex.svc.FlashcardsByNote(ctx, id)
	if err != nil {
		return "", err
	}
	return markdown.ExportNote(note, cards)
}

// ExportAll renders every note into one separator-joined document.
func (ex *Exporter) ExportAll(ctx context.Context) (string, error) {
	notes, cardsByNote, err := ex.snapshot(ctx)
	if err != nil {
		return "", err
	}
	doc, errs := markdown.ExportCollection(notes, cardsByNote)
	if err := ex.reportErrs(errs); err != nil {
		return doc, err
	}
	return doc, nil
}

// ExportFiles renders one (filename, document) pair per note.
func (ex *Exporter) ExportFiles(ctx context.Context) ([]markdown.File, error) {
	notes, cardsByNote, err := ex.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, markdown.ErrNoNotes
	}
	files, errs := markdown.ExportFiles(notes, cardsByNote)
	if err := ex.reportErrs(errs); err != nil {
		return files, err
	}
	return files, nil
}

// ExportZip writes the per-note files into a zip archive on w.
func (ex *Exporter) ExportZip(ctx context.Context, w io.Writer) error {
	files, err := ex.ExportFiles(ctx)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	for _, f := range files {
		entry, err := zw.Create(f.Name)
		if err != nil {
			zw.Close()
			return fmt.Errorf("failed to add %s to archive: %w", f.Name, err)
		}
		if _, err := entry.Write([]byte(f.Content)); err != nil {
			zw.Close()
			return fmt.Errorf("failed to write %s to archive: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	ex.logger.Info("exported zip archive", "files", len(files))
	return nil
}

func (ex *Exporter) snapshot(ctx context.Context) ([]core.Note, map[string][]core.Flashcard, error) {
	notes, err := ex.svc.ListNotes(ctx)
	if err != nil {
		return nil, nil, err
	}
	cards, err := ex.svc.ListFlashcards(ctx)
	if err != nil {
		return nil, nil, err
	}
	byNote := make(map[string][]core.Flashcard)
	for _, c := range cards {
		byNote[c.SourceNoteID] = append(byNote[c.SourceNoteID], c)
	}
	return notes, byNote, nil
}

// reportErrs logs per-note serialization failures and folds them into a
// single error. Partial output still comes back to the caller.
func (ex *Exporter) reportErrs(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	for _, err := range errs {
		ex.logger.Warn("note skipped during export", "error", err)
	}
	return errors.Join(errs...)
}
