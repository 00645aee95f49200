package jsonstore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zettelhaus/zettel/pkg/core"
)

// Data files managed by a store, one JSON array per record type.
const (
	notesFile      = "notes.json"
	flashcardsFile = "flashcards.json"
	tasksFile      = "tasks.json"
)

// Store is a directory of JSON collections backing the repositories.
type Store struct {
	dir    string
	logger *slog.Logger

	notes *collection[core.Note]
	cards *collection[core.Flashcard]
	tasks *collection[core.Task]

	watcher *watcher
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// Open loads (or initializes) the collections under dir, creating the
// directory if needed.
func Open(dir string, opts ...StoreOption) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	s := &Store{
		dir:    dir,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	s.notes, err = newCollection(filepath.Join(dir, notesFile),
		func(n core.Note) string { return n.ID },
		func(a, b core.Note) bool {
			if !a.Meta.CreatedAt.Equal(b.Meta.CreatedAt) {
				return a.Meta.CreatedAt.Before(b.Meta.CreatedAt)
			}
			return a.ID < b.ID
		})
	if err != nil {
		return nil, err
	}

	s.cards, err = newCollection(filepath.Join(dir, flashcardsFile),
		func(f core.Flashcard) string { return f.ID },
		func(a, b core.Flashcard) bool {
			if a.SourceNoteID != b.SourceNoteID {
				return a.SourceNoteID < b.SourceNoteID
			}
			return a.ID < b.ID
		})
	if err != nil {
		return nil, err
	}

	s.tasks, err = newCollection(filepath.Join(dir, tasksFile),
		func(t core.Task) string { return t.ID },
		func(a, b core.Task) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("store opened", "dir", dir,
		"notes", s.notes.len(), "flashcards", s.cards.len(), "tasks", s.tasks.len())

	return s, nil
}

// Dir returns the data directory of the store.
func (s *Store) Dir() string { return s.dir }

// Notes returns the note repository.
func (s *Store) Notes() core.NoteRepository { return s.notes }

// Flashcards returns the flashcard repository.
func (s *Store) Flashcards() core.FlashcardRepository {
	return &flashcardRepo{cards: s.cards}
}

// Tasks returns the task repository.
func (s *Store) Tasks() core.TaskRepository { return s.tasks }

// Reload re-reads every collection from disk, discarding in-memory state.
func (s *Store) Reload() error {
	for _, load := range []func() error{s.notes.load, s.cards.load, s.tasks.load} {
		if err := load(); err != nil {
			return err
		}
	}
	return nil
}

// Close stops the watcher if one is running.
func (s *Store) Close() error {
	if s.watcher != nil {
		return s.watcher.stop()
	}
	return nil
}

// flashcardRepo adds the note-scoped listing on top of the raw collection.
type flashcardRepo struct {
	cards *collection[core.Flashcard]
}

func (r *flashcardRepo) Save(ctx context.Context, f core.Flashcard) error { return r.cards.Save(ctx, f) }

func (r *flashcardRepo) Get(ctx context.Context, id string) (core.Flashcard, error) {
	return r.cards.Get(ctx, id)
}

func (r *flashcardRepo) List(ctx context.Context) ([]core.Flashcard, error) {
	return r.cards.List(ctx)
}

func (r *flashcardRepo) ListByNote(_ context.Context, noteID string) ([]core.Flashcard, error) {
	return r.cards.filter(func(f core.Flashcard) bool { return f.SourceNoteID == noteID }), nil
}

func (r *flashcardRepo) Delete(ctx context.Context, id string) error { return r.cards.Delete(ctx, id) }
