package core

import "context"

// NoteRepository defines the contract for storing and retrieving notes.
// Adhering to this interface keeps the domain independent of the
// underlying storage mechanism (JSON files, SQL, in-memory fakes).
type NoteRepository interface {
	// Save persists a note. It creates if not exists, or updates if it does.
	Save(ctx context.Context, n Note) error

	// Get retrieves a note by its ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (Note, error)

	// List returns all available notes.
	List(ctx context.Context) ([]Note, error)

	// Delete removes a note by its ID. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
}

// FlashcardRepository defines the contract for storing flashcards.
type FlashcardRepository interface {
	Save(ctx context.Context, f Flashcard) error
	Get(ctx context.Context, id string) (Flashcard, error)
	List(ctx context.Context) ([]Flashcard, error)

	// ListByNote returns the flashcards referencing the given note.
	ListByNote(ctx context.Context, noteID string) ([]Flashcard, error)

	Delete(ctx context.Context, id string) error
}

// TaskRepository defines the contract for storing agent tasks.
type TaskRepository interface {
	Save(ctx context.Context, t Task) error
	Get(ctx context.Context, id string) (Task, error)
	List(ctx context.Context) ([]Task, error)
}
