package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zettelhaus/zettel/pkg/review"
)

// Service handles the business logic for notes and flashcards.
type Service struct {
	notes  NoteRepository
	cards  FlashcardRepository
	logger *slog.Logger
	now    func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = logger }
}

// WithClock overrides the wall clock, mainly for deterministic tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates a new Service around the given repositories.
func NewService(notes NoteRepository, cards FlashcardRepository, opts ...ServiceOption) *Service {
	s := &Service{
		notes: notes,
		cards: cards,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --- Notes ---

// NotePatch describes a partial note update. Nil fields keep the current
// value; Extra entries are merged into the existing metadata.
type NotePatch struct {
	Title   *string
	Content *string
	Tags    []string
	Extra   map[string]string
}

// CreateNote validates and persists a new note, assigning its ID and
// timestamps.
func (s *Service) CreateNote(ctx context.Context, title, content string, tags []string, extra map[string]string) (Note, error) {
	now := s.now()
	n := Note{
		ID:      uuid.NewString(),
		Title:   strings.TrimSpace(title),
		Content: content,
		Tags:    normalizeTags(tags),
		Meta:    Meta{CreatedAt: now, UpdatedAt: now},
	}
	if len(extra) > 0 {
		n.Meta.Extra = make(map[string]string, len(extra))
		for k, v := range extra {
			n.Meta.Extra[k] = v
		}
	}
	if err := n.Validate(); err != nil {
		return Note{}, err
	}
	if err := s.notes.Save(ctx, n); err != nil {
		return Note{}, fmt.Errorf("failed to save note: %w", err)
	}
	s.debug("note created", "id", n.ID, "title", n.Title)
	return n, nil
}

// RestoreNote persists a note carrying its own identity and timestamps,
// as parsed from an imported document. Missing pieces are filled in: a
// zero ID gets a fresh UUID, zero timestamps default to now.
func (s *Service) RestoreNote(ctx context.Context, n Note) (Note, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.Title = strings.TrimSpace(n.Title)
	n.Tags = normalizeTags(n.Tags)
	if n.Meta.CreatedAt.IsZero() {
		n.Meta.CreatedAt = s.now()
	}
	if n.Meta.UpdatedAt.IsZero() {
		n.Meta.UpdatedAt = n.Meta.CreatedAt
	}
	if err := n.Validate(); err != nil {
		return Note{}, err
	}
	if err := s.notes.Save(ctx, n); err != nil {
		return Note{}, fmt.Errorf("failed to save note: %w", err)
	}
	s.debug("note restored", "id", n.ID, "title", n.Title)
	return n, nil
}

// GetNote retrieves a note by ID.
func (s *Service) GetNote(ctx context.Context, id string) (Note, error) {
	return s.notes.Get(ctx, id)
}

// ListNotes retrieves all notes.
func (s *Service) ListNotes(ctx context.Context) ([]Note, error) {
	return s.notes.List(ctx)
}

// UpdateNote applies a patch to an existing note and refreshes its
// updatedAt timestamp.
func (s *Service) UpdateNote(ctx context.Context, id string, patch NotePatch) (Note, error) {
	n, err := s.notes.Get(ctx, id)
	if err != nil {
		return Note{}, err
	}
	if patch.Title != nil {
		n.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	if patch.Tags != nil {
		n.Tags = normalizeTags(patch.Tags)
	}
	if len(patch.Extra) > 0 {
		if n.Meta.Extra == nil {
			n.Meta.Extra = make(map[string]string, len(patch.Extra))
		}
		for k, v := range patch.Extra {
			n.Meta.Extra[k] = v
		}
	}
	n.Meta.UpdatedAt = s.now()
	if err := n.Validate(); err != nil {
		return Note{}, err
	}
	if err := s.notes.Save(ctx, n); err != nil {
		return Note{}, fmt.Errorf("failed to save note: %w", err)
	}
	return n, nil
}

// DeleteNote removes a note and cascades to its flashcards. A flashcard
// cannot outlive the note it came from.
func (s *Service) DeleteNote(ctx context.Context, id string) (int, error) {
	if _, err := s.notes.Get(ctx, id); err != nil {
		return 0, err
	}
	cards, err := s.cards.ListByNote(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to list flashcards for note %s: %w", id, err)
	}
	deleted := 0
	for _, c := range cards {
		if err := s.cards.Delete(ctx, c.ID); err != nil {
			s.warn("failed to cascade-delete flashcard", "id", c.ID, "error", err)
			continue
		}
		deleted++
	}
	if err := s.notes.Delete(ctx, id); err != nil {
		return deleted, err
	}
	s.debug("note deleted", "id", id, "flashcards", deleted)
	return deleted, nil
}

// FindNoteByTitle returns the note whose title matches case-insensitively,
// or ErrNotFound.
func (s *Service) FindNoteByTitle(ctx context.Context, title string) (Note, error) {
	notes, err := s.notes.List(ctx)
	if err != nil {
		return Note{}, err
	}
	want := strings.ToLower(strings.TrimSpace(title))
	for _, n := range notes {
		if strings.ToLower(n.Title) == want {
			return n, nil
		}
	}
	return Note{}, ErrNotFound
}

// SearchNotes returns notes whose title, content, or tags contain the
// search term (case-insensitive).
func (s *Service) SearchNotes(ctx context.Context, term string) ([]Note, error) {
	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(term)
	var out []Note
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), want) ||
			strings.Contains(strings.ToLower(n.Content), want) ||
			tagsContain(n.Tags, want) {
			out = append(out, n)
		}
	}
	return out, nil
}

// NotesByTag returns notes carrying the exact tag.
func (s *Service) NotesByTag(ctx context.Context, tag string) ([]Note, error) {
	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []Note
	for _, n := range notes {
		if n.HasTag(tag) {
			out = append(out, n)
		}
	}
	return out, nil
}

// --- Flashcards ---

// FlashcardPatch describes a partial flashcard update.
type FlashcardPatch struct {
	Question *string
	Answer   *string
	Tags     []string
}

// CreateFlashcard validates and persists a new flashcard referencing an
// existing note.
func (s *Service) CreateFlashcard(ctx context.Context, noteID, question, answer string, tags []string) (Flashcard, error) {
	if _, err := s.notes.Get(ctx, noteID); err != nil {
		return Flashcard{}, fmt.Errorf("source note %s: %w", noteID, err)
	}
	f := Flashcard{
		ID:           uuid.NewString(),
		Question:     strings.TrimSpace(question),
		Answer:       strings.TrimSpace(answer),
		Tags:         normalizeTags(tags),
		SourceNoteID: noteID,
	}
	if err := f.Validate(); err != nil {
		return Flashcard{}, err
	}
	if err := s.cards.Save(ctx, f); err != nil {
		return Flashcard{}, fmt.Errorf("failed to save flashcard: %w", err)
	}
	return f, nil
}

// GetFlashcard retrieves a flashcard by ID.
func (s *Service) GetFlashcard(ctx context.Context, id string) (Flashcard, error) {
	return s.cards.Get(ctx, id)
}

// ListFlashcards retrieves all flashcards.
func (s *Service) ListFlashcards(ctx context.Context) ([]Flashcard, error) {
	return s.cards.List(ctx)
}

// FlashcardsByNote retrieves the flashcards of one note.
func (s *Service) FlashcardsByNote(ctx context.Context, noteID string) ([]Flashcard, error) {
	return s.cards.ListByNote(ctx, noteID)
}

// UpdateFlashcard applies a patch to an existing flashcard.
func (s *Service) UpdateFlashcard(ctx context.Context, id string, patch FlashcardPatch) (Flashcard, error) {
	f, err := s.cards.Get(ctx, id)
	if err != nil {
		return Flashcard{}, err
	}
	if patch.Question != nil {
		f.Question = strings.TrimSpace(*patch.Question)
	}
	if patch.Answer != nil {
		f.Answer = strings.TrimSpace(*patch.Answer)
	}
	if patch.Tags != nil {
		f.Tags = normalizeTags(patch.Tags)
	}
	if err := f.Validate(); err != nil {
		return Flashcard{}, err
	}
	if err := s.cards.Save(ctx, f); err != nil {
		return Flashcard{}, fmt.Errorf("failed to save flashcard: %w", err)
	}
	return f, nil
}

// DeleteFlashcard removes a single flashcard.
func (s *Service) DeleteFlashcard(ctx context.Context, id string) error {
	return s.cards.Delete(ctx, id)
}

// ReviewFlashcard applies one review outcome to a flashcard: the schedule
// is computed by pkg/review and the updated record is persisted here.
func (s *Service) ReviewFlashcard(ctx context.Context, id string, remembered bool) (Flashcard, error) {
	f, err := s.cards.Get(ctx, id)
	if err != nil {
		return Flashcard{}, err
	}
	res := review.Schedule(f.ReviewCount, remembered, s.now())
	f.ReviewCount = res.ReviewCount
	f.LastReviewed = &res.LastReviewed
	f.NextReviewDate = &res.NextReviewDate
	if err := s.cards.Save(ctx, f); err != nil {
		return Flashcard{}, fmt.Errorf("failed to save flashcard: %w", err)
	}
	s.debug("flashcard reviewed", "id", id, "remembered", remembered, "next", res.NextReviewDate)
	return f, nil
}

// DueFlashcards returns the review queue: every card that was never
// reviewed or whose next review date has arrived.
func (s *Service) DueFlashcards(ctx context.Context) ([]Flashcard, error) {
	cards, err := s.cards.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	var due []Flashcard
	for _, c := range cards {
		if review.IsDue(c.NextReviewDate, now) {
			due = append(due, c)
		}
	}
	return due, nil
}

// --- helpers ---

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func tagsContain(tags []string, want string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), want) {
			return true
		}
	}
	return false
}

func (s *Service) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Service) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
