package core

import (
	"strings"
	"time"
)

// Flashcard is a question/answer pair derived from a note and subject to
// spaced repetition. SourceNoteID is a reference, not ownership: deleting
// the note cascades to its flashcards.
//
// A nil NextReviewDate means the card was never scheduled and is due
// immediately. ReviewCount is zero exactly when LastReviewed is nil.
type Flashcard struct {
	ID             string     `json:"id"`
	Question       string     `json:"question"`
	Answer         string     `json:"answer"`
	Tags           []string   `json:"tags"`
	SourceNoteID   string     `json:"sourceNoteId"`
	ReviewCount    int        `json:"reviewCount"`
	LastReviewed   *time.Time `json:"lastReviewed,omitempty"`
	NextReviewDate *time.Time `json:"nextReviewDate,omitempty"`
}

// Validate checks the flashcard invariants.
func (f Flashcard) Validate() error {
	if strings.TrimSpace(f.Question) == "" {
		return ErrEmptyQuestion
	}
	if strings.TrimSpace(f.Answer) == "" {
		return ErrEmptyAnswer
	}
	if f.ReviewCount < 0 {
		return ErrNegativeReviewCount
	}
	return nil
}
