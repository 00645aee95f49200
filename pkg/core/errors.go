package core

import "errors"

// Common errors.
var (
	ErrNotFound            = errors.New("not found")
	ErrEmptyTitle          = errors.New("note title cannot be empty")
	ErrEmptyContent        = errors.New("note content cannot be empty")
	ErrEmptyQuestion       = errors.New("flashcard question cannot be empty")
	ErrEmptyAnswer         = errors.New("flashcard answer cannot be empty")
	ErrNegativeReviewCount = errors.New("review count cannot be negative")
	ErrDuplicateTitle      = errors.New("a note with this title already exists")
)
