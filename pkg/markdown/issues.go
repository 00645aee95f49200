package markdown

import (
	"errors"

	"github.com/zettelhaus/zettel/pkg/core"
)

// Severity classifies a structural issue: errors block an import,
// warnings are cosmetic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one structural problem found in a document.
type Issue struct {
	Line     int      `json:"line"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ParseResult is the outcome of parsing one document. When Success is
// false the document was fundamentally unparsable and Note/Flashcards
// are zero values; otherwise they carry the imported data with IDs left
// for the caller to assign.
type ParseResult struct {
	Success    bool             `json:"success"`
	Note       core.Note        `json:"note"`
	Flashcards []core.Flashcard `json:"flashcards"`
	Issues     []Issue          `json:"issues,omitempty"`
}

// Fatal document errors.
var (
	ErrMissingFrontMatter  = errors.New("document must start with a YAML front matter fence (---)")
	ErrUnclosedFrontMatter = errors.New("front matter fence is never closed")
	ErrMissingTitle        = errors.New("front matter must declare a non-empty title")
	ErrNoNotes             = errors.New("no notes to export")
)

func errorIssue(line int, msg string) Issue {
	return Issue{Line: line, Message: msg, Severity: SeverityError}
}

func warningIssue(line int, msg string) Issue {
	return Issue{Line: line, Message: msg, Severity: SeverityWarning}
}
