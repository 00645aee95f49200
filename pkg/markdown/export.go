package markdown

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zettelhaus/zettel/pkg/core"
)

// collectionSeparator joins documents in the single-file bulk export.
const collectionSeparator = "\n\n---\n\n"

// File is one (filename, document) pair of a bulk export. Writing the
// pairs into a zip archive is the caller's business.
type File struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// frontMatterDoc is the serialized front matter. createdAt/updatedAt are
// deliberately absent: they live in the Métadonnées section and would be
// redundant here.
type frontMatterDoc struct {
	Title string            `yaml:"title"`
	Tags  []string          `yaml:"tags"`
	Extra map[string]string `yaml:",inline"`
}

// ExportNote renders one note and its flashcards as a canonical
// Markdown document.
func ExportNote(note core.Note, cards []core.Flashcard) (string, error) {
	fm, err := encodeFrontMatter(note)
	if err != nil {
		return "", fmt.Errorf("failed to serialize front matter for %q: %w", note.Title, err)
	}

	createdAt := note.Meta.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	updatedAt := note.Meta.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	parts := []string{"---", fm, "---", "", "# " + note.Title, ""}

	if len(note.Tags) > 0 {
		parts = append(parts, "## "+sectionTags, "", bulletList(note.Tags), "")
	}

	parts = append(parts, "## "+sectionContent, "", strings.TrimSpace(note.Content))

	if len(cards) > 0 {
		parts = append(parts, "", "## "+sectionFlashcards, "", formatFlashcards(cards))
	}

	parts = append(parts, "", "## "+sectionMetadata, "",
		fmt.Sprintf("- %s : %s", labelCreatedAt, createdAt.Format(time.RFC3339)),
		fmt.Sprintf("- %s : %s", labelUpdatedAt, updatedAt.Format(time.RFC3339)))

	for _, k := range sortedKeys(note.Meta.Extra) {
		parts = append(parts, fmt.Sprintf("- %s : %s", k, note.Meta.Extra[k]))
	}

	return strings.Join(parts, "\n"), nil
}

// ExportCollection renders many notes into a single document, one per
// note, joined by a `---` separator. A note that fails to serialize is
// skipped and reported; it never aborts the batch.
func ExportCollection(notes []core.Note, cardsByNote map[string][]core.Flashcard) (string, []error) {
	if len(notes) == 0 {
		return "", []error{ErrNoNotes}
	}
	var docs []string
	var errs []error
	for _, note := range notes {
		doc, err := ExportNote(note, cardsByNote[note.ID])
		if err != nil {
			errs = append(errs, fmt.Errorf("note %s: %w", note.ID, err))
			continue
		}
		docs = append(docs, doc)
	}
	return strings.Join(docs, collectionSeparator), errs
}

// ExportFiles renders one (filename, document) pair per note for the
// zip export mode, with the same per-note failure isolation as
// ExportCollection.
func ExportFiles(notes []core.Note, cardsByNote map[string][]core.Flashcard) ([]File, []error) {
	var files []File
	var errs []error
	for _, note := range notes {
		doc, err := ExportNote(note, cardsByNote[note.ID])
		if err != nil {
			errs = append(errs, fmt.Errorf("note %s: %w", note.ID, err))
			continue
		}
		files = append(files, File{Name: Filename(note), Content: doc})
	}
	return files, errs
}

func encodeFrontMatter(note core.Note) (string, error) {
	doc := frontMatterDoc{
		Title: note.Title,
		Tags:  note.Tags,
		Extra: note.Meta.Extra,
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func formatFlashcards(cards []core.Flashcard) string {
	blocks := make([]string, len(cards))
	for i, c := range cards {
		blocks[i] = fmt.Sprintf("%s\n%s\n\n%s\n%s", questionMarker, c.Question, answerMarker, c.Answer)
	}
	return strings.Join(blocks, "\n\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
