package markdown

import (
	"strings"
	"time"

	"github.com/zettelhaus/zettel/pkg/core"
)

// Parse reads a canonical document into a note and its flashcards.
// Timestamps missing from the document default to the current time.
func Parse(doc string) ParseResult {
	return ParseAt(doc, time.Now())
}

// ParseAt is Parse with an explicit clock, for deterministic tests.
//
// Only two conditions are fatal: a missing or unclosed front matter
// fence, and front matter that is not valid YAML or lacks a title.
// Everything else degrades gracefully: unknown sections are ignored,
// a missing Contenu section falls back to the whole body, and
// flashcard blocks without both markers are silently dropped.
func ParseAt(doc string, now time.Time) ParseResult {
	yamlText, body, fenceLine, err := splitFrontMatter(doc)
	if err != nil {
		return ParseResult{Issues: []Issue{errorIssue(1, err.Error())}}
	}

	fields, err := decodeFrontMatter(yamlText)
	if err != nil {
		return ParseResult{Issues: []Issue{errorIssue(1, err.Error())}}
	}

	title := frontMatterTitle(fields)
	if title == "" {
		return ParseResult{Issues: []Issue{errorIssue(fenceLine, ErrMissingTitle.Error())}}
	}

	sections := splitSections(body)

	tags := parseTags(sections, fields)
	content := parseContent(sections, body)
	cards := parseFlashcardSection(sections)
	meta := parseMeta(sections, fields, now)

	return ParseResult{
		Success: true,
		Note: core.Note{
			Title:   title,
			Content: content,
			Tags:    tags,
			Meta:    meta,
		},
		Flashcards: cards,
	}
}

// parseTags prefers the dedicated Tags section and falls back to the
// front matter array.
func parseTags(sections []section, fields map[string]any) []string {
	if body, ok := findSection(sections, sectionTags); ok {
		return parseBullets(body)
	}
	if tags, ok := frontMatterTags(fields); ok {
		return tags
	}
	return []string{}
}

// parseContent returns the Contenu section, or the whole body for
// legacy and hand-written documents without section markers.
func parseContent(sections []section, body string) string {
	if content, ok := findSection(sections, sectionContent); ok {
		return content
	}
	return strings.TrimSpace(body)
}

// parseFlashcardSection splits the Flashcards section on each question
// marker. A block must contain both markers with non-empty text to
// produce a card; anything else is skipped, not an error.
func parseFlashcardSection(sections []section) []core.Flashcard {
	body, ok := findSection(sections, sectionFlashcards)
	if !ok {
		return nil
	}
	var cards []core.Flashcard
	blocks := strings.Split(body, questionMarker)
	for _, block := range blocks[1:] {
		question, answer, found := strings.Cut(block, answerMarker)
		if !found {
			continue
		}
		question = strings.TrimSpace(question)
		answer = strings.TrimSpace(answer)
		if question == "" || answer == "" {
			continue
		}
		cards = append(cards, core.Flashcard{
			Question: question,
			Answer:   answer,
			Tags:     []string{},
		})
	}
	return cards
}

// parseMeta rebuilds the metadata bag: defaults to now, then the
// Métadonnées section entries, then the front matter (which wins for
// the timestamps, per the de-duplicated export format the section is
// normally the only carrier of them).
func parseMeta(sections []section, fields map[string]any, now time.Time) core.Meta {
	meta := core.Meta{CreatedAt: now, UpdatedAt: now, Extra: map[string]string{}}

	if body, ok := findSection(sections, sectionMetadata); ok {
		for _, entry := range parseMetaEntries(body) {
			switch entry.Key {
			case labelCreatedAt:
				if t, ok := parseTimestamp(entry.Value); ok {
					meta.CreatedAt = t
				}
			case labelUpdatedAt:
				if t, ok := parseTimestamp(entry.Value); ok {
					meta.UpdatedAt = t
				}
			default:
				meta.Extra[entry.Key] = entry.Value
			}
		}
	}

	if raw, ok := fields[keyCreatedAt].(string); ok {
		if t, ok := parseTimestamp(raw); ok {
			meta.CreatedAt = t
		}
	}
	if raw, ok := fields[keyUpdatedAt].(string); ok {
		if t, ok := parseTimestamp(raw); ok {
			meta.UpdatedAt = t
		}
	}

	for k, v := range frontMatterExtras(fields) {
		meta.Extra[k] = v
	}

	if len(meta.Extra) == 0 {
		meta.Extra = nil
	}
	return meta
}
