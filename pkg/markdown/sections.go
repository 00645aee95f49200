package markdown

import "strings"

// Canonical section titles. The labels are part of the interchange
// format, shared with the documents the original exports produced.
const (
	sectionTags       = "Tags"
	sectionContent    = "Contenu"
	sectionFlashcards = "Flashcards"
	sectionMetadata   = "Métadonnées"

	labelCreatedAt = "Date de création"
	labelUpdatedAt = "Dernière modification"

	questionMarker = "### Question"
	answerMarker   = "### Réponse"
)

var knownSections = map[string]bool{
	sectionTags:       true,
	sectionContent:    true,
	sectionFlashcards: true,
	sectionMetadata:   true,
}

// section is one `## <Title>` block of the document body.
type section struct {
	Title string
	Body  string
}

// splitSections cuts the body into named sections keyed by `## ` headers.
// Text before the first header (the `# <title>` heading mostly) is not a
// section and is dropped here; Parse falls back to the whole body when no
// Contenu section exists.
func splitSections(body string) []section {
	var sections []section
	var current *section
	var buf []string

	flush := func() {
		if current != nil {
			current.Body = strings.TrimSpace(strings.Join(buf, "\n"))
			sections = append(sections, *current)
		}
		buf = buf[:0]
	}

	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "## ") {
			flush()
			current = &section{Title: strings.TrimSpace(line[3:])}
			continue
		}
		if current != nil {
			buf = append(buf, line)
		}
	}
	flush()

	return sections
}

func findSection(sections []section, title string) (string, bool) {
	for _, s := range sections {
		if s.Title == title {
			return s.Body, true
		}
	}
	return "", false
}

// parseBullets extracts the values of a `- item` list, one per line.
func parseBullets(body string) []string {
	var items []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "-") {
			continue
		}
		item := strings.TrimSpace(strings.TrimPrefix(trimmed, "-"))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// metaEntry is one `- <key> : <value>` line of the Métadonnées section.
type metaEntry struct {
	Key   string
	Value string
}

// parseMetaEntries reads the Métadonnées bullet list. The ` : ` separator
// (with surrounding spaces) is part of the format, which keeps RFC 3339
// timestamps with their inner colons intact.
func parseMetaEntries(body string) []metaEntry {
	var entries []metaEntry
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "-") {
			continue
		}
		item := strings.TrimSpace(strings.TrimPrefix(trimmed, "-"))
		key, value, ok := strings.Cut(item, " : ")
		if !ok {
			continue
		}
		entries = append(entries, metaEntry{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}
	return entries
}
