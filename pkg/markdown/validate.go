package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Validate reports the structural problems of a document without
// importing it. It shares the front matter helpers with Parse, so the
// two can never disagree on what a well-formed document is.
func Validate(doc string) []Issue {
	var issues []Issue

	yamlText, body, fenceLine, err := splitFrontMatter(doc)
	if err != nil {
		return append(issues, errorIssue(1, err.Error()))
	}

	fields, err := decodeFrontMatter(yamlText)
	if err != nil {
		return append(issues, errorIssue(1, err.Error()))
	}

	if frontMatterTitle(fields) == "" {
		issues = append(issues, errorIssue(fenceLine, ErrMissingTitle.Error()))
	}

	// An absent tags key is fine (Parse falls back to no tags); only a
	// present key with the wrong shape is worth a warning.
	if _, present := fields[keyTags]; present {
		if _, ok := frontMatterTags(fields); !ok {
			issues = append(issues, warningIssue(fenceLine, "tags must be a list of strings"))
		}
	}

	for _, key := range []string{keyCreatedAt, keyUpdatedAt} {
		raw, ok := fields[key].(string)
		if !ok {
			continue
		}
		if _, ok := parseTimestamp(raw); !ok {
			issues = append(issues, warningIssue(fenceLine, fmt.Sprintf("%s is not a recognizable date: %q", key, raw)))
		}
	}

	issues = append(issues, validateSections(body, fenceLine)...)

	return issues
}

// validateSections walks the body headings and flags sections the
// importer would ignore. Heading detection goes through goldmark so
// indented or fenced `## ` lookalikes inside code blocks do not trigger
// false positives.
func validateSections(body string, fenceLine int) []Issue {
	var issues []Issue
	source := []byte(body)

	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	seen := make(map[string]bool)
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindHeading {
			return ast.WalkContinue, nil
		}
		heading := n.(*ast.Heading)
		if heading.Level != 2 {
			return ast.WalkContinue, nil
		}
		title := strings.TrimSpace(string(n.Text(source)))
		seen[title] = true
		if !knownSections[title] {
			issues = append(issues, warningIssue(headingLine(heading, source, fenceLine),
				fmt.Sprintf("unknown section %q will be ignored on import", title)))
		}
		return ast.WalkSkipChildren, nil
	})

	if !seen[sectionContent] {
		issues = append(issues, warningIssue(fenceLine,
			"no Contenu section: the whole body will be imported as content"))
	}

	return issues
}

// headingLine converts a heading's byte offset in the body into a
// 1-based line number of the full document.
func headingLine(heading *ast.Heading, source []byte, fenceLine int) int {
	lines := heading.Lines()
	if lines.Len() == 0 {
		return fenceLine
	}
	start := lines.At(0).Start
	if start > len(source) {
		start = len(source)
	}
	return fenceLine + 1 + strings.Count(string(source[:start]), "\n")
}
