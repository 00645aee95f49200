package markdown

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Front matter keys with a fixed meaning; everything else is an extra
// metadata field.
const (
	keyTitle     = "title"
	keyTags      = "tags"
	keyCreatedAt = "createdAt"
	keyUpdatedAt = "updatedAt"
)

// timestampLayouts are accepted when reading dates from a document.
// Export always writes RFC 3339; the others tolerate hand-written files.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// splitFrontMatter separates the YAML front matter from the body.
// fenceLine is the 1-based line number of the closing fence, which later
// issues are reported against. Line endings are normalized to \n.
func splitFrontMatter(doc string) (yamlText, body string, fenceLine int, err error) {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	lines := strings.Split(doc, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", "", 0, ErrMissingFrontMatter
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			yamlText = strings.Join(lines[1:i], "\n")
			body = strings.Join(lines[i+1:], "\n")
			return yamlText, body, i + 1, nil
		}
	}
	return "", "", 0, ErrUnclosedFrontMatter
}

// decodeFrontMatter parses the raw YAML block into an open map.
func decodeFrontMatter(yamlText string) (map[string]any, error) {
	fields := make(map[string]any)
	if err := yaml.Unmarshal([]byte(yamlText), &fields); err != nil {
		return nil, fmt.Errorf("invalid YAML front matter: %w", err)
	}
	return fields, nil
}

func frontMatterTitle(fields map[string]any) string {
	if t, ok := fields[keyTitle].(string); ok {
		return strings.TrimSpace(t)
	}
	return ""
}

// frontMatterTags returns the tags array when present and well-formed.
// The second result distinguishes "absent or malformed" from "empty".
func frontMatterTags(fields map[string]any) ([]string, bool) {
	raw, ok := fields[keyTags]
	if !ok {
		return nil, false
	}
	switch v := raw.(type) {
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				tags = append(tags, strings.TrimSpace(s))
			}
		}
		return tags, true
	case []string:
		return v, true
	default:
		return nil, false
	}
}

// frontMatterExtras collects every key without a fixed meaning, flattened
// to strings so the metadata bag stays scalar.
func frontMatterExtras(fields map[string]any) map[string]string {
	extras := make(map[string]string)
	for k, v := range fields {
		switch k {
		case keyTitle, keyTags, keyCreatedAt, keyUpdatedAt:
			continue
		}
		extras[k] = fmt.Sprint(v)
	}
	return extras
}

func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
