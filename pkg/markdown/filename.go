package markdown

import (
	"strings"

	"github.com/zettelhaus/zettel/pkg/core"
)

// Filename derives the export filename from the note title: lower-cased,
// every run of non-alphanumeric characters collapsed to a single hyphen,
// leading and trailing hyphens stripped, `.md` appended.
//
// The mapping is deterministic but not collision-free: two titles that
// differ only in punctuation produce the same filename. That is a known
// limitation of the format, not something to fix here.
func Filename(note core.Note) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(note.Title) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String() + ".md"
}
