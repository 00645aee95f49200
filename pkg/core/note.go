package core

import (
	"strings"
	"time"
)

// Meta carries the note metadata. The timestamps are first-class fields;
// everything else a producer (an agent, an imported document) wants to
// attach goes into Extra so unknown keys survive a round trip.
type Meta struct {
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// Clone returns a deep copy of the metadata.
func (m Meta) Clone() Meta {
	out := Meta{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
	if len(m.Extra) > 0 {
		out.Extra = make(map[string]string, len(m.Extra))
		for k, v := range m.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// Note is the atomic unit of the knowledge base: a titled, tagged block
// of free text.
type Note struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Meta    Meta     `json:"metadata"`
}

// Validate checks the note invariants: title and content must be
// non-empty after trimming.
func (n Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(n.Content) == "" {
		return ErrEmptyContent
	}
	return nil
}

// HasTag reports whether the note carries the given tag.
func (n Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
