// Package markdown implements the canonical document format of the
// knowledge base: a YAML front matter followed by the Tags, Contenu,
// Flashcards and Métadonnées sections. It round-trips a note and its
// flashcards to a single UTF-8 Markdown document and back.
//
// The codec is pure: it transforms strings and domain values, never
// touches storage, and reports recoverable problems as an issue list
// instead of failing the whole document.
package markdown
