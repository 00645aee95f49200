// Package core defines the domain of the knowledge base: notes, the
// flashcards derived from them, and the agent tasks that produce both.
//
// The package is agnostic to storage and transport. Persistence happens
// behind the repository interfaces, and every collaborator receives its
// dependencies explicitly; there are no package-level singletons.
package core
