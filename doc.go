// Package zettel is the composition root for the Zettel knowledge base.
//
// It connects the core business logic (notes, flashcards, spaced
// repetition) with the infrastructure adapters (JSON store, Markdown
// codec, agents) behind a small facade.
//
// Philosophy:
//
// Zettel treats a directory of JSON collections as a personal knowledge
// database whose canonical interchange format is Markdown with YAML
// front matter. Everything in the base can leave as a document and come
// back without loss.
//
// Features:
//
//   - **Notes and flashcards**: titled, tagged notes with spaced-repetition
//     cards attached to them.
//   - **Markdown round trip**: export produces canonical documents; import
//     reads them (and hand-written ones) back.
//   - **Review scheduling**: exponential intervals with a reset on failure.
//   - **Agents**: optional background producers that turn a book reference
//     or a web page into a note, tracked as tasks.
//   - **Atomic storage**: every write goes through a temp-file rename.
//
// Usage:
//
//	app, err := zettel.New("./data",
//		zettel.WithLogger(logger),
//	)
//	if err != nil { ... }
//	defer app.Close()
//
//	note, err := app.Service.CreateNote(ctx, "Goroutines", "Lightweight threads.", []string{"go"}, nil)
package zettel
