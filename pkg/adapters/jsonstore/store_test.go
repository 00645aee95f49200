package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zettelhaus/zettel/pkg/core"
)

func testNote(id, title string) core.Note {
	return core.Note{
		ID:      id,
		Title:   title,
		Content: "Body of " + title,
		Tags:    []string{"test"},
		Meta: core.Meta{
			CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestStore_NoteLifecycle(t *testing.T) {
	ctx := context.Background()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	notes := store.Notes()

	n := testNote("n1", "First")
	require.NoError(t, notes.Save(ctx, n))

	got, err := notes.Get(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, n, got)

	list, err := notes.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, notes.Delete(ctx, "n1"))
	_, err = notes.Get(ctx, "n1")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.ErrorIs(t, notes.Delete(ctx, "n1"), core.ErrNotFound)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Notes().Save(ctx, testNote("n1", "Persisted")))
	require.NoError(t, store.Flashcards().Save(ctx, core.Flashcard{
		ID: "f1", Question: "Q", Answer: "A", SourceNoteID: "n1",
	}))
	require.NoError(t, store.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	n, err := reopened.Notes().Get(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "Persisted", n.Title)

	f, err := reopened.Flashcards().Get(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "Q", f.Question)
}

func TestStore_ListByNote(t *testing.T) {
	ctx := context.Background()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	cards := store.Flashcards()
	require.NoError(t, cards.Save(ctx, core.Flashcard{ID: "f1", Question: "Q1", Answer: "A", SourceNoteID: "n1"}))
	require.NoError(t, cards.Save(ctx, core.Flashcard{ID: "f2", Question: "Q2", Answer: "A", SourceNoteID: "n1"}))
	require.NoError(t, cards.Save(ctx, core.Flashcard{ID: "f3", Question: "Q3", Answer: "A", SourceNoteID: "n2"}))

	byNote, err := cards.ListByNote(ctx, "n1")
	require.NoError(t, err)
	require.Len(t, byNote, 2)
	for _, f := range byNote {
		assert.Equal(t, "n1", f.SourceNoteID)
	}
}

func TestStore_SortsNotesByCreation(t *testing.T) {
	ctx := context.Background()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	older := testNote("n1", "Older")
	older.Meta.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := testNote("n2", "Newer")
	newer.Meta.CreatedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Notes().Save(ctx, newer))
	require.NoError(t, store.Notes().Save(ctx, older))

	list, err := store.Notes().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Older", list[0].Title)
	assert.Equal(t, "Newer", list[1].Title)
}

func TestStore_NoTempFilesLeftBehind(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	defer store.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Notes().Save(ctx, testNote("n1", "Rewritten")))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), tempFilePrefix),
			"temp file left behind: %s", e.Name())
	}
}

func TestStore_CorruptFileFailsOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, notesFile), []byte("{not json"), 0644))

	_, err := Open(dir)
	assert.Error(t, err)
}

func TestStore_WatchReloadsExternalWrites(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	defer store.Close()

	reloaded := make(chan struct{}, 1)
	require.NoError(t, store.Watch(ctx, func() {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	}))

	// Simulate another process rewriting the notes file.
	external := `[{"id":"ext1","title":"External","content":"Written elsewhere","tags":[]}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, notesFile), []byte(external), 0644))

	select {
	case <-reloaded:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not pick up the external write")
	}

	n, err := store.Notes().Get(ctx, "ext1")
	require.NoError(t, err)
	assert.Equal(t, "External", n.Title)
}
