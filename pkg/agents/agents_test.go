package agents

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zettelhaus/zettel/pkg/adapters/jsonstore"
	"github.com/zettelhaus/zettel/pkg/core"
)

// fakeCompleter replies with a canned string and records the prompt.
type fakeCompleter struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, _, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

const goodReply = `Here is the note:
` + "```json" + `
{"title": "Thinking, Fast and Slow", "content": "Two systems drive thought.", "tags": ["psychology"], "flashcards": [{"question": "What is System 1?", "answer": "Fast, intuitive thinking."}]}
` + "```"

func newAgentFixture(t *testing.T) (*core.Service, *jsonstore.Store) {
	t.Helper()
	store, err := jsonstore.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return core.NewService(store.Notes(), store.Flashcards()), store
}

func TestBookSummaryAgent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAgentFixture(t)
	completer := &fakeCompleter{reply: goodReply}
	agent := NewBookSummaryAgent(svc, completer)

	result, err := agent.Run(ctx, map[string]string{
		InputBookTitle:  "Thinking, Fast and Slow",
		InputBookAuthor: "Daniel Kahneman",
	})
	require.NoError(t, err)
	assert.Contains(t, completer.prompt, "Daniel Kahneman")

	noteID, _ := result["noteId"].(string)
	require.NotEmpty(t, noteID)
	assert.Equal(t, 1, result["flashcards"])

	note, err := svc.GetNote(ctx, noteID)
	require.NoError(t, err)
	assert.Equal(t, "Thinking, Fast and Slow", note.Title)
	assert.Equal(t, "book", note.Meta.Extra["source"])

	cards, err := svc.FlashcardsByNote(ctx, noteID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "What is System 1?", cards[0].Question)
}

func TestBookSummaryAgent_RequiresTitle(t *testing.T) {
	svc, _ := newAgentFixture(t)
	agent := NewBookSummaryAgent(svc, &fakeCompleter{reply: goodReply})

	_, err := agent.Run(context.Background(), map[string]string{})
	assert.Error(t, err)
}

func TestBookSummaryAgent_BadModelReply(t *testing.T) {
	svc, _ := newAgentFixture(t)
	agent := NewBookSummaryAgent(svc, &fakeCompleter{reply: "I cannot do that."})

	_, err := agent.Run(context.Background(), map[string]string{InputBookTitle: "Any"})
	assert.Error(t, err)
}

func TestWebExtractorAgent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAgentFixture(t)

	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html><body><h1>Go Concurrency</h1><p>Share memory by communicating.</p></body></html>"))
	}))
	defer page.Close()

	completer := &fakeCompleter{reply: `{"title": "Go Concurrency", "content": "Share memory by communicating.", "tags": ["go"], "flashcards": []}`}
	agent := NewWebExtractorAgent(svc, completer, page.Client())

	result, err := agent.Run(ctx, map[string]string{InputURL: page.URL})
	require.NoError(t, err)
	assert.Contains(t, completer.prompt, "Share memory by communicating.")

	noteID, _ := result["noteId"].(string)
	note, err := svc.GetNote(ctx, noteID)
	require.NoError(t, err)
	assert.Equal(t, page.URL, note.Meta.Extra["url"])
	assert.Equal(t, "web", note.Meta.Extra["source"])
}

func TestWebExtractorAgent_RejectsBadURL(t *testing.T) {
	svc, _ := newAgentFixture(t)
	agent := NewWebExtractorAgent(svc, &fakeCompleter{}, nil)

	for _, bad := range []string{"", "ftp://example.com/x", "not a url at all"} {
		if _, err := agent.Run(context.Background(), map[string]string{InputURL: bad}); err == nil {
			t.Errorf("expected an error for url %q", bad)
		}
	}
}

func TestWebExtractorAgent_FetchFailure(t *testing.T) {
	svc, _ := newAgentFixture(t)

	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer page.Close()

	agent := NewWebExtractorAgent(svc, &fakeCompleter{reply: goodReply}, page.Client())
	_, err := agent.Run(context.Background(), map[string]string{InputURL: page.URL})
	assert.Error(t, err)
}

func TestLLMClient_Complete(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.Header.Get("anthropic-version"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content": [{"type": "text", "text": "hello "}, {"type": "text", "text": "world"}]}`))
	}))
	defer api.Close()

	client := NewLLMClient("test-key", WithBaseURL(api.URL))
	reply, err := client.Complete(context.Background(), "system", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "hello world", reply)
}

func TestLLMClient_APIError(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"type": "authentication_error", "message": "bad key"}}`))
	}))
	defer api.Close()

	client := NewLLMClient("wrong", WithBaseURL(api.URL))
	_, err := client.Complete(context.Background(), "", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication_error")
}

func TestOrchestrator(t *testing.T) {
	ctx := context.Background()
	svc, store := newAgentFixture(t)

	agent := NewBookSummaryAgent(svc, &fakeCompleter{reply: goodReply})
	orch := NewOrchestrator(store.Tasks(), []Agent{agent})

	task, err := orch.Start(ctx, TypeBookSummary, map[string]string{InputBookTitle: "Any Book"})
	require.NoError(t, err)
	assert.Equal(t, core.TaskPending, task.Status)

	require.Eventually(t, func() bool {
		got, err := orch.Task(ctx, task.ID)
		return err == nil && got.Status == core.TaskCompleted
	}, 3*time.Second, 10*time.Millisecond)

	got, err := orch.Task(ctx, task.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, got.Result["noteId"])
	assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
}

func TestOrchestrator_FailedRun(t *testing.T) {
	ctx := context.Background()
	svc, store := newAgentFixture(t)

	agent := NewBookSummaryAgent(svc, &fakeCompleter{err: errors.New("model offline")})
	orch := NewOrchestrator(store.Tasks(), []Agent{agent})

	task, err := orch.Start(ctx, TypeBookSummary, map[string]string{InputBookTitle: "Any Book"})
	require.NoError(t, err)
	orch.Wait()

	got, err := orch.Task(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, core.TaskFailed, got.Status)
	assert.Contains(t, got.Error, "model offline")
}

func TestOrchestrator_UnknownAgent(t *testing.T) {
	_, store := newAgentFixture(t)
	orch := NewOrchestrator(store.Tasks(), nil)

	_, err := orch.Start(context.Background(), "nope", nil)
	assert.Error(t, err)
}
