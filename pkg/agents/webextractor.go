package agents

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/k3a/html2text"

	"github.com/zettelhaus/zettel/pkg/core"
)

// TypeWebExtractor identifies the web extraction agent.
const TypeWebExtractor = "web-extractor"

// maxPageBytes caps how much of a fetched page is read.
const maxPageBytes = 2 << 20

const webExtractorSystem = `You are a knowledge base assistant. You reply with a single JSON object and nothing else, using this shape:
{"title": string, "content": string (markdown), "tags": [string], "flashcards": [{"question": string, "answer": string}]}`

// WebExtractorAgent fetches a web page, strips it to text, and has the
// model distill it into a note.
type WebExtractorAgent struct {
	svc       *core.Service
	completer Completer
	fetcher   *http.Client
}

// NewWebExtractorAgent wires the agent to the service and a completer.
// A nil fetcher falls back to a client with a sane timeout.
func NewWebExtractorAgent(svc *core.Service, completer Completer, fetcher *http.Client) *WebExtractorAgent {
	if fetcher == nil {
		fetcher = &http.Client{Timeout: 30 * time.Second}
	}
	return &WebExtractorAgent{svc: svc, completer: completer, fetcher: fetcher}
}

func (a *WebExtractorAgent) Type() string { return TypeWebExtractor }

// Run fetches the page named by the url input and stores its distilled
// content as a note.
func (a *WebExtractorAgent) Run(ctx context.Context, input map[string]string) (map[string]any, error) {
	raw := strings.TrimSpace(input[InputURL])
	if raw == "" {
		return nil, fmt.Errorf("%s is required", InputURL)
	}
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("invalid url %q", raw)
	}

	text, err := a.fetchText(ctx, raw)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"Distill this web page into a knowledge base note. Keep the essential ideas, "+
			"pick 2-5 topical tags, and write 2-4 flashcards.\n\nSource: %s\n\n%s", raw, text)

	reply, err := a.completer.Complete(ctx, webExtractorSystem, prompt)
	if err != nil {
		return nil, err
	}
	gen, err := decodeGeneratedNote(reply)
	if err != nil {
		return nil, err
	}

	return persistGeneratedNote(ctx, a.svc, gen, map[string]string{
		"source": "web",
		"url":    raw,
	})
}

func (a *WebExtractorAgent) fetchText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", "zettel-web-extractor/1.0")

	resp, err := a.fetcher.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s returned status %d", pageURL, resp.StatusCode)
	}

	html, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", pageURL, err)
	}

	text := strings.TrimSpace(html2text.HTML2Text(string(html)))
	if text == "" {
		return "", fmt.Errorf("page %s has no extractable text", pageURL)
	}
	return text, nil
}
