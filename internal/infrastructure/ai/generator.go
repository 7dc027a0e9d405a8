// Package ai provides the heuristic gate and the content-generation
// collaborator used by the auto-answer pipeline. Two implementations of
// ports.AnswerGenerator exist: an HTTP client for an external generation
// service, and a local template generator used when no service is configured.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Phrases whose presence marks a question as answerable by the bot. The gate
// is deliberately simple: it looks for question-shaped technical content and
// bails on anything opinion- or discussion-shaped.
var (
	answerableMarkers = []string{
		"how", "what", "why", "when", "where", "which", "error", "fail",
		"difference", "install", "configure", "implement", "fix", "debug", "?",
	}
	skipMarkers = []string{
		"opinion", "best language", "discuss", "thoughts on", "recommend me", "survey",
	}
)

// ShouldAnswer is the heuristic gate over a question's title and description.
// The exact heuristic is intentionally modest; it is a pluggable predicate
// and anything smarter lives behind the same signature.
func ShouldAnswer(title, description string) bool {
	text := strings.ToLower(title + " " + description)
	for _, m := range skipMarkers {
		if strings.Contains(text, m) {
			return false
		}
	}
	for _, m := range answerableMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// TemplateGenerator produces a canned, question-aware answer without calling
// any external service.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

func (g *TemplateGenerator) ShouldAnswer(title, description string) bool {
	return ShouldAnswer(title, description)
}

func (g *TemplateGenerator) Generate(_ context.Context, title, _ string) (string, error) {
	return fmt.Sprintf(
		"Here is an automatically generated starting point for %q.\n\n"+
			"1. Reproduce the behaviour in the smallest possible setup and note the exact error output.\n"+
			"2. Check the official documentation for the component involved; most issues of this shape are configuration-related.\n"+
			"3. If the problem persists, include versions and a minimal example when following up.\n\n"+
			"This answer was generated automatically; a human answer may follow.",
		title,
	), nil
}

// HTTPGenerator calls an external text-generation service.
type HTTPGenerator struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHTTPGenerator(endpoint, apiKey string) *HTTPGenerator {
	return &HTTPGenerator{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *HTTPGenerator) ShouldAnswer(title, description string) bool {
	return ShouldAnswer(title, description)
}

type generateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type generateResponse struct {
	Content string `json:"content"`
}

func (g *HTTPGenerator) Generate(ctx context.Context, title, description string) (string, error) {
	body, err := json.Marshal(generateRequest{Title: title, Description: description})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ai generator: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai generator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai generator: unexpected status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("ai generator: decode: %w", err)
	}
	if out.Content == "" {
		return "", fmt.Errorf("ai generator: empty content")
	}
	return out.Content, nil
}
