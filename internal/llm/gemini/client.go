// Package gemini implements llm.Completer on the Gemini generateContent API.
package gemini

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"careercraft-backend/internal/llm"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// Options configures the client. BaseURL is only set in tests.
type Options struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	BaseURL string
}

// Client sends single-turn text prompts to Gemini.
type Client struct {
	models  *genai.Models
	model   string
	timeout time.Duration
}

// New builds a Gemini client. It does not contact the API.
func New(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	// The per-call context carries the deadline; the transport has none of its own.
	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{},
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "genai client")
	}
	return &Client{models: client.Models, model: model, timeout: timeout}, nil
}

// Complete returns the text of the first part of the first candidate.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", llm.Classify(ctx, errors.Wrap(err, "gemini generateContent"))
	}
	text, ok := firstText(resp)
	if !ok {
		return "", llm.Fail(llm.ReasonEmpty, errors.New("gemini reply has no candidate text"))
	}
	return text, nil
}

func firstText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil || len(cand.Content.Parts) == 0 || cand.Content.Parts[0] == nil {
		return "", false
	}
	text := cand.Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

var _ llm.Completer = (*Client)(nil)
