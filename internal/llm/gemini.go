// Package llm provides the Gemini-backed implementation of the pipeline's
// text-generation capability. The client is constructed once per process
// lifetime and injected into the orchestrator; no package-level singletons.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Gemini generates text through the Gemini API. It implements
// services.TextGenerator and is safe for concurrent use.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini constructs a Gemini client for the given API key and model name
// (e.g. "gemini-1.5-flash").
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("gemini: model name is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Generate invokes the model in free-text mode and returns the generated
// text verbatim.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, prompt, nil)
}

// GenerateJSON invokes the model biased toward a JSON response body. The
// result is still returned as raw text: callers own the parsing, since model
// output is untrusted either way.
func (g *Gemini) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
}

func (g *Gemini) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}
