// Package services – prompt construction
//
// This file builds the two model prompts used by the pipeline: the
// classification prompt (JSON-biased, expects a category id back) and the
// grounded-generation prompt (free text, strictly constrained to the
// supplied context). Context serialization is deterministic: Q&A pairs are
// marshalled through a struct so field order is stable.
package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smart-qa/go-widget-backend/internal/domain"
)

// ContextPair is one retrieved Q&A pair handed to the generation prompt.
type ContextPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PairsFromEntries projects knowledge entries onto the prompt context shape.
func PairsFromEntries(entries []domain.KnowledgeEntry) []ContextPair {
	out := make([]ContextPair, 0, len(entries))
	for _, e := range entries {
		out = append(out, ContextPair{Question: e.Question, Answer: e.Answer})
	}
	return out
}

// BuildClassificationPrompt enumerates the tenant's categories and instructs
// the model to return only the best-matching category id, defaulting to the
// "General" sentinel when nothing fits.
func BuildClassificationPrompt(query string, categories []domain.Category) string {
	var list strings.Builder
	for _, c := range categories {
		fmt.Fprintf(&list, "- ID: %s, Name: %s, Description: %s\n", c.ID, c.Name, c.Description)
	}

	return fmt.Sprintf(`You are an AI assistant that classifies user queries into specific categories.
Identify the most relevant category for the user's query from the list below.
If no category fits well, use "General".

Categories:
%s
User Query: %q

Return only the Category ID. If multiple apply, return the best one.
`, list.String(), query)
}

// BuildGroundingPrompt serializes the retrieved context as a JSON array of
// Q&A pairs and wraps it in strict-grounding instructions: answer only from
// the context, admit ignorance otherwise. An empty context serializes as []
// and steers the model toward the admit-ignorance branch.
func BuildGroundingPrompt(query string, context []ContextPair) string {
	if context == nil {
		context = []ContextPair{}
	}
	// Marshalling a struct slice keeps field order stable across runs.
	ctxJSON, err := json.MarshalIndent(context, "", "  ")
	if err != nil {
		ctxJSON = []byte("[]")
	}

	return fmt.Sprintf(`You are a helpful support assistant. Answer the user's question based ONLY on the provided Context.
The Context is a list of Q&A pairs in JSON format.
Strictly adhere to the provided information.
If the answer is not in the context, politely say you don't have that information.
Do not hallucinate or use outside knowledge.

Context:
%s

User Question: %q
`, ctxJSON, query)
}
