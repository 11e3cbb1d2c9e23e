// Package extract implements the claim-extraction service: free text in,
// a sequence of {claim, original_text} pairs out, via a single upstream
// completion call. One attempt only - no caching, no retry.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/fault"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/llm"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
)

const extractSystemPrompt = "You are an expert at extracting verifiable factual claims. " +
	"Always respond with strict JSON that matches the requested schema."

const extractUserPromptFormat = `Extract every factual, verifiable claim from the provided text. ` +
	`Combine similar statements and avoid duplicates. Return ONLY valid JSON in the following format: ` +
	`[ { "claim": string, "original_text": string } ].
Text to analyse:
%s`

// Extractor extracts factual claims from free text through a completion provider
type Extractor struct {
	provider llm.Provider
}

// NewExtractor creates a new claim extractor
func NewExtractor(provider llm.Provider) *Extractor {
	return &Extractor{provider: provider}
}

// Extract extracts claims from the given content.
// Empty content is an InvalidInput fault; model output that is not a JSON
// array of well-formed pairs is an UpstreamParse fault.
func (e *Extractor) Extract(ctx context.Context, content string) ([]model.Claim, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fault.New(fault.KindInvalidInput, "content is required")
	}

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		System:      extractSystemPrompt,
		User:        fmt.Sprintf(extractUserPromptFormat, content),
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}

	claims, err := parseClaims(resp.Text)
	if err != nil {
		return nil, err
	}

	return claims, nil
}

// parseClaims parses and shape-checks the model output.
// Models wrap output in fenced code blocks despite instructions, so fences
// are stripped before parsing.
func parseClaims(text string) ([]model.Claim, error) {
	text = StripCodeFence(text)
	if text == "" {
		return nil, fault.New(fault.KindUpstreamParse, "model returned empty output")
	}

	var claims []model.Claim
	if err := json.Unmarshal([]byte(text), &claims); err != nil {
		return nil, fault.Wrap(fault.KindUpstreamParse, "model output is not a JSON claim array", err)
	}

	for i, c := range claims {
		if strings.TrimSpace(c.Claim) == "" || strings.TrimSpace(c.OriginalText) == "" {
			return nil, fault.Newf(fault.KindUpstreamParse,
				"claim %d is missing claim or original_text", i)
		}
	}

	if claims == nil {
		claims = []model.Claim{}
	}

	return claims, nil
}

// StripCodeFence removes a surrounding ```json ... ``` (or plain ```) fence
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
