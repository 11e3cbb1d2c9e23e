// Package verify implements the claim-verification service. Unlike
// extraction, the output contract here is strict: the verdict must match
// the five-field schema exactly or the call fails with a schema violation.
package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/extract"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/fault"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/llm"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
)

const verifySystemPrompt = "You are an exacting fact-checker. " +
	"Only output strict JSON that matches the provided schema."

const verifyUserPromptFormat = `Given the claim, original text, and supporting sources, provide a fact-checking judgment. ` +
	`Always respond with a JSON object that matches this schema: ` +
	`{ "claim": string, "assessment": "True" | "False" | "Insufficient Information", "summary": string, "fixed_original_text": string, "confidence_score": number }.

Sources:
%s
Original text: %s
Claim: %s

Remember: respond with valid JSON only.`

// Verifier produces a structured verdict for one claim against its sources
type Verifier struct {
	provider llm.Provider
}

// NewVerifier creates a new claim verifier
func NewVerifier(provider llm.Provider) *Verifier {
	return &Verifier{provider: provider}
}

// Verify checks the claim against its sources and returns a validated verdict.
// An empty source list degrades judgment quality but is not an error.
func (v *Verifier) Verify(ctx context.Context, claim, originalText string, sources []model.Source) (*model.Verdict, error) {
	if strings.TrimSpace(claim) == "" || strings.TrimSpace(originalText) == "" {
		return nil, fault.New(fault.KindInvalidInput, "claim and original text are required")
	}

	resp, err := v.provider.Complete(ctx, llm.CompletionRequest{
		System:      verifySystemPrompt,
		User:        fmt.Sprintf(verifyUserPromptFormat, FormatSources(sources), originalText, claim),
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("verify claim: %w", err)
	}

	return parseVerdict(resp.Text)
}

// FormatSources renders sources as the numbered block the prompt expects
func FormatSources(sources []model.Source) string {
	var b strings.Builder
	for i, s := range sources {
		fmt.Fprintf(&b, "Source %d:\nText: %s\nURL: %s\n\n", i+1, s.Text, s.URL)
	}
	return b.String()
}

// parseVerdict parses and schema-validates the model output.
// Validation failure is a schema violation - there is no repair or retry.
func parseVerdict(text string) (*model.Verdict, error) {
	text = extract.StripCodeFence(text)
	if text == "" {
		return nil, fault.New(fault.KindUpstreamParse, "model returned empty output")
	}

	var verdict model.Verdict
	if err := json.Unmarshal([]byte(text), &verdict); err != nil {
		return nil, fault.Wrap(fault.KindUpstreamParse, "model output is not a JSON verdict", err)
	}

	if !verdict.Assessment.Valid() {
		return nil, fault.Newf(fault.KindSchemaViolation,
			"assessment %q is not one of True, False, Insufficient Information", verdict.Assessment)
	}
	if verdict.ConfidenceScore < 0 || verdict.ConfidenceScore > 100 {
		return nil, fault.Newf(fault.KindSchemaViolation,
			"confidence_score %v is outside [0,100]", verdict.ConfidenceScore)
	}
	if verdict.Claim == "" {
		return nil, fault.New(fault.KindSchemaViolation, "verdict is missing the claim echo")
	}

	return &verdict, nil
}
