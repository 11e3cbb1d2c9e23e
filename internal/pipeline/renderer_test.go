package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
)

func testReport() *model.Report {
	r := &model.Report{
		Subject:   "article.txt",
		CheckedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Results: []model.ClaimResult{
			{
				Claim: model.Claim{Claim: "The Nile is 6650 km long.", OriginalText: "The Nile is 6650 km long."},
				Sources: []model.Source{
					{Text: "Nile facts", URL: "https://example.com/nile"},
				},
				Verdict: &model.Verdict{
					Claim:           "The Nile is 6650 km long.",
					Assessment:      model.AssessmentTrue,
					Summary:         "Supported.",
					ConfidenceScore: 92,
				},
			},
			{
				Claim: model.Claim{Claim: "The Amazon is 2000 km long.", OriginalText: "The Amazon is 2000 km long."},
				Verdict: &model.Verdict{
					Claim:             "The Amazon is 2000 km long.",
					Assessment:        model.AssessmentFalse,
					Summary:           "The Amazon is roughly 6400 km long.",
					FixedOriginalText: "The Amazon is roughly 6400 km long.",
					ConfidenceScore:   88,
				},
			},
		},
	}
	r.Tally()
	return r
}

func TestRenderer_RenderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	if err := NewRenderer().RenderJSON(testReport(), path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	var parsed model.Report
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if parsed.Subject != "article.txt" || len(parsed.Results) != 2 {
		t.Errorf("round trip mismatch: %+v", parsed)
	}
}

func TestRenderer_RenderMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")

	if err := NewRenderer().RenderMarkdown(testReport(), path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	md := string(data)

	for _, want := range []string{
		"# Fact-Check Report: article.txt",
		"| 2 | 1 | 1 | 0 | 0 |",
		"### 1. The Nile is 6650 km long.",
		"**Assessment**: True (92% confidence)",
		"**Suggested fix**: The Amazon is roughly 6400 km long.",
		"https://example.com/nile",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected %q in markdown:\n%s", want, md)
		}
	}
}

func TestRenderer_RenderSummary(t *testing.T) {
	var b strings.Builder
	NewRenderer().RenderSummary(&b, testReport())

	out := b.String()
	if !strings.Contains(out, "claims: 2  true: 1  false: 1") {
		t.Errorf("unexpected summary: %s", out)
	}
	// False claims are called out
	if !strings.Contains(out, "The Amazon is 2000 km long.") {
		t.Errorf("expected false claim in summary: %s", out)
	}
}
