package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
)

// Renderer writes fact-check reports as JSON, Markdown, or a terminal summary
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderMarkdown writes the report as a Markdown document
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Fact-Check Report: %s\n\n", report.Subject)
	if report.SourceURL != "" {
		fmt.Fprintf(&b, "Source: %s\n\n", report.SourceURL)
	}
	fmt.Fprintf(&b, "Checked: %s\n\n", report.CheckedAt.Format("2006-01-02 15:04 UTC"))

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "| Claims | True | False | Insufficient | Failed |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n\n",
		report.Stats.Claims, report.Stats.True, report.Stats.False,
		report.Stats.Insufficient, report.Stats.Failed)

	fmt.Fprintf(&b, "## Claims\n\n")
	for i, res := range report.Results {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, res.Claim.Claim)
		fmt.Fprintf(&b, "> %s\n\n", res.Claim.OriginalText)

		switch {
		case res.Verdict != nil:
			fmt.Fprintf(&b, "- **Assessment**: %s (%.0f%% confidence)\n", res.Verdict.Assessment, res.Verdict.ConfidenceScore)
			if res.Verdict.Summary != "" {
				fmt.Fprintf(&b, "- **Summary**: %s\n", res.Verdict.Summary)
			}
			if res.Verdict.Assessment == model.AssessmentFalse && res.Verdict.FixedOriginalText != "" {
				fmt.Fprintf(&b, "- **Suggested fix**: %s\n", res.Verdict.FixedOriginalText)
			}
		case res.Error != "":
			fmt.Fprintf(&b, "- **Verification failed**: %s\n", res.Error)
		}

		if len(res.Sources) > 0 {
			fmt.Fprintf(&b, "- **Sources**:\n")
			for _, s := range res.Sources {
				fmt.Fprintf(&b, "  - %s\n", s.URL)
			}
		}
		fmt.Fprintf(&b, "\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderSummary prints a one-screen summary
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	fmt.Fprintf(w, "\n%s\n", report.Subject)
	fmt.Fprintf(w, "  claims: %d  true: %d  false: %d  insufficient: %d  failed: %d\n",
		report.Stats.Claims, report.Stats.True, report.Stats.False,
		report.Stats.Insufficient, report.Stats.Failed)

	for _, res := range report.Results {
		if res.Verdict != nil && res.Verdict.Assessment == model.AssessmentFalse {
			fmt.Fprintf(w, "  ✗ %s\n", res.Claim.Claim)
		}
	}
}
