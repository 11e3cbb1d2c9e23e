package model

import "time"

// Report is the complete fact-check report for one document or URL
type Report struct {
	Subject     string        `json:"subject"`               // Filename or URL that was checked
	SourceURL   string        `json:"source_url,omitempty"`  // Set when the input was a crawled URL
	CheckedAt   time.Time     `json:"checked_at"`            // When the check ran
	TextPreview string        `json:"text_preview"`          // Truncated extracted text
	Results     []ClaimResult `json:"results"`               // One entry per extracted claim
	Stats       ReportStats   `json:"stats"`
}

// ClaimResult pairs an extracted claim with its sources and verdict
type ClaimResult struct {
	Claim   Claim    `json:"claim"`
	Sources []Source `json:"sources,omitempty"` // Candidate evidence used for verification
	Verdict *Verdict `json:"verdict,omitempty"` // Nil if verification was skipped or failed
	Error   string   `json:"error,omitempty"`   // Verification failure, if any
}

// ReportStats summarizes verdict outcomes across the report
type ReportStats struct {
	Claims       int `json:"claims"`
	True         int `json:"true"`
	False        int `json:"false"`
	Insufficient int `json:"insufficient"`
	Failed       int `json:"failed"` // Claims whose verification errored
}

// Tally recomputes Stats from Results
func (r *Report) Tally() {
	s := ReportStats{Claims: len(r.Results)}
	for _, res := range r.Results {
		switch {
		case res.Verdict == nil:
			s.Failed++
		case res.Verdict.Assessment == AssessmentTrue:
			s.True++
		case res.Verdict.Assessment == AssessmentFalse:
			s.False++
		default:
			s.Insufficient++
		}
	}
	r.Stats = s
}
