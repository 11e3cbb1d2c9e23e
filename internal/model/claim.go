package model

// Claim represents a factual assertion extracted from source text
type Claim struct {
	Claim        string `json:"claim"`         // Normalized factual statement
	OriginalText string `json:"original_text"` // Verbatim excerpt it was derived from
}

// Source is a candidate piece of evidence for a claim
type Source struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Assessment is the fact-check judgment category for a claim
type Assessment string

const (
	AssessmentTrue         Assessment = "True"
	AssessmentFalse        Assessment = "False"
	AssessmentInsufficient Assessment = "Insufficient Information"
)

// Valid reports whether the assessment is one of the three allowed literals
func (a Assessment) Valid() bool {
	switch a {
	case AssessmentTrue, AssessmentFalse, AssessmentInsufficient:
		return true
	}
	return false
}

// Verdict is the structured fact-check result for a single claim
type Verdict struct {
	Claim             string     `json:"claim"`               // Echo of the input claim
	Assessment        Assessment `json:"assessment"`          // True, False, or Insufficient Information
	Summary           string     `json:"summary"`             // Reasoning summary
	FixedOriginalText string     `json:"fixed_original_text"` // Suggested correction of the excerpt
	ConfidenceScore   float64    `json:"confidence_score"`    // 0-100
}
