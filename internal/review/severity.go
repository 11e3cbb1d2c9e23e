package review

import (
	"fmt"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
)

// Severity thresholds. Transparent on purpose: a reviewer should be able
// to reconstruct every tier assignment from the verdict alone.
const (
	verifiedConfidence = 90 // True at or above this is Verified
	criticalConfidence = 60 // False at or above this is Critical
)

// initialStatus is the pre-decision status line per severity tier
var initialStatus = map[Severity]string{
	SeverityVerified: "Fully supported",
	SeverityCritical: "Requires correction",
	SeverityWarning:  "Partially unsupported",
	SeverityMinor:    "Needs updated context",
}

// SeverityFor maps a verdict to a reviewer-facing severity tier
func SeverityFor(v model.Verdict) Severity {
	switch v.Assessment {
	case model.AssessmentTrue:
		if v.ConfidenceScore >= verifiedConfidence {
			return SeverityVerified
		}
		return SeverityMinor
	case model.AssessmentFalse:
		if v.ConfidenceScore >= criticalConfidence {
			return SeverityCritical
		}
		return SeverityWarning
	default:
		return SeverityWarning
	}
}

// FromResults projects fact-check results into reviewable claims,
// preserving extraction order. Unverified claims default to Warning.
func FromResults(results []model.ClaimResult) []Claim {
	claims := make([]Claim, 0, len(results))
	for i, res := range results {
		c := Claim{
			ID:       fmt.Sprintf("CLM-%03d", i+1),
			Severity: SeverityWarning,
			Claim:    res.Claim,
			Sources:  res.Sources,
			Decision: DecisionPending,
		}
		if res.Verdict != nil {
			c.Severity = SeverityFor(*res.Verdict)
			c.Confidence = res.Verdict.ConfidenceScore
			c.Correction = res.Verdict.FixedOriginalText
		}
		c.Status = initialStatus[c.Severity]
		claims = append(claims, c)
	}
	return claims
}
