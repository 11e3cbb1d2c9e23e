// Package review implements the claim-review workflow as a pure state
// machine: transition functions take a State value and return a new one,
// independent of any rendering layer, so the workflow is testable
// headlessly and usable from both the dashboard API and the CLI.
package review

import (
	"fmt"
	"time"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
)

// Severity is the reviewer-facing risk tier of a claim
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityWarning  Severity = "Warning"
	SeverityMinor    Severity = "Minor"
	SeverityVerified Severity = "Verified"
)

// Decision is a reviewer's disposition of a claim
type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionAccepted Decision = "accepted"
	DecisionRejected Decision = "rejected"
	DecisionResearch Decision = "research"
)

// Tab filters the visible claim list
type Tab string

const (
	TabAll      Tab = "All"
	TabCritical Tab = "Critical"
	TabWarning  Tab = "Warning"
	TabMinor    Tab = "Minor"
	TabVerified Tab = "Verified"
)

// decisionCopy is the static status/note lookup per decision
var decisionCopy = map[Decision]struct {
	Status string
	Note   string
}{
	DecisionAccepted: {
		Status: "Fix applied",
		Note:   "Claim updated with verified correction.",
	},
	DecisionRejected: {
		Status: "Marked as intentionally kept",
		Note:   "Reviewer chose to retain original copy.",
	},
	DecisionResearch: {
		Status: "Escalated for deeper research",
		Note:   "Sent to research queue for follow-up context.",
	},
}

// Claim is a reviewable claim: an extracted claim augmented with
// review-workflow state. Never deleted within a session.
type Claim struct {
	ID           string         `json:"id"`
	Severity     Severity       `json:"severity"`
	Claim        model.Claim    `json:"claim"`
	Sources      []model.Source `json:"sources,omitempty"`
	Confidence   float64        `json:"confidence"`
	Status       string         `json:"status"`
	Correction   string         `json:"correction,omitempty"`
	Decision     Decision       `json:"decision"`
	DecisionNote string         `json:"decisionNote,omitempty"`
	UpdatedAt    string         `json:"updatedAt,omitempty"` // hour:minute, local time
}

// Locked reports whether decision transitions are forbidden for this claim
func (c Claim) Locked() bool {
	return c.Severity == SeverityVerified
}

// State is the complete review-session state. Values are cheap to copy;
// transitions return a new State and never mutate the receiver's slices
// in place.
type State struct {
	Claims     []Claim `json:"claims"` // Insertion order = extraction order
	ActiveTab  Tab     `json:"activeTab"`
	SelectedID string  `json:"selectedId"`
}

// NewState builds the initial state: All tab, first claim selected
func NewState(claims []Claim) State {
	s := State{
		Claims:    claims,
		ActiveTab: TabAll,
	}
	if len(claims) > 0 {
		s.SelectedID = claims[0].ID
	}
	return s
}

// Visible returns the claims matching the active tab, insertion order preserved
func (s State) Visible() []Claim {
	if s.ActiveTab == TabAll {
		return s.Claims
	}

	var visible []Claim
	for _, c := range s.Claims {
		if c.Severity == Severity(s.ActiveTab) {
			visible = append(visible, c)
		}
	}
	return visible
}

// Selected returns the currently selected claim
func (s State) Selected() (Claim, bool) {
	for _, c := range s.Claims {
		if c.ID == s.SelectedID {
			return c, true
		}
	}
	return Claim{}, false
}

// SelectClaim sets the active claim
func (s State) SelectClaim(id string) (State, error) {
	for _, c := range s.Claims {
		if c.ID == id {
			s.SelectedID = id
			return s, nil
		}
	}
	return s, fmt.Errorf("unknown claim: %s", id)
}

// FilterByTab switches the active filter. If the new filter excludes the
// selected claim, the first visible claim is selected; if nothing is
// visible, the last selection is kept.
func (s State) FilterByTab(tab Tab) (State, error) {
	switch tab {
	case TabAll, TabCritical, TabWarning, TabMinor, TabVerified:
	default:
		return s, fmt.Errorf("unknown tab: %s", tab)
	}

	s.ActiveTab = tab

	visible := s.Visible()
	if len(visible) == 0 {
		return s, nil
	}

	for _, c := range visible {
		if c.ID == s.SelectedID {
			return s, nil
		}
	}

	s.SelectedID = visible[0].ID
	return s, nil
}

// ApplyDecision records a reviewer decision on the selected claim.
// Verified claims are locked; re-applying the current decision errors.
func (s State) ApplyDecision(decision Decision, now time.Time) (State, error) {
	copyEntry, ok := decisionCopy[decision]
	if !ok {
		return s, fmt.Errorf("unknown decision: %s", decision)
	}

	selected, ok := s.Selected()
	if !ok {
		return s, fmt.Errorf("no claim selected")
	}

	if selected.Locked() {
		return s, fmt.Errorf("claim %s is verified and locked", selected.ID)
	}
	if selected.Decision == decision {
		return s, fmt.Errorf("claim %s is already %s", selected.ID, decision)
	}

	claims := make([]Claim, len(s.Claims))
	copy(claims, s.Claims)
	for i := range claims {
		if claims[i].ID == selected.ID {
			claims[i].Decision = decision
			claims[i].Status = copyEntry.Status
			claims[i].DecisionNote = copyEntry.Note
			claims[i].UpdatedAt = now.Local().Format("15:04")
		}
	}

	s.Claims = claims
	return s, nil
}
