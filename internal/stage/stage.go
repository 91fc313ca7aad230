// Package stage implements the loan pipeline model: the ordered stages, the
// resolver that infers a stage from orchestrator replies, and the tracker
// that derives per-step display status.
package stage

import "strings"

// Stage identifies a point in the loan pipeline.
type Stage string

// Pipeline stages, in order, plus the out-of-band rejection.
const (
	Sales        Stage = "sales"
	Verification Stage = "verification"
	Underwriting Stage = "underwriting"
	Sanction     Stage = "sanction"
	Rejected     Stage = "rejected"
)

// Initial is the stage every conversation starts in.
const Initial = Sales

// pipeline is the fixed step order used for status derivation.
var pipeline = []Stage{Sales, Verification, Underwriting, Sanction}

// Pipeline returns the ordered pipeline stages, excluding Rejected.
func Pipeline() []Stage {
	out := make([]Stage, len(pipeline))
	copy(out, pipeline)
	return out
}

// Parse converts a raw stage string into a known Stage.
// Matching is case-insensitive and ignores surrounding whitespace.
func Parse(s string) (Stage, bool) {
	st := Stage(strings.ToLower(strings.TrimSpace(s)))
	if st.Valid() {
		return st, true
	}
	return "", false
}

// Valid reports whether s is one of the known stages.
func (s Stage) Valid() bool {
	switch s {
	case Sales, Verification, Underwriting, Sanction, Rejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are expected.
func (s Stage) IsTerminal() bool {
	return s == Sanction || s == Rejected
}

// Index returns the position of s in the pipeline, or -1 for Rejected and
// unknown values.
func (s Stage) Index() int {
	for i, p := range pipeline {
		if p == s {
			return i
		}
	}
	return -1
}

// String implements fmt.Stringer.
func (s Stage) String() string {
	return string(s)
}

// Status is the derived display state of one pipeline step.
type Status string

// Status values.
const (
	StatusCompleted Status = "completed"
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusRejected  Status = "rejected"
)

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// StatusOf derives the status of step given the current stage.
//
// A rejection is shown on the underwriting step: earlier steps are completed
// and later ones stay pending.
func StatusOf(step, current Stage) Status {
	stepIdx := step.Index()

	if current == Rejected {
		rejectIdx := Underwriting.Index()
		switch {
		case step == Underwriting:
			return StatusRejected
		case stepIdx >= 0 && stepIdx < rejectIdx:
			return StatusCompleted
		default:
			return StatusPending
		}
	}

	currentIdx := current.Index()
	switch {
	case stepIdx < 0 || currentIdx < 0:
		return StatusPending
	case stepIdx < currentIdx:
		return StatusCompleted
	case stepIdx == currentIdx:
		return StatusActive
	default:
		return StatusPending
	}
}
