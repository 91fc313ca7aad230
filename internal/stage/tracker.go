package stage

import "sync"

// Step describes one pipeline step for display.
type Step struct {
	ID    Stage
	Label string
	Sub   string
}

var steps = []Step{
	{ID: Sales, Label: "Sales Agent", Sub: "Negotiating Terms"},
	{ID: Verification, Label: "Verification Agent", Sub: "KYC & Identity Check"},
	{ID: Underwriting, Label: "Underwriting Agent", Sub: "Risk Analysis & Scoring"},
	{ID: Sanction, Label: "Sanction Generator", Sub: "Finalizing PDF"},
}

// Steps returns the display descriptions of the pipeline steps, in order.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// StepProgress pairs a step with its derived status.
type StepProgress struct {
	Step
	Status Status
}

// Tracker holds the current stage of one conversation.
//
// It trusts whatever stage it is given: ordering policy belongs to the
// Resolver. It is safe for concurrent use.
type Tracker struct {
	mu      sync.RWMutex
	current Stage
}

// NewTracker creates a Tracker at the initial stage.
func NewTracker() *Tracker {
	return &Tracker{current: Initial}
}

// Current returns the current stage.
func (t *Tracker) Current() Stage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Set replaces the current stage and reports whether it changed.
// Unknown values are ignored.
func (t *Tracker) Set(s Stage) bool {
	if !s.Valid() {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	changed := t.current != s
	t.current = s
	return changed
}

// StatusOf derives the status of step relative to the current stage.
func (t *Tracker) StatusOf(step Stage) Status {
	return StatusOf(step, t.Current())
}

// Progress returns every step with its status.
func (t *Tracker) Progress() []StepProgress {
	current := t.Current()
	out := make([]StepProgress, len(steps))
	for i, s := range steps {
		out[i] = StepProgress{Step: s, Status: StatusOf(s.ID, current)}
	}
	return out
}

// IsTerminal reports whether the tracker reached sanction or rejection.
func (t *Tracker) IsTerminal() bool {
	return t.Current().IsTerminal()
}
