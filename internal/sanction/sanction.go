// Package sanction captures the sanctioned-loan artifact of a conversation.
package sanction

import (
	"fmt"
	"sync"

	"github.com/thruflo/loanops/internal/backend"
	"github.com/thruflo/loanops/internal/stage"
)

// Source records how a Record came to exist.
type Source string

// Source values.
const (
	// SourceBackend means the orchestrator sent the sanction letter itself.
	SourceBackend Source = "backend"
	// SourceSynthesized means the record was built from loan details when
	// the pipeline reached the sanction stage.
	SourceSynthesized Source = "synthesized"
)

// Record is the sanctioned-loan artifact. It is created once per session and
// never modified.
type Record struct {
	FileReference string
	LoanDetails   backend.LoanDetails
	Source        Source
}

// FileReference returns the deterministic document name for a session.
// It matches the naming used by the orchestrator's letter generator.
func FileReference(sessionID string) string {
	return fmt.Sprintf("sanction_%s.pdf", sessionID)
}

// Manager holds at most one Record.
// It is safe for concurrent use.
type Manager struct {
	mu     sync.RWMutex
	record *Record
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{}
}

// MaybeCapture inspects a response and captures a Record when one is
// warranted. It returns the current record and whether this call created it.
//
// An existing record is never replaced or cleared. Otherwise an explicit
// sanction letter is used as-is; failing that, loan details seen while the
// resolved stage is sanction produce a record named after the session.
func (m *Manager) MaybeCapture(resp *backend.ChatResponse, resolved stage.Stage, sessionID string) (*Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.record != nil {
		return m.record, false
	}

	switch {
	case resp.HasSanctionLetter():
		details := resp.SanctionLetter.LoanDetails
		if details == nil {
			details = resp.LoanDetails
		}
		m.record = &Record{
			FileReference: resp.SanctionLetter.File,
			LoanDetails:   details,
			Source:        SourceBackend,
		}
	case resp.HasLoanDetails() && resolved == stage.Sanction:
		m.record = &Record{
			FileReference: FileReference(sessionID),
			LoanDetails:   resp.LoanDetails,
			Source:        SourceSynthesized,
		}
	default:
		return nil, false
	}

	return m.record, true
}

// Record returns the captured record, if any.
func (m *Manager) Record() (*Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.record, m.record != nil
}
