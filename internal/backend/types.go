// Package backend provides the wire types and HTTP client used to talk to the
// loan orchestrator. The orchestrator owns all routing decisions; this package
// only moves requests and responses.
package backend

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// LoanDetails is the structured loan payload produced by the orchestrator.
// It is opaque to the client and passed through unmodified.
type LoanDetails map[string]any

// ChatResponse is the body returned by POST /chat. Every field except Reply
// is optional, and absent fields are valid input.
type ChatResponse struct {
	Reply string `json:"reply"`

	// Stage is the explicit pipeline stage, if the orchestrator sent one.
	// It is a raw string; validation happens in the stage package.
	Stage string `json:"stage,omitempty"`

	LoanDetails    LoanDetails     `json:"loan_details,omitempty"`
	SanctionLetter *SanctionLetter `json:"sanction_letter,omitempty"`

	// Informational fields, displayed but never used for decisions.
	ActiveAgent    string `json:"active_agent,omitempty"`
	SanctionStatus string `json:"sanction_status,omitempty"`
	DecisionType   string `json:"decision_type,omitempty"`
}

// UnmarshalJSON decodes a response field by field. A field with an
// unexpected JSON type is dropped rather than failing the whole response, so
// the reply still reaches the user and stage inference still runs.
func (r *ChatResponse) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := ChatResponse{
		Reply:          stringField(raw["reply"]),
		Stage:          stringField(raw["stage"]),
		ActiveAgent:    stringField(raw["active_agent"]),
		SanctionStatus: stringField(raw["sanction_status"]),
		DecisionType:   stringField(raw["decision_type"]),
	}

	if v, ok := raw["loan_details"]; ok {
		var details LoanDetails
		if json.Unmarshal(v, &details) == nil {
			out.LoanDetails = details
		}
	}

	if v, ok := raw["sanction_letter"]; ok && string(v) != "null" {
		var letter SanctionLetter
		if json.Unmarshal(v, &letter) == nil {
			out.SanctionLetter = &letter
		}
	}

	*r = out
	return nil
}

// stringField returns v when it holds a JSON string and "" otherwise.
func stringField(v json.RawMessage) string {
	var s string
	if len(v) == 0 || json.Unmarshal(v, &s) != nil {
		return ""
	}
	return s
}

// HasLoanDetails reports whether the response carried a loan payload.
func (r *ChatResponse) HasLoanDetails() bool {
	return r != nil && r.LoanDetails != nil
}

// HasSanctionLetter reports whether the response carried a usable sanction
// letter reference.
func (r *ChatResponse) HasSanctionLetter() bool {
	return r != nil && r.SanctionLetter != nil && r.SanctionLetter.File != ""
}

// SanctionLetter references a generated sanction document. On the wire it is
// either a bare filename string or an object with a "file" key plus any
// number of additional fields.
type SanctionLetter struct {
	File        string
	LoanDetails LoanDetails
	Fields      map[string]any
}

// UnmarshalJSON accepts both the string and the object form.
func (l *SanctionLetter) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*l = SanctionLetter{File: name}
		return nil
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("sanction_letter must be a string or an object: %w", err)
	}

	out := SanctionLetter{}
	if file, ok := raw["file"].(string); ok {
		out.File = file
	}
	if details, ok := raw["loan_details"].(map[string]any); ok {
		out.LoanDetails = details
	}
	delete(raw, "file")
	delete(raw, "loan_details")
	if len(raw) > 0 {
		out.Fields = raw
	}

	*l = out
	return nil
}

// MarshalJSON always emits the object form.
func (l SanctionLetter) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(l.Fields)+2)
	for k, v := range l.Fields {
		obj[k] = v
	}
	obj["file"] = l.File
	if l.LoanDetails != nil {
		obj["loan_details"] = l.LoanDetails
	}
	return json.Marshal(obj)
}

// HealthStatus is the body returned by GET /health.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// OK reports whether the orchestrator declared itself healthy.
func (h *HealthStatus) OK() bool {
	return h != nil && h.Status == "ok"
}

// StatusError is returned when the orchestrator answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Body)
}

// IsStatusError checks if an error is a StatusError and returns it.
func IsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
