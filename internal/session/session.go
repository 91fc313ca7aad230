// Package session holds the opaque identity that correlates every request of
// one conversation with the loan orchestrator.
package session

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// idLength is the number of hex characters kept from the generated UUID.
const idLength = 12

// ErrEmptyID is returned when an adopted session id is blank.
var ErrEmptyID = errors.New("session id is empty")

// Session identifies one conversation. It is immutable once created.
type Session struct {
	id string
}

// New creates a session with a freshly generated id.
// Ids are random but not meant to be unguessable. Collisions between
// concurrent demo sessions are unlikely enough to ignore.
func New() *Session {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return &Session{id: raw[:idLength]}
}

// FromID adopts an existing session id, e.g. one passed on the command line
// to continue a conversation the orchestrator still remembers.
func FromID(id string) (*Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyID
	}
	return &Session{id: id}, nil
}

// ID returns the session identifier sent as session_id.
func (s *Session) ID() string {
	return s.id
}

// String implements fmt.Stringer.
func (s *Session) String() string {
	return s.id
}
