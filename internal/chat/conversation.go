// Package chat ties one conversation together: its session identity,
// transcript, stage tracker and sanction artifact. A Conversation is the only
// stateful object a front end needs; it renders from Snapshot and re-renders
// when a Subscribe channel fires.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/thruflo/loanops/internal/backend"
	"github.com/thruflo/loanops/internal/logging"
	"github.com/thruflo/loanops/internal/sanction"
	"github.com/thruflo/loanops/internal/session"
	"github.com/thruflo/loanops/internal/stage"
	"github.com/thruflo/loanops/internal/transcript"
)

// DefaultGreeting is the bot message every conversation opens with.
const DefaultGreeting = "Hello! I am the Agentic Loan Orchestrator. How can I assist you?"

// ConnectionErrorText is appended as a bot message when the orchestrator
// cannot be reached.
const ConnectionErrorText = "Sorry, I couldn't reach the loan orchestrator. Please check your connection and try again."

var (
	// ErrBusy is returned by Send while another request is in flight.
	ErrBusy = errors.New("a request is already in flight")
	// ErrEmptyMessage is returned by Send for blank input.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrConnection wraps transport failures. The conversation has already
	// recorded the failure as a bot message when it is returned.
	ErrConnection = errors.New("orchestrator unreachable")
)

// Sender delivers one chat request to the orchestrator.
type Sender interface {
	Chat(ctx context.Context, req backend.ChatRequest) (*backend.ChatResponse, error)
}

// Option configures a Conversation.
type Option func(*Conversation)

// WithSession uses an existing session instead of generating one.
func WithSession(s *session.Session) Option {
	return func(c *Conversation) {
		c.session = s
	}
}

// WithGreeting replaces the opening bot message. An empty greeting starts
// with an empty transcript.
func WithGreeting(greeting string) Option {
	return func(c *Conversation) {
		c.greeting = greeting
	}
}

// WithResolver sets the stage resolver. Its warnings are logged through the
// conversation's logger.
func WithResolver(r *stage.Resolver) Option {
	return func(c *Conversation) {
		c.resolver = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Conversation) {
		c.log = l
	}
}

// Conversation is one session with the orchestrator.
//
// At most one request is in flight at a time. The state derived from a
// response is applied under a single lock, so a Snapshot never observes a
// half-applied response.
type Conversation struct {
	client     Sender
	session    *session.Session
	greeting   string
	transcript *transcript.Transcript
	tracker    *stage.Tracker
	resolver   *stage.Resolver
	sanctions  *sanction.Manager
	log        *logging.Logger

	busy atomic.Bool

	// mu orders state application against snapshots
	mu             sync.RWMutex
	activeAgent    string
	sanctionStatus string
	decisionType   string

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// New creates a Conversation that talks to the orchestrator through client.
func New(client Sender, opts ...Option) *Conversation {
	c := &Conversation{
		client:    client,
		greeting:  DefaultGreeting,
		tracker:   stage.NewTracker(),
		sanctions: sanction.NewManager(),
		subs:      make(map[int]chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.session == nil {
		c.session = session.New()
	}
	if c.log == nil {
		c.log = logging.Default()
	}
	c.log = c.log.With("session", c.session.ID())
	if c.resolver == nil {
		c.resolver = stage.NewResolver()
	}
	c.resolver = c.resolver.WithLogger(c.log.With("component", "resolver"))

	if c.greeting != "" {
		c.transcript = transcript.New(transcript.Bot(c.greeting))
	} else {
		c.transcript = transcript.New()
	}

	return c
}

// SessionID returns the id attached to every request.
func (c *Conversation) SessionID() string {
	return c.session.ID()
}

// Busy reports whether a request is in flight.
func (c *Conversation) Busy() bool {
	return c.busy.Load()
}

// Stage returns the current pipeline stage.
func (c *Conversation) Stage() stage.Stage {
	return c.tracker.Current()
}

// Sanction returns the captured sanction record, if any.
func (c *Conversation) Sanction() (*sanction.Record, bool) {
	return c.sanctions.Record()
}

// Send submits one user message and applies the orchestrator's reply.
//
// Blank input returns ErrEmptyMessage and a concurrent call returns ErrBusy;
// neither dispatches a request. A transport failure is recorded as a bot
// message, leaves stage and sanction untouched, and is returned wrapped in
// ErrConnection. The busy flag is released on every path.
func (c *Conversation) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	if !c.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer func() {
		c.busy.Store(false)
		c.notify()
	}()

	c.mu.Lock()
	c.transcript.Append(transcript.User(text))
	c.mu.Unlock()
	c.notify()

	c.log.Debug("sending message", "length", len(text))
	resp, err := c.client.Chat(ctx, backend.ChatRequest{
		SessionID: c.session.ID(),
		Message:   text,
	})
	if err != nil {
		c.log.Warn("orchestrator request failed", "error", err)
		c.mu.Lock()
		c.transcript.Append(transcript.Bot(ConnectionErrorText))
		c.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}

	if resp == nil {
		resp = &backend.ChatResponse{}
	}
	c.apply(resp)
	return nil
}

// apply folds one response into the conversation state.
func (c *Conversation) apply(resp *backend.ChatResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	previous := c.tracker.Current()
	next := c.resolver.Resolve(previous, resp)
	if c.tracker.Set(next) {
		c.log.Info("stage changed", "from", previous, "to", next)
	}

	if rec, created := c.sanctions.MaybeCapture(resp, next, c.session.ID()); created {
		c.log.Info("sanction captured", "file", rec.FileReference, "source", rec.Source)
	}

	if resp.ActiveAgent != "" {
		c.activeAgent = resp.ActiveAgent
	}
	if resp.SanctionStatus != "" {
		c.sanctionStatus = resp.SanctionStatus
	}
	if resp.DecisionType != "" {
		c.decisionType = resp.DecisionType
	}

	c.transcript.Append(transcript.Bot(resp.Reply))
}
