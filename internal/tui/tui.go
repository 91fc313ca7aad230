package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// View represents the current TUI view.
type View int

const (
	ViewChat View = iota
	ViewTracker
)

// String returns the string representation of the view.
func (v View) String() string {
	switch v {
	case ViewChat:
		return "chat"
	case ViewTracker:
		return "tracker"
	default:
		return "unknown"
	}
}

// Action represents a user action from the TUI.
type Action int

const (
	ActionNone   Action = iota
	ActionSubmit        // User submitted a chat message
	ActionQuit          // User requested quit (ctrl+c, ctrl+d)
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionSubmit:
		return "submit"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ActionEvent is sent when the user triggers an action.
type ActionEvent struct {
	Action Action
	Input  string // Only set for ActionSubmit
}

// TUI manages the terminal user interface.
type TUI struct {
	terminal       *Terminal
	keyReader      *KeyReader
	mu             sync.Mutex
	state          ViewState
	view           View
	notice         string
	scroll         int
	trackerView    *TrackerView
	transcriptView *TranscriptView
	inputView      *InputView
	width          int
	height         int
	running        bool
	actionCh       chan ActionEvent
}

// NewTUI creates a TUI reading keys from stdin and drawing to out.
func NewTUI(out io.Writer) *TUI {
	return NewTUIWithInput(os.Stdin, out)
}

// NewTUIWithInput creates a TUI reading keys from in.
func NewTUIWithInput(in *os.File, out io.Writer) *TUI {
	return &TUI{
		terminal:       NewTerminalWithInput(in, out),
		view:           ViewChat,
		trackerView:    &TrackerView{},
		transcriptView: &TranscriptView{},
		inputView:      NewInputView(),
		width:          80,
		height:         24,
		actionCh:       make(chan ActionEvent, 10),
	}
}

// SetState updates the view state. New messages scroll the transcript back
// to the bottom.
func (t *TUI) SetState(state ViewState) {
	t.mu.Lock()
	if len(state.Messages) != len(t.state.Messages) {
		t.scroll = 0
	}
	t.state = state
	t.mu.Unlock()
}

// GetState returns the current view state.
func (t *TUI) GetState() ViewState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// SetView switches to a different view.
func (t *TUI) SetView(v View) {
	t.mu.Lock()
	t.view = v
	t.mu.Unlock()
}

// GetView returns the current view.
func (t *TUI) GetView() View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view
}

// SetNotice sets a one-line notice shown above the shortcut help.
func (t *TUI) SetNotice(notice string) {
	t.mu.Lock()
	t.notice = notice
	t.mu.Unlock()
}

// SetSize overrides the layout size used until the next successful
// terminal size query.
func (t *TUI) SetSize(width, height int) {
	t.mu.Lock()
	t.width = width
	t.height = height
	t.mu.Unlock()
}

// Actions returns a channel that receives user actions.
func (t *TUI) Actions() <-chan ActionEvent {
	return t.actionCh
}

// Render lays out the current view as screen lines.
func (t *TUI) Render() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.renderLocked()
}

func (t *TUI) renderLocked() []string {
	width, height := t.width, t.height

	footer := []string{}
	if t.notice != "" {
		footer = append(footer, Style(Truncate(t.notice, width), Bold, FgYellow))
	}
	footer = append(footer, HelpLine(t.view))

	if t.view == ViewTracker {
		return append(t.trackerView.Render(t.state, width), footer...)
	}

	header := BoxWithContent(width, "Loan Chat "+t.state.SessionID, []string{ProgressLine(t.state.Progress)})
	input := t.inputView.Render(t.state.Busy, width)
	body := height - len(header) - len(input) - len(footer)

	lines := make([]string, 0, height)
	lines = append(lines, header...)
	lines = append(lines, t.transcriptView.Render(t.state, width, body, t.scroll)...)
	lines = append(lines, input...)
	return append(lines, footer...)
}

// Update redraws the current view.
func (t *TUI) Update() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}

	if width, height, err := t.terminal.Size(); err == nil {
		t.width = width
		t.height = height
	}

	t.terminal.Redraw(t.renderLocked())
}

// Run starts the TUI event loop.
// It returns when the context is cancelled or the user quits.
func (t *TUI) Run(ctx context.Context) error {
	if err := t.terminal.EnterRaw(); err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer t.terminal.ExitRaw()
	defer t.terminal.ShowCursor()

	t.mu.Lock()
	t.running = true
	t.mu.Unlock()
	defer t.Stop()

	t.keyReader = NewKeyReader(t.terminal)
	t.Update()

	keyCh := make(chan KeyEvent, 10)
	keyErr := make(chan error, 1)

	go func() {
		for {
			ev, err := t.keyReader.ReadKey()
			if err != nil {
				keyErr <- err
				return
			}
			select {
			case keyCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-keyErr:
			// EOF is expected when stdin closes
			if err == io.EOF {
				return nil
			}
			return err

		case ev := <-keyCh:
			action := t.HandleKey(ev)
			if action.Action == ActionNone {
				continue
			}
			select {
			case t.actionCh <- action:
			default:
				// Channel full, drop event
			}
			if action.Action == ActionQuit {
				return nil
			}
		}
	}
}

// HandleKey processes a key event, redraws, and returns any triggered action.
func (t *TUI) HandleKey(ev KeyEvent) ActionEvent {
	action := t.handleKeyLocked(ev)
	if action.Action != ActionQuit {
		t.Update()
	}
	return action
}

func (t *TUI) handleKeyLocked(ev KeyEvent) ActionEvent {
	t.mu.Lock()
	defer t.mu.Unlock()

	page := max(1, t.height/2)

	switch ParseShortcut(ev) {
	case ShortcutQuit:
		return ActionEvent{Action: ActionQuit}
	case ShortcutToggleView:
		if t.view == ViewChat {
			t.view = ViewTracker
		} else {
			t.view = ViewChat
		}
		return ActionEvent{Action: ActionNone}
	case ShortcutScrollUp:
		t.scroll += page
		return ActionEvent{Action: ActionNone}
	case ShortcutScrollDown:
		t.scroll = max(0, t.scroll-page)
		return ActionEvent{Action: ActionNone}
	case ShortcutRedraw:
		return ActionEvent{Action: ActionNone}
	}

	if t.view != ViewChat {
		return ActionEvent{Action: ActionNone}
	}

	editor := t.inputView.Editor()
	if !editor.HandleKey(ev) {
		return ActionEvent{Action: ActionNone}
	}

	// Enter: the draft survives while a request is in flight.
	text := strings.TrimSpace(editor.Text())
	if t.state.Busy || text == "" {
		return ActionEvent{Action: ActionNone}
	}
	t.inputView.Reset()
	t.scroll = 0
	t.notice = ""
	return ActionEvent{Action: ActionSubmit, Input: text}
}

// Stop marks the TUI as no longer running.
// This is a no-op if the TUI is not running.
func (t *TUI) Stop() {
	t.mu.Lock()
	t.running = false
	t.mu.Unlock()
}

// IsRunning returns whether the TUI is currently running.
func (t *TUI) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Bell sounds the terminal bell.
func (t *TUI) Bell() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.terminal.RingBell()
}
