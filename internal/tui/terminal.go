package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Screen control.
const (
	ClearScreen = "\033[2J"
	CursorHome  = "\033[H"
	CursorHide  = "\033[?25l"
	CursorShow  = "\033[?25h"
	Bell        = "\a"
)

// Text attributes.
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Reverse = "\033[7m"
)

// Foreground colours. Stage statuses map onto these in StatusColor.
const (
	FgRed         = "\033[31m"
	FgGreen       = "\033[32m"
	FgYellow      = "\033[33m"
	FgCyan        = "\033[36m"
	FgBrightBlack = "\033[90m"
	FgBrightGreen = "\033[92m"
)

// Terminal owns the controlling terminal for the chat screen: raw mode on
// the input side, full-frame redraws on the output side.
type Terminal struct {
	in       *os.File
	out      io.Writer
	oldState *term.State
	isRaw    bool
}

// NewTerminal reads keys from stdin and draws to out.
func NewTerminal(out io.Writer) *Terminal {
	return NewTerminalWithInput(os.Stdin, out)
}

// NewTerminalWithInput reads keys from in.
func NewTerminalWithInput(in *os.File, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// EnterRaw switches the input to raw mode so single key presses reach the
// KeyReader. Entering twice is an error.
func (t *Terminal) EnterRaw() error {
	if t.isRaw {
		return fmt.Errorf("terminal already in raw mode")
	}

	oldState, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}

	t.oldState = oldState
	t.isRaw = true
	return nil
}

// ExitRaw restores the saved terminal state. It is a no-op outside raw mode.
func (t *Terminal) ExitRaw() error {
	if !t.isRaw {
		return nil
	}

	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}

	t.isRaw = false
	t.oldState = nil
	return nil
}

func (t *Terminal) IsRaw() bool {
	return t.isRaw
}

// Size returns the terminal width and height in cells.
func (t *Terminal) Size() (width, height int, err error) {
	width, height, err = term.GetSize(int(t.in.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get terminal size: %w", err)
	}
	return width, height, nil
}

// Read implements io.Reader over the terminal input.
func (t *Terminal) Read(p []byte) (n int, err error) {
	return t.in.Read(p)
}

// Redraw replaces the whole screen with lines. Lines are joined with CRLF
// since raw mode turns off output post-processing.
func (t *Terminal) Redraw(lines []string) {
	fmt.Fprint(t.out, CursorHide+ClearScreen+CursorHome+strings.Join(lines, "\r\n"))
}

// ShowCursor makes the cursor visible again after a Redraw.
func (t *Terminal) ShowCursor() {
	fmt.Fprint(t.out, CursorShow)
}

// RingBell sounds the terminal bell.
func (t *Terminal) RingBell() {
	fmt.Fprint(t.out, Bell)
}
