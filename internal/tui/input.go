package tui

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// Key represents a keyboard input.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyCtrlC
	KeyCtrlD
	KeyCtrlL
	KeyCtrlU
	KeyRune // Regular character
)

// KeyEvent represents a key press event.
type KeyEvent struct {
	Key  Key
	Rune rune // Only valid when Key == KeyRune
}

// KeyReader reads keyboard input from a raw terminal.
type KeyReader struct {
	reader *bufio.Reader
}

// NewKeyReader creates a KeyReader from the given io.Reader.
// The reader should be a raw terminal input (e.g., os.Stdin after term.MakeRaw).
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{
		reader: bufio.NewReaderSize(r, 64),
	}
}

// ReadKey reads a single key event from the input.
// This method blocks until a key is pressed.
func (k *KeyReader) ReadKey() (KeyEvent, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}

	switch b {
	case 0x01: // Ctrl+A
		return KeyEvent{Key: KeyHome}, nil
	case 0x03:
		return KeyEvent{Key: KeyCtrlC}, nil
	case 0x04:
		return KeyEvent{Key: KeyCtrlD}, nil
	case 0x05: // Ctrl+E
		return KeyEvent{Key: KeyEnd}, nil
	case 0x09:
		return KeyEvent{Key: KeyTab}, nil
	case 0x0C:
		return KeyEvent{Key: KeyCtrlL}, nil
	case 0x0D, 0x0A:
		return KeyEvent{Key: KeyEnter}, nil
	case 0x15:
		return KeyEvent{Key: KeyCtrlU}, nil
	case 0x7F, 0x08:
		return KeyEvent{Key: KeyBackspace}, nil
	case 0x1B:
		return k.readEscapeSequence()
	default:
		if b >= 0x20 && b < 0x7F {
			return KeyEvent{Key: KeyRune, Rune: rune(b)}, nil
		}
		if b >= 0xC0 {
			return k.readUTF8(b)
		}
		return KeyEvent{Key: KeyUnknown}, nil
	}
}

// readEscapeSequence handles escape sequences (arrow keys, etc).
// A lone ESC with nothing buffered behind it is the escape key; terminals
// deliver a whole sequence in a single write.
func (k *KeyReader) readEscapeSequence() (KeyEvent, error) {
	if k.reader.Buffered() == 0 {
		return KeyEvent{Key: KeyEscape}, nil
	}

	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}
	if b != '[' && b != 'O' {
		_ = k.reader.UnreadByte()
		return KeyEvent{Key: KeyEscape}, nil
	}
	return k.parseCSI()
}

// parseCSI parses a CSI (Control Sequence Introducer) or SS3 sequence.
func (k *KeyReader) parseCSI() (KeyEvent, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}

	switch b {
	case 'A':
		return KeyEvent{Key: KeyUp}, nil
	case 'B':
		return KeyEvent{Key: KeyDown}, nil
	case 'C':
		return KeyEvent{Key: KeyRight}, nil
	case 'D':
		return KeyEvent{Key: KeyLeft}, nil
	case 'H':
		return KeyEvent{Key: KeyHome}, nil
	case 'F':
		return KeyEvent{Key: KeyEnd}, nil
	}

	if b >= '0' && b <= '9' {
		param := []byte{b}
		for k.reader.Buffered() > 0 {
			next, _ := k.reader.ReadByte()
			if next == '~' {
				return KeyEvent{Key: tildeKey(string(param))}, nil
			}
			if (next >= 'A' && next <= 'Z') || (next >= 'a' && next <= 'z') {
				break
			}
			param = append(param, next)
		}
	}
	return KeyEvent{Key: KeyUnknown}, nil
}

// tildeKey maps the numeric parameter of an "ESC [ n ~" sequence.
func tildeKey(param string) Key {
	switch param {
	case "1", "7":
		return KeyHome
	case "3":
		return KeyDelete
	case "4", "8":
		return KeyEnd
	case "5":
		return KeyPageUp
	case "6":
		return KeyPageDown
	default:
		return KeyUnknown
	}
}

// readUTF8 reads a multi-byte UTF-8 character.
func (k *KeyReader) readUTF8(first byte) (KeyEvent, error) {
	var buf [4]byte
	buf[0] = first

	var n int
	switch {
	case first&0xE0 == 0xC0:
		n = 2
	case first&0xF0 == 0xE0:
		n = 3
	case first&0xF8 == 0xF0:
		n = 4
	default:
		return KeyEvent{Key: KeyUnknown}, nil
	}

	for i := 1; i < n; i++ {
		b, err := k.reader.ReadByte()
		if err != nil {
			return KeyEvent{Key: KeyUnknown}, err
		}
		buf[i] = b
	}

	r, _ := utf8.DecodeRune(buf[:n])
	if r == utf8.RuneError {
		return KeyEvent{Key: KeyUnknown}, nil
	}

	return KeyEvent{Key: KeyRune, Rune: r}, nil
}

// Shortcut represents a TUI keyboard shortcut. Printable keys always go to
// the input line, so shortcuts are bound to control and navigation keys.
type Shortcut int

const (
	ShortcutNone       Shortcut = iota
	ShortcutQuit                // ctrl+c, ctrl+d
	ShortcutToggleView          // tab - switch between chat and tracker detail
	ShortcutScrollUp            // page up
	ShortcutScrollDown          // page down
	ShortcutRedraw              // ctrl+l
)

// ParseShortcut converts a KeyEvent to a Shortcut.
func ParseShortcut(ev KeyEvent) Shortcut {
	switch ev.Key {
	case KeyCtrlC, KeyCtrlD:
		return ShortcutQuit
	case KeyTab:
		return ShortcutToggleView
	case KeyPageUp, KeyUp:
		return ShortcutScrollUp
	case KeyPageDown, KeyDown:
		return ShortcutScrollDown
	case KeyCtrlL:
		return ShortcutRedraw
	}
	return ShortcutNone
}

// LineEditor handles the single-line chat input.
type LineEditor struct {
	buffer []rune
	cursor int
}

// NewLineEditor creates an empty LineEditor.
func NewLineEditor() *LineEditor {
	return &LineEditor{
		buffer: make([]rune, 0, 256),
	}
}

// HandleKey processes a key event and updates the line buffer.
// Returns true if Enter was pressed (line complete), false otherwise.
func (e *LineEditor) HandleKey(ev KeyEvent) bool {
	switch ev.Key {
	case KeyEnter:
		return true
	case KeyBackspace:
		if e.cursor > 0 {
			copy(e.buffer[e.cursor-1:], e.buffer[e.cursor:])
			e.buffer = e.buffer[:len(e.buffer)-1]
			e.cursor--
		}
	case KeyDelete:
		if e.cursor < len(e.buffer) {
			copy(e.buffer[e.cursor:], e.buffer[e.cursor+1:])
			e.buffer = e.buffer[:len(e.buffer)-1]
		}
	case KeyLeft:
		if e.cursor > 0 {
			e.cursor--
		}
	case KeyRight:
		if e.cursor < len(e.buffer) {
			e.cursor++
		}
	case KeyHome:
		e.cursor = 0
	case KeyEnd:
		e.cursor = len(e.buffer)
	case KeyCtrlU:
		e.Clear()
	case KeyRune:
		e.buffer = append(e.buffer, 0)
		copy(e.buffer[e.cursor+1:], e.buffer[e.cursor:])
		e.buffer[e.cursor] = ev.Rune
		e.cursor++
	}
	return false
}

// Text returns the current line content.
func (e *LineEditor) Text() string {
	return string(e.buffer)
}

// Clear resets the line editor.
func (e *LineEditor) Clear() {
	e.buffer = e.buffer[:0]
	e.cursor = 0
}

// Cursor returns the current cursor position in runes.
func (e *LineEditor) Cursor() int {
	return e.cursor
}

// Len returns the length of the current buffer.
func (e *LineEditor) Len() int {
	return len(e.buffer)
}
