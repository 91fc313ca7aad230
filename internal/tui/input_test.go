package tui

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyReader_ReadKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
		want  KeyEvent
	}{
		{"letter a", []byte{'a'}, KeyEvent{Key: KeyRune, Rune: 'a'}},
		{"digit 5", []byte{'5'}, KeyEvent{Key: KeyRune, Rune: '5'}},
		{"space", []byte{' '}, KeyEvent{Key: KeyRune, Rune: ' '}},
		{"ctrl+c", []byte{0x03}, KeyEvent{Key: KeyCtrlC}},
		{"ctrl+d", []byte{0x04}, KeyEvent{Key: KeyCtrlD}},
		{"ctrl+l", []byte{0x0C}, KeyEvent{Key: KeyCtrlL}},
		{"ctrl+u", []byte{0x15}, KeyEvent{Key: KeyCtrlU}},
		{"ctrl+a", []byte{0x01}, KeyEvent{Key: KeyHome}},
		{"ctrl+e", []byte{0x05}, KeyEvent{Key: KeyEnd}},
		{"tab", []byte{0x09}, KeyEvent{Key: KeyTab}},
		{"enter CR", []byte{0x0D}, KeyEvent{Key: KeyEnter}},
		{"enter LF", []byte{0x0A}, KeyEvent{Key: KeyEnter}},
		{"backspace DEL", []byte{0x7F}, KeyEvent{Key: KeyBackspace}},
		{"backspace BS", []byte{0x08}, KeyEvent{Key: KeyBackspace}},
		{"lone escape", []byte{0x1B}, KeyEvent{Key: KeyEscape}},
		{"up arrow", []byte{0x1B, '[', 'A'}, KeyEvent{Key: KeyUp}},
		{"down arrow", []byte{0x1B, '[', 'B'}, KeyEvent{Key: KeyDown}},
		{"right arrow", []byte{0x1B, '[', 'C'}, KeyEvent{Key: KeyRight}},
		{"left arrow", []byte{0x1B, '[', 'D'}, KeyEvent{Key: KeyLeft}},
		{"ss3 up", []byte{0x1B, 'O', 'A'}, KeyEvent{Key: KeyUp}},
		{"home", []byte{0x1B, '[', 'H'}, KeyEvent{Key: KeyHome}},
		{"end", []byte{0x1B, '[', 'F'}, KeyEvent{Key: KeyEnd}},
		{"delete", []byte{0x1B, '[', '3', '~'}, KeyEvent{Key: KeyDelete}},
		{"page up", []byte{0x1B, '[', '5', '~'}, KeyEvent{Key: KeyPageUp}},
		{"page down", []byte{0x1B, '[', '6', '~'}, KeyEvent{Key: KeyPageDown}},
		{"unknown tilde", []byte{0x1B, '[', '2', '~'}, KeyEvent{Key: KeyUnknown}},
		{"euro sign", []byte{0xE2, 0x82, 0xAC}, KeyEvent{Key: KeyRune, Rune: '€'}},
		{"rupee sign", []byte{0xE2, 0x82, 0xB9}, KeyEvent{Key: KeyRune, Rune: '₹'}},
		{"unknown control", []byte{0x02}, KeyEvent{Key: KeyUnknown}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reader := NewKeyReader(bytes.NewReader(tt.input))
			got, err := reader.ReadKey()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyReader_EscapeThenRune(t *testing.T) {
	t.Parallel()

	reader := NewKeyReader(bytes.NewReader([]byte{0x1B, 'x'}))

	got, err := reader.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, KeyEscape, got.Key)

	got, err = reader.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, KeyEvent{Key: KeyRune, Rune: 'x'}, got)
}

func TestKeyReader_EOF(t *testing.T) {
	t.Parallel()

	reader := NewKeyReader(bytes.NewReader(nil))
	_, err := reader.ReadKey()
	assert.ErrorIs(t, err, io.EOF)
}

func TestParseShortcut(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		event KeyEvent
		want  Shortcut
	}{
		{"ctrl+c quits", KeyEvent{Key: KeyCtrlC}, ShortcutQuit},
		{"ctrl+d quits", KeyEvent{Key: KeyCtrlD}, ShortcutQuit},
		{"tab toggles", KeyEvent{Key: KeyTab}, ShortcutToggleView},
		{"page up", KeyEvent{Key: KeyPageUp}, ShortcutScrollUp},
		{"up arrow", KeyEvent{Key: KeyUp}, ShortcutScrollUp},
		{"page down", KeyEvent{Key: KeyPageDown}, ShortcutScrollDown},
		{"ctrl+l", KeyEvent{Key: KeyCtrlL}, ShortcutRedraw},
		{"letters are text", KeyEvent{Key: KeyRune, Rune: 'q'}, ShortcutNone},
		{"enter is text", KeyEvent{Key: KeyEnter}, ShortcutNone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseShortcut(tt.event))
		})
	}
}

func typeText(e *LineEditor, s string) {
	for _, r := range s {
		e.HandleKey(KeyEvent{Key: KeyRune, Rune: r})
	}
}

func TestLineEditor_Editing(t *testing.T) {
	t.Parallel()

	e := NewLineEditor()
	typeText(e, "helo")
	assert.Equal(t, "helo", e.Text())
	assert.Equal(t, 4, e.Cursor())

	e.HandleKey(KeyEvent{Key: KeyLeft})
	typeText(e, "l")
	assert.Equal(t, "hello", e.Text())
	assert.Equal(t, 4, e.Cursor())

	e.HandleKey(KeyEvent{Key: KeyEnd})
	e.HandleKey(KeyEvent{Key: KeyBackspace})
	assert.Equal(t, "hell", e.Text())

	e.HandleKey(KeyEvent{Key: KeyHome})
	e.HandleKey(KeyEvent{Key: KeyDelete})
	assert.Equal(t, "ell", e.Text())
	assert.Equal(t, 0, e.Cursor())

	e.HandleKey(KeyEvent{Key: KeyBackspace})
	e.HandleKey(KeyEvent{Key: KeyLeft})
	assert.Equal(t, "ell", e.Text())
	assert.Equal(t, 0, e.Cursor())

	e.HandleKey(KeyEvent{Key: KeyEnd})
	e.HandleKey(KeyEvent{Key: KeyDelete})
	e.HandleKey(KeyEvent{Key: KeyRight})
	assert.Equal(t, "ell", e.Text())
	assert.Equal(t, 3, e.Cursor())
}

func TestLineEditor_EnterAndClear(t *testing.T) {
	t.Parallel()

	e := NewLineEditor()
	typeText(e, "₹5 lakh")
	assert.Equal(t, 7, e.Len())

	assert.True(t, e.HandleKey(KeyEvent{Key: KeyEnter}))
	assert.Equal(t, "₹5 lakh", e.Text())

	e.HandleKey(KeyEvent{Key: KeyCtrlU})
	assert.Equal(t, "", e.Text())
	assert.Equal(t, 0, e.Cursor())
}
