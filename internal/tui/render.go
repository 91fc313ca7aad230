package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/thruflo/loanops/internal/stage"
)

// Box drawing characters (Unicode)
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
)

// BoxWithContent draws a box containing the given content lines.
// Each line is padded/truncated to fit within the box. A non-empty title is
// drawn into the top border.
func BoxWithContent(width int, title string, content []string) []string {
	if width < 4 {
		return nil
	}

	innerWidth := width - 4 // Account for borders and padding
	lines := make([]string, 0, len(content)+2)

	top := BoxTopLeft + strings.Repeat(BoxHorizontal, width-2) + BoxTopRight
	if title != "" {
		label := Truncate(" "+title+" ", width-4)
		fill := width - 3 - VisibleLen(label)
		top = BoxTopLeft + BoxHorizontal + label + strings.Repeat(BoxHorizontal, max(0, fill)) + BoxTopRight
	}
	lines = append(lines, top)

	for _, line := range content {
		lines = append(lines, BoxVertical+" "+PadOrTruncate(line, innerWidth)+" "+BoxVertical)
	}

	lines = append(lines, BoxBottomLeft+strings.Repeat(BoxHorizontal, width-2)+BoxBottomRight)
	return lines
}

// VisibleLen returns the number of runes in s that occupy a terminal cell,
// skipping ANSI escape sequences.
func VisibleLen(s string) int {
	n := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
		case r == '\033':
			inEscape = true
		default:
			n++
		}
	}
	return n
}

// PadOrTruncate pads or truncates a string to exactly width visible cells.
func PadOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	n := VisibleLen(s)
	switch {
	case n == width:
		return s
	case n < width:
		return s + strings.Repeat(" ", width-n)
	default:
		return Truncate(s, width)
	}
}

// Truncate truncates a string to max width, adding ellipsis if needed.
// Escape sequences are kept intact and styling is reset after the cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if VisibleLen(s) <= width {
		return s
	}

	keep := width
	if width >= 3 {
		keep = width - 3
	}

	var b strings.Builder
	count := 0
	styled := false
	inEscape := false
	for _, r := range s {
		if inEscape {
			b.WriteRune(r)
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		if r == '\033' {
			inEscape = true
			styled = true
			b.WriteRune(r)
			continue
		}
		if count == keep {
			break
		}
		b.WriteRune(r)
		count++
	}
	if styled {
		b.WriteString(Reset)
	}
	if width >= 3 {
		b.WriteString("...")
	}
	return b.String()
}

// WrapText wraps text to fit within the given width. Words longer than the
// width are split.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		for utf8.RuneCountInString(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			runes := []rune(word)
			lines = append(lines, string(runes[:width]))
			word = string(runes[width:])
		}
		switch {
		case current == "":
			current = word
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// WrapParagraphs wraps each newline-separated paragraph of text, keeping
// blank lines between paragraphs.
func WrapParagraphs(text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		wrapped := WrapText(para, width)
		if len(wrapped) == 0 {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapped...)
	}
	return lines
}

// CenterText centers text within the given width.
func CenterText(s string, width int) string {
	n := VisibleLen(s)
	if n >= width {
		return PadOrTruncate(s, width)
	}

	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

// RightAlign right-aligns text within the given width.
func RightAlign(s string, width int) string {
	n := VisibleLen(s)
	if n >= width {
		return PadOrTruncate(s, width)
	}
	return strings.Repeat(" ", width-n) + s
}

// Style applies ANSI style codes to text.
func Style(s string, codes ...string) string {
	if len(codes) == 0 {
		return s
	}
	return strings.Join(codes, "") + s + Reset
}

// StatusColor returns the color code for a pipeline step status.
func StatusColor(status stage.Status) string {
	switch status {
	case stage.StatusActive:
		return FgGreen
	case stage.StatusCompleted:
		return FgBrightBlack
	case stage.StatusRejected:
		return FgRed
	default:
		return ""
	}
}

// StatusIcon returns the glyph drawn beside a pipeline step.
func StatusIcon(status stage.Status) string {
	switch status {
	case stage.StatusActive:
		return "◉"
	case stage.StatusCompleted:
		return "✓"
	case stage.StatusRejected:
		return "✕"
	default:
		return "○"
	}
}

// FormatStatus formats a step status with its icon and color.
func FormatStatus(status stage.Status) string {
	text := StatusIcon(status) + " " + status.String()
	color := StatusColor(status)
	if color == "" {
		return text
	}
	return Style(text, color, Bold)
}
