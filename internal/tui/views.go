package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/thruflo/loanops/internal/chat"
	"github.com/thruflo/loanops/internal/sanction"
	"github.com/thruflo/loanops/internal/stage"
	"github.com/thruflo/loanops/internal/transcript"
)

// ViewState holds the data needed to render views. It is a projection of a
// chat.Snapshot and is never mutated by the views.
type ViewState struct {
	SessionID      string
	Messages       []transcript.Message
	Stage          stage.Stage
	Progress       []stage.StepProgress
	Sanction       *sanction.Record
	ActiveAgent    string
	SanctionStatus string
	DecisionType   string
	Busy           bool
}

// StateFromSnapshot projects a conversation snapshot into view state.
func StateFromSnapshot(s chat.Snapshot) ViewState {
	return ViewState{
		SessionID:      s.SessionID,
		Messages:       s.Messages,
		Stage:          s.Stage,
		Progress:       s.Progress,
		Sanction:       s.Sanction,
		ActiveAgent:    s.ActiveAgent,
		SanctionStatus: s.SanctionStatus,
		DecisionType:   s.DecisionType,
		Busy:           s.Busy,
	}
}

// WorkerName is the tracker's name for the agent handling stage s.
func WorkerName(s stage.Stage) string {
	if s == "" {
		s = stage.Initial
	}
	return strings.ToUpper(s.String()) + "_WORKER"
}

// shortLabel is the first word of a step label ("Sales Agent" -> "Sales").
func shortLabel(step stage.Step) string {
	if fields := strings.Fields(step.Label); len(fields) > 0 {
		return fields[0]
	}
	return step.ID.String()
}

// ProgressLine renders the pipeline as a single line, e.g.
// "✓ Sales › ◉ Verification › ○ Underwriting › ○ Sanction".
func ProgressLine(progress []stage.StepProgress) string {
	parts := make([]string, 0, len(progress))
	for _, p := range progress {
		text := StatusIcon(p.Status) + " " + shortLabel(p.Step)
		if color := StatusColor(p.Status); color != "" {
			text = Style(text, color)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, Style(" › ", Dim))
}

// TrackerView renders the pipeline with per-step detail.
type TrackerView struct{}

// Render renders the tracker view to a slice of strings.
func (v *TrackerView) Render(state ViewState, width int) []string {
	if width < 20 {
		width = 20
	}

	content := []string{Style("LIVE AGENT SWARM", Dim), ""}

	for _, p := range state.Progress {
		label := StatusIcon(p.Status) + " " + p.Label
		switch p.Status {
		case stage.StatusActive:
			label = Style(label, FgGreen, Bold)
		case stage.StatusRejected:
			label = Style(label, FgRed, Bold)
		case stage.StatusCompleted:
			label = Style(label, FgBrightBlack)
		}
		content = append(content, label)
		content = append(content, Style("  "+p.Sub+" ("+p.Status.String()+")", Dim))
	}

	content = append(content, "")
	content = append(content, Style("> System initialized...", FgGreen))
	content = append(content, Style("> Session ID: "+state.SessionID, FgGreen))
	content = append(content, Style("> Active Agent: "+WorkerName(state.Stage), FgGreen))
	if state.ActiveAgent != "" {
		content = append(content, Style("> Backend Agent: "+state.ActiveAgent, FgGreen))
	}
	if state.DecisionType != "" {
		content = append(content, Style("> Decision: "+state.DecisionType, FgGreen))
	}
	if state.SanctionStatus != "" {
		content = append(content, Style("> Sanction Status: "+state.SanctionStatus, FgGreen))
	}

	if state.Sanction != nil {
		content = append(content, "")
		content = append(content, Style("Sanction letter: "+state.Sanction.FileReference, Bold, FgBrightGreen))
		for _, line := range FormatLoanDetails(state.Sanction.LoanDetails) {
			content = append(content, "  "+line)
		}
	}

	return BoxWithContent(width, "ORCHESTRATOR", content)
}

// FormatLoanDetails renders loan details as sorted "key: value" lines.
func FormatLoanDetails(details map[string]any) []string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, details[k]))
	}
	return lines
}

// TranscriptView renders the message history, anchored to the bottom.
type TranscriptView struct{}

// Render returns exactly height lines. scroll is the number of lines to
// move up from the newest message; it is clamped to the available history.
func (v *TranscriptView) Render(state ViewState, width, height, scroll int) []string {
	if width < 20 {
		width = 20
	}
	if height < 1 {
		height = 1
	}

	var lines []string
	for i, msg := range state.Messages {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, messageLines(msg, width)...)
	}
	if state.Busy {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, Style("Bot is thinking...", Dim))
	}

	maxScroll := max(0, len(lines)-height)
	scroll = min(max(scroll, 0), maxScroll)

	end := len(lines) - scroll
	start := max(0, end-height)
	visible := lines[start:end]

	result := make([]string, 0, height)
	for len(result)+len(visible) < height {
		result = append(result, "")
	}
	return append(result, visible...)
}

// messageLines formats one message with a sender prefix and a hanging indent.
func messageLines(msg transcript.Message, width int) []string {
	prefix := Style("Bot: ", Bold, FgCyan)
	if msg.IsUser() {
		prefix = Style("You: ", Bold, FgYellow)
	}
	const indent = "     "

	wrapped := WrapParagraphs(msg.Text, width-len(indent))
	if len(wrapped) == 0 {
		wrapped = []string{""}
	}

	lines := make([]string, 0, len(wrapped))
	for i, line := range wrapped {
		if i == 0 {
			lines = append(lines, prefix+line)
		} else {
			lines = append(lines, indent+line)
		}
	}
	return lines
}

// InputView renders the chat input line.
type InputView struct {
	editor *LineEditor
}

// NewInputView creates an InputView with an empty line editor.
func NewInputView() *InputView {
	return &InputView{
		editor: NewLineEditor(),
	}
}

// Editor returns the line editor for handling key events.
func (v *InputView) Editor() *LineEditor {
	return v.editor
}

// Reset clears the input buffer.
func (v *InputView) Reset() {
	v.editor.Clear()
}

// Render renders the input box. While busy the draft is kept but shown
// dimmed, and submission is refused by the caller.
func (v *InputView) Render(busy bool, width int) []string {
	if width < 20 {
		width = 20
	}

	const prompt = "> "
	maxInput := width - 4 - len(prompt) - 1

	runes := []rune(v.editor.Text())
	cursor := v.editor.Cursor()

	start := 0
	if cursor > maxInput {
		start = cursor - maxInput
	}
	end := min(len(runes), start+maxInput)
	visible := runes[start:end]
	cursorPos := cursor - start

	var line string
	switch {
	case busy:
		line = prompt + Style(string(visible), Dim)
	case len(runes) == 0:
		line = prompt + Style(" ", Reverse) + Style("Type your message...", Dim)
	default:
		under := " "
		if cursorPos < len(visible) {
			under = string(visible[cursorPos])
		}
		after := ""
		if cursorPos+1 < len(visible) {
			after = string(visible[cursorPos+1:])
		}
		line = prompt + string(visible[:cursorPos]) + Style(under, Reverse) + after
	}

	title := "Message"
	if busy {
		title = "Waiting for the orchestrator"
	}
	return BoxWithContent(width, title, []string{line})
}

// HelpLine lists the active shortcuts.
func HelpLine(view View) string {
	if view == ViewTracker {
		return Style("[tab] chat  [ctrl+c] quit", Dim)
	}
	return Style("[enter] send  [tab] tracker  [pgup/pgdn] scroll  [ctrl+c] quit", Dim)
}
