package tmux

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/nicobailon/tsm/internal/session"
)

var waitingMarkers = []string{
	"Enter to select",
	"↑/↓ to navigate",
	"Esc to cancel",
	"to edit",
}

// Detect classifies the tail of an agent pane. Selection menus and
// permission prompts mean the agent waits on the user; a bordered prompt
// means it is idle unless it advertises an interrupt key.
func Detect(content string) session.Status {
	content = ansi.Strip(content)

	for _, m := range waitingMarkers {
		if strings.Contains(content, m) {
			return session.StatusWaitingInput
		}
	}
	if hasInputField(content) {
		if strings.Contains(content, "to interrupt") {
			return session.StatusWorking
		}
		return session.StatusIdle
	}
	return session.StatusUnknown
}

// hasInputField looks for a ❯ prompt line directly under a ─ border.
func hasInputField(content string) bool {
	lines := strings.Split(content, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.ContainsRune(lines[i], '❯') && strings.ContainsRune(lines[i-1], '─') {
			return true
		}
	}
	return false
}
