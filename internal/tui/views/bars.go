package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/nicobailon/tsm/internal/browser"
	"github.com/nicobailon/tsm/internal/tui/theme"
)

// Hint is one key/description pair of the footer.
type Hint struct {
	Key  string
	Desc string
}

func RenderHeader(width int, current string) string {
	title := theme.HeaderStyle.Render("─ ") + theme.Logo + theme.HeaderStyle.Render(" ─")
	right := ""
	if current != "" {
		right = theme.SubTextStyle.Render(" attached: ") + theme.CurrentStyle.Render(current) + " "
	}
	fill := width - lipgloss.Width(title) - lipgloss.Width(right)
	if fill < 0 {
		fill = 0
	}
	return ansi.Truncate(title+theme.HeaderStyle.Render(strings.Repeat("─", fill))+right, width, "")
}

// StatusLine summarises counts over all sessions and the active filter.
func StatusLine(total, working, waiting int, filter string) string {
	parts := []string{fmt.Sprintf("%d sessions", total)}
	if working > 0 {
		parts = append(parts, fmt.Sprintf("%d working", working))
	}
	if waiting > 0 {
		parts = append(parts, fmt.Sprintf("%d awaiting input", waiting))
	}
	line := strings.Join(parts, " │ ")
	if filter != "" {
		line += fmt.Sprintf(" │ filter: %q", filter)
	}
	return line
}

func RenderStatus(width int, status string) string {
	return ansi.Truncate(theme.DimStyle.Render("  "+status), width, "…")
}

func RenderFilterBar(width int, input string) string {
	return ansi.Truncate(theme.WarnStyle.Render("  / ")+input, width, "")
}

// RenderNotice draws the single notice slot; it returns "" when empty.
func RenderNotice(width int, n browser.Notice) string {
	switch n.Kind {
	case browser.NoticeSuccess:
		return ansi.Truncate(theme.SuccessStyle.Bold(true).Render("  "+theme.IconSuccess+"  "+n.Text), width, "…")
	case browser.NoticeError:
		return ansi.Truncate(theme.ErrorStyle.Render("  "+theme.IconError+"  "+n.Text), width, "…")
	}
	return ""
}

func RenderFooter(width int, hints []Hint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, theme.KeyStyle.Render(h.Key)+theme.DimStyle.Render(" "+h.Desc))
	}
	return ansi.Truncate("  "+strings.Join(parts, "  "), width, "…")
}
