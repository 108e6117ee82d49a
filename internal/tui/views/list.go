package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/nicobailon/tsm/internal/session"
	"github.com/nicobailon/tsm/internal/tui/builders"
	"github.com/nicobailon/tsm/internal/tui/theme"
)

const (
	rowIndent     = "   "
	overlayIndent = "     "
	labelWidth    = 8
	divider       = "────────────────────────"
)

// NameWidth is the widest session name, used to align the status column.
func NameWidth(rows []builders.Row) int {
	w := 0
	for _, r := range rows {
		if r.Kind != builders.KindSession {
			continue
		}
		if n := runewidth.StringWidth(r.Session.Name); n > w {
			w = n
		}
	}
	return w
}

// RenderList draws height rows starting at offset, one line per row.
func RenderList(rows []builders.Row, offset, height, width int, now time.Time) string {
	nameWidth := NameWidth(rows)
	lines := make([]string, 0, height)
	for i := offset; i < len(rows) && len(lines) < height; i++ {
		lines = append(lines, ansi.Truncate(RenderRow(rows[i], nameWidth, now), width, "…"))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// RenderEmpty is shown in place of the list when no row is visible.
func RenderEmpty(filtered bool, height int) string {
	msg := "No tmux sessions found. Press 'n' to create one."
	if filtered {
		msg = "No sessions match the filter."
	}
	return lipgloss.NewStyle().Height(height).Render("\n  " + theme.DimStyle.Render(msg))
}

func RenderRow(r builders.Row, nameWidth int, now time.Time) string {
	switch r.Kind {
	case builders.KindHeader:
		return theme.SeparatorStyle.Render(" ─ ") +
			theme.HeaderStyle.Render(r.Path) +
			theme.DimStyle.Render(fmt.Sprintf(" (%d)", r.Count)) +
			theme.SeparatorStyle.Render(" ─")
	case builders.KindSession:
		return renderSession(r, nameWidth)
	case builders.KindMeta:
		return renderMeta(r.Session, now)
	case builders.KindSeparator:
		return theme.SeparatorStyle.Render(overlayIndent + divider)
	case builders.KindAction:
		if r.Highlighted {
			return overlayIndent + theme.ActiveActionStyle.Render("▸ "+r.Action.Label())
		}
		return overlayIndent + theme.ActionStyle.Render("  "+r.Action.Label())
	}
	return ""
}

func renderSession(r builders.Row, nameWidth int) string {
	s := r.Session
	marker := " "
	if r.Selected {
		marker = "▸"
		if r.Expanded {
			marker = "▾"
		}
	}

	nameStyle := theme.SubTextStyle
	switch {
	case r.Current:
		nameStyle = theme.CurrentStyle
	case r.Selected:
		nameStyle = theme.TextStyle.Bold(true)
	}
	status := theme.StatusStyle(s.Status, r.Selected)

	line := rowIndent + " " + theme.KeyStyle.Render(marker) + " " +
		nameStyle.Render(runewidth.FillRight(s.Name, nameWidth)) + "  " +
		status.Render(s.Status.Symbol()) + " " +
		status.Render(runewidth.FillRight(s.Status.Label(), labelWidth))
	if s.PaneTitle != "" {
		line += "  " + theme.DimStyle.Render(s.PaneTitle)
	}
	return line
}

func renderMeta(s *session.Session, now time.Time) string {
	attached := "no"
	if s.Attached {
		attached = "yes"
	}
	field := func(label, value string) string {
		return theme.DimStyle.Render(label+": ") + theme.SubTextStyle.Render(value)
	}
	return overlayIndent + strings.Join([]string{
		field("windows", fmt.Sprint(s.WindowCount)),
		field("panes", fmt.Sprint(len(s.Panes))),
		field("uptime", s.Uptime(now)),
		field("attached", attached),
	}, "  ")
}
