package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nicobailon/tsm/internal/browser"
	"github.com/nicobailon/tsm/internal/session"
	"github.com/nicobailon/tsm/internal/tui/theme"
)

const visibleSuggestions = 5

func dialog(style lipgloss.Style, title string, body ...string) string {
	header := theme.TitleStyle.Render("▲ " + title)
	div := theme.SeparatorStyle.Render(divider)
	return style.Render(header + "\n" + div + "\n\n" + strings.Join(body, "\n"))
}

// RenderConfirm asks before running a destructive action; killing the
// session this terminal is attached to gets an extra warning.
func RenderConfirm(a browser.Action, name string, current bool) string {
	body := []string{theme.TextStyle.Render(fmt.Sprintf("%s '%s'?", a.Label(), name))}
	if current {
		body = append(body, "", theme.WarnStyle.Render("This is your current session - tmux will exit!"))
	}
	body = append(body, "", theme.KeyStyle.Render("[Y]")+theme.DimStyle.Render("es  ")+
		theme.KeyStyle.Render("[n]")+theme.DimStyle.Render("o"))
	return dialog(theme.DangerModalStyle, "Confirm", body...)
}

func RenderRename(old, input string) string {
	return dialog(theme.ModalStyle, fmt.Sprintf("Rename '%s'", old),
		theme.SectionStyle.Render("New name:")+" "+input,
		"",
		theme.DimStyle.Render("Press Enter to confirm"))
}

// RenderNewSession draws the create dialog. input is the rendered text
// input of the focused field; unfocused fields show their plain value.
func RenderNewSession(m *browser.NewSession, agentName, input string) string {
	label := func(f browser.Field, text string) string {
		if m.Field == f {
			return theme.ActiveFieldStyle.Render(text)
		}
		return theme.SubTextStyle.Render(text)
	}

	option := func(name string, on bool) string {
		if on {
			return theme.ActiveActionStyle.Render("[" + name + "]")
		}
		return theme.DimStyle.Render(" " + name + " ")
	}
	arrow := theme.DimStyle
	if m.Field == browser.FieldStartWith {
		arrow = theme.KeyStyle
	}
	agent := "Agent"
	if agentName != "" {
		agent = strings.ToUpper(agentName[:1]) + agentName[1:]
	}
	start := label(browser.FieldStartWith, "Start: ") + arrow.Render("◀ ") +
		option(agent, m.Start == session.StartAgent) + "  " +
		option("Shell", m.Start == session.StartShell) + arrow.Render(" ▶")

	name := theme.TextStyle.Render(m.Name)
	if m.Field == browser.FieldName {
		name = input
	}
	path := theme.TextStyle.Render(m.Path)
	if m.Field == browser.FieldPath {
		path = input + theme.GhostStyle.Render(m.Ghost)
	}

	body := []string{
		start,
		"",
		label(browser.FieldName, "Name:  ") + name,
		"",
		label(browser.FieldPath, "Path:  ") + path,
	}
	if m.Field == browser.FieldPath && len(m.Suggestions) > 0 {
		body = append(body, renderSuggestions(m.Suggestions, m.Highlight)...)
	}
	body = append(body, "", theme.DimStyle.Render("Tab switch  ←→ toggle  ↑↓ select  Enter create  Esc cancel"))
	return dialog(theme.ModalStyle.Width(70), "New Session", body...)
}

// renderSuggestions shows a window of suggestions that keeps the highlight
// visible.
func renderSuggestions(suggestions []string, highlight int) []string {
	start := 0
	if highlight >= visibleSuggestions {
		start = highlight - visibleSuggestions + 1
	}
	end := start + visibleSuggestions
	if end > len(suggestions) {
		end = len(suggestions)
	}

	lines := []string{theme.SeparatorStyle.Render(overlayIndent + divider)}
	if start > 0 {
		lines = append(lines, theme.DimStyle.Render(fmt.Sprintf("%s... %d more above", overlayIndent, start)))
	}
	for i := start; i < end; i++ {
		if i == highlight {
			lines = append(lines, theme.ActiveActionStyle.Render("    > "+suggestions[i]))
			continue
		}
		lines = append(lines, theme.SubTextStyle.Render(overlayIndent+" "+suggestions[i]))
	}
	if end < len(suggestions) {
		lines = append(lines, theme.DimStyle.Render(fmt.Sprintf("%s... %d more below", overlayIndent, len(suggestions)-end)))
	}
	return append(lines, theme.SeparatorStyle.Render(overlayIndent+divider))
}

func RenderHelp() string {
	helpLine := func(key, desc string) string {
		k := lipgloss.NewStyle().
			Foreground(theme.BaseBg).
			Background(theme.Teal).
			Bold(true).
			Padding(0, 1).
			Width(10).
			Render(key)
		d := lipgloss.NewStyle().Foreground(theme.TextColor).Render("  " + desc)
		return k + d
	}

	sectionHeader := func(title string) string {
		return lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			MarginTop(1).
			Render(" " + title + " ")
	}

	content := strings.Join([]string{
		theme.Logo + theme.DimStyle.Render(" help"),
		sectionHeader("Navigation"),
		helpLine("j / ↓", "next session"),
		helpLine("k / ↑", "previous session"),
		helpLine("l / →", "session actions"),
		helpLine("h / esc", "close actions"),
		helpLine("/", "filter by name or path"),
		sectionHeader("Sessions"),
		helpLine("enter", "switch and quit"),
		helpLine("space", "switch and stay"),
		helpLine("n", "new session"),
		helpLine("r", "rename session"),
		helpLine("K", "kill session"),
		sectionHeader("View"),
		helpLine("p", "toggle preview"),
		helpLine("R", "refresh"),
		sectionHeader("Other"),
		helpLine("?", "this help"),
		helpLine("q", "quit (close in dialogs)"),
	}, "\n")
	return theme.ModalStyle.Render(content)
}
