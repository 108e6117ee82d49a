package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/nicobailon/tsm/internal/tui/theme"
)

const (
	minPreviewHeight = 5
	maxPreviewHeight = 30
)

// PreviewHeight gives the preview half of the space left after the fixed
// bars, clamped to a usable range.
func PreviewHeight(total int) int {
	h := (total - 4) * 50 / 100
	if h < minPreviewHeight {
		return minPreviewHeight
	}
	if h > maxPreviewHeight {
		return maxPreviewHeight
	}
	return h
}

// Preview shows the tail of a captured pane between two separators. ANSI
// styling in the capture is kept.
type Preview struct {
	vp      viewport.Model
	width   int
	content string
}

func NewPreview() Preview {
	return Preview{vp: viewport.New(0, 0)}
}

// SetSize includes the two separator lines in height.
func (p *Preview) SetSize(width, height int) {
	p.width = width
	p.vp.Width = width
	p.vp.Height = max(height-2, 0)
	p.SetContent(p.content)
}

func (p *Preview) SetContent(content string) {
	p.content = content
	if content == "" {
		p.vp.SetContent(theme.DimStyle.Render("  No preview available"))
		p.vp.GotoTop()
		return
	}
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, p.width, "")
	}
	p.vp.SetContent(strings.Join(lines, "\n"))
	p.vp.GotoBottom()
}

func (p Preview) Height() int {
	return p.vp.Height + 2
}

func (p Preview) View() string {
	top := theme.SeparatorStyle.Render(strings.Repeat("─", p.width))
	bottom := lipgloss.NewStyle().Foreground(theme.SubTextColor).Render(strings.Repeat("─", p.width))
	return top + "\n" + p.vp.View() + "\n" + bottom
}
