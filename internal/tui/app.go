package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nicobailon/tsm/internal/browser"
	"github.com/nicobailon/tsm/internal/completion"
	"github.com/nicobailon/tsm/internal/config"
	"github.com/nicobailon/tsm/internal/logging"
	"github.com/nicobailon/tsm/internal/tmux"
	"github.com/nicobailon/tsm/internal/tui/builders"
	"github.com/nicobailon/tsm/internal/tui/components"
	"github.com/nicobailon/tsm/internal/tui/theme"
	"github.com/nicobailon/tsm/internal/tui/views"
)

var log = logging.ForComponent(logging.CompUI)

// fixedRows are the header, status and footer lines.
const fixedRows = 3

type inputTarget int

const (
	inputNone inputTarget = iota
	inputFilter
	inputRename
	inputName
	inputPath
)

type model struct {
	state *browser.State
	tmux  *tmux.Tmux
	dir   browser.Directory
	cfg   *config.Config

	input    textinput.Model
	inputFor inputTarget
	preview  components.Preview

	width           int
	height          int
	refreshInFlight bool
}

type App struct {
	cfg  *config.Config
	tmux *tmux.Tmux
}

func New(cfg *config.Config, t *tmux.Tmux) *App {
	return &App{cfg: cfg, tmux: t}
}

// Run drives the browser until it quits. Outside tmux it returns the
// session picked for attaching, which the caller attaches to once the
// terminal is restored.
func (a *App) Run() (string, error) {
	dir := directory{a.tmux}
	state := browser.New(dir, completion.New(), browser.Options{
		AgentName:    a.tmux.AgentName(),
		DefaultStart: a.cfg.StartMode(),
		PreviewLines: a.cfg.PreviewLines,
		ShowPreview:  a.cfg.ShowPreview,
	})
	if err := state.Load(); err != nil {
		return "", err
	}

	p := tea.NewProgram(newModel(state, a.tmux, dir, a.cfg), tea.WithAltScreen())
	if a.cfg.File != "" {
		err := config.Watch(a.cfg.File, func(c *config.Config) {
			p.Send(configReloadedMsg{cfg: c})
		})
		if err != nil {
			log.Warn("config_watch_failed", slog.String("error", err.Error()))
		}
	}

	final, err := p.Run()
	if err != nil {
		return "", err
	}
	fm, ok := final.(model)
	if !ok || a.tmux.IsInsideTmux() {
		return "", nil
	}
	return fm.state.Switched(), nil
}

func newModel(state *browser.State, t *tmux.Tmux, dir browser.Directory, cfg *config.Config) model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.TextStyle = theme.TextStyle
	ti.PlaceholderStyle = theme.SubTextStyle

	m := model{
		state:   state,
		tmux:    t,
		dir:     dir,
		cfg:     cfg,
		input:   ti,
		preview: components.NewPreview(),
	}
	m.preview.SetContent(state.Preview())
	return m
}

func (m model) Init() tea.Cmd {
	return tickCmd(m.cfg.RefreshInterval)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case refreshTickMsg:
		cmds = append(cmds, tickCmd(m.cfg.RefreshInterval))
		if !m.refreshInFlight {
			m.refreshInFlight = true
			cmds = append(cmds, snapshotCmd(m.dir, m.state.Generation()))
		}

	case snapshotMsg:
		m.refreshInFlight = false
		if msg.gen != m.state.Generation() {
			log.Debug("refresh_stale", slog.Int("gen", msg.gen))
			break
		}
		if msg.err != nil {
			log.Warn("refresh_failed", slog.String("error", msg.err.Error()))
			break
		}
		m.state.SetCurrent(msg.current)
		m.state.ApplySnapshot(msg.sessions)

	case configReloadedMsg:
		m.applyConfig(msg.cfg)

	case attachDoneMsg:
		m.state.RecordSwitch(msg.name, true, msg.err)
		if !m.refreshInFlight {
			m.refreshInFlight = true
			cmds = append(cmds, snapshotCmd(m.dir, m.state.Generation()))
		}

	case tea.KeyMsg:
		cmds = append(cmds, handleKey(&m, msg))
	}

	if m.state.ShouldQuit() {
		return m, tea.Quit
	}
	cmds = append(cmds, m.syncInput())
	m.layout()
	return m, tea.Batch(cmds...)
}

// applyConfig takes the reloaded tunables. show_preview only applies when
// the file changed it, so a runtime toggle survives unrelated edits.
func (m *model) applyConfig(cfg *config.Config) {
	if cfg.RefreshInterval > 0 {
		m.cfg.RefreshInterval = cfg.RefreshInterval
	}
	if cfg.ShowPreview != m.cfg.ShowPreview {
		m.cfg.ShowPreview = cfg.ShowPreview
		m.state.SetShowPreview(cfg.ShowPreview)
	}
	m.cfg.PreviewLines = cfg.PreviewLines
	m.cfg.MinPreviewHeight = cfg.MinPreviewHeight
	m.state.SetPreviewLines(cfg.PreviewLines)
	m.state.UpdatePreview()
	log.Info("config_applied",
		slog.Duration("refresh_interval", m.cfg.RefreshInterval),
		slog.Int("preview_lines", m.cfg.PreviewLines),
		slog.Bool("show_preview", m.cfg.ShowPreview))
}

func (m *model) peek() tea.Cmd {
	sel := m.state.Selected()
	if sel == nil {
		return nil
	}
	if m.tmux.IsInsideTmux() {
		m.state.SwitchTo(true)
		return nil
	}
	return attachCmd(m.tmux, sel.Name)
}

func targetOf(mode browser.Mode) (inputTarget, string) {
	switch md := mode.(type) {
	case *browser.Filter:
		return inputFilter, md.Input
	case *browser.Rename:
		return inputRename, md.New
	case *browser.NewSession:
		switch md.Field {
		case browser.FieldName:
			return inputName, md.Name
		case browser.FieldPath:
			return inputPath, md.Path
		}
	}
	return inputNone, ""
}

// syncInput points the text input at the field the mode edits, loading its
// current value whenever the target changes.
func (m *model) syncInput() tea.Cmd {
	target, value := targetOf(m.state.Mode())
	if target == m.inputFor {
		return nil
	}
	m.inputFor = target
	if target == inputNone {
		m.input.Blur()
		m.input.SetValue("")
		return nil
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *model) updateInput(msg tea.KeyMsg, set func(string)) tea.Cmd {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	set(m.input.Value())
	return cmd
}

func (m *model) previewVisible() bool {
	return m.state.ShowPreview() && m.height >= m.cfg.MinPreviewHeight
}

func (m *model) listHeight() int {
	h := m.height - fixedRows
	if m.previewVisible() {
		h -= components.PreviewHeight(m.height)
	}
	return max(h, 1)
}

func (m *model) layout() {
	if m.previewVisible() {
		m.preview.SetSize(m.width, components.PreviewHeight(m.height))
	}
	m.preview.SetContent(m.state.Preview())
}

func (m model) rows() []builders.Row {
	in := builders.Input{
		Groups:   m.state.Groups(),
		Selected: m.state.SelectedIndex(),
		Current:  m.state.Current(),
	}
	if _, ok := m.state.Mode().(*browser.ActionMenu); ok {
		in.Actions = m.state.Actions()
		in.Highlighted = m.state.SelectedAction()
	}
	return builders.BuildRows(in)
}

func (m model) View() string {
	if m.width == 0 {
		return ""
	}

	switch mode := m.state.Mode().(type) {
	case *browser.ConfirmAction:
		return m.place(m.renderConfirm())
	case *browser.NewSession:
		return m.place(views.RenderNewSession(mode, m.tmux.AgentName(), m.input.View()))
	case *browser.Rename:
		return m.place(views.RenderRename(mode.Old, m.input.View()))
	case *browser.Help:
		return m.place(views.RenderHelp())
	}

	sections := []string{views.RenderHeader(m.width, m.state.Current())}

	height := m.listHeight()
	if rows := m.rows(); len(rows) == 0 {
		sections = append(sections, views.RenderEmpty(m.state.Filter() != "", height))
	} else {
		offset := m.state.ScrollOffset(height)
		sections = append(sections, views.RenderList(rows, offset, height, m.width, time.Now()))
	}

	if m.previewVisible() {
		sections = append(sections, m.preview.View())
	}

	if _, ok := m.state.Mode().(*browser.Filter); ok {
		sections = append(sections, views.RenderFilterBar(m.width, m.input.View()))
	} else {
		working, waiting, _ := m.state.StatusCounts()
		status := views.StatusLine(len(m.state.Sessions()), working, waiting, m.state.Filter())
		sections = append(sections, views.RenderStatus(m.width, status))
	}

	if notice := views.RenderNotice(m.width, m.state.Notice()); notice != "" {
		sections = append(sections, notice)
	} else {
		sections = append(sections, views.RenderFooter(m.width, footerHints(m.state.Mode())))
	}
	return strings.Join(sections, "\n")
}

func (m model) renderConfirm() string {
	p := m.state.Pending()
	if p == nil {
		return views.RenderConfirm(browser.ActionKill, "?", false)
	}
	return views.RenderConfirm(p.Action, p.Name, p.Name == m.state.Current())
}

func (m model) place(box string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
