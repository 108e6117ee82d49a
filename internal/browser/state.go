package browser

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/nicobailon/tsm/internal/completion"
	"github.com/nicobailon/tsm/internal/logging"
	"github.com/nicobailon/tsm/internal/session"
)

var (
	ErrEmptyName   = errors.New("session name cannot be empty")
	ErrNoSelection = errors.New("no session selected")
)

var log = logging.ForComponent(logging.CompBrowser)

// Directory is the session backend. Every call is synchronous.
type Directory interface {
	ListSessions() ([]session.Session, error)
	CurrentSession() (string, error)
	CapturePane(target string, lines int) (string, error)
	SwitchTo(name string) error
	NewSession(name, path string, mode session.StartMode) error
	RenameSession(oldName, newName string) error
	KillSession(name string) error
}

type Completer interface {
	Complete(partial string) completion.Result
}

type Options struct {
	// AgentName prefixes generated names for agent sessions.
	AgentName    string
	DefaultStart session.StartMode
	PreviewLines int
	ShowPreview  bool
	Getwd        func() (string, error)
}

// State is the browser's single owner of sessions, selection and mode.
// Selection indexes the filtered view.
type State struct {
	dir       Directory
	completer Completer

	sessions []session.Session
	current  string
	filter   string
	selected int
	mode     Mode

	actions        []Action
	selectedAction int
	pending        *PendingAction

	notice  Notice
	preview string

	agentName    string
	defaultStart session.StartMode
	previewLines int
	showPreview  bool
	getwd        func() (string, error)

	quit     bool
	switched string

	generation int
}

// PendingAction is an action awaiting confirmation, bound to the session
// it was opened on.
type PendingAction struct {
	Action Action
	Name   string
}

func New(dir Directory, completer Completer, opts Options) *State {
	s := &State{
		dir:          dir,
		completer:    completer,
		mode:         &Normal{},
		agentName:    opts.AgentName,
		defaultStart: opts.DefaultStart,
		previewLines: opts.PreviewLines,
		showPreview:  opts.ShowPreview,
		getwd:        opts.Getwd,
	}
	if s.agentName == "" {
		s.agentName = "claude"
	}
	if s.getwd == nil {
		s.getwd = os.Getwd
	}
	return s
}

// Load performs the initial listing.
func (s *State) Load() error {
	sessions, err := s.dir.ListSessions()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	s.current, _ = s.dir.CurrentSession()
	s.ApplySnapshot(sessions)
	return nil
}

func (s *State) Mode() Mode { return s.mode }
func (s *State) Sessions() []session.Session { return s.sessions }
func (s *State) Filter() string { return s.filter }
func (s *State) SelectedIndex() int { return s.selected }
func (s *State) Current() string { return s.current }
func (s *State) Notice() Notice { return s.notice }
func (s *State) Preview() string { return s.preview }
func (s *State) Actions() []Action { return s.actions }
func (s *State) SelectedAction() int { return s.selectedAction }
func (s *State) Pending() *PendingAction { return s.pending }
func (s *State) ShowPreview() bool { return s.showPreview }
func (s *State) ShouldQuit() bool { return s.quit }

// Switched is the session picked by a quitting switch.
func (s *State) Switched() string { return s.switched }

// Generation counts synchronous re-listings. A listing started before the
// counter moved is older than the state and must not be applied.
func (s *State) Generation() int { return s.generation }

func (s *State) View() []session.Session {
	return Filtered(s.sessions, s.filter)
}

func (s *State) Groups() []Group {
	return Grouped(s.View())
}

func (s *State) Selected() *session.Session {
	view := s.View()
	if s.selected < 0 || s.selected >= len(view) {
		return nil
	}
	return &view[s.selected]
}

func (s *State) overlay() *Overlay {
	if _, ok := s.mode.(*ActionMenu); !ok {
		return nil
	}
	return &Overlay{Actions: len(s.actions), Highlighted: s.selectedAction}
}

func (s *State) SelectedRow() int {
	return SelectedRow(s.Groups(), s.selected, s.overlay())
}

func (s *State) TotalRows() int {
	return TotalRows(s.Groups(), s.overlay())
}

func (s *State) ScrollOffset(height int) int {
	return ScrollOffset(s.SelectedRow(), s.TotalRows(), height)
}

func (s *State) StatusCounts() (working, waiting, idle int) {
	return StatusCounts(s.sessions)
}

func (s *State) SetPreviewLines(n int) {
	s.previewLines = n
}

func (s *State) SetShowPreview(v bool) {
	s.showPreview = v
}

func (s *State) TogglePreview() {
	s.showPreview = !s.showPreview
}

func (s *State) clearNotice() {
	s.notice = Notice{}
}

func (s *State) succeed(format string, args ...any) {
	s.notice = Notice{Kind: NoticeSuccess, Text: fmt.Sprintf(format, args...)}
}

func (s *State) fail(format string, args ...any) {
	s.notice = Notice{Kind: NoticeError, Text: fmt.Sprintf(format, args...)}
}

// ApplySnapshot replaces the sessions and re-anchors the selection on the
// previously selected name, falling back to a clamp.
func (s *State) ApplySnapshot(sessions []session.Session) {
	var name string
	if sel := s.Selected(); sel != nil {
		name = sel.Name
	}
	s.sessions = sessions

	view := s.View()
	if name != "" {
		for i := range view {
			if view[i].Name == name {
				s.selected = i
				break
			}
		}
	}
	s.clampSelection(len(view))
	s.UpdatePreview()
}

func (s *State) SetCurrent(name string) {
	s.current = name
}

func (s *State) selectByName(name string) {
	for i, v := range s.View() {
		if v.Name == name {
			s.selected = i
			s.UpdatePreview()
			return
		}
	}
}

func (s *State) clampSelection(n int) {
	if n == 0 || s.selected < 0 {
		s.selected = 0
		return
	}
	if s.selected >= n {
		s.selected = n - 1
	}
}

// UpdatePreview captures the selected session's agent pane. Capture
// failures leave the preview empty.
func (s *State) UpdatePreview() {
	s.preview = ""
	sel := s.Selected()
	if sel == nil {
		return
	}
	target := sel.PreviewTarget()
	if target == "" {
		return
	}
	out, err := s.dir.CapturePane(target, s.previewLines)
	if err != nil {
		log.Debug("preview_capture_failed", slog.String("target", target), slog.String("error", err.Error()))
		return
	}
	s.preview = out
}

func (s *State) reload() error {
	s.generation++
	sessions, err := s.dir.ListSessions()
	if err != nil {
		s.fail("Failed to refresh: %v", err)
		return err
	}
	s.ApplySnapshot(sessions)
	return nil
}

// Refresh re-lists sessions on user request.
func (s *State) Refresh() {
	s.clearNotice()
	if s.reload() == nil {
		s.succeed("Refreshed")
	}
}

func (s *State) move(step int) {
	order := VisualOrder(s.Groups())
	for i, idx := range order {
		if idx != s.selected {
			continue
		}
		next := i + step
		if next >= 0 && next < len(order) {
			s.selected = order[next]
			s.UpdatePreview()
		}
		return
	}
}

func (s *State) SelectNext() { s.move(1) }
func (s *State) SelectPrev() { s.move(-1) }

func (s *State) OpenActions() {
	s.clearNotice()
	if s.Selected() == nil {
		return
	}
	s.actions = sessionActions()
	s.selectedAction = 0
	s.mode = &ActionMenu{}
}

func (s *State) NextAction() {
	if len(s.actions) == 0 {
		return
	}
	s.selectedAction = (s.selectedAction + 1) % len(s.actions)
}

func (s *State) PrevAction() {
	if len(s.actions) == 0 {
		return
	}
	s.selectedAction = (s.selectedAction - 1 + len(s.actions)) % len(s.actions)
}

func (s *State) ActivateAction() {
	if s.selectedAction < 0 || s.selectedAction >= len(s.actions) {
		return
	}
	a := s.actions[s.selectedAction]
	sel := s.Selected()
	if sel == nil {
		s.mode = &Normal{}
		s.fail("%v", ErrNoSelection)
		return
	}
	if a.RequiresConfirmation() {
		s.pending = &PendingAction{Action: a, Name: sel.Name}
		s.mode = &ConfirmAction{}
		return
	}
	s.execute(a, sel.Name)
}

// StartKill asks for confirmation before killing the selected session.
func (s *State) StartKill() {
	s.clearNotice()
	sel := s.Selected()
	if sel == nil {
		return
	}
	s.pending = &PendingAction{Action: ActionKill, Name: sel.Name}
	s.mode = &ConfirmAction{}
}

func (s *State) Confirm() {
	p := s.pending
	s.pending = nil
	s.mode = &Normal{}
	if p == nil {
		return
	}
	if !s.exists(p.Name) {
		s.fail("Session '%s' no longer exists", p.Name)
		return
	}
	s.execute(p.Action, p.Name)
}

// Cancel returns to Normal from any mode, dropping a pending action.
func (s *State) Cancel() {
	s.pending = nil
	s.mode = &Normal{}
}

func (s *State) exists(name string) bool {
	for i := range s.sessions {
		if s.sessions[i].Name == name {
			return true
		}
	}
	return false
}

func (s *State) execute(a Action, name string) {
	switch a {
	case ActionSwitch:
		s.mode = &Normal{}
		s.RecordSwitch(name, false, s.dir.SwitchTo(name))
	case ActionRename:
		s.mode = &Rename{Old: name, New: name}
	case ActionKill:
		s.mode = &Normal{}
		s.kill(name)
	}
}

func (s *State) kill(name string) {
	if err := s.dir.KillSession(name); err != nil {
		log.Warn("kill_failed", slog.String("session", name), slog.String("error", err.Error()))
		s.fail("Failed to kill: %v", err)
		return
	}
	log.Info("killed", slog.String("session", name))
	s.settle(fmt.Sprintf("Killed session '%s'", name))
}

// settle reloads after a mutation that already took effect. A failed
// reload keeps the outcome in the error notice.
func (s *State) settle(done string) bool {
	if err := s.reload(); err != nil {
		s.fail("%s, but failed to refresh: %v", done, err)
		return false
	}
	s.succeed("%s", done)
	return true
}

// SwitchTo switches to the selected session. Without stay the browser
// quits once the switch succeeds.
func (s *State) SwitchTo(stay bool) {
	s.clearNotice()
	sel := s.Selected()
	if sel == nil {
		return
	}
	s.RecordSwitch(sel.Name, stay, s.dir.SwitchTo(sel.Name))
}

// RecordSwitch applies the outcome of a switch performed on the browser's
// behalf.
func (s *State) RecordSwitch(name string, stay bool, err error) {
	if err != nil {
		log.Warn("switch_failed", slog.String("session", name), slog.String("error", err.Error()))
		s.fail("Failed to switch: %v", err)
		return
	}
	log.Info("switched", slog.String("session", name), slog.Bool("stay", stay))
	if stay {
		s.succeed("Switched to '%s'", name)
		return
	}
	s.switched = name
	s.quit = true
}

func (s *State) Quit() {
	s.quit = true
}

func (s *State) StartFilter() {
	s.clearNotice()
	s.mode = &Filter{Input: s.filter}
}

func (s *State) SetFilterInput(input string) {
	if m, ok := s.mode.(*Filter); ok {
		m.Input = input
	}
}

func (s *State) ApplyFilter() {
	if m, ok := s.mode.(*Filter); ok {
		s.filter = m.Input
		s.selected = 0
	}
	s.mode = &Normal{}
	s.UpdatePreview()
}

func (s *State) ClearFilter() {
	s.filter = ""
	s.selected = 0
	s.UpdatePreview()
}

func (s *State) StartRename() {
	s.clearNotice()
	sel := s.Selected()
	if sel == nil {
		return
	}
	s.mode = &Rename{Old: sel.Name, New: sel.Name}
}

func (s *State) SetRenameInput(input string) {
	if m, ok := s.mode.(*Rename); ok {
		m.New = input
	}
}

func (s *State) ConfirmRename() {
	m, ok := s.mode.(*Rename)
	s.mode = &Normal{}
	if !ok || m.New == m.Old {
		return
	}
	if m.New == "" {
		s.fail("%v", ErrEmptyName)
		return
	}
	if err := s.dir.RenameSession(m.Old, m.New); err != nil {
		log.Warn("rename_failed", slog.String("session", m.Old), slog.String("error", err.Error()))
		s.fail("Failed to rename: %v", err)
		return
	}
	log.Info("renamed", slog.String("from", m.Old), slog.String("to", m.New))
	if s.current == m.Old {
		s.current = m.New
	}
	if s.settle(fmt.Sprintf("Renamed '%s' to '%s'", m.Old, m.New)) {
		s.selectByName(m.New)
	}
}

func (s *State) ShowHelp() {
	s.clearNotice()
	s.mode = &Help{}
}
