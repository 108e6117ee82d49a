package browser

import (
	"fmt"
	"log/slog"

	"github.com/nicobailon/tsm/internal/session"
)

// StartNewSession opens the dialog with a generated name and the selected
// session's directory, or the working directory when nothing is selected.
func (s *State) StartNewSession() {
	s.clearNotice()
	path := "~"
	if sel := s.Selected(); sel != nil && sel.WorkingDir != "" {
		path = sel.DisplayPath()
	} else if wd, err := s.getwd(); err == nil {
		path = session.AbbreviateHome(wd)
	}
	m := &NewSession{
		Name:      GenerateName(s.namePrefix(s.defaultStart)),
		Path:      path,
		Field:     FieldStartWith,
		Highlight: -1,
		Start:     s.defaultStart,
	}
	s.mode = m
	s.complete(m)
}

func (s *State) newSession() *NewSession {
	m, _ := s.mode.(*NewSession)
	return m
}

func (s *State) complete(m *NewSession) {
	if s.completer == nil {
		return
	}
	res := s.completer.Complete(m.Path)
	m.Suggestions = res.Suggestions
	m.Ghost = res.Ghost
	if m.Highlight >= len(m.Suggestions) {
		m.Highlight = len(m.Suggestions) - 1
	}
}

func (s *State) NextField() {
	if m := s.newSession(); m != nil {
		m.Field = (m.Field + 1) % fieldCount
	}
}

func (s *State) PrevField() {
	if m := s.newSession(); m != nil {
		m.Field = (m.Field + fieldCount - 1) % fieldCount
	}
}

// ToggleStart flips between agent and shell; a generated name follows the
// new prefix.
func (s *State) ToggleStart() {
	m := s.newSession()
	if m == nil {
		return
	}
	from := s.namePrefix(m.Start)
	if m.Start == session.StartAgent {
		m.Start = session.StartShell
	} else {
		m.Start = session.StartAgent
	}
	m.Name = Reprefix(m.Name, from, s.namePrefix(m.Start))
}

func (s *State) SetNewSessionName(name string) {
	if m := s.newSession(); m != nil {
		m.Name = name
	}
}

func (s *State) SetNewSessionPath(path string) {
	if m := s.newSession(); m != nil {
		m.Path = path
		s.complete(m)
	}
}

func (s *State) NextSuggestion() {
	m := s.newSession()
	if m == nil || len(m.Suggestions) == 0 {
		return
	}
	m.Highlight = (m.Highlight + 1) % len(m.Suggestions)
}

func (s *State) PrevSuggestion() {
	m := s.newSession()
	if m == nil || len(m.Suggestions) == 0 {
		return
	}
	if m.Highlight <= 0 {
		m.Highlight = len(m.Suggestions) - 1
		return
	}
	m.Highlight--
}

// AcceptSuggestion copies the highlighted suggestion, or the top one, into
// the path.
func (s *State) AcceptSuggestion() {
	m := s.newSession()
	if m == nil {
		return
	}
	switch {
	case m.Highlight >= 0 && m.Highlight < len(m.Suggestions):
		m.Path = m.Suggestions[m.Highlight]
		m.Highlight = -1
	case len(m.Suggestions) > 0:
		m.Path = m.Suggestions[0]
	}
	s.complete(m)
}

func (s *State) ConfirmNewSession() {
	m := s.newSession()
	s.mode = &Normal{}
	if m == nil {
		return
	}
	if m.Name == "" {
		s.fail("%v", ErrEmptyName)
		return
	}
	path := session.ExpandHome(m.Path)
	if err := s.dir.NewSession(m.Name, path, m.Start); err != nil {
		log.Warn("create_failed", slog.String("session", m.Name), slog.String("error", err.Error()))
		s.fail("Failed to create session: %v", err)
		return
	}
	log.Info("created", slog.String("session", m.Name), slog.String("path", path), slog.String("start", m.Start.String()))
	s.settle(fmt.Sprintf("Created session '%s'", m.Name))
}
