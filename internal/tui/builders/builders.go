package builders

import (
	"github.com/nicobailon/tsm/internal/browser"
	"github.com/nicobailon/tsm/internal/session"
)

type RowKind int

const (
	KindHeader RowKind = iota
	KindSession
	KindMeta
	KindSeparator
	KindAction
	KindEnd
)

// Row is one flat line of the session list.
type Row struct {
	Kind RowKind

	Path  string
	Count int

	Session  *session.Session
	Selected bool
	Expanded bool
	Current  bool

	Action      browser.Action
	Highlighted bool
}

type Input struct {
	Groups   []browser.Group
	Selected int
	Current  string

	// Actions is non-empty only while the action overlay is open.
	Actions     []browser.Action
	Highlighted int
}

// BuildRows flattens groups into list rows. Its length and the position of
// the selected row match browser.TotalRows and browser.SelectedRow.
func BuildRows(in Input) []Row {
	var rows []Row
	expanded := len(in.Actions) > 0
	for _, g := range in.Groups {
		rows = append(rows, Row{Kind: KindHeader, Path: g.Path, Count: len(g.Members)})
		for _, m := range g.Members {
			selected := m.Index == in.Selected
			rows = append(rows, Row{
				Kind:     KindSession,
				Session:  m.Session,
				Selected: selected,
				Expanded: selected && expanded,
				Current:  m.Session.Name == in.Current,
			})
			if selected && expanded {
				rows = append(rows, overlayRows(m.Session, in.Actions, in.Highlighted)...)
			}
		}
	}
	return rows
}

func overlayRows(s *session.Session, actions []browser.Action, highlighted int) []Row {
	rows := []Row{
		{Kind: KindMeta, Session: s},
		{Kind: KindSeparator},
	}
	for i, a := range actions {
		rows = append(rows, Row{Kind: KindAction, Action: a, Highlighted: i == highlighted})
	}
	return append(rows, Row{Kind: KindEnd})
}

// SelectedIndex finds the row the cursor is on: the highlighted action when
// the overlay is open, else the selected session.
func SelectedIndex(rows []Row) int {
	sessionRow := -1
	for i, r := range rows {
		switch {
		case r.Kind == KindAction && r.Highlighted:
			return i
		case r.Kind == KindSession && r.Selected:
			sessionRow = i
		}
	}
	if sessionRow < 0 {
		return 0
	}
	return sessionRow
}
