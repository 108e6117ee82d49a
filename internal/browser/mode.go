package browser

import "github.com/nicobailon/tsm/internal/session"

// Mode is the active UI mode. Exactly one is active; it also decides where
// input is routed.
type Mode interface {
	isMode()
}

type Normal struct{}

type ActionMenu struct{}

type Filter struct {
	Input string
}

type ConfirmAction struct{}

type Field int

const (
	FieldStartWith Field = iota
	FieldName
	FieldPath
)

const fieldCount = 3

type NewSession struct {
	Name  string
	Path  string
	Field Field
	// Suggestions and Ghost are recomputed whenever Path changes.
	Suggestions []string
	Ghost       string
	// Highlight indexes Suggestions, -1 when none is highlighted.
	Highlight int
	Start     session.StartMode
}

type Rename struct {
	Old string
	New string
}

type Help struct{}

func (*Normal) isMode()        {}
func (*ActionMenu) isMode()    {}
func (*Filter) isMode()        {}
func (*ConfirmAction) isMode() {}
func (*NewSession) isMode()    {}
func (*Rename) isMode()        {}
func (*Help) isMode()          {}

type Action int

const (
	ActionSwitch Action = iota
	ActionRename
	ActionKill
)

func (a Action) Label() string {
	switch a {
	case ActionSwitch:
		return "Switch to session"
	case ActionRename:
		return "Rename session"
	case ActionKill:
		return "Kill session"
	}
	return ""
}

func (a Action) RequiresConfirmation() bool {
	return a == ActionKill
}

func sessionActions() []Action {
	return []Action{ActionSwitch, ActionRename, ActionKill}
}

type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is the single message slot shown to the user.
type Notice struct {
	Kind NoticeKind
	Text string
}
