package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Status is the activity classification of a session's agent pane.
type Status int

const (
	StatusUnknown Status = iota
	StatusIdle
	StatusWorking
	StatusWaitingInput
)

func (s Status) Label() string {
	switch s {
	case StatusWorking:
		return "working"
	case StatusWaitingInput:
		return "input"
	case StatusIdle:
		return "idle"
	default:
		return ""
	}
}

func (s Status) Symbol() string {
	switch s {
	case StatusWorking:
		return "●"
	case StatusWaitingInput:
		return "◐"
	case StatusIdle:
		return "○"
	default:
		return " "
	}
}

// StartMode selects what a freshly created session runs.
type StartMode int

const (
	StartAgent StartMode = iota
	StartShell
)

func (m StartMode) String() string {
	if m == StartShell {
		return "shell"
	}
	return "agent"
}

func ParseStartMode(s string) (StartMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "agent", "claude":
		return StartAgent, nil
	case "shell":
		return StartShell, nil
	}
	return StartAgent, fmt.Errorf("unknown start mode %q", s)
}

type Pane struct {
	ID             string
	CurrentCommand string
	CurrentPath    string
	PID            int
	Title          string
}

// Session is a read-only snapshot of one tmux session. Name is unique
// within a snapshot and is the only identity carried across refreshes.
type Session struct {
	Name        string
	Created     time.Time
	Attached    bool
	WorkingDir  string
	WindowCount int
	Panes       []Pane
	AgentPane   string
	Status      Status
	PaneTitle   string
}

var homeDir = os.UserHomeDir

// UnknownPath stands in for a session whose working directory tmux did
// not report.
const UnknownPath = "(unknown)"

// DisplayPath is the grouping key: the working directory with the home
// directory abbreviated to ~.
func (s *Session) DisplayPath() string {
	if s.WorkingDir == "" {
		return UnknownPath
	}
	return AbbreviateHome(s.WorkingDir)
}

// PreviewTarget is the pane to capture for the preview: the agent pane when
// known, otherwise the first pane.
func (s *Session) PreviewTarget() string {
	if s.AgentPane != "" {
		return s.AgentPane
	}
	if len(s.Panes) > 0 {
		return s.Panes[0].ID
	}
	return ""
}

func (s *Session) Uptime(now time.Time) string {
	if s.Created.IsZero() {
		return "-"
	}
	return FormatDuration(now.Sub(s.Created))
}

func AbbreviateHome(path string) string {
	if path == "" {
		return ""
	}
	home, err := homeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	rel, err := filepath.Rel(home, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
		return path
	}
	return "~/" + rel
}

// ExpandHome is the inverse of AbbreviateHome for a leading ~ or ~/.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := homeDir()
	if err != nil || home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	}
	return fmt.Sprintf("%dd %dh", int(d.Hours()/24), int(d.Hours())%24)
}
