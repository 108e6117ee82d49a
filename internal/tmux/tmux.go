package tmux

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nicobailon/tsm/internal/logging"
	"github.com/nicobailon/tsm/internal/session"
	"github.com/nicobailon/tsm/internal/shell"
)

const (
	sessionFormat = "#{session_name}\t#{session_created}\t#{session_attached}\t#{session_windows}"
	paneFormat    = "#{pane_id}\t#{pane_current_command}\t#{pane_current_path}\t#{pane_pid}\t#{pane_title}"

	statusLines   = 4
	paneScanLimit = 8
)

// ErrNoServer means tmux has no running server, which callers treat as an
// empty session list.
var ErrNoServer = errors.New("tmux: no server running")

var (
	log    = logging.ForComponent(logging.CompTmux)
	getenv = os.Getenv
)

type Tmux struct {
	Cmd shell.Commander
	// AgentCommand is typed into new agent sessions; its program name also
	// identifies agent panes.
	AgentCommand string
}

func New(cmd shell.Commander, agentCommand string) *Tmux {
	return &Tmux{Cmd: cmd, AgentCommand: agentCommand}
}

// AgentName is the program name of AgentCommand, "claude" when unset.
func (t *Tmux) AgentName() string {
	fields := strings.Fields(t.AgentCommand)
	if len(fields) == 0 {
		return "claude"
	}
	return filepath.Base(fields[0])
}

func (t *Tmux) IsInsideTmux() bool {
	return getenv("TMUX") != ""
}

// ListSessions returns attached sessions first, then by name. Panes are
// scanned concurrently; a session whose panes cannot be listed has none.
func (t *Tmux) ListSessions() ([]session.Session, error) {
	sessions, err := t.listSessionRows()
	if errors.Is(err, ErrNoServer) {
		return []session.Session{}, nil
	}
	if err != nil {
		return nil, err
	}

	var g errgroup.Group
	g.SetLimit(paneScanLimit)
	for i := range sessions {
		s := &sessions[i]
		g.Go(func() error {
			t.fillPanes(s)
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].Attached != sessions[j].Attached {
			return sessions[i].Attached
		}
		return sessions[i].Name < sessions[j].Name
	})
	log.Debug("list_sessions", slog.Int("count", len(sessions)))
	return sessions, nil
}

func (t *Tmux) listSessionRows() ([]session.Session, error) {
	out, err := t.Cmd.Output("tmux", "list-sessions", "-F", sessionFormat)
	if err != nil {
		if isNoServer(err) {
			return nil, ErrNoServer
		}
		log.Warn("list_sessions_failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	var sessions []session.Session
	for _, line := range strings.Split(string(out), "\n") {
		parts := strings.Split(line, "\t")
		if len(parts) < 4 {
			continue
		}
		s := session.Session{
			Name:        parts[0],
			Attached:    parts[2] == "1",
			WindowCount: 1,
		}
		if ts, err := strconv.ParseInt(parts[1], 10, 64); err == nil && ts > 0 {
			s.Created = time.Unix(ts, 0)
		}
		if n, err := strconv.Atoi(parts[3]); err == nil {
			s.WindowCount = n
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func isNoServer(err error) bool {
	var shErr *shell.Error
	if !errors.As(err, &shErr) {
		return false
	}
	msg := shErr.Stderr
	return strings.Contains(msg, "no server running") ||
		strings.Contains(msg, "no sessions") ||
		strings.Contains(msg, "error connecting to")
}

func (t *Tmux) fillPanes(s *session.Session) {
	s.Panes = t.listPanes(s.Name)

	agent := t.findAgentPane(s.Name, s.Panes)
	if agent == nil {
		if len(s.Panes) > 0 {
			s.WorkingDir = s.Panes[0].CurrentPath
			s.PaneTitle = s.Panes[0].Title
		}
		return
	}
	s.AgentPane = agent.ID
	s.WorkingDir = agent.CurrentPath
	s.PaneTitle = agent.Title
	if tail, err := t.captureTail(agent.ID, statusLines); err == nil {
		s.Status = Detect(tail)
	}
}

func (t *Tmux) listPanes(name string) []session.Pane {
	out, err := t.Cmd.Output("tmux", "list-panes", "-t", name, "-F", paneFormat)
	if err != nil {
		log.Debug("list_panes_failed", slog.String("session", name), slog.String("error", err.Error()))
		return nil
	}
	var panes []session.Pane
	for _, line := range strings.Split(string(out), "\n") {
		parts := strings.Split(line, "\t")
		if len(parts) < 5 {
			continue
		}
		pid, _ := strconv.Atoi(parts[3])
		panes = append(panes, session.Pane{
			ID:             parts[0],
			CurrentCommand: parts[1],
			CurrentPath:    parts[2],
			PID:            pid,
			Title:          parts[4],
		})
	}
	return panes
}

// findAgentPane prefers a pane whose command (or, since tmux may report a
// version string, whose process command line) names the agent. Sessions
// named after the agent fall back to their first pane.
func (t *Tmux) findAgentPane(name string, panes []session.Pane) *session.Pane {
	agent := t.AgentName()
	for i := range panes {
		if t.isAgentPane(panes[i], agent) {
			return &panes[i]
		}
	}
	if strings.HasPrefix(name, agent) && len(panes) > 0 {
		return &panes[0]
	}
	return nil
}

func (t *Tmux) isAgentPane(p session.Pane, agent string) bool {
	if strings.Contains(p.CurrentCommand, agent) {
		return true
	}
	if p.PID <= 0 {
		return false
	}
	out, err := t.Cmd.Output("ps", "-o", "command=", "-p", strconv.Itoa(p.PID))
	if err != nil {
		return false
	}
	return strings.Contains(string(out), agent)
}

func (t *Tmux) capture(target string) ([]string, error) {
	out, err := t.Cmd.Output("tmux", "capture-pane", "-p", "-J", "-e", "-t", target)
	if err != nil {
		return nil, fmt.Errorf("capture pane %s: %w", target, err)
	}
	return strings.Split(strings.TrimRight(string(out), "\n"), "\n"), nil
}

// CapturePane returns the last lines of target, keeping inner blank lines
// but dropping trailing ones. Escape sequences are preserved.
func (t *Tmux) CapturePane(target string, lines int) (string, error) {
	all, err := t.capture(target)
	if err != nil {
		return "", err
	}
	end := len(all)
	for end > 0 && strings.TrimSpace(all[end-1]) == "" {
		end--
	}
	all = all[:end]
	if lines >= 0 && len(all) > lines {
		all = all[len(all)-lines:]
	}
	return strings.Join(all, "\n"), nil
}

func (t *Tmux) captureTail(target string, lines int) (string, error) {
	all, err := t.capture(target)
	if err != nil {
		return "", err
	}
	var nonEmpty []string
	for _, l := range all {
		if strings.TrimSpace(l) != "" {
			nonEmpty = append(nonEmpty, l)
		}
	}
	if len(nonEmpty) > lines {
		nonEmpty = nonEmpty[len(nonEmpty)-lines:]
	}
	return strings.Join(nonEmpty, "\n"), nil
}

// CurrentSession names the session this terminal is attached to, or "" when
// running outside tmux.
func (t *Tmux) CurrentSession() (string, error) {
	if !t.IsInsideTmux() {
		return "", nil
	}
	out, err := t.Cmd.Output("tmux", "display-message", "-p", "#{session_name}")
	if err != nil {
		return "", nil
	}
	return strings.TrimSpace(string(out)), nil
}

func (t *Tmux) SwitchClient(name string) error {
	if _, err := t.Cmd.Run("tmux", "switch-client", "-t", name); err != nil {
		return fmt.Errorf("switch to %s: %w", name, err)
	}
	return nil
}

// AttachCommand is the command that takes over the terminal to attach to
// name from outside tmux.
func (t *Tmux) AttachCommand(name string) *exec.Cmd {
	return t.Cmd.Command("tmux", "attach-session", "-t", name)
}

func (t *Tmux) NewSession(name, path string, mode session.StartMode) error {
	if _, err := t.Cmd.Run("tmux", "new-session", "-d", "-s", name, "-c", path); err != nil {
		return fmt.Errorf("create session %s: %w", name, err)
	}
	if mode == session.StartAgent && t.AgentCommand != "" {
		if _, err := t.Cmd.Run("tmux", "send-keys", "-t", name, t.AgentCommand, "Enter"); err != nil {
			log.Warn("send_agent_command_failed", slog.String("session", name), slog.String("error", err.Error()))
		}
	}
	return nil
}

func (t *Tmux) RenameSession(oldName, newName string) error {
	if _, err := t.Cmd.Run("tmux", "rename-session", "-t", oldName, newName); err != nil {
		return fmt.Errorf("rename %s to %s: %w", oldName, newName, err)
	}
	return nil
}

func (t *Tmux) KillSession(name string) error {
	if _, err := t.Cmd.Run("tmux", "kill-session", "-t", name); err != nil {
		return fmt.Errorf("kill %s: %w", name, err)
	}
	return nil
}
