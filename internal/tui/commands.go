package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nicobailon/tsm/internal/browser"
	"github.com/nicobailon/tsm/internal/tmux"
)

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func snapshotCmd(dir browser.Directory, gen int) tea.Cmd {
	return func() tea.Msg {
		sessions, err := dir.ListSessions()
		if err != nil {
			return snapshotMsg{gen: gen, err: err}
		}
		current, _ := dir.CurrentSession()
		return snapshotMsg{gen: gen, sessions: sessions, current: current}
	}
}

// attachCmd hands the terminal to tmux until the user detaches.
func attachCmd(t *tmux.Tmux, name string) tea.Cmd {
	return tea.ExecProcess(t.AttachCommand(name), func(err error) tea.Msg {
		return attachDoneMsg{name: name, err: err}
	})
}
