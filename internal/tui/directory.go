package tui

import "github.com/nicobailon/tsm/internal/tmux"

// directory backs the browser with tmux. Outside tmux a switch has no
// client to move, so it succeeds without acting and Run reports the target
// for the caller to attach once the terminal is released.
type directory struct {
	*tmux.Tmux
}

func (d directory) SwitchTo(name string) error {
	if !d.IsInsideTmux() {
		return nil
	}
	return d.SwitchClient(name)
}
