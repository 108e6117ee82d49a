package tui

import (
	"github.com/nicobailon/tsm/internal/config"
	"github.com/nicobailon/tsm/internal/session"
)

type refreshTickMsg struct{}

// snapshotMsg carries a background listing back to Update. gen is the
// state generation the listing started at.
type snapshotMsg struct {
	gen      int
	sessions []session.Session
	current  string
	err      error
}

type configReloadedMsg struct {
	cfg *config.Config
}

// attachDoneMsg reports the end of a peek attach run outside tmux.
type attachDoneMsg struct {
	name string
	err  error
}
