package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/nicobailon/tsm/internal/browser"
	"github.com/nicobailon/tsm/internal/session"
)

// printSessions writes the same grouped view the browser draws, one header
// per directory and one line per session.
func printSessions(w io.Writer, sessions []session.Session, filter string) error {
	groups := browser.Grouped(browser.Filtered(sessions, filter))
	if len(groups) == 0 {
		if filter != "" {
			_, err := fmt.Fprintln(w, "No sessions match the filter.")
			return err
		}
		_, err := fmt.Fprintln(w, "No tmux sessions found.")
		return err
	}

	nameWidth := 0
	for _, g := range groups {
		for _, m := range g.Members {
			nameWidth = max(nameWidth, runewidth.StringWidth(m.Session.Name))
		}
	}

	for i, g := range groups {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s (%d)\n", g.Path, len(g.Members)); err != nil {
			return err
		}
		for _, m := range g.Members {
			s := m.Session
			line := fmt.Sprintf("  %s %s  %s", s.Status.Symbol(), runewidth.FillRight(s.Name, nameWidth), runewidth.FillRight(s.Status.Label(), 8))
			if s.Attached {
				line += "  (attached)"
			}
			line += trimTitle(s.PaneTitle)
			if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
				return err
			}
		}
	}
	return nil
}

func trimTitle(title string) string {
	if title == "" {
		return ""
	}
	return "  " + runewidth.Truncate(title, 60, "…")
}
