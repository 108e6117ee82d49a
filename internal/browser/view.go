package browser

import (
	"sort"
	"strings"

	"github.com/nicobailon/tsm/internal/session"
)

// Filtered returns the sessions whose name or display path contains text,
// case-insensitively, ordered by creation time. Ties keep snapshot order.
func Filtered(snapshot []session.Session, text string) []session.Session {
	needle := strings.ToLower(text)
	view := make([]session.Session, 0, len(snapshot))
	for _, s := range snapshot {
		if needle == "" ||
			strings.Contains(strings.ToLower(s.Name), needle) ||
			strings.Contains(strings.ToLower(s.DisplayPath()), needle) {
			view = append(view, s)
		}
	}
	sort.SliceStable(view, func(i, j int) bool {
		return view[i].Created.Before(view[j].Created)
	})
	return view
}

type Member struct {
	// Index is the position in the filtered view.
	Index   int
	Session *session.Session
}

type Group struct {
	Path    string
	Members []Member
}

// Grouped partitions view by display path. Groups appear in the order
// their path is first seen; members keep view order.
func Grouped(view []session.Session) []Group {
	var groups []Group
	byPath := map[string]int{}
	for i := range view {
		path := view[i].DisplayPath()
		gi, ok := byPath[path]
		if !ok {
			gi = len(groups)
			byPath[path] = gi
			groups = append(groups, Group{Path: path})
		}
		groups[gi].Members = append(groups[gi].Members, Member{Index: i, Session: &view[i]})
	}
	return groups
}

// VisualOrder lists filtered indices in the order they are drawn.
func VisualOrder(groups []Group) []int {
	var order []int
	for _, g := range groups {
		for _, m := range g.Members {
			order = append(order, m.Index)
		}
	}
	return order
}

func StatusCounts(sessions []session.Session) (working, waiting, idle int) {
	for _, s := range sessions {
		switch s.Status {
		case session.StatusWorking:
			working++
		case session.StatusWaitingInput:
			waiting++
		case session.StatusIdle:
			idle++
		}
	}
	return working, waiting, idle
}
