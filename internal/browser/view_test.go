package browser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicobailon/tsm/internal/session"
)

func sampleSnapshot() []session.Session {
	return []session.Session{
		sess("web", "/srv/web", 30),
		sess("api-main", "/srv/api", 10),
		sess("notes", "/srv/Docs", 50),
		sess("api-fix", "/srv/api", 20),
		sess("tests", "/srv/web", 40),
		sess("tie", "/srv/api", 20),
	}
}

func TestFilteredSortsByCreated(t *testing.T) {
	view := Filtered(sampleSnapshot(), "")
	var names []string
	for _, s := range view {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"api-main", "api-fix", "tie", "web", "tests", "notes"}, names)
}

func TestFilteredMatchesNameOrPath(t *testing.T) {
	snap := sampleSnapshot()
	for _, text := range []string{"", "API", "docs", "web", "t", "zzz", "/srv/"} {
		t.Run(text, func(t *testing.T) {
			view := Filtered(snap, text)
			for i, s := range view {
				lower := strings.ToLower(text)
				assert.True(t,
					strings.Contains(strings.ToLower(s.Name), lower) ||
						strings.Contains(strings.ToLower(s.DisplayPath()), lower),
					"%s does not match %q", s.Name, text)
				if i > 0 {
					assert.False(t, s.Created.Before(view[i-1].Created), "view not ordered by created")
				}
			}
		})
	}

	assert.Len(t, Filtered(snap, "docs"), 1)
	assert.Len(t, Filtered(snap, "API"), 3)
	assert.Empty(t, Filtered(snap, "zzz"))
}

func TestGroupedFirstSeenOrder(t *testing.T) {
	groups := Grouped(Filtered(sampleSnapshot(), ""))
	require.Len(t, groups, 3)
	assert.Equal(t, "/srv/api", groups[0].Path)
	assert.Equal(t, "/srv/web", groups[1].Path)
	assert.Equal(t, "/srv/Docs", groups[2].Path)

	var idx []int
	for _, m := range groups[0].Members {
		idx = append(idx, m.Index)
	}
	assert.Equal(t, []int{0, 1, 2}, idx)
	assert.Equal(t, "tie", groups[0].Members[2].Session.Name)
}

func TestGroupedCoversEveryIndexOnce(t *testing.T) {
	snap := []session.Session{
		sess("a", "/x", 1), sess("b", "/y", 2), sess("c", "/x", 3),
		sess("d", "/z", 4), sess("e", "/y", 5),
	}
	for _, text := range []string{"", "a", "/y", "q"} {
		view := Filtered(snap, text)
		order := VisualOrder(Grouped(view))
		seen := map[int]int{}
		for _, i := range order {
			seen[i]++
		}
		assert.Len(t, order, len(view))
		for i := range view {
			assert.Equal(t, 1, seen[i], "index %d for filter %q", i, text)
		}
	}
}

func TestVisualOrderInterleaved(t *testing.T) {
	snap := []session.Session{sess("a", "/x", 1), sess("b", "/y", 2), sess("c", "/x", 3)}
	assert.Equal(t, []int{0, 2, 1}, VisualOrder(Grouped(Filtered(snap, ""))))
}

func TestStatusCounts(t *testing.T) {
	snap := sampleSnapshot()
	snap[0].Status = session.StatusWorking
	snap[1].Status = session.StatusWorking
	snap[2].Status = session.StatusWaitingInput
	snap[3].Status = session.StatusIdle

	w, q, i := StatusCounts(snap)
	assert.Equal(t, 2, w)
	assert.Equal(t, 1, q)
	assert.Equal(t, 1, i)
}

func TestGroupedUnknownDirectoryHasHeader(t *testing.T) {
	groups := Grouped([]session.Session{sess("a", "", 1), sess("b", "", 2)})
	require.Len(t, groups, 1)
	assert.Equal(t, session.UnknownPath, groups[0].Path)
	assert.Len(t, groups[0].Members, 2)
}
