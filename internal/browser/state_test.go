package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicobailon/tsm/internal/session"
)

func newTestState(t *testing.T, sessions ...session.Session) (*State, *fakeDirectory) {
	t.Helper()
	dir := &fakeDirectory{sessions: sessions, captures: map[string]string{}}
	for _, s := range sessions {
		dir.captures["%"+s.Name] = "preview of " + s.Name
	}
	s := New(dir, fakeCompleter{}, Options{
		AgentName:    "claude",
		PreviewLines: 15,
		ShowPreview:  true,
		Getwd:        func() (string, error) { return "/home/test/code", nil },
	})
	require.NoError(t, s.Load())
	return s, dir
}

func selectedName(s *State) string {
	if sel := s.Selected(); sel != nil {
		return sel.Name
	}
	return ""
}

func TestLoadSelectsFirstAndPreviews(t *testing.T) {
	s, _ := newTestState(t, sess("b", "/b", 2), sess("a", "/a", 1))
	assert.Equal(t, "a", selectedName(s))
	assert.Equal(t, "preview of a", s.Preview())
	assert.IsType(t, &Normal{}, s.Mode())
}

func TestLoadFailure(t *testing.T) {
	dir := &fakeDirectory{listErr: errors.New("boom")}
	s := New(dir, nil, Options{})
	assert.Error(t, s.Load())
}

func TestSelectionFollowsVisualOrder(t *testing.T) {
	// view: a(/x) b(/y) c(/x); drawn: a c b
	s, _ := newTestState(t, sess("a", "/x", 1), sess("b", "/y", 2), sess("c", "/x", 3))

	s.SelectNext()
	assert.Equal(t, "c", selectedName(s))
	s.SelectNext()
	assert.Equal(t, "b", selectedName(s))
	s.SelectNext()
	assert.Equal(t, "b", selectedName(s), "stays at bottom boundary")
	assert.Equal(t, "preview of b", s.Preview())

	s.SelectPrev()
	s.SelectPrev()
	assert.Equal(t, "a", selectedName(s))
	s.SelectPrev()
	assert.Equal(t, "a", selectedName(s), "stays at top boundary")
}

func TestNextPrevRoundTrip(t *testing.T) {
	s, _ := newTestState(t,
		sess("a", "/x", 1), sess("b", "/y", 2), sess("c", "/x", 3), sess("d", "/z", 4))
	order := VisualOrder(s.Groups())
	for pos := 1; pos < len(order)-1; pos++ {
		s.selected = order[pos]
		s.SelectNext()
		s.SelectPrev()
		assert.Equal(t, order[pos], s.SelectedIndex())
		s.SelectPrev()
		s.SelectNext()
		assert.Equal(t, order[pos], s.SelectedIndex())
	}
}

func TestRefreshPreservesSelectionByName(t *testing.T) {
	s, dir := newTestState(t, sess("x", "/a", 1), sess("y", "/a", 2), sess("work", "/a", 3))
	s.SelectNext()
	s.SelectNext()
	require.Equal(t, "work", selectedName(s))
	require.Equal(t, 2, s.SelectedIndex())

	dir.sessions = []session.Session{sess("work", "/a", 0), sess("x", "/a", 1), sess("y", "/a", 2)}
	s.Refresh()
	assert.Equal(t, 0, s.SelectedIndex())
	assert.Equal(t, "work", selectedName(s))
	assert.Equal(t, Notice{Kind: NoticeSuccess, Text: "Refreshed"}, s.Notice())
}

func TestRefreshClampsWhenSelectionGone(t *testing.T) {
	s, dir := newTestState(t, sess("a", "/a", 1), sess("b", "/a", 2), sess("c", "/a", 3))
	s.SelectNext()
	s.SelectNext()

	dir.sessions = []session.Session{sess("a", "/a", 1)}
	s.ApplySnapshot(dir.sessions)
	assert.Equal(t, 0, s.SelectedIndex())

	s.ApplySnapshot(nil)
	assert.Equal(t, 0, s.SelectedIndex())
	assert.Nil(t, s.Selected())
	assert.Equal(t, 0, s.TotalRows())
	assert.Equal(t, 0, s.SelectedRow())
	assert.Equal(t, "", s.Preview())
}

func TestRefreshFailureKeepsSessions(t *testing.T) {
	s, dir := newTestState(t, sess("a", "/a", 1))
	dir.listErr = errors.New("server gone")
	s.Refresh()
	assert.Equal(t, NoticeError, s.Notice().Kind)
	assert.Contains(t, s.Notice().Text, "server gone")
	assert.Len(t, s.Sessions(), 1)
}

func TestActionMenuRows(t *testing.T) {
	s, _ := newTestState(t,
		sess("a1", "/a", 1), sess("a2", "/a", 2), sess("a3", "/a", 3),
		sess("b1", "/b", 4), sess("b2", "/b", 5))
	for i := 0; i < 4; i++ {
		s.SelectNext()
	}
	require.Equal(t, "b2", selectedName(s))
	assert.Equal(t, 6, s.SelectedRow())
	assert.Equal(t, 7, s.TotalRows())

	s.OpenActions()
	require.IsType(t, &ActionMenu{}, s.Mode())
	s.NextAction()
	assert.Equal(t, 10, s.SelectedRow())
	assert.Equal(t, 13, s.TotalRows())

	s.Cancel()
	assert.Equal(t, 6, s.SelectedRow())
}

func TestActionCycleWraps(t *testing.T) {
	s, _ := newTestState(t, sess("a", "/a", 1))
	s.OpenActions()
	assert.Equal(t, []Action{ActionSwitch, ActionRename, ActionKill}, s.Actions())

	s.PrevAction()
	assert.Equal(t, 2, s.SelectedAction())
	s.NextAction()
	assert.Equal(t, 0, s.SelectedAction())
}

func TestOpenActionsWithoutSelection(t *testing.T) {
	s, _ := newTestState(t)
	s.OpenActions()
	assert.IsType(t, &Normal{}, s.Mode())
	s.StartKill()
	assert.IsType(t, &Normal{}, s.Mode())
	s.StartRename()
	assert.IsType(t, &Normal{}, s.Mode())
}

func TestKillRequiresConfirmation(t *testing.T) {
	s, dir := newTestState(t, sess("a", "/a", 1), sess("b", "/a", 2))
	s.OpenActions()
	s.NextAction()
	s.NextAction()
	s.ActivateAction()

	require.IsType(t, &ConfirmAction{}, s.Mode())
	require.NotNil(t, s.Pending())
	assert.Equal(t, PendingAction{Action: ActionKill, Name: "a"}, *s.Pending())
	assert.Empty(t, dir.killed)

	s.Confirm()
	assert.IsType(t, &Normal{}, s.Mode())
	assert.Nil(t, s.Pending())
	assert.Equal(t, []string{"a"}, dir.killed)
	assert.Equal(t, "Killed session 'a'", s.Notice().Text)
	assert.Equal(t, "b", selectedName(s))
}

func TestCancelDropsPending(t *testing.T) {
	s, dir := newTestState(t, sess("a", "/a", 1))
	s.StartKill()
	require.NotNil(t, s.Pending())

	s.Cancel()
	assert.Nil(t, s.Pending())
	assert.IsType(t, &Normal{}, s.Mode())

	s.Confirm()
	assert.Empty(t, dir.killed)
}

func TestKillFailure(t *testing.T) {
	s, dir := newTestState(t, sess("a", "/a", 1))
	dir.opErr = errors.New("can't find session")
	s.StartKill()
	s.Confirm()
	assert.IsType(t, &Normal{}, s.Mode())
	assert.Equal(t, NoticeError, s.Notice().Kind)
	assert.Contains(t, s.Notice().Text, "Failed to kill")
}

func TestConfirmKillsSessionItWasOpenedOn(t *testing.T) {
	s, dir := newTestState(t, sess("a", "/a", 1), sess("b", "/a", 2), sess("c", "/a", 3))
	s.SelectNext()
	s.SelectNext()
	require.Equal(t, "c", selectedName(s))
	s.StartKill()

	// a background refresh drops c; the clamp lands on b
	s.ApplySnapshot([]session.Session{sess("a", "/a", 1), sess("b", "/a", 2)})
	require.Equal(t, "b", selectedName(s))
	require.IsType(t, &ConfirmAction{}, s.Mode())

	s.Confirm()
	assert.Empty(t, dir.killed)
	assert.IsType(t, &Normal{}, s.Mode())
	assert.Equal(t, Notice{Kind: NoticeError, Text: "Session 'c' no longer exists"}, s.Notice())
}

func TestConfirmKillsPendingNameAfterReorder(t *testing.T) {
	s, dir := newTestState(t, sess("a", "/a", 1), sess("b", "/a", 2))
	s.SelectNext()
	s.StartKill()

	// a new session sorts first and shifts the selected index
	s.ApplySnapshot([]session.Session{sess("0", "/a", 0), sess("a", "/a", 1), sess("b", "/a", 2)})
	s.Confirm()
	assert.Equal(t, []string{"b"}, dir.killed)
}

func TestMutationKeepsRefreshFailure(t *testing.T) {
	s, dir := newTestState(t, sess("a", "/a", 1), sess("b", "/a", 2))
	dir.listErr = errors.New("server exited")

	s.StartKill()
	s.Confirm()
	assert.Equal(t, []string{"a"}, dir.killed)
	assert.Equal(t, NoticeError, s.Notice().Kind)
	assert.Equal(t, "Killed session 'a', but failed to refresh: server exited", s.Notice().Text)

	s.StartRename()
	s.SetRenameInput("z")
	s.ConfirmRename()
	assert.Equal(t, NoticeError, s.Notice().Kind)
	assert.Contains(t, s.Notice().Text, "Renamed 'a' to 'z'")
	assert.Contains(t, s.Notice().Text, "failed to refresh")
}

func TestReloadAdvancesGeneration(t *testing.T) {
	s, _ := newTestState(t, sess("a", "/a", 1))
	gen := s.Generation()

	s.ApplySnapshot([]session.Session{sess("a", "/a", 1)})
	assert.Equal(t, gen, s.Generation(), "applying a snapshot is not a re-listing")

	s.Refresh()
	assert.Equal(t, gen+1, s.Generation())
}

func TestActivateSwitchQuits(t *testing.T) {
	s, dir := newTestState(t, sess("a", "/a", 1))
	s.OpenActions()
	s.ActivateAction()

	assert.IsType(t, &Normal{}, s.Mode())
	assert.Equal(t, []string{"a"}, dir.switched)
	assert.True(t, s.ShouldQuit())
	assert.Equal(t, "a", s.Switched())
}

func TestSwitchStayReports(t *testing.T) {
	s, dir := newTestState(t, sess("a", "/a", 1))
	s.SwitchTo(true)
	assert.False(t, s.ShouldQuit())
	assert.Equal(t, []string{"a"}, dir.switched)
	assert.Equal(t, Notice{Kind: NoticeSuccess, Text: "Switched to 'a'"}, s.Notice())

	dir.opErr = errors.New("no client")
	s.SwitchTo(false)
	assert.False(t, s.ShouldQuit())
	assert.Equal(t, NoticeError, s.Notice().Kind)
}

func TestActivateRenameOpensDialog(t *testing.T) {
	s, _ := newTestState(t, sess("a", "/a", 1))
	s.OpenActions()
	s.NextAction()
	s.ActivateAction()

	m, ok := s.Mode().(*Rename)
	require.True(t, ok)
	assert.Equal(t, "a", m.Old)
	assert.Equal(t, "a", m.New)
}

func TestRenameFlow(t *testing.T) {
	s, dir := newTestState(t, sess("a", "/a", 1), sess("b", "/a", 2))
	s.SetCurrent("a")

	s.StartRename()
	s.ConfirmRename()
	assert.Empty(t, dir.renamed, "unchanged name is a no-op")
	assert.IsType(t, &Normal{}, s.Mode())

	s.StartRename()
	s.SetRenameInput("")
	s.ConfirmRename()
	assert.Empty(t, dir.renamed)
	assert.Equal(t, NoticeError, s.Notice().Kind)

	s.StartRename()
	assert.Equal(t, Notice{}, s.Notice(), "starting an action clears the notice")
	s.SetRenameInput("alpha")
	s.ConfirmRename()
	assert.Equal(t, [][2]string{{"a", "alpha"}}, dir.renamed)
	assert.Equal(t, "Renamed 'a' to 'alpha'", s.Notice().Text)
	assert.Equal(t, "alpha", s.Current())
	assert.Equal(t, "alpha", selectedName(s))
}

func TestRenameFailureReturnsToNormal(t *testing.T) {
	s, dir := newTestState(t, sess("a", "/a", 1))
	dir.opErr = errors.New("duplicate session")
	s.StartRename()
	s.SetRenameInput("b")
	s.ConfirmRename()
	assert.IsType(t, &Normal{}, s.Mode())
	assert.Contains(t, s.Notice().Text, "duplicate session")
}

func TestFilterApplyAndCancel(t *testing.T) {
	s, _ := newTestState(t, sess("api", "/a", 1), sess("web", "/w", 2), sess("apex", "/a", 3))
	s.SelectNext()

	s.StartFilter()
	s.SetFilterInput("ap")
	s.Cancel()
	assert.Equal(t, "", s.Filter())
	assert.Len(t, s.View(), 3)

	s.StartFilter()
	s.SetFilterInput("ap")
	s.ApplyFilter()
	assert.Equal(t, "ap", s.Filter())
	assert.Equal(t, 0, s.SelectedIndex())
	assert.Len(t, s.View(), 2)

	s.StartFilter()
	m, ok := s.Mode().(*Filter)
	require.True(t, ok)
	assert.Equal(t, "ap", m.Input, "seeded with the committed filter")
	s.Cancel()

	s.ClearFilter()
	assert.Equal(t, "", s.Filter())
	assert.Len(t, s.View(), 3)
}

func TestHelpAndCancel(t *testing.T) {
	s, _ := newTestState(t, sess("a", "/a", 1))
	s.ShowHelp()
	assert.IsType(t, &Help{}, s.Mode())
	s.Cancel()
	assert.IsType(t, &Normal{}, s.Mode())
}

func TestTogglePreview(t *testing.T) {
	s, _ := newTestState(t)
	assert.True(t, s.ShowPreview())
	s.TogglePreview()
	assert.False(t, s.ShowPreview())
}
