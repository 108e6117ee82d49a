package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nicobailon/tsm/internal/browser"
)

func handleKey(m *model, msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.ForceQuit) {
		m.state.Quit()
		return nil
	}
	switch mode := m.state.Mode().(type) {
	case *browser.Normal:
		return handleNormal(m, msg)
	case *browser.ActionMenu:
		handleActionMenu(m, msg)
	case *browser.Filter:
		return handleFilter(m, msg)
	case *browser.ConfirmAction:
		handleConfirm(m, msg)
	case *browser.NewSession:
		return handleNewSession(m, mode, msg)
	case *browser.Rename:
		return handleRename(m, msg)
	case *browser.Help:
		if key.Matches(msg, keys.Quit, keys.Help) || msg.Type == tea.KeyEsc {
			m.state.Cancel()
		}
	}
	return nil
}

func handleNormal(m *model, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		m.state.Quit()
	case key.Matches(msg, keys.Down):
		m.state.SelectNext()
	case key.Matches(msg, keys.Up):
		m.state.SelectPrev()
	case key.Matches(msg, keys.Open):
		m.state.OpenActions()
	case key.Matches(msg, keys.Select):
		m.state.SwitchTo(false)
	case key.Matches(msg, keys.Peek):
		return m.peek()
	case key.Matches(msg, keys.New):
		m.state.StartNewSession()
	case key.Matches(msg, keys.Rename):
		m.state.StartRename()
	case key.Matches(msg, keys.Kill):
		m.state.StartKill()
	case key.Matches(msg, keys.Filter):
		m.state.StartFilter()
	case key.Matches(msg, keys.Preview):
		m.state.TogglePreview()
	case key.Matches(msg, keys.Refresh):
		m.state.Refresh()
	case key.Matches(msg, keys.Help):
		m.state.ShowHelp()
	case msg.Type == tea.KeyEsc:
		if m.state.Filter() != "" {
			m.state.ClearFilter()
		}
	}
	return nil
}

func handleActionMenu(m *model, msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.state.Quit()
	case key.Matches(msg, keys.Down):
		m.state.NextAction()
	case key.Matches(msg, keys.Up):
		m.state.PrevAction()
	case key.Matches(msg, keys.Select, keys.Open):
		m.state.ActivateAction()
	case key.Matches(msg, keys.Back):
		m.state.Cancel()
	}
}

func handleFilter(m *model, msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.state.ApplyFilter()
	case tea.KeyEsc:
		m.state.Cancel()
	default:
		return m.updateInput(msg, m.state.SetFilterInput)
	}
	return nil
}

func handleConfirm(m *model, msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.Yes):
		m.state.Confirm()
	case key.Matches(msg, keys.No):
		m.state.Cancel()
	}
}

func handleNewSession(m *model, mode *browser.NewSession, msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEnter:
		m.state.ConfirmNewSession()
		return nil
	case msg.Type == tea.KeyEsc:
		m.state.Cancel()
		return nil
	case key.Matches(msg, keys.NextField):
		m.state.NextField()
		return nil
	case key.Matches(msg, keys.PrevField):
		m.state.PrevField()
		return nil
	}

	switch mode.Field {
	case browser.FieldStartWith:
		if key.Matches(msg, keys.Toggle) {
			m.state.ToggleStart()
		}
	case browser.FieldName:
		return m.updateInput(msg, m.state.SetNewSessionName)
	case browser.FieldPath:
		switch {
		case msg.Type == tea.KeyDown:
			m.state.NextSuggestion()
		case msg.Type == tea.KeyUp:
			m.state.PrevSuggestion()
		case key.Matches(msg, keys.Accept) && m.input.Position() >= len([]rune(m.input.Value())):
			m.state.AcceptSuggestion()
			m.input.SetValue(mode.Path)
			m.input.CursorEnd()
		default:
			return m.updateInput(msg, m.state.SetNewSessionPath)
		}
	}
	return nil
}

func handleRename(m *model, msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.state.ConfirmRename()
	case tea.KeyEsc:
		m.state.Cancel()
	default:
		return m.updateInput(msg, m.state.SetRenameInput)
	}
	return nil
}
