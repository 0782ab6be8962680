package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/logduck/logduck/internal/filter"
)

// Update handles messages.
func (m *ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampSelection()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *ViewerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.activeModal != ModalNone {
		return m.handleModalKey(msg)
	}

	if m.activeSection == SectionFilter {
		return m.handleFilterPanelKey(msg)
	}

	return m.handleLogListKey(msg)
}

func (m *ViewerModel) handleLogListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.machine.Visible()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.openModal(ModalHelp)
	case key.Matches(msg, m.keys.DebugPanel):
		m.openModal(ModalDebug)
	case key.Matches(msg, m.keys.Enter):
		if len(rows) > 0 {
			m.openModal(ModalDetails)
		}
	case key.Matches(msg, m.keys.Filter):
		m.openFilterPanel()
	case key.Matches(msg, m.keys.ClearFilter):
		m.machine.Clear()
		m.resetSelection()
	case key.Matches(msg, m.keys.Up):
		m.selectedIdx--
		m.clampSelection()
	case key.Matches(msg, m.keys.Down):
		m.selectedIdx++
		m.clampSelection()
	case key.Matches(msg, m.keys.Home):
		m.selectedIdx = 0
		m.clampSelection()
	case key.Matches(msg, m.keys.End):
		m.selectedIdx = len(rows) - 1
		m.clampSelection()
	case key.Matches(msg, m.keys.PageUp):
		m.selectedIdx -= m.visibleRowCount()
		m.clampSelection()
	case key.Matches(msg, m.keys.PageDown):
		m.selectedIdx += m.visibleRowCount()
		m.clampSelection()
	}
	return m, nil
}

// openFilterPanel shows the panel. When the machine sits in an error state
// the prior text is preserved for editing.
func (m *ViewerModel) openFilterPanel() {
	m.activeSection = SectionFilter
	m.inputFocused = false
	switch s := m.machine.State().(type) {
	case filter.AppliedState:
		m.filterInput.SetValue(s.Text)
	case filter.ErrorState:
		m.filterInput.SetValue(s.Text)
	default:
		m.filterInput.SetValue("")
	}
}

func (m *ViewerModel) closeFilterPanel() {
	m.activeSection = SectionLogs
	m.inputFocused = false
	m.filterInput.Blur()
}

func (m *ViewerModel) handleFilterPanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputFocused {
		return m.handleFilterInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
		m.machine.Escape()
		m.closeFilterPanel()
	case key.Matches(msg, m.keys.Preset1):
		m.applyPreset(0)
	case key.Matches(msg, m.keys.Preset2):
		m.applyPreset(1)
	case key.Matches(msg, m.keys.Preset3):
		m.applyPreset(2)
	case key.Matches(msg, m.keys.ClearFilter):
		m.machine.Clear()
		m.resetSelection()
		m.closeFilterPanel()
	case key.Matches(msg, m.keys.EditFilter), key.Matches(msg, m.keys.Enter):
		m.machine.StartEditing()
		if s, ok := m.machine.State().(filter.EditingState); ok {
			m.filterInput.SetValue(s.Draft)
		}
		m.inputFocused = true
		m.filterInput.Focus()
		m.filterInput.CursorEnd()
	}
	return m, nil
}

func (m *ViewerModel) applyPreset(i int) {
	m.machine.SelectPreset(i, time.Now())
	if _, ok := m.machine.State().(filter.AppliedState); ok {
		m.resetSelection()
		m.closeFilterPanel()
	}
}

func (m *ViewerModel) handleFilterInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "escape", "esc":
		// Back out of the input without applying.
		m.inputFocused = false
		m.filterInput.Blur()
		m.machine.Escape()
		return m, nil
	case "enter":
		m.machine.SetDraft(m.filterInput.Value())
		m.machine.Confirm()
		switch m.machine.State().(type) {
		case filter.AppliedState, filter.PresetsState:
			m.resetSelection()
			m.closeFilterPanel()
		case filter.ErrorState:
			// Stay on the panel so the engine diagnostic is visible;
			// the previous result set is untouched.
			m.inputFocused = false
			m.filterInput.Blur()
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.machine.SetDraft(m.filterInput.Value())
		return m, cmd
	}
}

func (m *ViewerModel) openModal(modal Modal) {
	m.activeModal = modal
	m.modalVP = newModalViewport(m.width, m.height)
}

func (m *ViewerModel) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
		m.activeModal = ModalNone
		return m, nil
	}

	var cmd tea.Cmd
	m.modalVP, cmd = m.modalVP.Update(msg)
	return m, cmd
}
