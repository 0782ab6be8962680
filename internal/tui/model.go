package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/logduck/logduck/internal/filter"
	"github.com/logduck/logduck/internal/ingest"
	"github.com/logduck/logduck/internal/schema"
)

// Section marks which part of the screen has focus.
type Section int

const (
	SectionLogs   Section = iota // log list scroll
	SectionFilter                // filter panel
)

// Modal identifies the full-screen overlay currently shown.
type Modal int

const (
	ModalNone Modal = iota
	ModalHelp
	ModalDetails
	ModalDebug
)

// ViewerModel is the bubbletea model for the log viewer.
type ViewerModel struct {
	width  int
	height int

	machine *filter.Machine
	schema  *schema.Schema
	report  *ingest.Report

	// Log list state
	selectedIdx  int
	scrollOffset int

	// Filter panel state
	activeSection Section
	filterInput   textinput.Model
	inputFocused  bool

	// Modal state
	activeModal Modal
	modalVP     viewport.Model

	keys KeyMap
}

// NewViewerModel creates the viewer over an already-loaded filter machine.
func NewViewerModel(machine *filter.Machine, sc *schema.Schema, report *ingest.Report) *ViewerModel {
	input := textinput.New()
	input.Placeholder = "SQL WHERE clause (e.g. level >= 40)"
	input.CharLimit = 512

	return &ViewerModel{
		machine:     machine,
		schema:      sc,
		report:      report,
		filterInput: input,
		keys:        DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m *ViewerModel) Init() tea.Cmd {
	return nil
}

// visibleRowCount returns the number of log lines that fit on screen.
func (m *ViewerModel) visibleRowCount() int {
	// header + column header + status line + borders
	h := m.height - 5
	if m.activeSection == SectionFilter {
		h -= m.filterPanelHeight()
	}
	if h < 1 {
		h = 1
	}
	return h
}

// clampSelection keeps the selection and scroll window inside the result set.
func (m *ViewerModel) clampSelection() {
	rows := m.machine.Visible()
	if len(rows) == 0 {
		m.selectedIdx = 0
		m.scrollOffset = 0
		return
	}
	if m.selectedIdx >= len(rows) {
		m.selectedIdx = len(rows) - 1
	}
	if m.selectedIdx < 0 {
		m.selectedIdx = 0
	}

	visible := m.visibleRowCount()
	if m.selectedIdx < m.scrollOffset {
		m.scrollOffset = m.selectedIdx
	}
	if m.selectedIdx >= m.scrollOffset+visible {
		m.scrollOffset = m.selectedIdx - visible + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// resetSelection jumps to the top after the result set changes.
func (m *ViewerModel) resetSelection() {
	m.selectedIdx = 0
	m.scrollOffset = 0
}
