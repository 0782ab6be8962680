package filter

import (
	"strings"

	"github.com/logduck/logduck/internal/model"
)

// State is the closed set of filter states. Exactly one is current at any
// time; the concrete types make combinations like "editing while applied"
// unrepresentable.
type State interface {
	isState()
}

// PresetsState shows the preset list; no filter is active.
type PresetsState struct{}

// EditingState is a free-form WHERE clause being typed.
type EditingState struct {
	Draft string
}

// AppliedState is a predicate that executed successfully; the visible rows
// are its result set.
type AppliedState struct {
	Text string
}

// ErrorState is a predicate the engine rejected. Text is kept so editing can
// resume; Message is the engine's verbatim diagnostic.
type ErrorState struct {
	Text    string
	Message string
}

func (PresetsState) isState() {}
func (EditingState) isState() {}
func (AppliedState) isState() {}
func (ErrorState) isState()   {}

// Machine owns the filter state and the visible result set. The invariant it
// maintains: Visible() always equals the result of the most recently applied
// predicate, or the unfiltered set when none is applied. A failed apply
// never disturbs the visible rows.
type Machine struct {
	runner     model.RecordQuerier
	state      State
	visible    []model.LogRecord
	unfiltered []model.LogRecord
}

// NewMachine loads the unfiltered result set and starts in PresetsState.
func NewMachine(runner model.RecordQuerier) (*Machine, error) {
	rows, err := runner.QueryRecords("")
	if err != nil {
		return nil, err
	}
	return &Machine{
		runner:     runner,
		state:      PresetsState{},
		visible:    rows,
		unfiltered: rows,
	}, nil
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Visible returns the rows consistent with the current applied predicate.
func (m *Machine) Visible() []model.LogRecord {
	return m.visible
}

// StartEditing enters EditingState. From PresetsState the draft starts
// empty; from AppliedState or ErrorState the prior text is preserved.
func (m *Machine) StartEditing() {
	switch s := m.state.(type) {
	case AppliedState:
		m.state = EditingState{Draft: s.Text}
	case ErrorState:
		m.state = EditingState{Draft: s.Text}
	default:
		m.state = EditingState{}
	}
}

// SetDraft updates the text while editing. Ignored in other states.
func (m *Machine) SetDraft(text string) {
	if _, ok := m.state.(EditingState); ok {
		m.state = EditingState{Draft: text}
	}
}

// Confirm applies the current draft. An empty draft clears the filter.
func (m *Machine) Confirm() {
	s, ok := m.state.(EditingState)
	if !ok {
		return
	}
	text := strings.TrimSpace(s.Draft)
	if text == "" {
		m.Clear()
		return
	}
	m.Apply(text)
}

// Apply runs the predicate and transitions to AppliedState on success or
// ErrorState on engine rejection. Re-applying the text already applied is a
// no-op and issues no query.
func (m *Machine) Apply(text string) {
	if cur, ok := m.state.(AppliedState); ok && cur.Text == text {
		return
	}

	rows, err := m.runner.QueryRecords(text)
	if err != nil {
		// Visible rows stay on the last successful predicate.
		m.state = ErrorState{Text: text, Message: err.Error()}
		return
	}
	m.state = AppliedState{Text: text}
	m.visible = rows
}

// Clear drops any applied filter and returns to the preset list with the
// unfiltered result set.
func (m *Machine) Clear() {
	m.state = PresetsState{}
	m.visible = m.unfiltered
}

// Escape abandons ErrorState or EditingState for the preset list without
// touching the visible rows; the last successfully applied result set stays
// on screen. A no-op in PresetsState and AppliedState, which Clear handles
// explicitly.
func (m *Machine) Escape() {
	switch m.state.(type) {
	case ErrorState, EditingState:
		m.state = PresetsState{}
	}
}
