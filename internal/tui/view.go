package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/logduck/logduck/internal/filter"
	"github.com/logduck/logduck/internal/model"
)

// View renders the viewer.
func (m *ViewerModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing viewer..."
	}
	if m.height < 12 || m.width < 60 {
		return "Terminal too small. Resize to at least 60x12."
	}

	if m.activeModal != ModalNone {
		return m.renderModal()
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderLogList())
	if m.activeSection == SectionFilter {
		sections = append(sections, m.renderFilterPanel())
	}
	sections = append(sections, m.renderStatusLine())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *ViewerModel) renderHeader() string {
	title := titleStyle.Render("logduck")
	rows := m.machine.Visible()

	var filterInfo string
	switch s := m.machine.State().(type) {
	case filter.AppliedState:
		filterInfo = fmt.Sprintf("filter: %s", s.Text)
	case filter.ErrorState:
		filterInfo = errorTextStyle.Render("filter error")
	default:
		filterInfo = dimTextStyle.Render("no filter")
	}

	counts := fmt.Sprintf("%d rows", len(rows))
	if len(m.report.ParseFailures) > 0 {
		counts += errorTextStyle.Render(fmt.Sprintf("  %d parse errors", len(m.report.ParseFailures)))
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top,
		title, "  ", counts, "  ", filterInfo)
	return lipgloss.NewStyle().Width(m.width).Render(line)
}

// listedColumns picks the display columns: the canonical trio first when
// present, then everything else in schema order.
func (m *ViewerModel) listedColumns() (canonical []string, rest []string) {
	known := map[string]bool{"time": false, "level": false, "message": false}
	for _, f := range m.schema.Fields() {
		if _, ok := known[f.Name]; ok {
			known[f.Name] = true
			continue
		}
		rest = append(rest, f.Name)
	}
	for _, name := range []string{"time", "level", "message"} {
		if known[name] {
			canonical = append(canonical, name)
		}
	}
	return canonical, rest
}

func (m *ViewerModel) renderLogList() string {
	rows := m.machine.Visible()
	height := m.visibleRowCount()

	var lines []string
	lines = append(lines, dimTextStyle.Render(m.renderColumnHeader()))

	if len(rows) == 0 {
		lines = append(lines, dimTextStyle.Render("  (no matching records)"))
	}

	end := m.scrollOffset + height
	if end > len(rows) {
		end = len(rows)
	}
	for i := m.scrollOffset; i < end; i++ {
		line := m.renderLogRow(&rows[i])
		if i == m.selectedIdx {
			line = selectedRowStyle.Render(ansiTruncate(line, m.width))
		}
		lines = append(lines, line)
	}

	for len(lines) < height+1 {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *ViewerModel) renderColumnHeader() string {
	return fmt.Sprintf("  %-12s %-6s %s", "TIME", "LEVEL", "MESSAGE")
}

func (m *ViewerModel) renderLogRow(r *model.LogRecord) string {
	ts := "-"
	if ms, ok := r.TimestampMillis(); ok {
		ts = time.UnixMilli(ms).Format("15:04:05.000")
	}

	levelText := "-"
	styled := dimTextStyle
	if level, ok := r.Level(); ok {
		levelText = level.String()
		styled = levelStyle(level)
	}

	msg := r.Message()
	_, rest := m.listedColumns()
	var extras []string
	for _, name := range rest {
		v, ok := r.Fields[name]
		if !ok || v.Kind == model.KindNull {
			continue
		}
		extras = append(extras, fmt.Sprintf("%s=%s", name, v.Display()))
	}

	line := fmt.Sprintf("  %-12s %s %s", ts, styled.Render(fmt.Sprintf("%-6s", levelText)), msg)
	if len(extras) > 0 {
		line += " " + dimTextStyle.Render(strings.Join(extras, " "))
	}
	return ansiTruncate(line, m.width)
}

func (m *ViewerModel) filterPanelHeight() int {
	// schema table + presets + input + error + borders
	h := m.schema.Len() + 8
	if h > m.height/2 {
		h = m.height / 2
	}
	return h
}

func (m *ViewerModel) renderFilterPanel() string {
	innerWidth := m.width - 4

	var b strings.Builder

	b.WriteString(titleStyle.Render("Filter"))
	b.WriteString("\n")

	// Schema listing so the user knows what is queryable.
	b.WriteString(dimTextStyle.Render(fmt.Sprintf("  %-24s %-8s %s", "FIELD", "TYPE", "EXAMPLE")))
	b.WriteString("\n")
	maxFields := m.filterPanelHeight() - 7
	for i, f := range m.schema.Fields() {
		if i >= maxFields {
			b.WriteString(dimTextStyle.Render(fmt.Sprintf("  … %d more fields", m.schema.Len()-i)))
			b.WriteString("\n")
			break
		}
		b.WriteString(fmt.Sprintf("  %-24s %-8s %s\n", f.Name, f.Type.String(), typeExample(f.Type.String())))
	}

	// Presets
	var presets []string
	for i, p := range filter.BuiltinPresets() {
		presets = append(presets,
			presetKeyStyle.Render(fmt.Sprintf("[%d]", i+1))+" "+p.Name)
	}
	b.WriteString(strings.Join(presets, "  "))
	b.WriteString("\n")

	// Input
	if m.inputFocused {
		b.WriteString(m.filterInput.View())
	} else {
		current := m.filterInput.Value()
		if current == "" {
			current = dimTextStyle.Render("press i or enter to type a WHERE clause")
		}
		b.WriteString(current)
	}
	b.WriteString("\n")

	// Engine diagnostic, verbatim.
	if s, ok := m.machine.State().(filter.ErrorState); ok {
		b.WriteString(errorTextStyle.Render(ansiTruncate("error: "+s.Message, innerWidth)))
		b.WriteString("\n")
	}

	b.WriteString(dimTextStyle.Render("enter: apply  esc: cancel  c: clear  1-3: presets"))

	return panelBorderStyle.Width(innerWidth).Render(b.String())
}

func typeExample(typeName string) string {
	switch typeName {
	case "INTEGER":
		return "12345"
	case "FLOAT":
		return "123.45"
	case "BOOLEAN":
		return "true"
	case "JSON":
		return `{"k":"v"}`
	}
	return `'text'`
}

func (m *ViewerModel) renderStatusLine() string {
	var help string
	switch {
	case m.activeSection == SectionFilter && m.inputFocused:
		help = "Type WHERE clause • Enter: Apply • ESC: Cancel"
	case m.activeSection == SectionFilter:
		help = "1-3: Presets • i: Edit • c: Clear • ESC: Close"
	default:
		help = "?: Help • f: Filter • d: Parse Errors • ↑↓: Navigate • Enter: Details • q: Quit"
	}

	left := fmt.Sprintf(" [%s] ", sectionName(m.activeSection))
	line := left + help
	return statusLineStyle.Width(m.width).Render(ansiTruncate(line, m.width))
}

func sectionName(s Section) string {
	if s == SectionFilter {
		return "Filter"
	}
	return "Logs"
}

// ansiTruncate cuts a rendered line down to width visible cells.
func ansiTruncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
