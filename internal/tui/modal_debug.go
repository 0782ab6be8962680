package tui

import (
	"fmt"
	"strings"
)

// debugModalContent summarizes the ingest run: line counts, per-line parse
// failures, batch loader salvage results, and any fields dropped after
// schema inference locked.
func (m *ViewerModel) debugModalContent() (string, string) {
	var b strings.Builder

	fmt.Fprintf(&b, "lines read      %d\n", m.report.TotalLines)
	fmt.Fprintf(&b, "records loaded  %d\n", m.report.Loaded)
	fmt.Fprintf(&b, "parse failures  %d\n", len(m.report.ParseFailures))
	fmt.Fprintf(&b, "batch failures  %d\n", len(m.report.BatchFailures))
	b.WriteString("\n")

	if len(m.report.ParseFailures) > 0 {
		b.WriteString("Parse failures\n")
		for _, f := range m.report.ParseFailures {
			fmt.Fprintf(&b, "  line %d: %v\n", f.Line, f.Err)
		}
		b.WriteString("\n")
	}

	if len(m.report.BatchFailures) > 0 {
		b.WriteString("Batch failures\n")
		for _, f := range m.report.BatchFailures {
			fmt.Fprintf(&b, "  %d records affected, %d salvaged: %v\n",
				f.Records, f.Salvaged, f.Err)
		}
		b.WriteString("\n")
	}

	if len(m.report.DroppedFields) > 0 {
		b.WriteString("Fields first seen after schema lock (dropped)\n")
		for _, name := range m.report.DroppedFieldNames() {
			fmt.Fprintf(&b, "  %-24s %d occurrences\n", name, m.report.DroppedFields[name])
		}
	}

	return "Ingest Diagnostics", b.String()
}
