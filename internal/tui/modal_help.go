package tui

import "strings"

func (m *ViewerModel) helpModalContent() (string, string) {
	sections := []string{
		"Navigation",
		"  ↑/k, ↓/j     move selection",
		"  g / G        first / last row",
		"  pgup/pgdn    page up / down",
		"  enter        record details",
		"",
		"Filtering",
		"  f or /       open the filter panel",
		"  1 2 3        apply a preset",
		"  i            type a WHERE clause",
		"  c            clear the active filter",
		"  esc          close panel, keep current rows",
		"",
		"Other",
		"  d            ingest diagnostics",
		"  ?            this help",
		"  q, ctrl+c    quit",
		"",
		"Filter clauses are SQL WHERE expressions over the inferred",
		"columns, e.g.  level >= 40 AND message LIKE '%timeout%'",
	}
	return "Help", strings.Join(sections, "\n")
}
