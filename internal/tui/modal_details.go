package tui

import (
	"fmt"
	"strings"
	"time"
)

// detailsModalContent lists every column of the selected record in schema
// order, nulls included, plus the source line it came from.
func (m *ViewerModel) detailsModalContent() (string, string) {
	rows := m.machine.Visible()
	if m.selectedIdx < 0 || m.selectedIdx >= len(rows) {
		return "Record", "no record selected"
	}
	r := rows[m.selectedIdx]

	var b strings.Builder
	if ms, ok := r.TimestampMillis(); ok {
		b.WriteString(fmt.Sprintf("%-24s %s\n", "timestamp",
			time.UnixMilli(ms).UTC().Format(time.RFC3339Nano)))
	}
	for _, f := range m.schema.Fields() {
		v, ok := r.Fields[f.Name]
		val := "NULL"
		if ok {
			val = v.Display()
		}
		b.WriteString(fmt.Sprintf("%-24s %s\n", f.Name, val))
	}
	return "Record", b.String()
}
