package filter

import (
	"fmt"
	"time"
)

// Preset is a built-in named filter expression. Build receives the selection
// instant so time-relative presets are snapshots, not live expressions.
type Preset struct {
	Name  string
	Build func(now time.Time) string
}

// BuiltinPresets returns the preset list in display order.
func BuiltinPresets() []Preset {
	return []Preset{
		{
			Name:  "Errors Only",
			Build: func(time.Time) string { return "level >= 50" },
		},
		{
			Name:  "Warnings+",
			Build: func(time.Time) string { return "level >= 40" },
		},
		{
			Name: "Last Hour",
			Build: func(now time.Time) string {
				return fmt.Sprintf("time >= %d", now.Add(-time.Hour).UnixMilli())
			},
		},
	}
}

// SelectPreset applies preset i, snapshotting time-relative expressions at
// now. Out-of-range indexes are ignored.
func (m *Machine) SelectPreset(i int, now time.Time) {
	presets := BuiltinPresets()
	if i < 0 || i >= len(presets) {
		return
	}
	m.Apply(presets[i].Build(now))
}
