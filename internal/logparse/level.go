package logparse

import "strings"

// Level is an ordered log severity following the pino numeric convention.
type Level int64

const (
	LevelTrace Level = 10
	LevelDebug Level = 20
	LevelInfo  Level = 30
	LevelWarn  Level = 40
	LevelError Level = 50
	LevelFatal Level = 60
)

// String returns the canonical all-caps short form.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	}
	return "INFO"
}

// Numeric returns the level's numeric value.
func (l Level) Numeric() int64 {
	return int64(l)
}

// LevelFromNumeric maps a numeric level onto the defined levels. In-between
// values round down to the nearest defined level; values below 10 clamp to
// TRACE and values of 60 or more clamp to FATAL.
func LevelFromNumeric(n int64) Level {
	switch {
	case n < 20:
		return LevelTrace
	case n < 30:
		return LevelDebug
	case n < 40:
		return LevelInfo
	case n < 50:
		return LevelWarn
	case n < 60:
		return LevelError
	}
	return LevelFatal
}

// LevelFromName converts common severity spellings to a Level. Unknown names
// report false.
func LevelFromName(name string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE", "TRC":
		return LevelTrace, true
	case "DEBUG", "DBG":
		return LevelDebug, true
	case "INFO", "INF", "INFORMATION":
		return LevelInfo, true
	case "WARN", "WARNING", "WRN":
		return LevelWarn, true
	case "ERROR", "ERR":
		return LevelError, true
	case "FATAL", "CRITICAL", "CRIT", "PANIC":
		return LevelFatal, true
	}
	return 0, false
}
