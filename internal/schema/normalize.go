package schema

// Normalize maps observed field names onto canonical names so records using
// different spellings collapse into one column. Unknown names pass through
// unchanged.
func Normalize(name string) string {
	switch name {
	case "msg":
		return "message"
	case "lvl":
		return "level"
	case "timestamp":
		return "time"
	}
	return name
}
