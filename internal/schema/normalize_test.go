package schema

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"msg", "message"},
		{"message", "message"},
		{"lvl", "level"},
		{"level", "level"},
		{"timestamp", "time"},
		{"time", "time"},
		{"hostname", "hostname"},
		{"pid", "pid"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
