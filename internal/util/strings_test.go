package util

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateUTF8(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"héllo", 2, "h"}, // é is 2 bytes; never split it
		{"日本語", 4, "日"},   // each rune is 3 bytes
		{"", 5, ""},
	}

	for _, tt := range tests {
		got := TruncateUTF8(tt.input, tt.n)
		if got != tt.want {
			t.Errorf("TruncateUTF8(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
		if !strings.HasPrefix(tt.input, got) {
			t.Errorf("TruncateUTF8(%q, %d) = %q is not a prefix", tt.input, tt.n, got)
		}
		if !utf8.ValidString(got) {
			t.Errorf("TruncateUTF8(%q, %d) = %q is not valid UTF-8", tt.input, tt.n, got)
		}
	}
}
