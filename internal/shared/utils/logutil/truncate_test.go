package logutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"empty string", "", 10, ""},
		{"zero max", "", 0, "..."},
		{"shorter than max", "hello", 10, "hello"},
		{"equal to max", "hello", 5, "hello"},
		{"longer than max", `{"room_number":"101"}`, 6, `{"room...`},
		{"multi-byte runes stay whole", "Zimmer für Gäste", 12, "Zimmer für G..."},
		{"emoji", "🛏️🧹🧽", 1, "🛏..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateForLog(tt.input, tt.maxLen))
		})
	}
}

func TestTruncateForLog_DefaultMaxLen(t *testing.T) {
	long := strings.Repeat("a", DefaultMaxLen+50)
	got := TruncateForLog(long, DefaultMaxLen)
	assert.Len(t, got, DefaultMaxLen+3)
	assert.True(t, strings.HasSuffix(got, "..."))
}
