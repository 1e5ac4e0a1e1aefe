package sweep

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short untouched", "hello", 60, "hello"},
		{"exact length untouched", strings.Repeat("a", 60), 60, strings.Repeat("a", 60)},
		{"long ascii", strings.Repeat("a", 61), 60, strings.Repeat("a", 60) + "..."},
		{"multibyte cut on rune boundary", strings.Repeat("é", 70), 60, strings.Repeat("é", 60) + "..."},
		{"cjk title", strings.Repeat("構", 61), 60, strings.Repeat("構", 60) + "..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := truncate(tc.in, tc.max)
			assert.Equal(t, tc.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
