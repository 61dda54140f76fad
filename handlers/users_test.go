package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLikePattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alice", "alice"},
		{"%%", `\%\%`}, // would otherwise match every username
		{"a_b", `a\_b`},
		{`c\d`, `c\\d`},
		{"%_", `\%\_`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeLikePattern(tt.in), "input %q", tt.in)
	}
}
