package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("  a\t b\n\nc "))
	assert.Equal(t, "", CollapseWhitespace("   "))
	assert.Equal(t, "already clean", CollapseWhitespace("already clean"))
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"lunch at cafe", "Lunch At Cafe"},
		{"already Title", "Already Title"},
		{"", ""},
		{"123 main", "123 Main"},
		{"hy-phen", "Hy-Phen"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TitleCase(tt.in))
	}
}

func TestRemoveWords(t *testing.T) {
	patterns := CompileWordPatterns([]string{"i spent", "on"})

	got := CollapseWhitespace(RemoveWords("i spent money on lunch", patterns))
	assert.Equal(t, "money lunch", got)

	// Word boundaries keep embedded fragments intact.
	got = CollapseWhitespace(RemoveWords("monday online", patterns))
	assert.Equal(t, "monday online", got)
}
