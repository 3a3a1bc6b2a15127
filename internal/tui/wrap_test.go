package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestWrapText(t *testing.T) {
	plain := lipgloss.NewStyle()

	tests := map[string]struct {
		text  string
		width int
		want  string
	}{
		"fits":           {text: "one two", width: 20, want: "one two"},
		"break at space": {text: "one two three", width: 7, want: "one two\nthree"},
		"break at word":  {text: "one two three", width: 9, want: "one two\nthree"},
		"long word":      {text: "abcdefgh", width: 3, want: "abc\ndef\ngh"},
		"paragraphs":     {text: "aa bb\ncc", width: 2, want: "aa\nbb\ncc"},
		"no width":       {text: "one two", width: 0, want: "one two"},
		"wide runes":     {text: "日本 語", width: 4, want: "日本\n語"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, wrapText(tc.text, tc.width, plain))
		})
	}
}

func TestStyleRunesWidths(t *testing.T) {
	runes := styleRunes("a 日", lipgloss.NewStyle())

	assert.Len(t, runes, 3)
	assert.Equal(t, 1, runes[0].width)
	assert.True(t, runes[1].isSpace)
	assert.Equal(t, 2, runes[2].width)
}
