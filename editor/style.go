package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/blockpad/buffer"
)

// Style controls the editor's rendering. Blocks maps a style tag to the
// terminal style of the whole block; tags without an entry render with Text.
type Style struct {
	Gutter       lipgloss.Style
	GutterActive lipgloss.Style

	Text   lipgloss.Style
	Blocks map[buffer.StyleTag]lipgloss.Style

	Selection lipgloss.Style
	Cursor    lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:       gutter,
		GutterActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:         lipgloss.NewStyle(),
		Blocks: map[buffer.StyleTag]lipgloss.Style{
			buffer.StyleHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
			buffer.StyleBold:      lipgloss.NewStyle().Bold(true),
			buffer.StyleRed:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
			buffer.StyleUnderline: lipgloss.NewStyle().Underline(true),
		},
		Selection: lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:    lipgloss.NewStyle().Reverse(true),
	}
}

// ForBlock returns the style for a block tag.
func (s Style) ForBlock(tag buffer.StyleTag) lipgloss.Style {
	if st, ok := s.Blocks[tag.Normalize()]; ok {
		return st
	}
	return s.Text
}
