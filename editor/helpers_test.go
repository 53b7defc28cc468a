package editor

import (
	"regexp"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/blockpad/buffer"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

func stripANSI(s string) string { return ansiRE.ReplaceAllString(s, "") }

type memClipboard struct {
	s string
}

func (c *memClipboard) ReadText() (string, error) { return c.s, nil }
func (c *memClipboard) WriteText(s string) error  { c.s = s; return nil }

// doc builds a snapshot of unstyled blocks.
func doc(texts ...string) buffer.Snapshot {
	blocks := make([]buffer.Block, 0, len(texts))
	for _, t := range texts {
		blocks = append(blocks, buffer.Block{Text: t})
	}
	return buffer.NewSnapshot(blocks...)
}

// typeString sends s one key at a time, the way a terminal reports typing.
func typeString(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{r}}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func blockAt(t *testing.T, m Model, row int) buffer.Block {
	t.Helper()
	blk, ok := m.Snapshot().Block(row)
	if !ok {
		t.Fatalf("block %d missing (len %d)", row, m.Snapshot().Len())
	}
	return blk
}
