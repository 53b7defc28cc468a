package buffer

import "strings"

// Block is one paragraph of the document.
type Block struct {
	Key   string
	Text  string
	Style StyleTag
}

// Snapshot is an immutable document value. It always holds at least one
// block; accessors hand out copies.
//
// The zero Snapshot reads as a single empty unstyled block.
type Snapshot struct {
	blocks []Block
}

// NewSnapshot copies blocks into a snapshot. Styles are normalized and an
// empty list becomes one empty block. Text is one line per block: a block
// whose text holds '\n' is split, and the extra blocks keep its style with
// an empty key. Invalid UTF-8 is replaced with U+FFFD.
func NewSnapshot(blocks ...Block) Snapshot {
	out := make([]Block, 0, len(blocks))
	for _, blk := range blocks {
		blk.Style = blk.Style.Normalize()
		lines := strings.Split(sanitizeText(blk.Text), "\n")
		blk.Text = lines[0]
		out = append(out, blk)
		for _, line := range lines[1:] {
			out = append(out, Block{Text: line, Style: blk.Style})
		}
	}
	return snapshotOf(out)
}

func snapshotOf(blocks []Block) Snapshot {
	if len(blocks) == 0 {
		blocks = []Block{{Style: StyleUnstyled}}
	}
	return Snapshot{blocks: blocks}
}

func (s Snapshot) list() []Block {
	if len(s.blocks) == 0 {
		return []Block{{Style: StyleUnstyled}}
	}
	return s.blocks
}

// Len returns the number of blocks.
func (s Snapshot) Len() int { return len(s.list()) }

// Block returns the block at row.
func (s Snapshot) Block(row int) (Block, bool) {
	list := s.list()
	if row < 0 || row >= len(list) {
		return Block{}, false
	}
	return list[row], true
}

// Blocks returns a copy of the block list.
func (s Snapshot) Blocks() []Block {
	return append([]Block(nil), s.list()...)
}

// IndexOf returns the row of the block with key, or -1.
func (s Snapshot) IndexOf(key string) int {
	for i, blk := range s.list() {
		if blk.Key == key {
			return i
		}
	}
	return -1
}

// Text joins block texts with newlines, dropping styles.
func (s Snapshot) Text() string {
	list := s.list()
	if len(list) == 1 {
		return list[0].Text
	}
	var sb strings.Builder
	for i, blk := range list {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(blk.Text)
	}
	return sb.String()
}

// Equal reports structural equality of two snapshots' block lists.
func Equal(a, b Snapshot) bool {
	la, lb := a.list(), b.list()
	if len(la) != len(lb) {
		return false
	}
	for i := range la {
		x, y := la[i], lb[i]
		if x.Key != y.Key || x.Text != y.Text || x.Style.Normalize() != y.Style.Normalize() {
			return false
		}
	}
	return true
}

// withBlock returns a copy of s with row replaced.
func (s Snapshot) withBlock(row int, blk Block) Snapshot {
	next := s.Blocks()
	next[row] = blk
	return snapshotOf(next)
}
