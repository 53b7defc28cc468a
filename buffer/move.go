package buffer

import "github.com/iw2rmb/blockpad/internal/grapheme"

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveBlock
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // block start (or doc start for MoveDoc)
	DirEnd  // block end (or doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // extend the selection instead of clearing it
}

func (b *Buffer) Move(m Move) {
	prevCursor := b.cursor
	prevSel := b.sel

	nextCursor := b.clampPos(b.moveCursor(prevCursor, m))

	nextSel := selectionState{}
	if m.Extend {
		anchor := prevCursor
		if prevSel.active && prevSel.anchor != prevSel.end {
			anchor = prevSel.anchor
		}
		if anchor != nextCursor {
			nextSel = selectionState{active: true, anchor: anchor, end: nextCursor}
		}
	}

	if prevCursor == nextCursor && selectionStateEqual(prevSel, nextSel) {
		return
	}

	b.cursor = nextCursor
	b.sel = nextSel
	b.version++
}

func selectionStateEqual(a, b selectionState) bool {
	if !a.active && !b.active {
		return true
	}
	return a.active == b.active && a.anchor == b.anchor && a.end == b.end
}

func (b *Buffer) moveCursor(p Pos, m Move) Pos {
	switch m.Unit {
	case MoveGrapheme:
		return b.moveGrapheme(p, m.Dir)
	case MoveWord:
		return b.moveWord(p, m.Dir)
	case MoveBlock:
		return b.moveBlock(p, m.Dir)
	case MoveDoc:
		return b.moveDoc(p, m.Dir)
	default:
		return p
	}
}

func (b *Buffer) moveGrapheme(p Pos, dir MoveDir) Pos {
	row, col := p.Row, p.Col
	last := b.snap.Len() - 1

	switch dir {
	case DirLeft:
		if row == 0 && col == 0 {
			return p
		}
		if col > 0 {
			return Pos{Row: row, Col: col - 1}
		}
		return Pos{Row: row - 1, Col: b.blockLen(row - 1)}
	case DirRight:
		if row == last && col == b.blockLen(last) {
			return p
		}
		if col < b.blockLen(row) {
			return Pos{Row: row, Col: col + 1}
		}
		return Pos{Row: row + 1, Col: 0}
	default:
		return b.moveBlock(p, dir)
	}
}

func (b *Buffer) moveWord(p Pos, dir MoveDir) Pos {
	blk, _ := b.snap.Block(p.Row)
	clusters := grapheme.Split(blk.Text)

	switch dir {
	case DirLeft:
		if p.Col == 0 && p.Row > 0 {
			return Pos{Row: p.Row - 1, Col: b.blockLen(p.Row - 1)}
		}
		return Pos{Row: p.Row, Col: prevWordBoundary(clusters, p.Col)}
	case DirRight:
		if p.Col == len(clusters) && p.Row < b.snap.Len()-1 {
			return Pos{Row: p.Row + 1, Col: 0}
		}
		return Pos{Row: p.Row, Col: nextWordBoundary(clusters, p.Col)}
	default:
		return b.moveBlock(p, dir)
	}
}

func (b *Buffer) moveBlock(p Pos, dir MoveDir) Pos {
	row, col := p.Row, p.Col
	last := b.snap.Len() - 1

	switch dir {
	case DirHome:
		return Pos{Row: row, Col: 0}
	case DirEnd:
		return Pos{Row: row, Col: b.blockLen(row)}
	case DirUp:
		if row == 0 {
			return Pos{Row: 0, Col: 0}
		}
		return Pos{Row: row - 1, Col: minInt(col, b.blockLen(row-1))}
	case DirDown:
		if row == last {
			return Pos{Row: last, Col: b.blockLen(last)}
		}
		return Pos{Row: row + 1, Col: minInt(col, b.blockLen(row+1))}
	default:
		return p
	}
}

func (b *Buffer) moveDoc(p Pos, dir MoveDir) Pos {
	last := b.snap.Len() - 1

	switch dir {
	case DirHome, DirUp:
		return Pos{}
	case DirEnd, DirDown:
		return Pos{Row: last, Col: b.blockLen(last)}
	default:
		return p
	}
}

// Word boundaries: skip whitespace, then skip non-whitespace. Block edges
// are handled by moveWord.
func prevWordBoundary(line []string, col int) int {
	i := clampInt(col, 0, len(line))
	for i > 0 && grapheme.IsSpace(line[i-1]) {
		i--
	}
	for i > 0 && !grapheme.IsSpace(line[i-1]) {
		i--
	}
	return i
}

func nextWordBoundary(line []string, col int) int {
	i := clampInt(col, 0, len(line))
	for i < len(line) && grapheme.IsSpace(line[i]) {
		i++
	}
	for i < len(line) && !grapheme.IsSpace(line[i]) {
		i++
	}
	return i
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
