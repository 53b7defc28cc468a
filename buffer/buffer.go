package buffer

import (
	"github.com/google/uuid"

	"github.com/iw2rmb/blockpad/internal/grapheme"
)

type Options struct {
	// NewKey generates keys for blocks created by splits and for blocks
	// loaded without one. Defaults to random UUIDs.
	NewKey func() string
}

type selectionState struct {
	active bool
	anchor Pos
	end    Pos
}

// Buffer owns the current Snapshot together with cursor and selection.
type Buffer struct {
	snap    Snapshot
	version uint64

	cursor Pos
	sel    selectionState

	opt Options

	lastChange    Change
	hasLastChange bool
}

func New(snap Snapshot, opt Options) *Buffer {
	if opt.NewKey == nil {
		opt.NewKey = uuid.NewString
	}
	b := &Buffer{opt: opt}
	b.snap = b.keyed(snap)
	return b
}

// NewEmpty returns a buffer holding one empty unstyled block.
func NewEmpty(opt Options) *Buffer {
	return New(NewSnapshot(), opt)
}

// keyed fills in missing block keys.
func (b *Buffer) keyed(snap Snapshot) Snapshot {
	blocks := snap.Blocks()
	for i := range blocks {
		if blocks[i].Key == "" {
			blocks[i].Key = b.opt.NewKey()
		}
		blocks[i].Style = blocks[i].Style.Normalize()
	}
	return snapshotOf(blocks)
}

// Snapshot returns the current document value.
func (b *Buffer) Snapshot() Snapshot { return b.snap }

// Text returns the document text with blocks joined by newlines.
func (b *Buffer) Text() string { return b.snap.Text() }

func (b *Buffer) Version() uint64 { return b.version }

func (b *Buffer) Cursor() Pos { return b.cursor }

func (b *Buffer) BlockCount() int { return b.snap.Len() }

// Block returns the block at row.
func (b *Buffer) Block(row int) (Block, bool) { return b.snap.Block(row) }

// CurrentBlock returns the block containing the cursor.
func (b *Buffer) CurrentBlock() Block {
	blk, _ := b.snap.Block(b.cursor.Row)
	return blk
}

// AtBlockEnd reports whether the cursor sits after the last grapheme of its
// block.
func (b *Buffer) AtBlockEnd() bool {
	return b.cursor.Col == b.blockLen(b.cursor.Row)
}

func (b *Buffer) SetCursor(p Pos) {
	next := b.clampPos(p)
	if next == b.cursor {
		return
	}
	b.cursor = next
	b.version++
}

func (b *Buffer) Selection() (Range, bool) {
	if !b.sel.active {
		return Range{}, false
	}
	r := NormalizeRange(Range{Start: b.sel.anchor, End: b.sel.end})
	if r.IsEmpty() {
		return Range{}, false
	}
	return r, true
}

func (b *Buffer) SetSelection(r Range) {
	clamped := ClampRange(r, b.snap.Len(), b.blockLen)
	next := selectionState{active: true, anchor: clamped.Start, end: clamped.End}
	if clamped.Start == clamped.End {
		next = selectionState{}
	}

	prevRange, prevOK := b.Selection()
	b.sel = next
	nextRange, nextOK := b.Selection()
	if prevOK == nextOK && prevRange == nextRange {
		return
	}
	b.version++
}

func (b *Buffer) ClearSelection() {
	if !b.sel.active {
		return
	}
	_, had := b.Selection()
	b.sel = selectionState{}
	if had {
		b.version++
	}
}

// Reset replaces the whole document, e.g. after loading from storage. The
// cursor moves to the end of the last block.
func (b *Buffer) Reset(snap Snapshot) {
	change := b.beginChange()
	before := b.snap
	b.snap = b.keyed(snap)
	last := b.snap.Len() - 1
	b.cursor = Pos{Row: last, Col: b.blockLen(last)}
	b.sel = selectionState{}
	b.version++
	if applied, ok := replacementAppliedEdit(before, b.snap); ok {
		change.addAppliedEdit(applied)
	}
	b.commitChange(change)
}

func (b *Buffer) blockLen(row int) int {
	blk, ok := b.snap.Block(row)
	if !ok {
		return 0
	}
	return grapheme.Count(blk.Text)
}

func (b *Buffer) clampPos(p Pos) Pos {
	return ClampPos(p, b.snap.Len(), b.blockLen)
}
