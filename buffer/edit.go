package buffer

import (
	"strings"

	"github.com/iw2rmb/blockpad/internal/grapheme"
)

// InsertText inserts text at the cursor, or replaces the active selection.
// Each '\n' in text starts a new unstyled block. Invalid UTF-8 is replaced
// with U+FFFD.
func (b *Buffer) InsertText(s string) {
	b.insert(s, StyleUnstyled)
}

// SplitBlock ends the current block at the cursor. The text after the cursor
// moves into a new block that inherits the current block's style.
func (b *Buffer) SplitBlock() {
	b.insert("\n", "")
}

// SplitBlockWithStyle is SplitBlock with an explicit style for the new block.
// An invalid style falls back to inheriting.
func (b *Buffer) SplitBlockWithStyle(style StyleTag) {
	if !style.Valid() {
		b.insert("\n", "")
		return
	}
	b.insert("\n", style.Normalize())
}

// InsertBlockBefore inserts an empty block with style above row as one
// change. The cursor keeps its place in the text, which moves down a row.
func (b *Buffer) InsertBlockBefore(row int, style StyleTag) bool {
	if row < 0 || row >= b.snap.Len() || !style.Valid() {
		return false
	}
	style = style.Normalize()

	change := b.beginChange()
	blocks := b.snap.list()
	out := make([]Block, 0, len(blocks)+1)
	out = append(out, blocks[:row]...)
	out = append(out, Block{Key: b.opt.NewKey(), Style: style})
	out = append(out, blocks[row:]...)

	b.snap = snapshotOf(out)
	if b.cursor.Row >= row {
		b.cursor.Row++
	}
	b.sel = selectionState{}
	b.version++
	at := Pos{Row: row}
	change.addAppliedEdit(AppliedEdit{
		RangeBefore: Range{Start: at, End: at},
		RangeAfter:  Range{Start: at, End: Pos{Row: row + 1}},
		InsertText:  "\n",
	})
	b.commitChange(change)
	return true
}

// DeleteBackward applies backspace semantics. At the start of a block the
// block is merged into the previous one, which keeps its style.
func (b *Buffer) DeleteBackward() {
	if _, ok := b.Selection(); ok {
		b.DeleteSelection()
		return
	}

	row, col := b.cursor.Row, b.cursor.Col
	if row == 0 && col == 0 {
		return
	}

	var r Range
	if col > 0 {
		r = Range{Start: Pos{Row: row, Col: col - 1}, End: Pos{Row: row, Col: col}}
	} else {
		r = Range{Start: Pos{Row: row - 1, Col: b.blockLen(row - 1)}, End: Pos{Row: row}}
	}
	change := b.beginChange()
	b.applyReplace(&change, r, "", "")
}

// DeleteForward applies delete-key semantics. At the end of a block the next
// block is merged into it.
func (b *Buffer) DeleteForward() {
	if _, ok := b.Selection(); ok {
		b.DeleteSelection()
		return
	}

	row, col := b.cursor.Row, b.cursor.Col
	last := b.snap.Len() - 1
	n := b.blockLen(row)
	if row == last && col == n {
		return
	}

	var r Range
	if col < n {
		r = Range{Start: Pos{Row: row, Col: col}, End: Pos{Row: row, Col: col + 1}}
	} else {
		r = Range{Start: Pos{Row: row, Col: col}, End: Pos{Row: row + 1}}
	}
	change := b.beginChange()
	b.applyReplace(&change, r, "", "")
}

// DeleteSelection deletes the active selection, if any.
func (b *Buffer) DeleteSelection() {
	r, ok := b.Selection()
	if !ok {
		return
	}
	change := b.beginChange()
	b.applyReplace(&change, r, "", "")
}

// Transform replaces the text and style of one block as a single change and
// moves the cursor to the end of that block. Newlines in text are replaced
// with spaces. It reports whether anything changed; an invalid style
// changes nothing.
func (b *Buffer) Transform(row int, text string, style StyleTag) bool {
	blk, ok := b.snap.Block(row)
	if !ok || !style.Valid() {
		return false
	}
	text = sanitizeText(strings.ReplaceAll(text, "\n", " "))
	style = style.Normalize()
	if blk.Text == text && blk.Style == style {
		return false
	}

	change := b.beginChange()
	before := Range{Start: Pos{Row: row}, End: Pos{Row: row, Col: grapheme.Count(blk.Text)}}
	end := Pos{Row: row, Col: grapheme.Count(text)}

	b.snap = b.snap.withBlock(row, Block{Key: blk.Key, Text: text, Style: style})
	b.cursor = end
	b.sel = selectionState{}
	b.version++

	if blk.Text != text {
		change.addAppliedEdit(AppliedEdit{
			RangeBefore: before,
			RangeAfter:  Range{Start: Pos{Row: row}, End: end},
			InsertText:  text,
			DeletedText: blk.Text,
		})
	}
	change.addStyleEdit(StyleEdit{Row: row, Key: blk.Key, Before: blk.Style, After: style})
	b.commitChange(change)
	return true
}

// SetBlockStyle changes the style of one block, leaving text and cursor
// alone. An invalid style changes nothing.
func (b *Buffer) SetBlockStyle(row int, style StyleTag) bool {
	blk, ok := b.snap.Block(row)
	if !ok || !style.Valid() {
		return false
	}
	style = style.Normalize()
	if blk.Style == style {
		return false
	}

	change := b.beginChange()
	b.snap = b.snap.withBlock(row, Block{Key: blk.Key, Text: blk.Text, Style: style})
	b.version++
	change.addStyleEdit(StyleEdit{Row: row, Key: blk.Key, Before: blk.Style, After: style})
	b.commitChange(change)
	return true
}

func (b *Buffer) insert(s string, splitStyle StyleTag) {
	if s == "" {
		b.DeleteSelection()
		return
	}
	s = sanitizeText(s)

	r, ok := b.Selection()
	if !ok {
		r = Range{Start: b.cursor, End: b.cursor}
	}
	change := b.beginChange()
	b.applyReplace(&change, r, s, splitStyle)
}

func (b *Buffer) applyReplace(change *changeBuilder, r Range, text string, splitStyle StyleTag) bool {
	next, nextCursor, applied, changed := b.replaceRange(r, text, splitStyle)
	if !changed {
		return false
	}
	b.snap = next
	b.cursor = nextCursor
	b.sel = selectionState{}
	b.version++
	change.addAppliedEdit(applied)
	b.commitChange(*change)
	return true
}

// replaceRange builds the snapshot that results from replacing r with text.
// Blocks created for the 2nd..nth lines of text get splitStyle, or the style
// of the first touched block when splitStyle is empty. The current snapshot
// is left untouched.
func (b *Buffer) replaceRange(r Range, text string, splitStyle StyleTag) (next Snapshot, nextCursor Pos, applied AppliedEdit, changed bool) {
	r = NormalizeRange(ClampRange(r, b.snap.Len(), b.blockLen))
	if r.IsEmpty() && text == "" {
		return b.snap, b.cursor, AppliedEdit{}, false
	}
	deleted := textForRange(b.snap, r)
	if deleted == text {
		return b.snap, b.cursor, AppliedEdit{}, false
	}

	blocks := b.snap.list()
	first := blocks[r.Start.Row]
	last := blocks[r.End.Row]
	prefix := grapheme.Slice(first.Text, 0, r.Start.Col)
	suffix := grapheme.Slice(last.Text, r.End.Col, grapheme.Count(last.Text))
	if splitStyle == "" {
		splitStyle = first.Style
	}

	parts := strings.Split(text, "\n")
	repl := make([]Block, 0, len(parts))
	if len(parts) == 1 {
		repl = append(repl, Block{Key: first.Key, Text: prefix + parts[0] + suffix, Style: first.Style})
		nextCursor = Pos{Row: r.Start.Row, Col: grapheme.Count(prefix + parts[0])}
	} else {
		repl = append(repl, Block{Key: first.Key, Text: prefix + parts[0], Style: first.Style})
		for _, p := range parts[1 : len(parts)-1] {
			repl = append(repl, Block{Key: b.opt.NewKey(), Text: p, Style: splitStyle})
		}
		lastPart := parts[len(parts)-1]
		repl = append(repl, Block{Key: b.opt.NewKey(), Text: lastPart + suffix, Style: splitStyle})
		nextCursor = Pos{Row: r.Start.Row + len(parts) - 1, Col: grapheme.Count(lastPart)}
	}

	out := make([]Block, 0, len(blocks)+len(repl))
	out = append(out, blocks[:r.Start.Row]...)
	out = append(out, repl...)
	out = append(out, blocks[r.End.Row+1:]...)

	applied = AppliedEdit{
		RangeBefore: r,
		RangeAfter:  Range{Start: r.Start, End: nextCursor},
		InsertText:  text,
		DeletedText: deleted,
	}
	return snapshotOf(out), nextCursor, applied, true
}

// TextInRange returns the text covered by r, with block boundaries as '\n'.
func (b *Buffer) TextInRange(r Range) string {
	return textForRange(b.snap, NormalizeRange(ClampRange(r, b.snap.Len(), b.blockLen)))
}

func textForRange(s Snapshot, r Range) string {
	r = NormalizeRange(r)
	if r.IsEmpty() {
		return ""
	}
	blocks := s.list()
	if r.Start.Row == r.End.Row {
		return grapheme.Slice(blocks[r.Start.Row].Text, r.Start.Col, r.End.Col)
	}

	var sb strings.Builder
	for row := r.Start.Row; row <= r.End.Row; row++ {
		text := blocks[row].Text
		start, end := 0, grapheme.Count(text)
		if row > r.Start.Row {
			sb.WriteByte('\n')
		} else {
			start = r.Start.Col
		}
		if row == r.End.Row {
			end = r.End.Col
		}
		sb.WriteString(grapheme.Slice(text, start, end))
	}
	return sb.String()
}

func sanitizeText(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}
