package buffer

import "github.com/iw2rmb/blockpad/internal/grapheme"

// SelectionState captures normalized selection state at a point in time.
type SelectionState struct {
	Active bool
	Range  Range
}

// AppliedEdit describes one effective text edit in a change.
type AppliedEdit struct {
	RangeBefore Range
	RangeAfter  Range
	InsertText  string
	DeletedText string
}

// StyleEdit records a block whose style tag changed.
type StyleEdit struct {
	Row    int
	Key    string
	Before StyleTag
	After  StyleTag
}

// Change is a normalized, versioned mutation payload. A change carries text
// edits, style edits, or both; a shortcut transform produces both in one
// change.
type Change struct {
	VersionBefore   uint64
	VersionAfter    uint64
	CursorBefore    Pos
	CursorAfter     Pos
	SelectionBefore SelectionState
	SelectionAfter  SelectionState
	AppliedEdits    []AppliedEdit
	StyleEdits      []StyleEdit
}

type changeBuilder struct {
	versionBefore   uint64
	cursorBefore    Pos
	selectionBefore SelectionState
	appliedEdits    []AppliedEdit
	styleEdits      []StyleEdit
}

// LastChange returns the most recent effective edit.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	return cloneChange(b.lastChange), true
}

func cloneChange(in Change) Change {
	out := in
	out.AppliedEdits = append([]AppliedEdit(nil), in.AppliedEdits...)
	out.StyleEdits = append([]StyleEdit(nil), in.StyleEdits...)
	return out
}

func selectionStateFromInternal(sel selectionState) SelectionState {
	if !sel.active {
		return SelectionState{}
	}
	r := NormalizeRange(Range{Start: sel.anchor, End: sel.end})
	if r.IsEmpty() {
		return SelectionState{}
	}
	return SelectionState{Active: true, Range: r}
}

func (b *Buffer) beginChange() changeBuilder {
	return changeBuilder{
		versionBefore:   b.version,
		cursorBefore:    b.cursor,
		selectionBefore: selectionStateFromInternal(b.sel),
	}
}

func (cb *changeBuilder) addAppliedEdit(edit AppliedEdit) {
	edit.RangeBefore = NormalizeRange(edit.RangeBefore)
	edit.RangeAfter = NormalizeRange(edit.RangeAfter)
	cb.appliedEdits = append(cb.appliedEdits, edit)
}

func (cb *changeBuilder) addStyleEdit(edit StyleEdit) {
	if edit.Before.Normalize() == edit.After.Normalize() {
		return
	}
	cb.styleEdits = append(cb.styleEdits, edit)
}

func (b *Buffer) commitChange(cb changeBuilder) {
	if b.version == cb.versionBefore {
		return
	}
	b.lastChange = Change{
		VersionBefore:   cb.versionBefore,
		VersionAfter:    b.version,
		CursorBefore:    cb.cursorBefore,
		CursorAfter:     b.cursor,
		SelectionBefore: cb.selectionBefore,
		SelectionAfter:  selectionStateFromInternal(b.sel),
		AppliedEdits:    append([]AppliedEdit(nil), cb.appliedEdits...),
		StyleEdits:      append([]StyleEdit(nil), cb.styleEdits...),
	}
	b.hasLastChange = true
}

func replacementAppliedEdit(before, after Snapshot) (AppliedEdit, bool) {
	beforeText, afterText := before.Text(), after.Text()
	if beforeText == afterText {
		return AppliedEdit{}, false
	}
	return AppliedEdit{
		RangeBefore: fullDocumentRange(before),
		RangeAfter:  fullDocumentRange(after),
		InsertText:  afterText,
		DeletedText: beforeText,
	}, true
}

func fullDocumentRange(s Snapshot) Range {
	last := s.Len() - 1
	blk, _ := s.Block(last)
	return Range{
		Start: Pos{},
		End:   Pos{Row: last, Col: grapheme.Count(blk.Text)},
	}
}
