package buffer

import "testing"

func TestBuffer_LastChange_InitialAndNoOp(t *testing.T) {
	b := newTestBuffer(textBlocks("a")...)

	if _, ok := b.LastChange(); ok {
		t.Fatalf("expected no initial change")
	}

	b.Move(Move{Unit: MoveGrapheme, Dir: DirLeft})
	if _, ok := b.LastChange(); ok {
		t.Fatalf("expected no change after no-op mutation")
	}
}

func TestBuffer_Change_InsertTextShape(t *testing.T) {
	b := newTestBuffer(textBlocks("ab")...)
	b.SetCursor(Pos{Row: 0, Col: 1})
	v := b.Version()

	b.InsertText("X")

	ch, ok := b.LastChange()
	if !ok {
		t.Fatalf("expected last change")
	}
	if ch.VersionBefore != v || ch.VersionAfter != v+1 {
		t.Fatalf("versions=%d->%d, want %d->%d", ch.VersionBefore, ch.VersionAfter, v, v+1)
	}
	if got, want := ch.CursorBefore, (Pos{Row: 0, Col: 1}); got != want {
		t.Fatalf("cursor before=%v, want %v", got, want)
	}
	if got, want := ch.CursorAfter, (Pos{Row: 0, Col: 2}); got != want {
		t.Fatalf("cursor after=%v, want %v", got, want)
	}
	if len(ch.AppliedEdits) != 1 {
		t.Fatalf("applied edits=%d, want 1", len(ch.AppliedEdits))
	}
	edit := ch.AppliedEdits[0]
	if got, want := edit.RangeBefore, (Range{Start: Pos{Row: 0, Col: 1}, End: Pos{Row: 0, Col: 1}}); got != want {
		t.Fatalf("range before=%v, want %v", got, want)
	}
	if got, want := edit.RangeAfter, (Range{Start: Pos{Row: 0, Col: 1}, End: Pos{Row: 0, Col: 2}}); got != want {
		t.Fatalf("range after=%v, want %v", got, want)
	}
	if edit.InsertText != "X" || edit.DeletedText != "" {
		t.Fatalf("edit=%+v", edit)
	}
	if len(ch.StyleEdits) != 0 {
		t.Fatalf("unexpected style edits: %+v", ch.StyleEdits)
	}
}

func TestBuffer_Change_SelectionBeforeAndAfter(t *testing.T) {
	b := newTestBuffer(textBlocks("hello")...)
	b.SetSelection(Range{Start: Pos{Row: 0, Col: 0}, End: Pos{Row: 0, Col: 2}})

	b.DeleteBackward()
	ch, ok := b.LastChange()
	if !ok {
		t.Fatalf("expected change")
	}
	if !ch.SelectionBefore.Active {
		t.Fatalf("expected active selection before")
	}
	if ch.SelectionAfter.Active {
		t.Fatalf("expected inactive selection after")
	}
	if got := ch.AppliedEdits[0].DeletedText; got != "he" {
		t.Fatalf("deleted=%q, want %q", got, "he")
	}
}

func TestBuffer_LastChange_ReturnsCopy(t *testing.T) {
	b := newTestBuffer(textBlocks("*")...)
	b.SetCursor(Pos{Row: 0, Col: 1})
	b.Transform(0, "", StyleBold)

	ch, _ := b.LastChange()
	ch.StyleEdits[0].After = StyleRed
	ch.AppliedEdits[0].InsertText = "mutated"

	again, _ := b.LastChange()
	if again.StyleEdits[0].After != StyleBold || again.AppliedEdits[0].InsertText != "" {
		t.Fatalf("LastChange exposed internal state: %+v", again)
	}
}
