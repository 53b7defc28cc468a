package buffer

import "testing"

func TestNewSnapshot_EmptyHasOneBlock(t *testing.T) {
	s := NewSnapshot()
	if s.Len() != 1 {
		t.Fatalf("len=%d, want 1", s.Len())
	}
	blk, ok := s.Block(0)
	if !ok || blk.Style != StyleUnstyled || blk.Text != "" {
		t.Fatalf("block=%+v ok=%v", blk, ok)
	}

	var zero Snapshot
	if zero.Len() != 1 || !Equal(zero, s) {
		t.Fatalf("zero snapshot should read as one empty block")
	}
}

func TestSnapshot_BlocksReturnsCopy(t *testing.T) {
	s := NewSnapshot(Block{Key: "a", Text: "x"})
	blocks := s.Blocks()
	blocks[0].Text = "mutated"

	if blk, _ := s.Block(0); blk.Text != "x" {
		t.Fatalf("snapshot mutated through Blocks(): %q", blk.Text)
	}
}

func TestSnapshot_TextAndIndexOf(t *testing.T) {
	s := NewSnapshot(Block{Key: "a", Text: "one"}, Block{Key: "b", Text: "two"})
	if got, want := s.Text(), "one\ntwo"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got := s.IndexOf("b"); got != 1 {
		t.Fatalf("IndexOf(b)=%d, want 1", got)
	}
	if got := s.IndexOf("zz"); got != -1 {
		t.Fatalf("IndexOf(zz)=%d, want -1", got)
	}
	if _, ok := s.Block(2); ok {
		t.Fatalf("expected out of range block")
	}
}

func TestEqual(t *testing.T) {
	a := NewSnapshot(Block{Key: "a", Text: "x", Style: StyleBold})
	cases := []struct {
		name string
		b    Snapshot
		want bool
	}{
		{name: "same", b: NewSnapshot(Block{Key: "a", Text: "x", Style: StyleBold}), want: true},
		{name: "text", b: NewSnapshot(Block{Key: "a", Text: "y", Style: StyleBold}), want: false},
		{name: "style", b: NewSnapshot(Block{Key: "a", Text: "x", Style: StyleRed}), want: false},
		{name: "key", b: NewSnapshot(Block{Key: "b", Text: "x", Style: StyleBold}), want: false},
		{name: "len", b: NewSnapshot(Block{Key: "a", Text: "x", Style: StyleBold}, Block{Key: "c"}), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Equal(a, tc.b); got != tc.want {
				t.Fatalf("Equal=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestNewSnapshot_SplitsLinesIntoBlocks(t *testing.T) {
	s := NewSnapshot(Block{Key: "a", Text: "one\ntwo", Style: "Quote"}, Block{Key: "b", Text: "three"})
	if s.Len() != 3 {
		t.Fatalf("len=%d, want 3", s.Len())
	}
	want := []Block{
		{Key: "a", Text: "one", Style: "quote"},
		{Key: "", Text: "two", Style: "quote"},
		{Key: "b", Text: "three", Style: StyleUnstyled},
	}
	for i, w := range want {
		if blk, _ := s.Block(i); blk != w {
			t.Fatalf("block %d=%+v, want %+v", i, blk, w)
		}
	}
}

func TestNewSnapshot_ReplacesInvalidUTF8(t *testing.T) {
	s := NewSnapshot(Block{Key: "a", Text: "x\xffy"})
	if blk, _ := s.Block(0); blk.Text != "x�y" {
		t.Fatalf("text=%q, want %q", blk.Text, "x�y")
	}
}
