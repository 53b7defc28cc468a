package editor

import (
	"github.com/iw2rmb/blockpad/buffer"
	"github.com/iw2rmb/blockpad/shortcut"
)

type ChangeEvent struct {
	Version   uint64
	Cursor    buffer.Pos
	Selection buffer.SelectionState
	Snapshot  buffer.Snapshot

	// Shortcut is the trigger that produced this change. Kind is
	// shortcut.PassThrough for ordinary edits.
	Shortcut shortcut.Decision
}

func buildChangeEvent(b *buffer.Buffer, d shortcut.Decision) ChangeEvent {
	ev := ChangeEvent{
		Version:  b.Version(),
		Cursor:   b.Cursor(),
		Snapshot: b.Snapshot(),
		Shortcut: d,
	}
	if r, ok := b.Selection(); ok {
		ev.Selection = buffer.SelectionState{Active: true, Range: r}
	}
	return ev
}
