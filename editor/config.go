package editor

import (
	"github.com/iw2rmb/blockpad/buffer"
	"github.com/iw2rmb/blockpad/shortcut"
)

// Config configures the editor Model.
type Config struct {
	// Initial document. The zero value is one empty unstyled block.
	Snapshot buffer.Snapshot
	// Block key generator, forwarded to buffer.Options.
	NewKey func() string

	// Trigger table. An empty table means shortcut.DefaultTable.
	Triggers shortcut.Table

	// Zero value means DefaultKeyMap.
	KeyMap KeyMap

	// Rendering options.
	ShowStyleTags bool
	Style         Style

	ReadOnly  bool
	Clipboard Clipboard

	// OnChange is called after every update that changed the buffer version.
	OnChange func(ChangeEvent)
}
