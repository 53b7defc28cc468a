// Package editor provides a Bubble Tea block editor component backed by the
// buffer package.
//
// The component owns input handling, viewport behavior, and grapheme-aware
// rendering. Typed characters pass through a shortcut.Transformer before they
// are inserted, so "# " turns the current block into a header, and Enter
// always starts an unstyled block.
package editor
