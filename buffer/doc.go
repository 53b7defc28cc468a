// Package buffer implements the block document model for blockpad.
//
// A document is an immutable Snapshot: an ordered list of blocks, each with
// plain text and one style tag. Buffer is the state container around it. It
// holds the current snapshot, cursor, and selection, and replaces the
// snapshot wholesale on every effective edit.
//
// Coordinates are 0-based (Row, Col). Row is the block index and Col counts
// grapheme clusters inside the block. Ranges are half-open: [Start, End).
package buffer
