// Package shortcut turns typed trigger text into block styles.
//
// A trigger is the entire text of a block, such as "#" or "**". When a space
// is typed at the end of a block whose full text equals a trigger, the space
// is consumed, the block text is cleared, and the mapped style is applied.
// Matching is by exact equality with the current block text, so "*", "**"
// and "***" never shadow each other: the block grows one character at a
// time and is checked afresh on each keystroke.
package shortcut
