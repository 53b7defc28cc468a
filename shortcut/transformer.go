package shortcut

import "github.com/iw2rmb/blockpad/buffer"

// DecisionKind says what the caller should do with an incoming character.
type DecisionKind uint8

const (
	// PassThrough lets the character be inserted normally.
	PassThrough DecisionKind = iota
	// Transform consumes the character, clears the block and applies Style.
	Transform
)

func (k DecisionKind) String() string {
	switch k {
	case Transform:
		return "transform"
	default:
		return "pass-through"
	}
}

// Decision is the result of inspecting one incoming character.
type Decision struct {
	Kind    DecisionKind
	Style   buffer.StyleTag
	Trigger string
}

// Trigger is the character that completes a trigger sequence.
const Trigger = " "

// OnBeforeInsert decides whether incoming completes a trigger for a block
// whose full text is blockText. It has no side effects and never fails.
func OnBeforeInsert(incoming, blockText string, table Table) Decision {
	if incoming != Trigger {
		return Decision{Kind: PassThrough}
	}
	rule, ok := table.Lookup(blockText)
	if !ok {
		return Decision{Kind: PassThrough}
	}
	return Decision{Kind: Transform, Style: rule.Style, Trigger: rule.Trigger}
}

// OnEnterKey returns the style for the block started by advancing past a
// styled block. It is always StyleUnstyled so styles never bleed
// into the next block.
func OnEnterKey(buffer.StyleTag) buffer.StyleTag {
	return buffer.StyleUnstyled
}

// Transformer applies trigger decisions to a buffer.
type Transformer struct {
	Table Table
}

// New returns a Transformer for table.
func New(table Table) Transformer {
	return Transformer{Table: table}
}

// BeforeInsert inspects incoming against the block under the cursor. When it
// completes a trigger the block is cleared and restyled as one change and
// handled is true; the caller must then drop incoming. Triggers only fire
// with the cursor at the end of its block and no active selection.
func (t Transformer) BeforeInsert(b *buffer.Buffer, incoming string) (d Decision, handled bool) {
	if b == nil {
		return Decision{Kind: PassThrough}, false
	}
	if _, ok := b.Selection(); ok || !b.AtBlockEnd() {
		return Decision{Kind: PassThrough}, false
	}

	d = OnBeforeInsert(incoming, b.CurrentBlock().Text, t.Table)
	if d.Kind != Transform {
		return d, false
	}
	b.Transform(b.Cursor().Row, "", d.Style)
	return d, true
}

// AdvanceBlock splits the current block at the cursor. The new block's style
// comes from OnEnterKey. At the start of a non-empty block the new block
// goes above instead, so the text keeps its style.
func (t Transformer) AdvanceBlock(b *buffer.Buffer) {
	if b == nil {
		return
	}
	cur := b.CurrentBlock()
	next := OnEnterKey(cur.Style)
	if _, sel := b.Selection(); !sel && b.Cursor().Col == 0 && cur.Text != "" {
		b.InsertBlockBefore(b.Cursor().Row, next)
		return
	}
	b.SplitBlockWithStyle(next)
}
