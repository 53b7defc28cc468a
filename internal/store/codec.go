package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iw2rmb/blockpad/buffer"
)

// ErrEmptySnapshot is returned when stored content holds no blocks.
var ErrEmptySnapshot = errors.New("stored document has no blocks")

type rawDocument struct {
	Blocks []rawBlock `json:"blocks"`
}

type rawBlock struct {
	Key  string `json:"key"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// EncodeSnapshot serializes s as {"blocks":[{"key","text","type"}]}. A style
// tag DecodeSnapshot would reject is an error, so nothing unloadable is
// ever written.
func EncodeSnapshot(s buffer.Snapshot) ([]byte, error) {
	blocks := s.Blocks()
	doc := rawDocument{Blocks: make([]rawBlock, 0, len(blocks))}
	for i, blk := range blocks {
		if !blk.Style.Valid() {
			return nil, fmt.Errorf("encode block %d: invalid style tag %q", i, blk.Style)
		}
		doc.Blocks = append(doc.Blocks, rawBlock{
			Key:  blk.Key,
			Text: blk.Text,
			Type: blk.Style.String(),
		})
	}
	return json.Marshal(doc)
}

// DecodeSnapshot parses data produced by EncodeSnapshot. Unknown fields are
// ignored; an invalid style tag or a repeated block key is an error. Text
// holding '\n' becomes several blocks.
func DecodeSnapshot(data []byte) (buffer.Snapshot, error) {
	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return buffer.Snapshot{}, fmt.Errorf("decode document: %w", err)
	}
	if len(doc.Blocks) == 0 {
		return buffer.Snapshot{}, ErrEmptySnapshot
	}

	seen := make(map[string]struct{}, len(doc.Blocks))
	blocks := make([]buffer.Block, 0, len(doc.Blocks))
	for i, rb := range doc.Blocks {
		style, err := buffer.ParseStyleTag(rb.Type)
		if err != nil {
			return buffer.Snapshot{}, fmt.Errorf("decode block %d: %w", i, err)
		}
		if rb.Key != "" {
			if _, dup := seen[rb.Key]; dup {
				return buffer.Snapshot{}, fmt.Errorf("decode block %d: duplicate key %q", i, rb.Key)
			}
			seen[rb.Key] = struct{}{}
		}
		blocks = append(blocks, buffer.Block{Key: rb.Key, Text: rb.Text, Style: style})
	}
	return buffer.NewSnapshot(blocks...), nil
}
