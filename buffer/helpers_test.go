package buffer

import "fmt"

// seqKeys returns a deterministic block key generator: k1, k2, ...
func seqKeys() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("k%d", n)
	}
}

func newTestBuffer(blocks ...Block) *Buffer {
	return New(NewSnapshot(blocks...), Options{NewKey: seqKeys()})
}

func textBlocks(texts ...string) []Block {
	out := make([]Block, 0, len(texts))
	for _, s := range texts {
		out = append(out, Block{Text: s})
	}
	return out
}
