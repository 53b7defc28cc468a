package editor

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/blockpad/buffer"
	"github.com/iw2rmb/blockpad/internal/grapheme"
)

const tabWidth = 4

func (m *Model) renderContent() string {
	if m.buf == nil {
		return ""
	}

	snap := m.buf.Snapshot()
	cursor := m.buf.Cursor()
	sel, selOK := m.buf.Selection()

	tagWidth := 0
	if m.cfg.ShowStyleTags {
		tagWidth = tagColumnWidth(snap)
	}

	left, right := 0, int(^uint(0)>>1)
	if w := m.contentWidth(); w > 0 {
		left = m.xOffset
		right = left + w
	}

	blocks := snap.Blocks()
	out := make([]string, 0, len(blocks))
	for row, blk := range blocks {
		var sb strings.Builder
		if m.cfg.ShowStyleTags {
			tagStyle := m.cfg.Style.Gutter
			if m.focused && row == cursor.Row {
				tagStyle = m.cfg.Style.GutterActive
			}
			sb.WriteString(tagStyle.Render(fmt.Sprintf("%-*s", tagWidth, blk.Style.String())))
			sb.WriteString(m.cfg.Style.Gutter.Render(" "))
		}
		sb.WriteString(m.renderBlock(row, blk, cursor, sel, selOK, left, right))
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

// renderBlock renders the clusters of one block whose cells fall inside
// [left, right). Wide clusters cut by an edge are dropped.
func (m *Model) renderBlock(row int, blk buffer.Block, cursor buffer.Pos, sel buffer.Range, selOK bool, left, right int) string {
	st := m.cfg.Style
	base := st.ForBlock(blk.Style)
	clusters := grapheme.Split(blk.Text)
	cursorHere := m.focused && cursor.Row == row

	var sb strings.Builder
	cell := 0
	for col, c := range clusters {
		start := cell
		cell += cellWidth(c)
		if start < left || cell > right {
			continue
		}

		style := base
		switch {
		case cursorHere && cursor.Col == col:
			style = st.Cursor.Inherit(base)
		case selOK && posInRange(sel, buffer.Pos{Row: row, Col: col}):
			style = st.Selection.Inherit(base)
		}
		sb.WriteString(style.Render(displayCluster(c)))
	}

	if cursorHere && cursor.Col >= len(clusters) && cell >= left && cell < right {
		sb.WriteString(st.Cursor.Inherit(base).Render(" "))
	}
	return sb.String()
}

func (m *Model) gutterWidth() int {
	if !m.cfg.ShowStyleTags || m.buf == nil {
		return 0
	}
	return tagColumnWidth(m.buf.Snapshot()) + 1
}

func (m *Model) contentWidth() int {
	w := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize() - m.gutterWidth()
	if w < 0 {
		return 0
	}
	return w
}

func tagColumnWidth(s buffer.Snapshot) int {
	w := 0
	for _, blk := range s.Blocks() {
		if n := len(blk.Style.String()); n > w {
			w = n
		}
	}
	return w
}

func posInRange(r buffer.Range, p buffer.Pos) bool {
	return buffer.ComparePos(p, r.Start) >= 0 && buffer.ComparePos(p, r.End) < 0
}

func cellWidth(cluster string) int {
	if cluster == "\t" {
		return tabWidth
	}
	return grapheme.Width(cluster)
}

func displayCluster(cluster string) string {
	if cluster == "\t" {
		return strings.Repeat(" ", tabWidth)
	}
	return cluster
}

// cursorCell returns the cell column of grapheme col inside text.
func cursorCell(text string, col int) int {
	cell := 0
	for i, c := range grapheme.Split(text) {
		if i >= col {
			break
		}
		cell += cellWidth(c)
	}
	return cell
}
