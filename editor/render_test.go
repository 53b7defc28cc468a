package editor

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/blockpad/buffer"
)

func trueColorRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return r
}

func TestRender_StyleTagGutterAlignment(t *testing.T) {
	var blocks []buffer.Block
	for _, tag := range buffer.KnownStyles() {
		blocks = append(blocks, buffer.Block{Text: "x", Style: tag})
	}

	m := New(Config{
		Snapshot:      buffer.NewSnapshot(blocks...),
		ShowStyleTags: true,
	})
	m = m.Blur()

	lines := strings.Split(m.renderContent(), "\n")
	if len(lines) != len(blocks) {
		t.Fatalf("expected %d lines, got %d", len(blocks), len(lines))
	}

	width := len("underline")
	for i, line := range lines {
		tag := blocks[i].Style.String()
		want := tag + strings.Repeat(" ", width-len(tag)) + " x"
		if line != want {
			t.Fatalf("line %d: got %q, want %q", i, line, want)
		}
	}
}

func TestRender_CursorPadding(t *testing.T) {
	m := New(Config{
		Snapshot: doc("ab"),
		Style:    Style{Text: lipgloss.NewStyle(), Cursor: lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)},
	})

	got := m.renderContent()
	want := " a b"
	if got != want {
		t.Fatalf("unexpected cursor rendering:\n got: %q\nwant: %q", got, want)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	got = m.renderContent()
	want = "ab   "
	if got != want {
		t.Fatalf("unexpected cursor rendering at block end:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_CursorProducesANSIWhenFocused(t *testing.T) {
	r := trueColorRenderer()
	m := New(Config{
		Snapshot: doc("ab"),
		Style:    Style{Text: r.NewStyle(), Cursor: r.NewStyle().Reverse(true)},
	})

	if got := m.renderContent(); !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected ANSI cursor when focused, got %q", got)
	}

	m = m.Blur()
	if got := m.renderContent(); got != "ab" {
		t.Fatalf("unexpected blurred rendering: got %q, want %q", got, "ab")
	}
}

func TestRender_BlockStyleApplied(t *testing.T) {
	r := trueColorRenderer()
	m := New(Config{
		Snapshot: buffer.NewSnapshot(
			buffer.Block{Text: "plain"},
			buffer.Block{Text: "strong", Style: buffer.StyleBold},
		),
		Style: Style{
			Text:   r.NewStyle(),
			Blocks: map[buffer.StyleTag]lipgloss.Style{buffer.StyleBold: r.NewStyle().Bold(true)},
		},
	})
	m = m.Blur()

	lines := strings.Split(m.renderContent(), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "plain" {
		t.Fatalf("unstyled block: got %q, want %q", lines[0], "plain")
	}
	if !strings.Contains(lines[1], "\x1b[1m") {
		t.Fatalf("bold block should carry the bold sequence, got %q", lines[1])
	}
	if got := stripANSI(lines[1]); got != "strong" {
		t.Fatalf("bold block text: got %q, want %q", got, "strong")
	}
}

func TestRender_HorizontalScrollKeepsCursorVisible(t *testing.T) {
	m := New(Config{Snapshot: doc("abcdefghij")})
	m = m.SetSize(4, 1)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	if got, want := m.xOffset, 7; got != want {
		t.Fatalf("xOffset at block end: got %d, want %d", got, want)
	}
	if got := strings.TrimRight(stripANSI(m.View()), " "); got != "hij" {
		t.Fatalf("visible text at block end: got %q, want %q", got, "hij")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	if got := m.xOffset; got != 0 {
		t.Fatalf("xOffset at block start: got %d, want 0", got)
	}
	if got := strings.TrimRight(stripANSI(m.View()), " "); got != "abcd" {
		t.Fatalf("visible text at block start: got %q, want %q", got, "abcd")
	}
}

func TestRender_WideGraphemes(t *testing.T) {
	if got := cursorCell("a界b", 2); got != 3 {
		t.Fatalf("cursorCell after wide rune: got %d, want 3", got)
	}
	if got := cursorCell("\tx", 1); got != tabWidth {
		t.Fatalf("cursorCell after tab: got %d, want %d", got, tabWidth)
	}
	if got := cursorCell("ab", 10); got != 2 {
		t.Fatalf("cursorCell past end: got %d, want 2", got)
	}
}
