package editor

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/blockpad/buffer"
	"github.com/iw2rmb/blockpad/shortcut"
)

func TestModel_SetSizeAffectsViewHeight(t *testing.T) {
	m := New(Config{Snapshot: doc("a", "b", "c")})
	m = m.Blur()

	m = m.SetSize(20, 2)
	if got := lipgloss.Height(m.View()); got != 2 {
		t.Fatalf("height after SetSize(20,2): got %d, want %d", got, 2)
	}

	m = m.SetSize(20, 4)
	if got := lipgloss.Height(m.View()); got != 4 {
		t.Fatalf("height after SetSize(20,4): got %d, want %d", got, 4)
	}
}

func TestView_SnapshotFixedSize(t *testing.T) {
	m := New(Config{
		Snapshot: buffer.NewSnapshot(
			buffer.Block{Text: "Title", Style: buffer.StyleHeader},
			buffer.Block{Text: "body"},
			buffer.Block{Text: "loud", Style: buffer.StyleRed},
			buffer.Block{Text: "hidden"},
		),
		ShowStyleTags: true,
	})
	m = m.Blur()
	m = m.SetSize(20, 3)

	got := strings.Split(m.View(), "\n")
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(got))
	}
	for i := range got {
		got[i] = strings.TrimRight(stripANSI(got[i]), " ")
	}

	want := []string{
		"header   Title",
		"unstyled body",
		"red      loud",
	}
	if fmt.Sprintf("%q", got) != fmt.Sprintf("%q", want) {
		t.Fatalf("unexpected view:\n got: %q\nwant: %q", got, want)
	}
}

func TestNew_Defaults(t *testing.T) {
	m := New(Config{})

	if got := m.Snapshot().Len(); got != 1 {
		t.Fatalf("blocks in empty editor: got %d, want 1", got)
	}
	if got := m.Buffer().CurrentBlock().Style; got != buffer.StyleUnstyled {
		t.Fatalf("initial style: got %q, want %q", got, buffer.StyleUnstyled)
	}
	if got := m.cfg.Triggers.Len(); got != shortcut.DefaultTable().Len() {
		t.Fatalf("default triggers: got %d rules, want %d", got, shortcut.DefaultTable().Len())
	}
	if !m.Focused() {
		t.Fatalf("new editor should start focused")
	}
}

func TestModel_SetSnapshotMovesCursorToEnd(t *testing.T) {
	var events []ChangeEvent
	m := New(Config{OnChange: func(ev ChangeEvent) { events = append(events, ev) }})

	loaded := buffer.NewSnapshot(
		buffer.Block{Key: "a", Text: "first", Style: buffer.StyleBold},
		buffer.Block{Key: "b", Text: "second"},
	)
	m = m.SetSnapshot(loaded)

	if !buffer.Equal(m.Snapshot(), loaded) {
		t.Fatalf("snapshot after SetSnapshot: got %+v, want %+v", m.Snapshot().Blocks(), loaded.Blocks())
	}
	if got, want := m.Buffer().Cursor(), (buffer.Pos{Row: 1, Col: 6}); got != want {
		t.Fatalf("cursor after SetSnapshot: got %v, want %v", got, want)
	}
	if len(events) != 1 {
		t.Fatalf("events after SetSnapshot: got %d, want 1", len(events))
	}
}

func TestModel_BlurIgnoresKeys(t *testing.T) {
	m := New(Config{Snapshot: doc("ab")})
	m = m.Blur()

	m = typeString(t, m, "x")
	if got := m.Snapshot().Text(); got != "ab" {
		t.Fatalf("text after typing while blurred: got %q, want %q", got, "ab")
	}

	m = m.Focus()
	m = typeString(t, m, "x")
	if got := m.Snapshot().Text(); got != "xab" {
		t.Fatalf("text after typing while focused: got %q, want %q", got, "xab")
	}
}
