package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/blockpad/buffer"
	"github.com/iw2rmb/blockpad/shortcut"
)

// Model is a Bubble Tea component that renders and edits a block buffer.
type Model struct {
	cfg Config
	buf *buffer.Buffer
	tr  shortcut.Transformer

	focused bool

	viewport viewport.Model
	xOffset  int

	lastVersion  uint64
	lastCursor   buffer.Pos
	lastShortcut shortcut.Decision
}

func New(cfg Config) Model {
	if cfg.KeyMap.isZero() {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.Triggers.Len() == 0 {
		cfg.Triggers = shortcut.DefaultTable()
	}
	m := Model{
		cfg:      cfg,
		buf:      buffer.New(cfg.Snapshot, buffer.Options{NewKey: cfg.NewKey}),
		tr:       shortcut.New(cfg.Triggers),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.lastVersion = m.buf.Version()
	m.lastCursor = m.buf.Cursor()
	m.rebuildContent()
	return m
}

// Buffer exposes the state container. Hosts may mutate it directly; the
// next Update picks the changes up.
func (m Model) Buffer() *buffer.Buffer { return m.buf }

// Snapshot returns the current document.
func (m Model) Snapshot() buffer.Snapshot { return m.buf.Snapshot() }

// SetSnapshot replaces the document and places the cursor at its end.
func (m Model) SetSnapshot(s buffer.Snapshot) Model {
	m.buf.Reset(s)
	m.sync()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.refresh()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.refresh()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.updateKey(msg)
		m.sync()
		return m, cmd
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		// Don't force-follow the cursor; the wheel scrolls freely.
		m.sync()
		return m, cmd
	default:
		// The host may have mutated the buffer outside of the editor.
		m.sync()
		return m, nil
	}
}

func (m Model) View() string { return m.viewport.View() }

// sync re-renders and emits a change event when the buffer moved on since
// the last call.
func (m *Model) sync() {
	if m.buf == nil {
		return
	}
	d := m.lastShortcut
	m.lastShortcut = shortcut.Decision{}

	ver := m.buf.Version()
	cur := m.buf.Cursor()
	if ver == m.lastVersion && cur == m.lastCursor {
		return
	}
	m.lastVersion = ver
	m.lastCursor = cur
	m.refresh()

	if m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.buf, d))
	}
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

// refresh shifts the horizontal offset to the cursor, re-renders, and then
// scrolls vertically. The viewport clamps YOffset against its content, so
// content has to be current first.
func (m *Model) refresh() {
	m.followCursorX()
	m.rebuildContent()
	m.followCursorY()
}

func (m *Model) followCursorY() {
	if m.buf == nil {
		return
	}
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}
	row := m.buf.Cursor().Row
	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}

func (m *Model) followCursorX() {
	w := m.contentWidth()
	if m.buf == nil || w <= 0 {
		m.xOffset = 0
		return
	}
	cur := m.buf.Cursor()
	cell := cursorCell(m.buf.CurrentBlock().Text, cur.Col)
	switch {
	case cell < m.xOffset:
		m.xOffset = cell
	case cell >= m.xOffset+w:
		m.xOffset = cell - w + 1
	}
}
