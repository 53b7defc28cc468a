// Package app is the top-level Bubble Tea program: the block editor, its
// save slot and a status line.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/blockpad/buffer"
	"github.com/iw2rmb/blockpad/editor"
	"github.com/iw2rmb/blockpad/internal/logging"
	"github.com/iw2rmb/blockpad/internal/store"
	"github.com/iw2rmb/blockpad/shortcut"
)

const defaultSaveTimeout = 5 * time.Second

type Options struct {
	Store  *store.DocumentStore
	Logger logging.Logger

	// Editor is the base editor config. Snapshot is replaced by the loaded
	// document; a nil Clipboard means the system clipboard.
	Editor editor.Config

	KeyMap      KeyMap
	SaveTimeout time.Duration
}

type Model struct {
	editor editor.Model
	store  *store.DocumentStore
	logger logging.Logger
	keys   KeyMap
	clip   *systemClipboard

	saveTimeout time.Duration
	saved       buffer.Snapshot
	loadStatus  store.LoadStatus

	status     string
	statusErr  bool
	quitArmed  bool
	width      int
	height     int
	statusLine lipgloss.Style
	errorLine  lipgloss.Style
}

// New restores the document from opts.Store and builds the editor around
// it. Restoring never fails; an unreadable slot starts an empty document
// and says so in the status line.
func New(ctx context.Context, opts Options) (Model, error) {
	if opts.Store == nil {
		return Model{}, errors.New("document store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	keys := opts.KeyMap
	if len(keys.Save.Keys()) == 0 && len(keys.Quit.Keys()) == 0 {
		keys = DefaultKeyMap()
	}
	timeout := opts.SaveTimeout
	if timeout <= 0 {
		timeout = defaultSaveTimeout
	}

	snap, status := opts.Store.Load(ctx)

	cfg := opts.Editor
	cfg.Snapshot = snap
	var clip *systemClipboard
	if cfg.Clipboard == nil {
		clip = &systemClipboard{}
		cfg.Clipboard = clip
	}
	cfg.OnChange = logShortcuts(logger, cfg.OnChange)

	m := Model{
		editor:      editor.New(cfg),
		store:       opts.Store,
		logger:      logger,
		keys:        keys,
		clip:        clip,
		saveTimeout: timeout,
		loadStatus:  status,
		statusLine:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		errorLine:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
	// Keys are assigned on load, so compare against the editor's copy.
	m.saved = m.editor.Snapshot()

	switch status {
	case store.LoadRestored:
		m.setStatus(fmt.Sprintf("restored %d blocks", snap.Len()), false)
	case store.LoadCorrupt:
		m.setStatus("saved content unreadable; started empty", true)
	default:
		m.setStatus("new document", false)
	}
	return m, nil
}

func logShortcuts(logger logging.Logger, next func(editor.ChangeEvent)) func(editor.ChangeEvent) {
	return func(ev editor.ChangeEvent) {
		if ev.Shortcut.Kind == shortcut.Transform {
			logger.Debug("shortcut applied",
				logging.F("trigger", ev.Shortcut.Trigger),
				logging.F("style", ev.Shortcut.Style),
				logging.F("row", ev.Cursor.Row),
				logging.F("version", ev.Version),
			)
		}
		if next != nil {
			next(ev)
		}
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.editor = m.editor.SetSize(msg.Width, max(msg.Height-1, 0))
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Save):
			m.quitArmed = false
			m.Save()
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			if m.Dirty() && !m.quitArmed {
				m.quitArmed = true
				m.setStatus("unsaved changes; press "+m.keys.Quit.Help().Key+" again to quit", true)
				return m, nil
			}
			m.logger.Info("quit", logging.F("dirty", m.Dirty()))
			return m, tea.Quit
		}
		m.quitArmed = false
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if err := m.clip.takeErr(); err != nil {
		m.logger.Warn("clipboard", logging.Err(err))
		m.setStatus(err.Error(), true)
	}
	return m, cmd
}

// Save writes the current document synchronously. The outcome is shown in
// the status line and returned.
func (m *Model) Save() error {
	ctx, cancel := context.WithTimeout(context.Background(), m.saveTimeout)
	defer cancel()

	snap := m.editor.Snapshot()
	if err := m.store.Save(ctx, snap); err != nil {
		m.setStatus("save failed: "+err.Error(), true)
		return err
	}
	m.saved = snap
	m.setStatus("saved", false)
	return nil
}

// Dirty reports whether the document differs from the last save or load.
func (m Model) Dirty() bool {
	return !buffer.Equal(m.editor.Snapshot(), m.saved)
}

func (m Model) Editor() editor.Model { return m.editor }

func (m Model) LoadStatus() store.LoadStatus { return m.loadStatus }

// Status returns the status message and whether it reports a problem.
func (m Model) Status() (string, bool) { return m.status, m.statusErr }

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.editor.View(), m.renderStatus())
}

func (m Model) renderStatus() string {
	blk := m.editor.Buffer().CurrentBlock()
	parts := []string{m.store.Slot(), blk.Style.String()}
	if m.Dirty() {
		parts = append(parts, "modified")
	}
	right := strings.Join(parts, " · ")

	style := m.statusLine
	if m.statusErr {
		style = m.errorLine
	}
	left := style.Render(m.status)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + m.statusLine.Render(right)
}
