package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/iw2rmb/blockpad/buffer"
	"github.com/iw2rmb/blockpad/internal/logging"
)

// DefaultSlot is the slot name used when none is configured.
const DefaultSlot = "editorContent"

type LoadStatus int

const (
	// LoadEmpty means the slot held nothing and an empty document was returned.
	LoadEmpty LoadStatus = iota
	LoadRestored
	// LoadCorrupt means the slot could not be read or decoded. The returned
	// document is empty.
	LoadCorrupt
)

func (s LoadStatus) String() string {
	switch s {
	case LoadRestored:
		return "restored"
	case LoadCorrupt:
		return "corrupt"
	default:
		return "empty"
	}
}

// DocumentStore saves and restores one document under a named slot.
type DocumentStore struct {
	kv     KV
	slot   string
	logger logging.Logger
}

func NewDocumentStore(kv KV, slot string, logger logging.Logger) (*DocumentStore, error) {
	if kv == nil {
		return nil, errors.New("kv is required")
	}
	if slot == "" {
		slot = DefaultSlot
	}
	if err := validateSlot(slot); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &DocumentStore{
		kv:     kv,
		slot:   slot,
		logger: logger.With(logging.F("slot", slot)),
	}, nil
}

func (s *DocumentStore) Slot() string { return s.slot }

// Save writes snap to the slot. The write either completes or returns an
// error; a failed save leaves the previous content in place.
func (s *DocumentStore) Save(ctx context.Context, snap buffer.Snapshot) error {
	data, err := EncodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.kv.Put(ctx, s.slot, data); err != nil {
		s.logger.Error("document save failed", logging.Err(err))
		return fmt.Errorf("save document: %w", err)
	}
	s.logger.Info("document saved", logging.F("blocks", snap.Len()), logging.F("bytes", len(data)))
	return nil
}

// Load restores the slot. It never fails: a missing slot yields an empty
// document, and unreadable content is logged and also yields an empty
// document.
func (s *DocumentStore) Load(ctx context.Context) (buffer.Snapshot, LoadStatus) {
	data, ok, err := s.kv.Get(ctx, s.slot)
	if err != nil {
		s.logger.Warn("document load failed; starting empty", logging.Err(err))
		return buffer.NewSnapshot(), LoadCorrupt
	}
	if !ok {
		s.logger.Info("no saved document; starting empty")
		return buffer.NewSnapshot(), LoadEmpty
	}

	snap, err := DecodeSnapshot(data)
	if err != nil {
		s.logger.Warn("saved document unreadable; starting empty", logging.Err(err), logging.F("bytes", len(data)))
		return buffer.NewSnapshot(), LoadCorrupt
	}
	s.logger.Info("document restored", logging.F("blocks", snap.Len()))
	return snap, LoadRestored
}

func (s *DocumentStore) Close() error {
	return s.kv.Close()
}
