// Package store persists document snapshots in a named key-value slot.
package store

import (
	"context"
	"fmt"
	"strings"
)

// KV is a durable map from slot names to opaque values.
type KV interface {
	// Get returns the value stored under slot. ok is false when the slot has
	// never been written.
	Get(ctx context.Context, slot string) (data []byte, ok bool, err error)
	Put(ctx context.Context, slot string, data []byte) error
	Close() error
}

type Backend string

const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendBbolt  Backend = "bbolt"
)

func Backends() []Backend {
	return []Backend{BackendFile, BackendBbolt, BackendMemory}
}

func ParseBackend(raw string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Backends() {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown storage backend %q", raw)
}

// Open returns the KV for backend. path is a directory for BackendFile, a
// database file for BackendBbolt and ignored for BackendMemory.
func Open(backend Backend, path string) (KV, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryKV(), nil
	case BackendFile:
		return NewFileKV(path)
	case BackendBbolt:
		return NewBboltKV(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// validateSlot rejects names that are blank or would escape a file
// backend's directory.
func validateSlot(slot string) error {
	if strings.TrimSpace(slot) == "" {
		return fmt.Errorf("slot name is required")
	}
	if strings.ContainsAny(slot, `/\`) || slot == "." || slot == ".." {
		return fmt.Errorf("slot name %q must not contain path separators", slot)
	}
	return nil
}
