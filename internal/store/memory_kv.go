package store

import (
	"context"
	"sync"
)

type memoryKV struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemoryKV() KV {
	return &memoryKV{slots: map[string][]byte{}}
}

func (s *memoryKV) Get(ctx context.Context, slot string) ([]byte, bool, error) {
	if err := validateSlot(slot); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.slots[slot]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (s *memoryKV) Put(ctx context.Context, slot string, data []byte) error {
	if err := validateSlot(slot); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = append([]byte(nil), data...)
	return nil
}

func (s *memoryKV) Close() error { return nil }
