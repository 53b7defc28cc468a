package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// fileKV keeps one file per slot inside dir.
type fileKV struct {
	dir string
}

func NewFileKV(dir string) (KV, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("store directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &fileKV{dir: dir}, nil
}

func (s *fileKV) path(slot string) string {
	return filepath.Join(s.dir, slot+".json")
}

func (s *fileKV) Get(ctx context.Context, slot string) ([]byte, bool, error) {
	if err := validateSlot(slot); err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(s.path(slot))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (s *fileKV) Put(ctx context.Context, slot string, data []byte) error {
	if err := validateSlot(slot); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeFileAtomic(s.path(slot), data)
}

func (s *fileKV) Close() error { return nil }

// writeFileAtomic replaces path through a synced temp file in the same
// directory, so readers see either the old or the new content.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	file, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(file.Name())
	}()

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(file.Name(), path)
}
