package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func openBackends(t *testing.T) map[Backend]KV {
	t.Helper()
	dir := t.TempDir()

	fileKV, err := NewFileKV(filepath.Join(dir, "docs"))
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}
	boltKV, err := NewBboltKV(filepath.Join(dir, "blockpad.db"))
	if err != nil {
		t.Fatalf("NewBboltKV: %v", err)
	}
	t.Cleanup(func() { _ = boltKV.Close() })

	return map[Backend]KV{
		BackendMemory: NewMemoryKV(),
		BackendFile:   fileKV,
		BackendBbolt:  boltKV,
	}
}

func TestKV_GetPut(t *testing.T) {
	ctx := context.Background()
	for name, kv := range openBackends(t) {
		t.Run(string(name), func(t *testing.T) {
			if _, ok, err := kv.Get(ctx, "editorContent"); err != nil || ok {
				t.Fatalf("Get on empty store: ok=%v err=%v", ok, err)
			}

			if err := kv.Put(ctx, "editorContent", []byte("first")); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if err := kv.Put(ctx, "editorContent", []byte("second")); err != nil {
				t.Fatalf("Put overwrite: %v", err)
			}
			data, ok, err := kv.Get(ctx, "editorContent")
			if err != nil || !ok {
				t.Fatalf("Get after Put: ok=%v err=%v", ok, err)
			}
			if string(data) != "second" {
				t.Fatalf("Get: got %q, want %q", data, "second")
			}

			if _, ok, _ := kv.Get(ctx, "other"); ok {
				t.Fatalf("slots should be independent")
			}
			if err := kv.Put(ctx, " ", []byte("x")); err == nil {
				t.Fatalf("expected error for blank slot")
			}
		})
	}
}

func TestKV_RejectsPathLikeSlots(t *testing.T) {
	ctx := context.Background()
	for name, kv := range openBackends(t) {
		t.Run(string(name), func(t *testing.T) {
			if err := kv.Put(ctx, "b", []byte("plain")); err != nil {
				t.Fatalf("Put: %v", err)
			}
			for _, slot := range []string{"a/b", `a\b`, "..", "."} {
				if err := kv.Put(ctx, slot, []byte("x")); err == nil {
					t.Fatalf("Put(%q): expected error", slot)
				}
				if _, _, err := kv.Get(ctx, slot); err == nil {
					t.Fatalf("Get(%q): expected error", slot)
				}
			}
			if data, _, _ := kv.Get(ctx, "b"); string(data) != "plain" {
				t.Fatalf("slot b overwritten: %q", data)
			}
		})
	}
}

func TestKV_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	kvs := openBackends(t)
	for _, name := range []Backend{BackendFile, BackendBbolt} {
		if err := kvs[name].Put(ctx, "slot", []byte("x")); err == nil {
			t.Fatalf("%s: expected error on canceled context", name)
		}
	}
}

func TestBboltKV_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "blockpad.db")

	kv, err := NewBboltKV(path)
	if err != nil {
		t.Fatalf("NewBboltKV: %v", err)
	}
	if err := kv.Put(ctx, "editorContent", []byte("kept")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	kv, err = NewBboltKV(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv.Close()
	data, ok, err := kv.Get(ctx, "editorContent")
	if err != nil || !ok || string(data) != "kept" {
		t.Fatalf("Get after reopen: data=%q ok=%v err=%v", data, ok, err)
	}
}

func TestFileKV_AtomicWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}
	if err := kv.Put(context.Background(), "editorContent", []byte("{}")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "editorContent.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("unexpected files: %v", names)
	}
}

func TestOpenAndParseBackend(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		raw  string
		path string
	}{
		{"memory", ""},
		{" FILE ", filepath.Join(dir, "docs")},
		{"bbolt", filepath.Join(dir, "blockpad.db")},
	}
	for _, tc := range cases {
		backend, err := ParseBackend(tc.raw)
		if err != nil {
			t.Fatalf("ParseBackend(%q): %v", tc.raw, err)
		}
		kv, err := Open(backend, tc.path)
		if err != nil {
			t.Fatalf("Open(%q): %v", backend, err)
		}
		_ = kv.Close()
	}

	if _, err := ParseBackend("redis"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	if _, err := Open(BackendFile, ""); err == nil {
		t.Fatalf("expected error for file backend without a directory")
	}
}
