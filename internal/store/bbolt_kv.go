package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketSlots = []byte("slots")

type bboltKV struct {
	db *bolt.DB
}

func NewBboltKV(path string) (KV, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSlots)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &bboltKV{db: db}, nil
}

func (s *bboltKV) Get(ctx context.Context, slot string) ([]byte, bool, error) {
	if err := validateSlot(slot); err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	var (
		data []byte
		ok   bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSlots)
		if b == nil {
			return nil
		}
		raw := b.Get([]byte(slot))
		if raw == nil {
			return nil
		}
		// raw is only valid inside the transaction.
		data = append([]byte(nil), raw...)
		ok = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, ok, nil
}

func (s *bboltKV) Put(ctx context.Context, slot string, data []byte) error {
	if err := validateSlot(slot); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSlots)
		if b == nil {
			return errors.New("slots bucket missing")
		}
		return b.Put([]byte(slot), data)
	})
}

func (s *bboltKV) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
