package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/MKhiriev/daybook/internal/config"
)

var bucketDaybook = []byte("daybook")

// BoltKV is a durable key/value file. The file is locked while open, so a
// second process opening the same path waits for cfg.OpenTimeout and fails.
type BoltKV struct {
	db *bbolt.DB
}

// NewBoltKV opens (or creates) the KV file named by cfg.Path.
func NewBoltKV(cfg config.Queue) (*BoltKV, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create kv directory: %w", err)
		}
	}

	db, err := bbolt.Open(cfg.Path, 0o600, &bbolt.Options{Timeout: cfg.OpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketDaybook); err != nil {
			return fmt.Errorf("failed to create daybook bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltKV{db: db}, nil
}

// Get returns a copy of the value stored under key, or nil when absent.
func (kv *BoltKV) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte

	err := kv.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketDaybook)
		if bucket == nil {
			return ErrBucketMissing
		}

		if v := bucket.Get([]byte(key)); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}

	return value, nil
}

// Put stores value under key and syncs the file before returning.
func (kv *BoltKV) Put(_ context.Context, key string, value []byte) error {
	err := kv.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketDaybook)
		if bucket == nil {
			return ErrBucketMissing
		}
		return bucket.Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Removing an absent key is not an error.
func (kv *BoltKV) Delete(_ context.Context, key string) error {
	err := kv.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketDaybook)
		if bucket == nil {
			return ErrBucketMissing
		}
		return bucket.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Close closes the file and releases its lock.
func (kv *BoltKV) Close() error {
	if kv.db == nil {
		return nil
	}
	err := kv.db.Close()
	kv.db = nil
	return err
}
