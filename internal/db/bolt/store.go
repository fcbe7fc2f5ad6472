// Package bolt implements db.Store on a single bbolt file. It is the default
// driver: carts, sessions, and the embedding cache fit comfortably in one
// file, and bbolt's transactional writes replace the whole-file JSON rewrite
// the service previously relied on.
package bolt

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/mamatega/assistant/internal/db"
)

var _ db.Store = (*Store)(nil)

var bucketName = []byte("kv")

// entry layout: 8-byte big-endian unix-nano deadline (0 = no expiry),
// followed by the raw value.
const deadlineSize = 8

// Store implements db.Store via bbolt.
type Store struct {
	db   *bbolt.DB
	path string
}

// NewStore opens (or creates) the bbolt file at path.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &db.Error{Op: db.OpOpen, Err: err}
	}

	bdb, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, &db.Error{Op: db.OpOpen, Err: fmt.Errorf("open %s: %w", path, err)}
	}

	err = bdb.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = bdb.Close()
		return nil, &db.Error{Op: db.OpOpen, Err: err}
	}

	return &Store{db: bdb, path: path}, nil
}

// Ping verifies the file handle is usable.
func (s *Store) Ping(_ context.Context) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketName) == nil {
			return fmt.Errorf("bucket %q missing", bucketName)
		}
		return nil
	})
}

// Get retrieves a value by key. Expired entries are reported as missing and
// lazily removed on the next write transaction touching them.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketName).Get([]byte(key))
		if raw == nil {
			return db.ErrKeyNotFound
		}
		deadline, payload, err := decodeEntry(raw)
		if err != nil {
			return err
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return db.ErrKeyNotFound
		}
		value = append([]byte(nil), payload...)
		return nil
	})
	if err != nil {
		if err == db.ErrKeyNotFound {
			return nil, err
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return value, nil
}

// Set stores a value without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.put(key, value, time.Time{})
}

// SetWithTTL stores a value that expires after ttl.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	return s.put(key, value, time.Now().Add(ttl))
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	if err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}

// Close releases the file handle.
func (s *Store) Close() {
	_ = s.db.Close()
}

// WaitForReady satisfies db.Store; a local file is ready once opened.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

func (s *Store) put(key string, value []byte, deadline time.Time) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), encodeEntry(deadline, value))
	})
	if err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

func encodeEntry(deadline time.Time, value []byte) []byte {
	buf := make([]byte, deadlineSize+len(value))
	if !deadline.IsZero() {
		binary.BigEndian.PutUint64(buf, uint64(deadline.UnixNano()))
	}
	copy(buf[deadlineSize:], value)
	return buf
}

func decodeEntry(raw []byte) (time.Time, []byte, error) {
	if len(raw) < deadlineSize {
		return time.Time{}, nil, fmt.Errorf("corrupt entry: %d bytes", len(raw))
	}
	nanos := binary.BigEndian.Uint64(raw[:deadlineSize])
	var deadline time.Time
	if nanos != 0 {
		deadline = time.Unix(0, int64(nanos))
	}
	return deadline, raw[deadlineSize:], nil
}
