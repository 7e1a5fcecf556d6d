// Package boltstore provides a bbolt storage backend for kvgate.
// Every lookup opens the store file read-only, runs a single read
// transaction and closes the file before returning.
package boltstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/sagarc03/kvgate"
)

// DefaultLockTimeout bounds the wait for the shared file lock.
const DefaultLockTimeout = 100 * time.Millisecond

// Options configures a Reader.
type Options struct {
	// LockTimeout bounds how long an open waits on a writer's exclusive lock.
	// Zero selects DefaultLockTimeout; bbolt would otherwise wait forever.
	LockTimeout time.Duration
	// MaxValueSize rejects values larger than this many bytes with
	// kvgate.ErrAllocation. Zero means no limit.
	MaxValueSize int
}

// Reader performs open-per-call lookups against bbolt files.
// It holds no handles and is safe for concurrent use.
type Reader struct {
	opts Options
}

// NewReader creates a Reader with the given options.
func NewReader(opts Options) *Reader {
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = DefaultLockTimeout
	}
	return &Reader{opts: opts}
}

// Lookup returns a copy of the value stored under key in route's bucket.
// A missing bucket is treated as an empty store.
func (r *Reader) Lookup(ctx context.Context, route kvgate.RouteConfig, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db, err := r.open(route.StorePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	return r.get(db, []byte(route.Bucket), key)
}

func (r *Reader) open(path string) (db *bolt.DB, err error) {
	if path == "" {
		return nil, fmt.Errorf("store path not configured: %w", kvgate.ErrStoreOpen)
	}

	defer func() {
		if p := recover(); p != nil {
			db, err = nil, fmt.Errorf("open %s: panic: %v: %w", path, p, kvgate.ErrStoreOpen)
		}
	}()

	db, err = bolt.Open(path, 0o600, &bolt.Options{
		ReadOnly: true,
		Timeout:  r.opts.LockTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, err, kvgate.ErrStoreOpen)
	}
	return db, nil
}

// get copies the value out while the transaction still pins the mapping.
func (r *Reader) get(db *bolt.DB, bucket, key []byte) (value []byte, err error) {
	defer func() {
		if p := recover(); p != nil {
			value, err = nil, fmt.Errorf("view: panic: %v: %w", p, kvgate.ErrStoreRead)
		}
	}()

	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return kvgate.ErrNotFound
		}

		v := b.Get(key)
		if v == nil {
			return kvgate.ErrNotFound
		}

		if r.opts.MaxValueSize > 0 && len(v) > r.opts.MaxValueSize {
			return fmt.Errorf("value is %d bytes (limit %d): %w", len(v), r.opts.MaxValueSize, kvgate.ErrAllocation)
		}

		value = bytes.Clone(v)
		return nil
	})
	switch {
	case err == nil:
		return value, nil
	case errors.Is(err, kvgate.ErrNotFound), errors.Is(err, kvgate.ErrAllocation), errors.Is(err, kvgate.ErrStoreRead):
		return nil, err
	default:
		return nil, fmt.Errorf("view: %w: %w", err, kvgate.ErrStoreRead)
	}
}
