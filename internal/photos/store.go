// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package photos

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"golang.org/x/crypto/blake2b"

	"github.com/tomtom215/travelworld/internal/logging"
)

// Key prefixes for BadgerDB storage
const (
	blobKeyPrefix = "blob:"
	metaKeyPrefix = "meta:"
)

// ErrBlobNotFound is returned when no blob is stored under a key.
var ErrBlobNotFound = errors.New("photo blob not found")

// BlobMeta describes a stored blob.
type BlobMeta struct {
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	ETag        string    `json:"etag"`
	StoredAt    time.Time `json:"stored_at"`
}

// Blob is a stored photo with its metadata.
type Blob struct {
	BlobMeta
	Data []byte
}

// BlobStore persists photo bytes by storage path.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (BlobMeta, error)
	Get(ctx context.Context, key string) (*Blob, error)
	Delete(ctx context.Context, key string) error
}

// BadgerStore implements BlobStore using BadgerDB. Bytes and metadata are
// written in one transaction so a blob is never visible without its meta.
type BadgerStore struct {
	db       *badger.DB
	inMemory bool
}

// OpenBadgerStore opens the store at path. An empty path or ":memory:"
// opens an in-memory store, used by tests and ephemeral deployments.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	inMemory := path == "" || path == ":memory:"

	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger photo store: %w", err)
	}

	logging.Info().Str("path", path).Bool("in_memory", inMemory).Msg("Photo store opened")
	return &BadgerStore{db: db, inMemory: inMemory}, nil
}

// ETag returns a strong entity tag for data.
func ETag(data []byte) string {
	sum := blake2b.Sum256(data)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// Put stores data under key, replacing any previous blob.
func (s *BadgerStore) Put(ctx context.Context, key string, data []byte, contentType string) (BlobMeta, error) {
	if err := ctx.Err(); err != nil {
		return BlobMeta{}, err
	}

	meta := BlobMeta{
		ContentType: contentType,
		Size:        int64(len(data)),
		ETag:        ETag(data),
		StoredAt:    time.Now().UTC(),
	}
	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return BlobMeta{}, fmt.Errorf("marshal blob meta: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(blobKeyPrefix+key), data); err != nil {
			return fmt.Errorf("set blob: %w", err)
		}
		if err := txn.Set([]byte(metaKeyPrefix+key), metaBytes); err != nil {
			return fmt.Errorf("set blob meta: %w", err)
		}
		return nil
	})
	if err != nil {
		return BlobMeta{}, err
	}
	return meta, nil
}

// Get returns the blob stored under key.
func (s *BadgerStore) Get(ctx context.Context, key string) (*Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var blob Blob
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(metaKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrBlobNotFound
		}
		if err != nil {
			return fmt.Errorf("get blob meta: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &blob.BlobMeta)
		}); err != nil {
			return fmt.Errorf("decode blob meta: %w", err)
		}

		item, err = txn.Get([]byte(blobKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrBlobNotFound
		}
		if err != nil {
			return fmt.Errorf("get blob: %w", err)
		}
		blob.Data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &blob, nil
}

// Delete removes the blob under key. Deleting a missing blob is not an error.
func (s *BadgerStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(blobKeyPrefix + key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete blob: %w", err)
		}
		if err := txn.Delete([]byte(metaKeyPrefix + key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete blob meta: %w", err)
		}
		return nil
	})
}

// Keys lists stored blob keys with the given prefix, e.g. "user/trip/".
func (s *BadgerStore) Keys(prefix string) ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(metaKeyPrefix + prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			keys = append(keys, string(it.Item().Key()[len(metaKeyPrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}
	return keys, nil
}

// RunValueLogGC reclaims space from deleted blobs. It is a no-op for
// in-memory stores.
func (s *BadgerStore) RunValueLogGC(discardRatio float64) error {
	if s.inMemory {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(discardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Close closes the underlying BadgerDB.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
