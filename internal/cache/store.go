// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package cache

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/reelpick/internal/recommend"
)

// Key prefix for BadgerDB storage
const genreKeyPrefix = "genres:"

// GenreStore persists genre lookups in BadgerDB with a per-entry TTL.
type GenreStore struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenGenreStore opens (or creates) a store at path. An empty path opens
// an in-memory store, which is what tests use.
func OpenGenreStore(path string, ttl time.Duration) (*GenreStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Suppress BadgerDB internal logs
	opts.ValueLogFileSize = 16 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for genres: %w", err)
	}
	return &GenreStore{db: db, ttl: ttl}, nil
}

// Close releases the underlying database.
func (s *GenreStore) Close() error {
	return s.db.Close()
}

// Get returns the stored genres for ref.
func (s *GenreStore) Get(ref recommend.ContentRef) ([]string, bool, error) {
	var genres []string

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(genreKey(ref))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &genres)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get genres: %w", err)
	}
	return genres, true, nil
}

// Set stores genres for ref.
func (s *GenreStore) Set(ref recommend.ContentRef, genres []string) error {
	data, err := json.Marshal(genres)
	if err != nil {
		return fmt.Errorf("marshal genres: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(genreKey(ref), data)
		if s.ttl > 0 {
			e = e.WithTTL(s.ttl)
		}
		return txn.SetEntry(e)
	})
}

func genreKey(ref recommend.ContentRef) []byte {
	return []byte(genreKeyPrefix + string(ref.Medium) + ":" + strconv.Itoa(ref.ExternalID))
}
