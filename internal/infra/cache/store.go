// Package cache provides a file-backed, time-bounded cache for search
// results, keyed by query fingerprint.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lucasmt/tunesort/internal/domain/catalog"
)

// DefaultRoot is the default cache root directory.
const DefaultRoot = "./cache"

// Entry is the persisted cache record: the fetch timestamp plus the raw
// payload, round-tripped exactly through JSON.
type Entry struct {
	FetchedAt time.Time         `json:"fetched_at"`
	Songs     []catalog.RawSong `json:"songs"`
}

// Store persists one JSON file per fingerprint under a single root
// directory. Expiry is lazy: expired entries are treated as misses at read
// time and never deleted. Concurrent writers to the same fingerprint race
// with last-write-wins semantics, which the cache tolerates.
type Store struct {
	root string
	now  func() time.Time
}

// Option is a functional option for configuring the store.
type Option func(*Store)

// WithClock overrides the time source (useful for expiry tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store rooted at the given directory.
func NewStore(root string, opts ...Option) *Store {
	if root == "" {
		root = DefaultRoot
	}
	s := &Store{
		root: root,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fingerprint derives the deterministic cache key for a search query.
// Whitespace runs collapse to underscores; case is preserved.
func (s *Store) Fingerprint(query string) string {
	return "music_search_" + strings.Join(strings.Fields(query), "_")
}

// Get returns the cached payload for fingerprint if a fresh entry exists.
// Any read or decode failure is a miss, never an error: cache trouble must
// not fail the request.
func (s *Store) Get(fingerprint string, ttl time.Duration) ([]catalog.RawSong, bool) {
	data, err := os.ReadFile(s.entryPath(fingerprint))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Warn().Err(err).Str("fingerprint", fingerprint).Msg("Corrupt cache entry, treating as miss")
		return nil, false
	}

	if s.now().Sub(entry.FetchedAt) >= ttl {
		log.Debug().
			Str("fingerprint", fingerprint).
			Time("fetchedAt", entry.FetchedAt).
			Msg("Cache entry expired")
		return nil, false
	}

	return entry.Songs, true
}

// Put stores the payload under fingerprint with the current timestamp,
// unconditionally overwriting any prior entry.
func (s *Store) Put(fingerprint string, songs []catalog.RawSong) error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(Entry{FetchedAt: s.now(), Songs: songs}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.entryPath(fingerprint), data, 0644)
}

func (s *Store) entryPath(fingerprint string) string {
	return filepath.Join(s.root, fingerprint+".json")
}
