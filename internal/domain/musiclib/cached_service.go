package musiclib

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lucasmt/tunesort/internal/domain/catalog"
	"github.com/lucasmt/tunesort/internal/infra/cache"
)

// CachedService wraps Service with a query result cache and the fail-soft
// error policy: provider failures are logged with their status code and
// collapse to an empty result so a partial failure never aborts the run.
type CachedService struct {
	*Service
	store        *cache.Store
	ttl          time.Duration
	cacheEnabled bool
}

// NewCachedService creates the cache-aware retrieval facade. A nil store
// disables caching; every search then goes to the retriever.
func NewCachedService(retriever Retriever, store *cache.Store, ttl time.Duration, pageLimit int) *CachedService {
	base := NewService(retriever, pageLimit)

	if store == nil {
		return &CachedService{
			Service:      base,
			cacheEnabled: false,
		}
	}
	return &CachedService{
		Service:      base,
		store:        store,
		ttl:          ttl,
		cacheEnabled: true,
	}
}

// Search returns search results, checking the cache first. Fresh results
// are cached best-effort; failed fetches are never cached.
func (s *CachedService) Search(ctx context.Context, query string, maxResults int) []catalog.RawSong {
	var fingerprint string
	if s.cacheEnabled {
		fingerprint = s.store.Fingerprint(query)
		if songs, ok := s.store.Get(fingerprint, s.ttl); ok {
			log.Info().Str("query", query).Int("count", len(songs)).Msg("Using cached search results")
			return songs
		}
	}

	songs, err := s.Service.Search(ctx, query, maxResults)
	if err != nil {
		logProviderError(err, "search")
		return nil
	}

	if s.cacheEnabled {
		if err := s.store.Put(fingerprint, songs); err != nil {
			log.Warn().Err(err).Str("fingerprint", fingerprint).Msg("Failed to write cache entry")
		}
	}
	return songs
}

// PlaylistSongs fetches playlist entries, collapsing provider failures to
// an empty result.
func (s *CachedService) PlaylistSongs(ctx context.Context, playlistID string, maxResults int) []catalog.RawSong {
	songs, err := s.Service.PlaylistSongs(ctx, playlistID, maxResults)
	if err != nil {
		logProviderError(err, "playlist")
		return nil
	}
	return songs
}

// LikedSongs bulk-fetches liked videos, collapsing provider failures to an
// empty result.
func (s *CachedService) LikedSongs(ctx context.Context, maxResults int) []catalog.RawSong {
	songs, err := s.Service.LikedSongs(ctx, maxResults)
	if err != nil {
		logProviderError(err, "liked")
		return nil
	}
	return songs
}

// IsCacheEnabled returns whether search caching is active.
func (s *CachedService) IsCacheEnabled() bool {
	return s.cacheEnabled
}

// StatusCoded is the shape provider errors carry their HTTP status in.
type StatusCoded interface {
	error
	Status() int
}

func logProviderError(err error, operation string) {
	event := log.Error().Str("operation", operation)
	var coded StatusCoded
	if errors.As(err, &coded) {
		event = event.Int("statusCode", coded.Status())
	}
	event.Err(err).Msg("Provider request failed, continuing with empty results")
}
