package musiclib

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/lucasmt/tunesort/internal/domain/catalog"
)

// DefaultPageLimit is the provider's maximum page size per call.
const DefaultPageLimit = 50

// Service drives the Retriever: search, playlist expansion and the
// liked-songs bulk fetch. It returns explicit errors; the fail-soft policy
// lives in CachedService.
type Service struct {
	retriever Retriever
	pageLimit int
}

// NewService creates a retrieval service over the given retriever.
func NewService(retriever Retriever, pageLimit int) *Service {
	if pageLimit <= 0 {
		pageLimit = DefaultPageLimit
	}
	return &Service{
		retriever: retriever,
		pageLimit: pageLimit,
	}
}

// Search returns up to maxResults music videos for a free-text query.
func (s *Service) Search(ctx context.Context, query string, maxResults int) ([]catalog.RawSong, error) {
	return s.retriever.SearchMusic(ctx, query, maxResults)
}

// PlaylistSongs fetches one page of a playlist and merges per-video
// details into each entry. Entries without a resolvable video ID are
// skipped; a failed detail lookup keeps the entry with snippet-only data.
func (s *Service) PlaylistSongs(ctx context.Context, playlistID string, maxResults int) ([]catalog.RawSong, error) {
	if maxResults <= 0 {
		return nil, nil
	}

	pageSize := maxResults
	if pageSize > s.pageLimit {
		pageSize = s.pageLimit
	}

	page, err := s.retriever.PlaylistPage(ctx, playlistID, pageSize, "")
	if err != nil {
		return nil, err
	}

	songs := make([]catalog.RawSong, 0, len(page.Items))
	for _, item := range page.Items {
		if item.VideoID == "" {
			continue
		}
		songs = append(songs, s.resolveSong(ctx, item))
	}
	return songs, nil
}

// LikedSongs bulk-fetches the authenticated user's liked videos up to
// maxResults, paging until the requested count is reached or the source is
// exhausted.
func (s *Service) LikedSongs(ctx context.Context, maxResults int) ([]catalog.RawSong, error) {
	if maxResults <= 0 {
		return nil, nil
	}

	playlistID, err := s.retriever.LikesPlaylistID(ctx)
	if err != nil {
		return nil, err
	}

	collector := newLikedCollector(s, playlistID, maxResults)
	return collector.run(ctx)
}

// resolveSong turns a page item into a RawSong, merging video details
// best-effort.
func (s *Service) resolveSong(ctx context.Context, item PageItem) catalog.RawSong {
	song := catalog.RawSong{
		ID:           item.VideoID,
		Title:        item.Title,
		Position:     item.Position,
		PublishedAt:  item.PublishedAt,
		ChannelTitle: item.ChannelTitle,
	}

	details, err := s.retriever.VideoDetails(ctx, item.VideoID)
	if err != nil {
		log.Debug().Err(err).Str("videoId", item.VideoID).Msg("Video details unavailable, keeping snippet data")
		return song
	}

	song.DurationSeconds = details.DurationSeconds
	song.ViewCount = details.ViewCount
	song.LikeCount = details.LikeCount
	song.Tags = details.Tags
	song.CategoryID = details.CategoryID
	return song
}
