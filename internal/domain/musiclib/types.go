// Package musiclib orchestrates music metadata retrieval: cache-aware
// search, playlist expansion and the liked-songs bulk fetch.
package musiclib

import (
	"context"
	"time"

	"github.com/lucasmt/tunesort/internal/domain/catalog"
)

// PageItem is one entry of a playlist page. VideoID is empty when the
// underlying video is no longer resolvable (e.g. deleted after being
// liked).
type PageItem struct {
	VideoID      string
	Title        string
	Position     int
	PublishedAt  time.Time
	ChannelTitle string
}

// Page is one page of a paginated collection. An empty NextPageToken means
// the source is exhausted.
type Page struct {
	Items         []PageItem
	NextPageToken string
}

// VideoDetails carries the per-video fields that playlist and search
// snippets do not include.
type VideoDetails struct {
	DurationSeconds int
	ViewCount       int64
	LikeCount       int64
	Tags            []string
	CategoryID      string
}

// Retriever is the remote provider boundary. Implementations perform the
// actual network calls; this package only consumes their output shape and
// drives pagination stopping conditions.
type Retriever interface {
	// SearchMusic returns up to maxResults music videos for a free-text
	// query, with per-video details already merged.
	SearchMusic(ctx context.Context, query string, maxResults int) ([]catalog.RawSong, error)

	// PlaylistPage fetches one page of a named playlist.
	PlaylistPage(ctx context.Context, playlistID string, pageSize int, pageToken string) (Page, error)

	// VideoDetails fetches statistics and content details for a video.
	VideoDetails(ctx context.Context, videoID string) (VideoDetails, error)

	// LikesPlaylistID resolves the authenticated user's liked-videos
	// playlist. Requires OAuth.
	LikesPlaylistID(ctx context.Context) (string, error)
}
