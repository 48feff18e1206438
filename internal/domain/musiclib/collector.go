package musiclib

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/lucasmt/tunesort/internal/domain/catalog"
)

type collectState int

const (
	collectFetching collectState = iota
	collectDone
)

// likedCollector accumulates songs from the liked-videos playlist one page
// at a time. Each step requests min(pageLimit, remaining) items, skips
// entries without a resolvable video ID without counting them, and stops
// when the requested maximum is reached or a page carries no continuation
// token. The result may be shorter than requested if the source runs out.
type likedCollector struct {
	service    *Service
	playlistID string
	max        int

	state     collectState
	pageToken string
	songs     []catalog.RawSong
}

func newLikedCollector(service *Service, playlistID string, max int) *likedCollector {
	return &likedCollector{
		service:    service,
		playlistID: playlistID,
		max:        max,
		state:      collectFetching,
	}
}

func (c *likedCollector) run(ctx context.Context) ([]catalog.RawSong, error) {
	for c.state == collectFetching {
		if err := c.step(ctx); err != nil {
			return nil, err
		}
	}
	return c.songs, nil
}

func (c *likedCollector) step(ctx context.Context) error {
	// Stop before fetching once the maximum is reached. A zero or negative
	// maximum must never issue a request.
	remaining := c.max - len(c.songs)
	if remaining <= 0 {
		c.state = collectDone
		return nil
	}

	pageSize := c.service.pageLimit
	if remaining < pageSize {
		pageSize = remaining
	}

	page, err := c.service.retriever.PlaylistPage(ctx, c.playlistID, pageSize, c.pageToken)
	if err != nil {
		return err
	}

	skipped := 0
	for _, item := range page.Items {
		if item.VideoID == "" {
			skipped++
			continue
		}
		c.songs = append(c.songs, c.service.resolveSong(ctx, item))
		if len(c.songs) >= c.max {
			c.state = collectDone
			return nil
		}
	}

	if skipped > 0 {
		log.Debug().Int("skipped", skipped).Msg("Skipped playlist entries without a video ID")
	}

	if page.NextPageToken == "" {
		c.state = collectDone
		return nil
	}
	c.pageToken = page.NextPageToken
	return nil
}
