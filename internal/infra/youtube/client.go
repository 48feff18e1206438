package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lucasmt/tunesort/internal/domain/catalog"
	"github.com/lucasmt/tunesort/internal/domain/musiclib"
)

const (
	// DefaultBaseURL is the YouTube Data API v3 base URL.
	DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

	// DefaultUserAgent identifies this client to the API.
	DefaultUserAgent = "Tunesort/0.3.0 (https://github.com/lucasmt/tunesort)"

	// DefaultTimeout for HTTP requests.
	DefaultTimeout = 30 * time.Second

	// musicCategoryID restricts searches to the Music video category.
	musicCategoryID = "10"

	// musicTopicID is the Freebase topic ID for music.
	musicTopicID = "/m/04rlf"
)

// ErrNotFound indicates the requested resource does not exist.
var ErrNotFound = errors.New("resource not found")

// Client is a YouTube Data API v3 client. It authenticates with either an
// API key or an OAuth-aware http.Client supplied via WithHTTPClient.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
}

var _ musiclib.Retriever = (*Client)(nil)

// Option is a functional option for configuring the client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient sets a custom HTTP client, typically an OAuth token
// client for endpoints that need user authorization.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// NewClient creates a new API client. apiKey may be empty when an OAuth
// http.Client is supplied instead.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		apiKey:    apiKey,
		userAgent: DefaultUserAgent,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchMusic searches for music videos matching query and merges per-video
// details into each result. A failed detail lookup keeps the song with
// snippet-only data; partial failure never drops a row.
func (c *Client) SearchMusic(ctx context.Context, query string, maxResults int) ([]catalog.RawSong, error) {
	params := url.Values{
		"part":            {"id,snippet"},
		"q":               {query},
		"maxResults":      {fmt.Sprint(maxResults)},
		"type":            {"video"},
		"videoCategoryId": {musicCategoryID},
		"topicId":         {musicTopicID},
	}

	var resp searchResponse
	if err := c.get(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}

	songs := make([]catalog.RawSong, 0, len(resp.Items))
	for _, item := range resp.Items {
		song := catalog.RawSong{
			ID:           item.ID.VideoID,
			Title:        item.Snippet.Title,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
			Description:  item.Snippet.Description,
			ThumbnailURL: item.Snippet.highThumbnail(),
		}

		details, err := c.VideoDetails(ctx, item.ID.VideoID)
		if err != nil {
			log.Debug().Err(err).Str("videoId", item.ID.VideoID).Msg("Video details unavailable, keeping snippet data")
		} else {
			applyDetails(&song, details)
		}

		songs = append(songs, song)
	}
	return songs, nil
}

// VideoDetails fetches statistics and content details for a single video.
func (c *Client) VideoDetails(ctx context.Context, videoID string) (musiclib.VideoDetails, error) {
	params := url.Values{
		"part": {"snippet,contentDetails,statistics"},
		"id":   {videoID},
	}

	var resp videosResponse
	if err := c.get(ctx, "/videos", params, &resp); err != nil {
		return musiclib.VideoDetails{}, err
	}
	if len(resp.Items) == 0 {
		return musiclib.VideoDetails{}, ErrNotFound
	}

	video := resp.Items[0]
	return musiclib.VideoDetails{
		DurationSeconds: parseISODuration(video.ContentDetails.Duration),
		ViewCount:       parseCount(video.Statistics.ViewCount),
		LikeCount:       parseCount(video.Statistics.LikeCount),
		Tags:            video.Snippet.Tags,
		CategoryID:      video.Snippet.CategoryID,
	}, nil
}

// PlaylistPage fetches one page of playlist items.
func (c *Client) PlaylistPage(ctx context.Context, playlistID string, pageSize int, pageToken string) (musiclib.Page, error) {
	params := url.Values{
		"part":       {"snippet,contentDetails"},
		"playlistId": {playlistID},
		"maxResults": {fmt.Sprint(pageSize)},
	}
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var resp playlistItemsResponse
	if err := c.get(ctx, "/playlistItems", params, &resp); err != nil {
		return musiclib.Page{}, err
	}

	page := musiclib.Page{NextPageToken: resp.NextPageToken}
	for _, item := range resp.Items {
		page.Items = append(page.Items, musiclib.PageItem{
			VideoID:      item.ContentDetails.VideoID,
			Title:        item.Snippet.Title,
			Position:     item.Snippet.Position,
			PublishedAt:  item.Snippet.PublishedAt,
			ChannelTitle: item.Snippet.ChannelTitle,
		})
	}
	return page, nil
}

// LikesPlaylistID resolves the authenticated channel's liked-videos
// playlist ID. Requires an OAuth http.Client.
func (c *Client) LikesPlaylistID(ctx context.Context) (string, error) {
	params := url.Values{
		"part": {"contentDetails"},
		"mine": {"true"},
	}

	var resp channelsResponse
	if err := c.get(ctx, "/channels", params, &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("no channel for authenticated user: %w", ErrNotFound)
	}
	return resp.Items[0].ContentDetails.RelatedPlaylists.Likes, nil
}

// get performs a GET request against the API and decodes the response into
// out. Non-2xx responses are returned as *APIError with the provider's
// status code and message.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	requestURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var envelope errorEnvelope
		if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
			apiErr.Message = envelope.Error.Message
			if envelope.Error.Code != 0 {
				apiErr.StatusCode = envelope.Error.Code
			}
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func applyDetails(song *catalog.RawSong, details musiclib.VideoDetails) {
	song.DurationSeconds = details.DurationSeconds
	song.ViewCount = details.ViewCount
	song.LikeCount = details.LikeCount
	song.Tags = details.Tags
	song.CategoryID = details.CategoryID
}
