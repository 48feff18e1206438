// Package youtube implements the YouTube Data API v3 retriever.
package youtube

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// APIError is a provider failure surfaced with the status code and message
// from the API error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("youtube api: status %d: %s", e.StatusCode, e.Message)
}

// Status exposes the provider status code to callers that log it without
// depending on this package.
func (e *APIError) Status() int {
	return e.StatusCode
}

// errorEnvelope is the standard Google API error response body.
type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type thumbnail struct {
	URL string `json:"url"`
}

type snippet struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	PublishedAt  time.Time            `json:"publishedAt"`
	ChannelTitle string               `json:"channelTitle"`
	Thumbnails   map[string]thumbnail `json:"thumbnails"`
	Tags         []string             `json:"tags"`
	CategoryID   string               `json:"categoryId"`
	Position     int                  `json:"position"`
}

// highThumbnail prefers the high-resolution variant like the upstream API
// consumers do, falling back to whatever default is present.
func (s snippet) highThumbnail() string {
	if t, ok := s.Thumbnails["high"]; ok {
		return t.URL
	}
	if t, ok := s.Thumbnails["default"]; ok {
		return t.URL
	}
	return ""
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet snippet `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		Snippet        snippet `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
			LikeCount string `json:"likeCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type playlistItemsResponse struct {
	Items []struct {
		Snippet        snippet `json:"snippet"`
		ContentDetails struct {
			VideoID string `json:"videoId"`
		} `json:"contentDetails"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

type channelsResponse struct {
	Items []struct {
		ContentDetails struct {
			RelatedPlaylists struct {
				Likes string `json:"likes"`
			} `json:"relatedPlaylists"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// parseISODuration converts an ISO-8601 video duration (PT#H#M#S) to
// seconds. Malformed input yields 0.
func parseISODuration(s string) int {
	s = strings.TrimPrefix(s, "PT")
	seconds := 0

	if i := strings.IndexByte(s, 'H'); i >= 0 {
		if h, err := strconv.Atoi(s[:i]); err == nil {
			seconds += h * 3600
		}
		s = s[i+1:]
	}
	if i := strings.IndexByte(s, 'M'); i >= 0 {
		if m, err := strconv.Atoi(s[:i]); err == nil {
			seconds += m * 60
		}
		s = s[i+1:]
	}
	if i := strings.IndexByte(s, 'S'); i >= 0 {
		if sec, err := strconv.Atoi(s[:i]); err == nil {
			seconds += sec
		}
	}
	return seconds
}

// parseCount parses the string-encoded counters the API returns. Absent or
// malformed counters yield 0.
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
