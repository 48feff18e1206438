// Package catalog defines the song data model, the keyword classifier and
// the filter/sort reporting pipeline.
package catalog

import "time"

// Genre and mood sentinels returned when no category keyword matches.
const (
	GenreUnknown = "unknown"
	MoodOther    = "other"
)

// RawSong is a music video record as fetched from the provider. It is
// immutable once fetched.
type RawSong struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	ChannelTitle    string    `json:"channel"`
	PublishedAt     time.Time `json:"published_at,omitempty"`
	Description     string    `json:"description"`
	ThumbnailURL    string    `json:"thumbnail,omitempty"`
	DurationSeconds int       `json:"duration,omitempty"`
	ViewCount       int64     `json:"view_count,omitempty"`
	LikeCount       int64     `json:"like_count,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	CategoryID      string    `json:"category,omitempty"`
	Position        int       `json:"position,omitempty"`
}

// ClassifiedSong is a RawSong enriched with the derived genre, mood and
// release year. Genre and mood are always single-valued: the first matching
// category in table order wins. ReleaseYear is 0 when no year was found.
type ClassifiedSong struct {
	RawSong
	Genre       string `json:"genre"`
	Mood        string `json:"mood"`
	ReleaseYear int    `json:"release_year,omitempty"`
}

// Category is one named entry of a category table with its keyword list.
// Keyword order does not affect the outcome, only membership.
type Category struct {
	Name     string
	Keywords []string
}

// Taxonomy holds the genre and mood category tables. Tables are ordered
// slices, never maps: iteration order defines the tie-break priority and
// first-match-wins is a hard invariant.
type Taxonomy struct {
	Genres []Category
	Moods  []Category
}

// DefaultTaxonomy returns the built-in genre and mood tables.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Genres: []Category{
			{Name: "pop", Keywords: []string{"pop", "dance pop", "electropop"}},
			{Name: "rock", Keywords: []string{"rock", "alternative", "indie", "punk", "metal", "grunge"}},
			{Name: "hip hop", Keywords: []string{"hip hop", "rap", "trap", "drill", "r&b", "rnb"}},
			{Name: "electronic", Keywords: []string{"edm", "electronic", "house", "techno", "dubstep", "trance", "drum and bass"}},
			{Name: "country", Keywords: []string{"country", "folk", "bluegrass", "americana"}},
			{Name: "jazz", Keywords: []string{"jazz", "blues", "soul", "funk"}},
			{Name: "classical", Keywords: []string{"classical", "orchestra", "piano", "symphony", "concerto"}},
			{Name: "latin", Keywords: []string{"latin", "reggaeton", "salsa", "bachata", "cumbia"}},
			{Name: "k-pop", Keywords: []string{"k-pop", "kpop", "k pop"}},
			{Name: "j-pop", Keywords: []string{"j-pop", "jpop", "j pop"}},
		},
		Moods: []Category{
			{Name: "happy", Keywords: []string{"happy", "upbeat", "uplifting", "cheerful", "fun", "feel good", "party"}},
			{Name: "sad", Keywords: []string{"sad", "melancholy", "heartbreak", "emotional", "tearful", "ballad"}},
			{Name: "relaxing", Keywords: []string{"chill", "relax", "calm", "peaceful", "ambient", "sleep", "study"}},
			{Name: "energetic", Keywords: []string{"energetic", "workout", "fitness", "gym", "hype", "energy", "pump"}},
			{Name: "romantic", Keywords: []string{"love", "romantic", "romance", "wedding", "valentine"}},
		},
	}
}
