package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// yearPattern matches a 4-digit year in [1900,2029] at word boundaries.
// This is intentionally stricter than the substring matching used for
// keywords: "193847" must not yield 1938.
var yearPattern = regexp.MustCompile(`\b(19[0-9]{2}|20[0-2][0-9])\b`)

// Classifier maps song text and tags to a single genre, a single mood and
// an optional release year. It is a pure function of its inputs and the
// taxonomy it was constructed with: no I/O, no hidden state.
type Classifier struct {
	taxonomy Taxonomy
}

// NewClassifier creates a classifier over the given taxonomy.
func NewClassifier(taxonomy Taxonomy) *Classifier {
	return &Classifier{taxonomy: taxonomy}
}

// Classify enriches a raw song with genre, mood and release year derived
// from its title, description and tags.
func (c *Classifier) Classify(song RawSong) ClassifiedSong {
	tags := make([]string, len(song.Tags))
	for i, tag := range song.Tags {
		tags[i] = strings.ToLower(tag)
	}

	text := strings.ToLower(song.Title) + " " +
		strings.ToLower(song.Description) + " " +
		strings.Join(tags, " ")

	year, _ := c.ExtractYear(text)

	return ClassifiedSong{
		RawSong:     song,
		Genre:       c.DetectGenre(text, tags),
		Mood:        c.DetectMood(text, tags),
		ReleaseYear: year,
	}
}

// ClassifyAll classifies a batch of songs, preserving order.
func (c *Classifier) ClassifyAll(songs []RawSong) Table {
	rows := make([]ClassifiedSong, 0, len(songs))
	for _, song := range songs {
		rows = append(rows, c.Classify(song))
	}
	return Table{Rows: rows}
}

// DetectGenre returns the first genre whose keywords match, or "unknown".
// A keyword matches when it is a substring of text or an exact element of
// tags. Substring matching is deliberately permissive ("pop" matches inside
// "popular"); do not tighten it to word boundaries.
func (c *Classifier) DetectGenre(text string, tags []string) string {
	if name, ok := firstMatch(c.taxonomy.Genres, text, tags); ok {
		return name
	}
	return GenreUnknown
}

// DetectMood returns the first mood whose keywords match, or "other".
func (c *Classifier) DetectMood(text string, tags []string) string {
	if name, ok := firstMatch(c.taxonomy.Moods, text, tags); ok {
		return name
	}
	return MoodOther
}

// ExtractYear returns the first plausible 4-digit year in text. Later
// years in the same text are ignored.
func (c *Classifier) ExtractYear(text string) (int, bool) {
	match := yearPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return year, true
}

// firstMatch iterates categories in table order and returns the first one
// with a matching keyword. Table order is the tie-break rule.
func firstMatch(table []Category, text string, tags []string) (string, bool) {
	for _, category := range table {
		for _, keyword := range category.Keywords {
			if strings.Contains(text, keyword) || containsExact(tags, keyword) {
				return category.Name, true
			}
		}
	}
	return "", false
}

func containsExact(tags []string, keyword string) bool {
	for _, tag := range tags {
		if tag == keyword {
			return true
		}
	}
	return false
}
