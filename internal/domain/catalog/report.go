package catalog

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Table is an ordered collection of classified songs with a fixed column
// schema, ready for columnar export or filtering and sorting.
type Table struct {
	Rows []ClassifiedSong
}

type columnKind int

const (
	kindString columnKind = iota
	kindInt
	kindTime
)

type column struct {
	kind columnKind
	str  func(ClassifiedSong) string
	num  func(ClassifiedSong) int64
	ts   func(ClassifiedSong) time.Time
}

// Columns lists the schema in export order.
var Columns = []string{
	"id", "title", "channel", "published_at", "description", "thumbnail",
	"duration", "view_count", "like_count", "tags", "category", "position",
	"genre", "mood", "release_year",
}

var columns = map[string]column{
	"id":           {kind: kindString, str: func(s ClassifiedSong) string { return s.ID }},
	"title":        {kind: kindString, str: func(s ClassifiedSong) string { return s.Title }},
	"channel":      {kind: kindString, str: func(s ClassifiedSong) string { return s.ChannelTitle }},
	"published_at": {kind: kindTime, ts: func(s ClassifiedSong) time.Time { return s.PublishedAt }},
	"description":  {kind: kindString, str: func(s ClassifiedSong) string { return s.Description }},
	"thumbnail":    {kind: kindString, str: func(s ClassifiedSong) string { return s.ThumbnailURL }},
	"duration":     {kind: kindInt, num: func(s ClassifiedSong) int64 { return int64(s.DurationSeconds) }},
	"view_count":   {kind: kindInt, num: func(s ClassifiedSong) int64 { return s.ViewCount }},
	"like_count":   {kind: kindInt, num: func(s ClassifiedSong) int64 { return s.LikeCount }},
	"tags":         {kind: kindString, str: func(s ClassifiedSong) string { return strings.Join(s.Tags, "|") }},
	"category":     {kind: kindString, str: func(s ClassifiedSong) string { return s.CategoryID }},
	"position":     {kind: kindInt, num: func(s ClassifiedSong) int64 { return int64(s.Position) }},
	"genre":        {kind: kindString, str: func(s ClassifiedSong) string { return s.Genre }},
	"mood":         {kind: kindString, str: func(s ClassifiedSong) string { return s.Mood }},
	"release_year": {kind: kindInt, num: func(s ClassifiedSong) int64 { return int64(s.ReleaseYear) }},
}

// HasColumn reports whether attr is part of the table schema.
func HasColumn(attr string) bool {
	_, ok := columns[attr]
	return ok
}

// CellString renders a single cell as text, for CSV export and summaries.
func CellString(song ClassifiedSong, attr string) string {
	col, ok := columns[attr]
	if !ok {
		return ""
	}
	switch col.kind {
	case kindInt:
		return strconv.FormatInt(col.num(song), 10)
	case kindTime:
		ts := col.ts(song)
		if ts.IsZero() {
			return ""
		}
		return ts.Format(time.RFC3339)
	default:
		return col.str(song)
	}
}

// FilterByAttribute keeps only rows where attr exists and equals value.
// Equality is exact with no type coercion: a string value never matches a
// numeric column. An unknown attribute returns the input unchanged and
// reports false after logging a warning.
func (t Table) FilterByAttribute(attr string, value any) (Table, bool) {
	col, ok := columns[attr]
	if !ok {
		log.Warn().Str("attribute", attr).Msg("Unknown filter attribute, returning collection unchanged")
		return t, false
	}

	kept := make([]ClassifiedSong, 0, len(t.Rows))
	for _, row := range t.Rows {
		if cellEquals(col, row, value) {
			kept = append(kept, row)
		}
	}
	return Table{Rows: kept}, true
}

func cellEquals(col column, row ClassifiedSong, value any) bool {
	switch col.kind {
	case kindString:
		v, ok := value.(string)
		return ok && col.str(row) == v
	case kindInt:
		switch v := value.(type) {
		case int:
			return col.num(row) == int64(v)
		case int64:
			return col.num(row) == v
		}
		return false
	case kindTime:
		v, ok := value.(time.Time)
		return ok && col.ts(row).Equal(v)
	}
	return false
}

// SortByAttribute stably sorts the table by attr's natural ordering. An
// unknown attribute returns the input unchanged and reports false.
func (t Table) SortByAttribute(attr string, ascending bool) (Table, bool) {
	col, ok := columns[attr]
	if !ok {
		log.Warn().Str("attribute", attr).Msg("Unknown sort attribute, returning collection unchanged")
		return t, false
	}

	rows := make([]ClassifiedSong, len(t.Rows))
	copy(rows, t.Rows)

	sort.SliceStable(rows, func(i, j int) bool {
		var less bool
		switch col.kind {
		case kindInt:
			less = col.num(rows[i]) < col.num(rows[j])
		case kindTime:
			less = col.ts(rows[i]).Before(col.ts(rows[j]))
		default:
			less = col.str(rows[i]) < col.str(rows[j])
		}
		if ascending {
			return less
		}
		return !less && !cellEqualRows(col, rows[i], rows[j])
	})
	return Table{Rows: rows}, true
}

func cellEqualRows(col column, a, b ClassifiedSong) bool {
	switch col.kind {
	case kindInt:
		return col.num(a) == col.num(b)
	case kindTime:
		return col.ts(a).Equal(col.ts(b))
	default:
		return col.str(a) == col.str(b)
	}
}

// ValueCount is one entry of a column distribution.
type ValueCount struct {
	Value string
	Count int
}

// Distribution counts the distinct values of attr, most frequent first.
// Ties keep first-seen order so the output is deterministic.
func (t Table) Distribution(attr string) []ValueCount {
	if !HasColumn(attr) {
		return nil
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, row := range t.Rows {
		v := CellString(row, attr)
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	result := make([]ValueCount, 0, len(order))
	for _, v := range order {
		result = append(result, ValueCount{Value: v, Count: counts[v]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}
