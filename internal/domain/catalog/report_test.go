package catalog

import (
	"testing"
	"time"
)

func sampleTable() Table {
	return Table{Rows: []ClassifiedSong{
		{
			RawSong: RawSong{
				ID: "a1", Title: "Neon Lights", ChannelTitle: "WaveChannel",
				PublishedAt: time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
				ViewCount:   500, DurationSeconds: 210,
			},
			Genre: "electronic", Mood: "energetic", ReleaseYear: 2022,
		},
		{
			RawSong: RawSong{
				ID: "b2", Title: "Acoustic Morning", ChannelTitle: "FolkHouse",
				PublishedAt: time.Date(2020, 7, 15, 0, 0, 0, 0, time.UTC),
				ViewCount:   1500, DurationSeconds: 180,
			},
			Genre: "country", Mood: "relaxing", ReleaseYear: 2020,
		},
		{
			RawSong: RawSong{
				ID: "c3", Title: "City Rain", ChannelTitle: "WaveChannel",
				PublishedAt: time.Date(2021, 1, 10, 0, 0, 0, 0, time.UTC),
				ViewCount:   1500, DurationSeconds: 240,
			},
			Genre: "electronic", Mood: "sad", ReleaseYear: 2021,
		},
	}}
}

func TestTable_FilterByAttribute(t *testing.T) {
	table := sampleTable()

	t.Run("string column", func(t *testing.T) {
		got, ok := table.FilterByAttribute("genre", "electronic")
		if !ok {
			t.Fatal("expected known attribute")
		}
		if len(got.Rows) != 2 {
			t.Fatalf("got %d rows, want 2", len(got.Rows))
		}
		if got.Rows[0].ID != "a1" || got.Rows[1].ID != "c3" {
			t.Errorf("filter changed row order: %q, %q", got.Rows[0].ID, got.Rows[1].ID)
		}
	})

	t.Run("integer column", func(t *testing.T) {
		got, ok := table.FilterByAttribute("release_year", 2021)
		if !ok || len(got.Rows) != 1 || got.Rows[0].ID != "c3" {
			t.Errorf("FilterByAttribute(release_year, 2021) returned %d rows, ok=%v", len(got.Rows), ok)
		}
	})

	t.Run("zero matches is empty, not an error", func(t *testing.T) {
		got, ok := table.FilterByAttribute("mood", "happy")
		if !ok {
			t.Fatal("expected known attribute")
		}
		if len(got.Rows) != 0 {
			t.Errorf("got %d rows, want 0", len(got.Rows))
		}
	})

	t.Run("unknown attribute returns input unchanged", func(t *testing.T) {
		got, ok := table.FilterByAttribute("tempo", "fast")
		if ok {
			t.Error("expected ok=false for unknown attribute")
		}
		if len(got.Rows) != len(table.Rows) {
			t.Errorf("got %d rows, want %d", len(got.Rows), len(table.Rows))
		}
	})

	t.Run("no type coercion", func(t *testing.T) {
		got, ok := table.FilterByAttribute("release_year", "2021")
		if !ok {
			t.Fatal("expected known attribute")
		}
		if len(got.Rows) != 0 {
			t.Errorf("string value matched integer column: %d rows", len(got.Rows))
		}
	})
}

func TestTable_SortByAttribute(t *testing.T) {
	table := sampleTable()

	t.Run("descending by view count", func(t *testing.T) {
		got, ok := table.SortByAttribute("view_count", false)
		if !ok {
			t.Fatal("expected known attribute")
		}
		want := []string{"b2", "c3", "a1"}
		for i, id := range want {
			if got.Rows[i].ID != id {
				t.Errorf("row %d = %q, want %q", i, got.Rows[i].ID, id)
			}
		}
	})

	t.Run("descending sort is stable for equal keys", func(t *testing.T) {
		got, _ := table.SortByAttribute("view_count", false)
		// b2 and c3 both have 1500 views; b2 comes first in the input.
		if got.Rows[0].ID != "b2" || got.Rows[1].ID != "c3" {
			t.Errorf("equal keys reordered: %q, %q", got.Rows[0].ID, got.Rows[1].ID)
		}
	})

	t.Run("ascending by title", func(t *testing.T) {
		got, _ := table.SortByAttribute("title", true)
		want := []string{"b2", "c3", "a1"}
		for i, id := range want {
			if got.Rows[i].ID != id {
				t.Errorf("row %d = %q, want %q", i, got.Rows[i].ID, id)
			}
		}
	})

	t.Run("by published timestamp", func(t *testing.T) {
		got, _ := table.SortByAttribute("published_at", true)
		want := []string{"b2", "c3", "a1"}
		for i, id := range want {
			if got.Rows[i].ID != id {
				t.Errorf("row %d = %q, want %q", i, got.Rows[i].ID, id)
			}
		}
	})

	t.Run("unknown attribute returns input unchanged", func(t *testing.T) {
		got, ok := table.SortByAttribute("bpm", true)
		if ok {
			t.Error("expected ok=false for unknown attribute")
		}
		for i := range table.Rows {
			if got.Rows[i].ID != table.Rows[i].ID {
				t.Fatal("unknown attribute must not reorder rows")
			}
		}
	})

	t.Run("input table is not mutated", func(t *testing.T) {
		before := table.Rows[0].ID
		_, _ = table.SortByAttribute("view_count", true)
		if table.Rows[0].ID != before {
			t.Error("SortByAttribute mutated its receiver")
		}
	})
}

func TestTable_Distribution(t *testing.T) {
	table := sampleTable()

	got := table.Distribution("genre")
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].Value != "electronic" || got[0].Count != 2 {
		t.Errorf("top entry = %+v, want electronic/2", got[0])
	}
	if got[1].Value != "country" || got[1].Count != 1 {
		t.Errorf("second entry = %+v, want country/1", got[1])
	}

	if unknown := table.Distribution("bpm"); unknown != nil {
		t.Errorf("Distribution(bpm) = %v, want nil", unknown)
	}
}

func TestCellString(t *testing.T) {
	song := ClassifiedSong{
		RawSong: RawSong{
			ID:          "x",
			PublishedAt: time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC),
			Tags:        []string{"lofi", "beats"},
			ViewCount:   42,
		},
		Genre: "jazz",
	}

	tests := []struct {
		attr     string
		expected string
	}{
		{"id", "x"},
		{"view_count", "42"},
		{"tags", "lofi|beats"},
		{"published_at", "2023-05-01T12:00:00Z"},
		{"genre", "jazz"},
		{"nonexistent", ""},
	}

	for _, tt := range tests {
		t.Run(tt.attr, func(t *testing.T) {
			if got := CellString(song, tt.attr); got != tt.expected {
				t.Errorf("CellString(%q) = %q, want %q", tt.attr, got, tt.expected)
			}
		})
	}
}
