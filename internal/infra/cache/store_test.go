package cache

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/lucasmt/tunesort/internal/domain/catalog"
)

func TestStore_Fingerprint(t *testing.T) {
	store := NewStore(t.TempDir())

	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{"simple", "lofi", "music_search_lofi"},
		{"spaces replaced", "lofi hip hop", "music_search_lofi_hip_hop"},
		{"case preserved", "Lofi Beats", "music_search_Lofi_Beats"},
		{"whitespace runs collapse", "lofi\t\t  beats", "music_search_lofi_beats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := store.Fingerprint(tt.query); got != tt.expected {
				t.Errorf("Fingerprint(%q) = %q, want %q", tt.query, got, tt.expected)
			}
		})
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	songs := []catalog.RawSong{
		{
			ID:          "vid1",
			Title:       "Test Song",
			Description: "A song for testing",
			Tags:        []string{"test", "song"},
			PublishedAt: time.Date(2023, 4, 1, 10, 30, 0, 0, time.UTC),
			ViewCount:   12345,
		},
		{ID: "vid2", Title: "Second"},
	}

	fp := store.Fingerprint("test query")
	if err := store.Put(fp, songs); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, ok := store.Get(fp, time.Hour)
	if !ok {
		t.Fatal("Get() reported a miss for a fresh entry")
	}
	if !reflect.DeepEqual(got, songs) {
		t.Errorf("Get() = %+v, want %+v", got, songs)
	}
}

func TestStore_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := NewStore(t.TempDir(), WithClock(clock))

	fp := store.Fingerprint("expiring")
	if err := store.Put(fp, []catalog.RawSong{{ID: "v"}}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	ttl := 24 * time.Hour

	now = now.Add(ttl - time.Second)
	if _, ok := store.Get(fp, ttl); !ok {
		t.Error("entry within TTL should be a hit")
	}

	now = now.Add(2 * time.Second)
	if _, ok := store.Get(fp, ttl); ok {
		t.Error("entry past TTL should be a miss")
	}

	// Lazy expiry: the file stays on disk.
	if _, err := os.Stat(filepath.Join(store.root, fp+".json")); err != nil {
		t.Errorf("expired entry was removed from disk: %v", err)
	}
}

func TestStore_MissOnAbsentEntry(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, ok := store.Get("music_search_never_stored", time.Hour); ok {
		t.Error("Get() reported a hit for an absent fingerprint")
	}
}

func TestStore_MissOnCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	fp := store.Fingerprint("corrupt")
	if err := os.WriteFile(filepath.Join(dir, fp+".json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, ok := store.Get(fp, time.Hour); ok {
		t.Error("Get() reported a hit for a corrupt entry")
	}
}

func TestStore_PutOverwrites(t *testing.T) {
	store := NewStore(t.TempDir())
	fp := store.Fingerprint("overwrite")

	if err := store.Put(fp, []catalog.RawSong{{ID: "old"}}); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(fp, []catalog.RawSong{{ID: "new"}}); err != nil {
		t.Fatal(err)
	}

	got, ok := store.Get(fp, time.Hour)
	if !ok || len(got) != 1 || got[0].ID != "new" {
		t.Errorf("Get() after overwrite = %+v, ok=%v; want the new payload", got, ok)
	}
}

func TestStore_PutCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "cache")
	store := NewStore(root)

	if err := store.Put(store.Fingerprint("q"), nil); err != nil {
		t.Fatalf("Put() should create the cache root: %v", err)
	}
}
