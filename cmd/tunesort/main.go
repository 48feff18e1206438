// Package main is the entry point for the Tunesort music categorizer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lucasmt/tunesort/internal/config"
	"github.com/lucasmt/tunesort/internal/domain/catalog"
	"github.com/lucasmt/tunesort/internal/domain/musiclib"
	"github.com/lucasmt/tunesort/internal/export"
	"github.com/lucasmt/tunesort/internal/infra/cache"
	"github.com/lucasmt/tunesort/internal/infra/youtube"
	"github.com/lucasmt/tunesort/internal/version"
)

func main() {
	// Command line flags
	query := flag.String("query", "", "Search query for YouTube music")
	playlist := flag.String("playlist", "", "YouTube playlist ID to analyze")
	liked := flag.Bool("liked", false, "Fetch and analyze your liked videos (requires OAuth)")
	maxResults := flag.Int("max-results", 50, "Maximum number of results to fetch")
	sortBy := flag.String("sort-by", "view_count", "Attribute to sort by (view_count, like_count, published_at, ...)")
	ascending := flag.Bool("ascending", false, "Sort in ascending order")
	genreFilter := flag.String("genre-filter", "", "Filter by specific genre")
	moodFilter := flag.String("mood-filter", "", "Filter by specific mood")
	yearFilter := flag.Int("year-filter", 0, "Filter by specific release year")
	output := flag.String("output", "csv", "Output format (csv or json)")
	outPath := flag.String("out", "", "Output file path (default: timestamped file in the working directory)")
	noCache := flag.Bool("no-cache", false, "Bypass the search result cache")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	versionInfo := version.GetInfo()
	log.Info().Msgf("%s — YouTube music categorizer and sorter", versionInfo.String())

	if *query == "" && *playlist == "" && !*liked {
		fmt.Fprintln(os.Stderr, "Provide a search query, a playlist ID, or the -liked option.")
		flag.Usage()
		os.Exit(2)
	}

	format, err := export.ParseFormat(*output)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid output format")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	// Only the liked-videos path needs OAuth; search and playlists use the
	// API key.
	var clientOpts []youtube.Option
	if *liked {
		if cfg.ClientID == "" || cfg.ClientSecret == "" {
			log.Fatal().Msg("YOUTUBE_CLIENT_ID and YOUTUBE_CLIENT_SECRET are required for -liked")
		}
		authenticator := youtube.NewAuthenticator(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURL, cfg.TokenFile)
		httpClient, err := authenticator.Client(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("OAuth authorization failed")
		}
		clientOpts = append(clientOpts, youtube.WithHTTPClient(httpClient))
	} else if cfg.APIKey == "" {
		log.Fatal().Msg("YOUTUBE_API_KEY is required")
	}

	retriever := youtube.NewClient(cfg.APIKey, clientOpts...)

	var store *cache.Store
	if !*noCache {
		store = cache.NewStore(cfg.CacheDir)
	}
	service := musiclib.NewCachedService(retriever, store, cfg.CacheTTL, cfg.PageLimit)

	// Fetch
	var songs []catalog.RawSong
	switch {
	case *liked:
		log.Info().Int("max", *maxResults).Msg("Fetching your liked videos")
		songs = service.LikedSongs(ctx, *maxResults)
	case *query != "":
		log.Info().Str("query", *query).Msg("Searching YouTube music")
		songs = service.Search(ctx, *query, *maxResults)
	default:
		log.Info().Str("playlist", *playlist).Msg("Fetching playlist items")
		songs = service.PlaylistSongs(ctx, *playlist, *maxResults)
	}

	if len(songs) == 0 {
		log.Warn().Msg("No music data found")
		return
	}
	log.Info().Int("count", len(songs)).Msg("Categorizing songs")

	// Classify
	classifier := catalog.NewClassifier(catalog.DefaultTaxonomy())
	table := classifier.ClassifyAll(songs)

	// Filters
	if *genreFilter != "" {
		table, _ = table.FilterByAttribute("genre", *genreFilter)
		log.Info().Str("genre", *genreFilter).Int("count", len(table.Rows)).Msg("Applied genre filter")
	}
	if *moodFilter != "" {
		table, _ = table.FilterByAttribute("mood", *moodFilter)
		log.Info().Str("mood", *moodFilter).Int("count", len(table.Rows)).Msg("Applied mood filter")
	}
	if *yearFilter != 0 {
		table, _ = table.FilterByAttribute("release_year", *yearFilter)
		log.Info().Int("year", *yearFilter).Int("count", len(table.Rows)).Msg("Applied year filter")
	}

	// Sort
	if *sortBy != "" {
		var ok bool
		table, ok = table.SortByAttribute(*sortBy, *ascending)
		if ok {
			log.Info().Str("attribute", *sortBy).Bool("ascending", *ascending).Msg("Sorted results")
		}
	}

	// Export
	path := *outPath
	if path == "" {
		path = export.Filename(format, time.Now())
	}
	if err := writeFile(path, table, format); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write results")
	}
	log.Info().Str("path", path).Int("songs", len(table.Rows)).Msg("Results saved")

	printSummary(table)
}

func writeFile(path string, table catalog.Table, format export.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := export.Write(f, table, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// printSummary prints the genre and mood distributions, mirroring the
// run summary of the report.
func printSummary(table catalog.Table) {
	fmt.Printf("\nTotal songs: %d\n", len(table.Rows))

	fmt.Println("\nGenre distribution:")
	for _, vc := range table.Distribution("genre") {
		fmt.Printf("  %-12s %d\n", vc.Value, vc.Count)
	}

	fmt.Println("\nMood distribution:")
	for _, vc := range table.Distribution("mood") {
		fmt.Printf("  %-12s %d\n", vc.Value, vc.Count)
	}
}
