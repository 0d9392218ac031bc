// package tasks implements the book-to-soundtrack pipeline.
//
// The core abstraction is SoundtrackEngine, which orchestrates book lookup, profile analysis,
// and weighted track matching. Operations emit progress updates via channels for non-blocking
// status reporting to the CLI layer.
package tasks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"booktrack/internal/models"
	"booktrack/internal/profile"
	"booktrack/internal/services"
	"booktrack/internal/shared"
)

// maximum playlist description length accepted by the catalog service
const maxDescriptionLength = 300

// batch size for playlist item insertion
const addTracksBatchSize = 50

// DefaultMaxTracks is the soundtrack length used when the caller does not
// specify one.
const DefaultMaxTracks = 15

// SoundtrackResult contains all data from a full pipeline run.
type SoundtrackResult struct {
	Book        *models.BookRecord // Resolved book metadata
	Profile     profile.Profile    // Structured mood profile
	RawAnalysis string             // Unparsed model output, kept for display/export
	Tracks      []models.Track     // Ranked soundtrack
}

// BookLookup resolves a title/author pair to book metadata.
type BookLookup interface {
	Lookup(ctx context.Context, title, author string) (*models.BookRecord, error)
}

// Analyzer turns book metadata into a structured mood profile.
type Analyzer interface {
	Analyze(ctx context.Context, book *models.BookRecord) (profile.Profile, string, error)
}

// SoundtrackEngine defines operations for generating a soundtrack from a book.
type SoundtrackEngine interface {
	// Run performs the full pipeline: lookup, analysis, and track matching.
	Run(ctx context.Context, progress chan<- ProgressUpdate, title, author string, maxTracks int) (*SoundtrackResult, error)

	// Match builds weighted queries from a profile and returns the ranked, deduplicated track list.
	Match(ctx context.Context, progress chan<- ProgressUpdate, p profile.Profile, maxTracks int) ([]models.Track, error)

	// CreatePlaylist persists a ranked track list as a playlist on the user's account.
	CreatePlaylist(ctx context.Context, progress chan<- ProgressUpdate, book *models.BookRecord, p profile.Profile, tracks []models.Track, public bool) (*models.Playlist, error)
}

// BookEngine implements SoundtrackEngine.
// Contains dependencies on the book lookup client, the profile analyzer, and the music service.
type BookEngine struct {
	books    BookLookup
	analyzer Analyzer
	music    services.Service
	logger   *log.Logger
}

// NewBookEngine creates a new BookEngine with the provided dependencies.
func NewBookEngine(books BookLookup, analyzer Analyzer, music services.Service, logger *log.Logger) *BookEngine {
	return &BookEngine{
		books:    books,
		analyzer: analyzer,
		music:    music,
		logger:   logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *BookEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Run performs the full book → soundtrack pipeline.
//
// Each stage failure is terminal for the run; only individual search queries
// inside Match are recovered locally.
func (e *BookEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, title, author string, maxTracks int) (*SoundtrackResult, error) {
	if maxTracks < 0 {
		return nil, fmt.Errorf("%w: max tracks must not be negative", shared.ErrInvalidArgument)
	}

	e.sendProgress(progress, lookupUpdate(1, 3, title))

	book, err := e.books.Lookup(ctx, title, author)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, analyzeUpdate(2, 3, book.Title))

	p, raw, err := e.analyzer.Analyze(ctx, book)
	if err != nil {
		return nil, err
	}

	result := &SoundtrackResult{
		Book:        book,
		Profile:     p,
		RawAnalysis: raw,
	}

	tracks, err := e.Match(ctx, progress, p, maxTracks)
	if err != nil {
		return nil, err
	}
	result.Tracks = tracks

	return result, nil
}

// Match issues the profile's weighted queries sequentially, deduplicates the
// results by track ID (first occurrence wins), and returns the list sorted by
// popularity descending, truncated to maxTracks.
//
// A query that fails is skipped with a warning; it does not abort the stage.
// With maxTracks of zero the result is an empty list, not an error.
func (e *BookEngine) Match(ctx context.Context, progress chan<- ProgressUpdate, p profile.Profile, maxTracks int) ([]models.Track, error) {
	queries := BuildQueries(p, maxTracks)

	seen := make(map[string]bool)
	var candidates []models.Track

	for i, query := range queries {
		if query.Limit <= 0 {
			continue
		}

		e.sendProgress(progress, searchUpdate(i+1, len(queries), query.Terms))

		tracks, err := e.music.SearchTracks(ctx, query)
		if err != nil {
			if e.logger != nil {
				e.logger.Warnf("search query skipped (%s): %v", query.Terms, err)
			}
			continue
		}

		for _, track := range tracks {
			if seen[track.ID] {
				continue
			}
			seen[track.ID] = true
			candidates = append(candidates, track)
		}
	}

	e.sendProgress(progress, rankUpdate(len(queries), len(queries), len(candidates)))

	// Stable sort keeps first-seen order for popularity ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Popularity > candidates[j].Popularity
	})

	if len(candidates) > maxTracks {
		candidates = candidates[:maxTracks]
	}

	if len(candidates) == 0 {
		if maxTracks == 0 {
			// Nothing requested is a valid empty outcome, not a failure.
			return []models.Track{}, nil
		}
		return nil, fmt.Errorf("%w: no tracks matched the profile", shared.ErrNoResults)
	}

	return candidates, nil
}

// CreatePlaylist creates a playlist named after the book and adds the tracks
// in ranked order in fixed batches.
//
// A batch failure aborts the remaining batches; the playlist stays partially
// populated (no rollback).
func (e *BookEngine) CreatePlaylist(ctx context.Context, progress chan<- ProgressUpdate, book *models.BookRecord, p profile.Profile, tracks []models.Track, public bool) (*models.Playlist, error) {
	if book == nil {
		return nil, fmt.Errorf("%w: missing book record", shared.ErrMissingArgument)
	}

	name := PlaylistName(book)
	description := PlaylistDescription(book, p)

	e.sendProgress(progress, createPlaylistUpdate(1, 2, name))

	playlist, err := e.music.CreatePlaylist(ctx, name, description, public)
	if err != nil {
		return nil, fmt.Errorf("%w: create playlist: %v", shared.ErrUpstream, err)
	}

	uris := make([]string, 0, len(tracks))
	for _, track := range tracks {
		uris = append(uris, track.URI)
	}

	batches := (len(uris) + addTracksBatchSize - 1) / addTracksBatchSize
	for i := 0; i < len(uris); i += addTracksBatchSize {
		end := i + addTracksBatchSize
		if end > len(uris) {
			end = len(uris)
		}

		batch := i/addTracksBatchSize + 1
		e.sendProgress(progress, addTracksUpdate(2, 2, batch, batches))

		if err := e.music.AddTracks(ctx, playlist.ID, uris[i:end]); err != nil {
			return nil, fmt.Errorf("%w: add tracks batch %d/%d: %v", shared.ErrUpstream, batch, batches, err)
		}
	}

	return playlist, nil
}

// PlaylistName composes the playlist title for a book.
func PlaylistName(book *models.BookRecord) string {
	return fmt.Sprintf("%s - Literary Soundtrack", book.Title)
}

// PlaylistDescription composes the playlist description from the book and up
// to the first three genre and mood terms, then truncates to the service's
// maximum length. Truncation happens after composition and ignores word
// boundaries.
func PlaylistDescription(book *models.BookRecord, p profile.Profile) string {
	var elements []string
	if genres := p.First(profile.CategoryGenres, 3); len(genres) > 0 {
		elements = append(elements, "Genres: "+strings.Join(genres, ", "))
	}
	if moods := p.First(profile.CategoryMoods, 3); len(moods) > 0 {
		elements = append(elements, "Moods: "+strings.Join(moods, ", "))
	}

	description := fmt.Sprintf("A curated soundtrack for %s by %s. %s",
		book.Title, strings.Join(book.Authors, ", "), strings.Join(elements, " | "))

	return shared.TruncateRunes(description, maxDescriptionLength)
}
