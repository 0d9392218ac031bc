package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"booktrack/internal/formatter"
	"booktrack/internal/services"
	"booktrack/internal/shared"
	"booktrack/internal/tasks"
)

// Generate runs the full pipeline: lookup, analysis, matching, and optional playlist creation.
func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
	title := cmd.String("title")
	author := cmd.String("author")
	maxTracks := cmd.Int("max-tracks")
	wantPlaylist := cmd.Bool("playlist")
	public := cmd.Bool("public")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	outputPath := cmd.String("output")
	format := cmd.String("format")

	if title == "" {
		var err error
		if title, author, wantPlaylist, err = promptForBook(title, author, wantPlaylist); err != nil {
			return fmt.Errorf("%w: a book title is required", shared.ErrMissingArgument)
		}
	}
	if title == "" {
		return fmt.Errorf("%w: a book title is required", shared.ErrMissingArgument)
	}

	engine, err := r.buildEngine()
	if err != nil {
		return err
	}

	if err := r.ensureSearchSession(ctx); err != nil {
		return err
	}

	r.logger.Infof("generating soundtrack for %q", title)

	progress := make(chan tasks.ProgressUpdate, 16)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			r.writePlain("%s\n", r.palette.Help(update.Message))
		}
	}()

	result, runErr := engine.Run(ctx, progress, title, author, maxTracks)
	close(progress)
	wg.Wait()

	if runErr != nil {
		return runErr
	}

	if useJSON {
		return r.writeJSON(result, pretty)
	}

	r.writePlainHeader(tasks.PlaylistName(result.Book))
	r.writePlain("Book: %s by %s\n\n", result.Book.Title, strings.Join(result.Book.Authors, ", "))
	r.writePlain("%s\n\n", result.Profile.Format())

	r.writePlain("Tracks (%d):\n\n", len(result.Tracks))
	for i, track := range result.Tracks {
		r.writePlain("%d. %s - %s\n", i+1, track.Artist, track.Name)
		if track.Album != "" {
			r.writePlain("   Album: %s\n", track.Album)
		}
	}

	if outputPath != "" {
		if err := r.exportResult(result, outputPath, format); err != nil {
			return err
		}
	}

	if wantPlaylist {
		return r.createPlaylist(ctx, cmd, result, public)
	}

	return nil
}

// promptForBook collects the book title, author, and playlist choice
// interactively when flags are missing.
func promptForBook(title, author string, wantPlaylist bool) (string, string, bool, error) {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Book title").
				Value(&title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title must not be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Author (optional)").
				Value(&author),
			huh.NewConfirm().
				Title("Create a Spotify playlist?").
				Value(&wantPlaylist),
		),
	).Run()
	if err != nil {
		return "", "", false, err
	}
	return strings.TrimSpace(title), strings.TrimSpace(author), wantPlaylist, nil
}

// ensureSearchSession authenticates the Spotify service for catalog searches.
//
// Prefers a persisted user token; falls back to the client-credentials grant,
// which is enough for search but not for playlist creation.
func (r *Runner) ensureSearchSession(ctx context.Context) error {
	svc, err := r.ensureSpotify()
	if err != nil {
		return err
	}

	spotify, ok := svc.(*services.SpotifyService)
	if !ok {
		return nil
	}

	if token := r.config.Credentials.Spotify.Token(); token != nil {
		if err := spotify.OAuthenticate(ctx, token); err == nil {
			return nil
		}
	}

	return spotify.AuthenticateClientCredentials(ctx)
}

// createPlaylist persists the soundtrack to the user's Spotify account,
// running the interactive authorization flow first when no user token exists.
func (r *Runner) createPlaylist(ctx context.Context, cmd *cli.Command, result *tasks.SoundtrackResult, public bool) error {
	svc, err := r.ensureSpotify()
	if err != nil {
		return err
	}

	oauthSvc, ok := svc.(services.OAuthService)
	if !ok {
		return fmt.Errorf("%w: service does not support playlist creation", shared.ErrServiceUnavailable)
	}

	if r.config.Credentials.Spotify.Token() == nil {
		r.writePlainln("Playlist creation requires Spotify authorization.")
		if err := r.SpotifyAuth(ctx, cmd); err != nil {
			return err
		}
	}

	if err := oauthSvc.OAuthenticate(ctx, r.config.Credentials.Spotify.Token()); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNotAuthenticated, err)
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			r.writePlain("%s\n", r.palette.Help(update.Message))
		}
	}()

	playlist, createErr := r.engine.CreatePlaylist(ctx, progress, result.Book, result.Profile, result.Tracks, public)
	close(progress)
	wg.Wait()

	if createErr != nil {
		return createErr
	}

	r.writePlainln("%s Playlist created: %s", r.palette.OK("✓"), playlist.Name)
	if playlist.URL != "" {
		r.writePlain("  URL: %s\n", playlist.URL)
	}

	return nil
}

// exportResult writes the soundtrack to disk in the requested format.
func (r *Runner) exportResult(result *tasks.SoundtrackResult, outputPath, format string) error {
	switch strings.ToLower(format) {
	case "csv":
		files, err := formatter.WriteCSVExport(result, outputPath)
		if err != nil {
			return err
		}
		for _, f := range files {
			r.writePlain("%s Exported %s\n", r.palette.OK("✓"), f)
		}
	case "markdown", "md":
		export, err := formatter.WriteMarkdownExport(result, outputPath)
		if err != nil {
			return err
		}
		r.writePlain("%s Exported %s\n", r.palette.OK("✓"), export.Directory)
	case "text", "txt":
		file, err := formatter.WriteTextExport(result, outputPath)
		if err != nil {
			return err
		}
		r.writePlain("%s Exported %s\n", r.palette.OK("✓"), file)
	case "json":
		data, err := formatter.ExportToJSON(result)
		if err != nil {
			return err
		}
		if err := writeFile(outputPath, data); err != nil {
			return err
		}
		r.writePlain("%s Exported %s\n", r.palette.OK("✓"), outputPath)
	default:
		return fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}

	return nil
}
