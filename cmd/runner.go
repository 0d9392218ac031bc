package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"booktrack/internal/books"
	"booktrack/internal/profile"
	"booktrack/internal/repositories"
	"booktrack/internal/services"
	"booktrack/internal/shared"
	"booktrack/internal/tasks"
	"booktrack/internal/ui"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	books      tasks.BookLookup
	analyzer   tasks.Analyzer
	spotify    services.Service
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	palette    *ui.Palette
	engine     *tasks.BookEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Books      tasks.BookLookup
	Analyzer   tasks.Analyzer
	Spotify    services.Service
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	engine := tasks.NewBookEngine(opts.Books, opts.Analyzer, opts.Spotify, opts.Logger)

	return &Runner{
		config:     opts.Config,
		books:      opts.Books,
		analyzer:   opts.Analyzer,
		spotify:    opts.Spotify,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		palette:    ui.DefaultPalette(),
		engine:     engine,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, generateCommand, lookupCommand, analyzeCommand, cacheCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// ensureBooks lazily constructs the book lookup client from config.
func (r *Runner) ensureBooks() (tasks.BookLookup, error) {
	if r.books != nil {
		return r.books, nil
	}
	if err := r.config.ValidateLookup(); err != nil {
		return nil, err
	}
	client := books.NewClient("", r.config.Credentials.Books.APIKey, r.config.Credentials.Books.LangRestrict, r.httpClient)
	if repo := r.openBookCache(); repo != nil {
		client.SetCache(repo)
	}
	r.books = client
	return client, nil
}

// openBookCache opens the local lookup cache when a database is configured.
// A damaged or missing database only disables caching, never a command.
func (r *Runner) openBookCache() *repositories.BookRepository {
	if r.config.Database.Path == "" {
		return nil
	}
	if _, err := os.Stat(r.config.Database.Path); err != nil {
		return nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		r.logger.Warnf("book cache unavailable: %v", err)
		return nil
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return repositories.NewBookRepository(db)
}

// ensureAnalyzer lazily constructs the profile analyzer from config.
func (r *Runner) ensureAnalyzer() (tasks.Analyzer, error) {
	if r.analyzer != nil {
		return r.analyzer, nil
	}
	if err := r.config.ValidateAnalysis(); err != nil {
		return nil, err
	}
	completer, err := profile.NewOpenAIClient(r.config.Credentials.LLM)
	if err != nil {
		return nil, err
	}
	analyzer := profile.NewAnalyzer(completer)
	r.analyzer = analyzer
	return analyzer, nil
}

// ensureSpotify lazily constructs the Spotify service from config.
func (r *Runner) ensureSpotify() (services.Service, error) {
	if r.spotify != nil {
		return r.spotify, nil
	}
	if err := r.config.ValidateSpotify(); err != nil {
		return nil, err
	}
	svc, err := services.NewSpotifyService(r.config.Credentials.Spotify.Map())
	if err != nil {
		return nil, err
	}
	r.spotify = svc
	return svc, nil
}

// buildEngine assembles the soundtrack engine from the lazily constructed dependencies.
func (r *Runner) buildEngine() (*tasks.BookEngine, error) {
	lookup, err := r.ensureBooks()
	if err != nil {
		return nil, err
	}
	analyzer, err := r.ensureAnalyzer()
	if err != nil {
		return nil, err
	}
	spotify, err := r.ensureSpotify()
	if err != nil {
		return nil, err
	}

	r.engine = tasks.NewBookEngine(lookup, analyzer, spotify, r.logger)
	return r.engine, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("%s\n", r.palette.Title(title))
}
