package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/repositories"
	"github.com/noblex1/moviex/internal/services"
	"github.com/noblex1/moviex/internal/shared"
	"github.com/noblex1/moviex/internal/watchlist"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The metadata client and the storage are created on first use, so commands that need neither
// work without an API key or a database.
type Runner struct {
	config     *shared.Config
	configPath string
	client     services.MetadataClient
	storage    models.Storage
	store      *watchlist.Store
	db         *sql.DB
	fs         afero.Fs
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	open       func(url string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Client     services.MetadataClient
	Storage    models.Storage
	Fs         afero.Fs
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Open       func(url string) error
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
		opts.HTTPClient = &http.Client{Timeout: opts.Config.Timeout()}
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Open == nil {
		opts.Open = shared.OpenBrowser
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		client:     opts.Client,
		storage:    opts.Storage,
		fs:         opts.Fs,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		open:       opts.Open,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, searchCommand, detailsCommand, watchlistCommand, themeCommand, openCommand, tuiCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Configure loads the config file named by --config and applies the global flags.
//
// A missing config file is not an error; defaults are used.
func (r *Runner) Configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if path != "" {
		r.configPath = path
		if _, err := os.Stat(path); err == nil {
			config, err := shared.LoadConfig(path)
			if err != nil {
				return ctx, err
			}
			r.config = config
			r.httpClient.Timeout = config.Timeout()
		} else {
			r.logger.Debug("config file not found, using defaults", "path", path)
		}
	}

	if key := cmd.String("api-key"); key != "" {
		r.config.API.Key = key
	}

	shared.SetLogLevel(r.logger, shared.ParseLogLevel(r.config.Log.Level))
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	return ctx, nil
}

// metadataClient returns the OMDb client, creating it from the config on first use.
func (r *Runner) metadataClient() services.MetadataClient {
	if r.client != nil {
		return r.client
	}

	if errors.Is(r.config.Validate(), shared.ErrMissingAPIKey) {
		r.logger.Warn("Remember to set your OMDb API key in config.toml (or OMDB_API_KEY).")
	}

	r.client = services.NewOMDbClient(r.config.API.Key, r.config.API.BaseURL, r.httpClient,
		services.WithPlot(r.config.API.Plot),
		services.WithType(r.config.API.Type),
		services.WithLogger(r.logger),
	)
	return r.client
}

// openStorage opens the database on first use and returns the key/value storage.
func (r *Runner) openStorage() (models.Storage, error) {
	if r.storage != nil {
		return r.storage, nil
	}

	db, err := shared.OpenStorageDatabase(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrServiceUnavailable, err)
	}
	r.db = db
	r.storage = repositories.NewKVRepository(db)
	return r.storage, nil
}

// watchlistStore returns the persistent watchlist, loading it on first use.
func (r *Runner) watchlistStore(ctx context.Context, renderer watchlist.Renderer) (*watchlist.Store, error) {
	if r.store != nil {
		return r.store, nil
	}

	storage, err := r.openStorage()
	if err != nil {
		return nil, err
	}
	r.store = watchlist.New(ctx, watchlist.Opts{Storage: storage, Renderer: renderer, Logger: r.logger})
	return r.store, nil
}

// Close releases the database, if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// SetLogger replaces the logger used by the runner and the clients it creates.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
