package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fretlog/fretlog/internal/catalog"
	"github.com/fretlog/fretlog/internal/repositories"
	"github.com/fretlog/fretlog/internal/services"
	"github.com/fretlog/fretlog/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	logger     *log.Logger
	output     io.Writer
	httpClient *http.Client
	db         *sql.DB
	catalog    *catalog.Service
	art        services.ArtStore
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Catalog and Art may be pre-built (tests inject in-memory doubles);
// otherwise they are constructed lazily from the config on first use.
type RunnerOpts struct {
	Config     *shared.Config
	Logger     *log.Logger
	Output     io.Writer
	HTTPClient *http.Client
	Catalog    *catalog.Service
	Art        services.ArtStore
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

	return &Runner{
		config:     opts.Config,
		logger:     opts.Logger,
		output:     opts.Output,
		httpClient: opts.HTTPClient,
		catalog:    opts.Catalog,
		art:        opts.Art,
	}
}

// SetLogger swaps the Runner's logger (the TUI redirects logs to a file).
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// ensureCatalog opens the database, runs pending migrations, and wires the
// repository, metadata client, and art cache into a catalog service.
// Migrations only ever run here, at store open.
func (r *Runner) ensureCatalog() (*catalog.Service, error) {
	if r.catalog != nil {
		return r.catalog, nil
	}

	dbPath, err := r.config.ResolveDatabasePath()
	if err != nil {
		return nil, err
	}

	db, err := shared.NewDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	cacheDir, err := r.config.ResolveCacheDir()
	if err != nil {
		db.Close()
		return nil, err
	}

	r.db = db
	if r.art == nil {
		r.art = services.NewArtCache(cacheDir, nil, shared.WithLogger(r.logger, "service", "artcache"))
	}
	r.catalog = catalog.NewService(catalog.ServiceOpts{
		Repo: repositories.NewSongRepository(db),
		Metadata: services.NewLastFMService(services.LastFMOpts{
			APIKey: r.config.Credentials.LastFM.APIKey,
			Logger: shared.WithLogger(r.logger, "service", "lastfm"),
		}),
		Art:    r.art,
		Logger: r.logger,
	})

	return r.catalog, nil
}

// Close releases the database connection if one was opened.
func (r *Runner) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, addCommand, showCommand, listCommand, editCommand,
		deleteCommand, searchCommand, filterCommand, genresCommand,
		tuningsCommand, statsCommand, artCommand, dbCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
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
