package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/latke/internal/api"
	"github.com/desertthunder/latke/internal/models"
	"github.com/desertthunder/latke/internal/repositories"
	"github.com/desertthunder/latke/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	client *api.Client
	logger *log.Logger
	output io.Writer
	db     *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Client *api.Client
	Logger *log.Logger
	Output io.Writer
	DB     *sql.DB
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
	if opts.Client == nil {
		opts.Client = api.NewClient(api.ClientOpts{Logger: opts.Logger})
	}

	return &Runner{
		config: opts.Config,
		client: opts.Client,
		logger: opts.Logger,
		output: opts.Output,
		db:     opts.DB,
	}
}

// SetLogger swaps the runner's logger, e.g. to a file logger while a TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, loginCommand, pairCommand, statusCommand, logoutCommand,
		libraryCommand, syncCommand, playlistCommand, searchCommand, playCommand, pauseCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// database opens the configured SQLite database on first use and caches the handle.
func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	r.db = db
	return db, nil
}

// restoreSession seeds the client's session from the cached account row, if one
// exists for the configured email. Missing rows are not an error; commands that
// need a session fail later with a not-logged-in error.
func (r *Runner) restoreSession() {
	if r.client.Session().Authenticated() {
		return
	}
	if r.config.Credentials.Email == "" {
		return
	}

	db, err := r.database()
	if err != nil {
		r.logger.Debug("session restore skipped", "error", err)
		return
	}

	account, err := repositories.NewAccountRepository(db).GetByEmail(r.config.Credentials.Email)
	if err != nil {
		r.logger.Debug("no cached session", "email", r.config.Credentials.Email)
		return
	}

	var expiry time.Time
	if t := account.TokenExpiry(); t != nil {
		expiry = *t
	}
	r.client.Restore(account.Token(), expiry, account.UserID())
	r.logger.Debug("session restored", "user", account.UserID())
}

// saveSession caches the session token for the given email so later invocations can restore it.
func (r *Runner) saveSession(email string, info *api.SessionInfo) error {
	db, err := r.database()
	if err != nil {
		return err
	}

	token, err := r.client.Session().Token()
	if err != nil {
		return err
	}

	var expiry *time.Time
	if !info.Expires.IsZero() {
		expiry = &info.Expires
	}

	account := models.NewAccount(0, email, info.UserID, token, expiry)
	if err := repositories.NewAccountRepository(db).Save(account); err != nil {
		return fmt.Errorf("failed to cache session: %w", err)
	}
	return nil
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
