package cli

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/eventadmin/internal/client/client"
	"github.com/dmitrijs2005/eventadmin/internal/client/config"
	"github.com/dmitrijs2005/eventadmin/internal/client/models"
	"github.com/dmitrijs2005/eventadmin/internal/client/services"
	"github.com/dmitrijs2005/eventadmin/internal/client/session"
	"github.com/dmitrijs2005/eventadmin/internal/client/storage"
	"github.com/dmitrijs2005/eventadmin/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	session *session.Store
	api     *services.Services
	db      *sql.DB
	admin   *models.Admin
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the session database at cfg.DBPath and builds the API
// client on top of it.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	store := session.NewSQLiteStore(db)
	if cfg.StoreKey != "" {
		if err := store.EnableSealing(ctx, []byte(cfg.StoreKey)); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable session sealing: %w", err)
		}
	}

	a, err := newApp(ctx, cfg, logger, store, bufio.NewReader(os.Stdin), os.Stdout)
	if err != nil {
		db.Close()
		return nil, err
	}
	a.db = db
	return a, nil
}

func newApp(ctx context.Context, cfg *config.Config, logger logging.Logger, store *session.Store, reader *bufio.Reader, out io.Writer) (*App, error) {
	c, err := client.New(cfg.BaseURL, store,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithPlatform(cfg.Platform),
		client.WithLogger(logger),
		client.WithDebugLogging(cfg.Debug),
	)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:  cfg,
		logger:  logger.With("module", "cli"),
		session: store,
		api:     services.New(c, store),
		reader:  reader,
		out:     out,
	}
	a.restore(ctx)
	return a, nil
}

// restore picks up a login saved by an earlier run.
func (a *App) restore(ctx context.Context) {
	st, err := a.session.Status(ctx)
	if err != nil || !st.LoggedIn {
		return
	}
	raw, err := a.session.AdminProfile(ctx)
	if err != nil || len(raw) == 0 {
		return
	}
	var admin models.Admin
	if err := json.Unmarshal(raw, &admin); err != nil {
		a.logger.Warn(ctx, "stored admin profile is unreadable", "error", err)
		return
	}
	a.admin = &admin
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.println(fmt.Sprintf("Event admin console, %s (type 'help' for commands)", a.config.BaseURL))
	if a.isLoggedIn() {
		a.println("Resumed session of", a.admin.Email)
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.admin != nil
}

func (a *App) getStatus() string {
	s := string(a.config.Environment)
	if a.admin != nil {
		s = fmt.Sprintf("%s %s@%s", a.admin.Email, a.admin.Role, s)
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
