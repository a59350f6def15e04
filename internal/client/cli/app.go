package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/progressboard/internal/auth"
	"github.com/dmitrijs2005/progressboard/internal/client/config"
	"github.com/dmitrijs2005/progressboard/internal/cryptox"
	"github.com/dmitrijs2005/progressboard/internal/dashboard"
	"github.com/dmitrijs2005/progressboard/internal/dbx"
	"github.com/dmitrijs2005/progressboard/internal/export"
	"github.com/dmitrijs2005/progressboard/internal/filex"
	"github.com/dmitrijs2005/progressboard/internal/graphql"
	"github.com/dmitrijs2005/progressboard/internal/logging"
	"github.com/dmitrijs2005/progressboard/internal/session"
	"github.com/dmitrijs2005/progressboard/internal/storage"
	"github.com/dmitrijs2005/progressboard/internal/storage/kv"
)

type tokenState interface {
	IsValid(ctx context.Context) bool
	Clear(ctx context.Context) error
}

type authService interface {
	Login(ctx context.Context, username, password string) (*session.Session, error)
	Logout(ctx context.Context) error
}

type dashboardLoader interface {
	Load(ctx context.Context) (*dashboard.Dashboard, error)
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	store    tokenState
	auth     authService
	dash     dashboardLoader
	newSink  func(ctx context.Context) (export.Sink, error)
	reader   *bufio.Reader
	out      io.Writer
	userName string
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stderr, c.LogLevel, logging.FormatText)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("location: %w", err)
	}

	if err := filex.EnsureParent(c.DatabasePath); err != nil {
		return nil, err
	}
	db, err := storage.Open(ctx, dbx.SQLite, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	opts := []session.Option{
		session.WithCache(session.NewCache(64, 5*time.Minute)),
		session.WithLogger(logger),
	}
	if c.SecretKey != "" {
		sealer, err := cryptox.NewSealer(c.SecretKey)
		if err != nil {
			db.Close()
			return nil, err
		}
		opts = append(opts, session.WithSealer(sealer))
	}
	store := session.NewManager(kv.NewSQLiteRepository(db), opts...).Store("")

	hc := &http.Client{Timeout: c.HTTPTimeout}
	gql := graphql.NewClient(c.QueryEndpoint, store, graphql.WithHTTPClient(hc), graphql.WithLogger(logger))

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		store:   store,
		auth:    auth.NewClient(c.SigninEndpoint, store, auth.WithHTTPClient(hc), auth.WithLogger(logger)),
		dash:    dashboard.NewController(gql, dashboard.WithLocation(loc), dashboard.WithLogger(logger)),
		newSink: func(ctx context.Context) (export.Sink, error) { return newSink(ctx, c) },
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// newSink picks the S3 bucket when one is configured and the export
// directory otherwise.
func newSink(ctx context.Context, c *config.Config) (export.Sink, error) {
	if c.S3.Bucket != "" {
		return export.NewS3Sink(ctx, c.S3)
	}
	return export.NewFileSink(c.ExportDir)
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.db.Close(); err != nil {
			a.logger.Error(ctx, "closing database", "error", err)
		}
	}()

	fmt.Fprintln(a.out, "Welcome to progressboard CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.store.IsValid(ctx)
}

func (a *App) status() string {
	if !a.isLoggedIn(context.Background()) {
		return ""
	}
	if a.userName != "" {
		return fmt.Sprintf("(%s)", a.userName)
	}
	return "(signed in)"
}
