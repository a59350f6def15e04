// Package server initializes and runs the dashboard server.
// It opens token storage, starts the web server and the gRPC health
// service, sweeps expired sessions and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/progressboard/internal/cryptox"
	"github.com/dmitrijs2005/progressboard/internal/logging"
	"github.com/dmitrijs2005/progressboard/internal/server/config"
	"github.com/dmitrijs2005/progressboard/internal/server/web"
	"github.com/dmitrijs2005/progressboard/internal/session"
	"github.com/dmitrijs2005/progressboard/internal/storage"
	"github.com/dmitrijs2005/progressboard/internal/storage/kv"

	gs "github.com/dmitrijs2005/progressboard/internal/server/grpc"
)

const healthInterval = 15 * time.Second

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	sessions *session.Manager
	web      *web.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stdout, c.LogLevel, logging.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("location: %w", err)
	}

	dialect, err := storage.ParseDialect(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}
	db, err := storage.Open(ctx, dialect, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	opts := []session.Option{
		session.WithCache(session.NewCache(c.CacheSize, c.CacheTTL)),
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
	sessions := session.NewManager(kv.New(db, dialect), opts...)

	ws, err := web.NewServer(c.ListenAddr, web.Deps{
		Sessions:       sessions,
		SigninEndpoint: c.SigninEndpoint,
		QueryEndpoint:  c.QueryEndpoint,
		HTTPClient:     &http.Client{Timeout: c.HTTPTimeout},
		Location:       loc,
		Logger:         logger,
		Ready:          db.PingContext,
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &App{config: c, logger: logger, db: db, sessions: sessions, web: ws}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startWebServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.web.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHealthServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewHealthServer(app.config.HealthAddr, app.logger)
	go s.Monitor(ctx, healthInterval, app.db.PingContext)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// sweep removes expired web sessions every interval until ctx is done.
func (app *App) sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := app.sessions.Sweep(ctx, now)
			if err != nil {
				app.logger.Warn(ctx, "session sweep failed", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "expired sessions removed", "count", n)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startWebServer(ctx, cancelFunc)
	}()

	if app.config.HealthAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHealthServer(ctx, cancelFunc)
		}()
	}

	if app.config.SweepInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.sweep(ctx, app.config.SweepInterval)
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
