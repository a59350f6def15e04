// Package web serves the dashboard: the sign-in page, the protected
// profile page and the standalone chart images.
//
// Each browser is bound to a session id cookie; its token lives in the
// session.Store of that id. The navigation contract of package dashboard
// decides redirects on every page request, and every page is marked
// no-store so that back navigation cannot show a page the guard would now
// refuse.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/progressboard/internal/auth"
	"github.com/dmitrijs2005/progressboard/internal/dashboard"
	"github.com/dmitrijs2005/progressboard/internal/graphql"
	"github.com/dmitrijs2005/progressboard/internal/logging"
	"github.com/dmitrijs2005/progressboard/internal/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Deps are the collaborators of the web server.
type Deps struct {
	Sessions       *session.Manager
	SigninEndpoint string
	QueryEndpoint  string
	HTTPClient     *http.Client
	Location       *time.Location
	Logger         logging.Logger
	// Ready reports whether the server can serve requests; nil means
	// always ready.
	Ready func(ctx context.Context) error
}

type Server struct {
	address string
	deps    Deps
	echo    *echo.Echo
	logger  logging.Logger
}

func NewServer(address string, deps Deps) (*Server, error) {
	if deps.HTTPClient == nil {
		deps.HTTPClient = http.DefaultClient
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Logger == nil {
		deps.Logger = logging.Nop()
	}

	r, err := newRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = r

	s := &Server{
		address: address,
		deps:    deps,
		echo:    e,
		logger:  deps.Logger.With("module", "web"),
	}

	e.Use(middleware.Recover())
	e.Use(requestLogger(s.logger))
	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	e := s.echo
	e.GET("/health", s.health)

	pages := e.Group("", noStore, sessionID)
	pages.GET("/", s.index)
	pages.GET("/login", s.loginPage)
	pages.POST("/login", s.login)
	pages.GET("/profile", s.profile)
	pages.POST("/logout", s.logout)
	pages.GET("/charts/xp.svg", s.xpChart)
	pages.GET("/charts/ratio.svg", s.ratioChart)
}

// Handler exposes the routes for tests and embedding.
func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) store(c echo.Context) *session.Store {
	return s.deps.Sessions.Store(sid(c))
}

func (s *Server) authClient(store *session.Store) *auth.Client {
	return auth.NewClient(s.deps.SigninEndpoint, store,
		auth.WithHTTPClient(s.deps.HTTPClient), auth.WithLogger(s.logger))
}

func (s *Server) queryClient(store *session.Store) *graphql.Client {
	return graphql.NewClient(s.deps.QueryEndpoint, store,
		graphql.WithHTTPClient(s.deps.HTTPClient), graphql.WithLogger(s.logger))
}

func (s *Server) controller(store *session.Store) *dashboard.Controller {
	return dashboard.NewController(s.queryClient(store),
		dashboard.WithLocation(s.deps.Location), dashboard.WithLogger(s.logger))
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting web server", "address", s.address)
		if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping web server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}
