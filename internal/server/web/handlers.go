package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/progressboard/internal/chart"
	"github.com/dmitrijs2005/progressboard/internal/common"
	"github.com/dmitrijs2005/progressboard/internal/dashboard"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var paths = map[dashboard.View]string{
	dashboard.Entry:     "/login",
	dashboard.Protected: "/profile",
}

// authenticated reports whether the request carries a usable session. A
// storage failure is returned as an error, not as a signed-out session.
func (s *Server) authenticated(c echo.Context) (bool, error) {
	_, err := s.store(c).Current(c.Request().Context())
	switch {
	case err == nil:
		return true, nil
	case common.IsAuthError(err):
		return false, nil
	}
	return false, err
}

// guard applies the navigation contract to a request for view. It reports
// whether the request was already answered, by a redirect or an error.
func (s *Server) guard(c echo.Context, view dashboard.View) (bool, error) {
	authenticated, err := s.authenticated(c)
	if err != nil {
		return true, err
	}
	target, redirect := dashboard.Resolve(view, authenticated)
	if !redirect {
		return false, nil
	}
	return true, c.Redirect(http.StatusSeeOther, paths[target])
}

func (s *Server) index(c echo.Context) error {
	if redirected, err := s.guard(c, dashboard.Protected); redirected {
		return err
	}
	return c.Redirect(http.StatusSeeOther, paths[dashboard.Protected])
}

type loginData struct {
	Username string
	Error    string
}

func (s *Server) loginPage(c echo.Context) error {
	if redirected, err := s.guard(c, dashboard.Entry); redirected {
		return err
	}
	return c.Render(http.StatusOK, "login", loginData{})
}

// loginFailure maps a sign-in error to the status and message shown on the
// form.
func loginFailure(err error) (int, string) {
	var se *common.StatusError
	switch {
	case errors.As(err, &se) && errors.Is(err, common.ErrAuthenticationFailed):
		return http.StatusUnauthorized, fmt.Sprintf("Invalid credentials (Status: %d)", se.Code)
	case errors.Is(err, common.ErrAuthenticationFailed):
		return http.StatusBadGateway, "Authentication service unavailable"
	case errors.Is(err, common.ErrNoToken):
		return http.StatusBadGateway, "No authentication token received. Please check server response format."
	case errors.Is(err, common.ErrMalformedResponse):
		return http.StatusBadGateway, "Invalid server response format"
	}
	return http.StatusInternalServerError, "Sign-in failed"
}

func (s *Server) login(c echo.Context) error {
	ctx := c.Request().Context()
	if redirected, err := s.guard(c, dashboard.Entry); redirected {
		return err
	}

	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.Render(http.StatusBadRequest, "login", loginData{Username: username, Error: "Please enter username and password"})
	}

	// A fresh session id per sign-in; the previous one is dropped.
	previous := s.store(c)
	newSID := uuid.NewString()
	store := s.deps.Sessions.Store(newSID)

	if _, err := s.authClient(store).Login(ctx, username, password); err != nil {
		status, msg := loginFailure(err)
		s.logger.Info(ctx, "sign-in failed", "error", err)
		return c.Render(status, "login", loginData{Username: username, Error: msg})
	}

	if err := previous.Clear(ctx); err != nil {
		s.logger.Warn(ctx, "clearing previous session failed", "error", err)
	}
	setSessionCookie(c, newSID)
	return c.Redirect(http.StatusSeeOther, paths[dashboard.Protected])
}

func (s *Server) logout(c echo.Context) error {
	if err := s.authClient(s.store(c)).Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, paths[dashboard.Entry])
}

// dropSession clears the session after the query endpoint rejected it.
func (s *Server) dropSession(c echo.Context, cause error) {
	ctx := c.Request().Context()
	s.logger.Info(ctx, "session rejected, signing out", "error", cause)
	if err := s.store(c).Clear(ctx); err != nil {
		s.logger.Warn(ctx, "clearing rejected session failed", "error", err)
	}
}

func (s *Server) profile(c echo.Context) error {
	if redirected, err := s.guard(c, dashboard.Protected); redirected {
		return err
	}

	d, err := s.controller(s.store(c)).Load(c.Request().Context())
	if err != nil {
		if common.IsAuthError(err) {
			s.dropSession(c, err)
			return c.Redirect(http.StatusSeeOther, paths[dashboard.Entry])
		}
		return err
	}
	return c.Render(http.StatusOK, "profile", d)
}

func (s *Server) chartResponse(c echo.Context, render func() (string, error)) error {
	authenticated, err := s.authenticated(c)
	if err != nil {
		return err
	}
	if !authenticated {
		return echo.NewHTTPError(http.StatusUnauthorized, common.ErrNotAuthenticated.Error())
	}

	out, err := render()
	switch {
	case common.IsAuthError(err):
		s.dropSession(c, err)
		return echo.NewHTTPError(http.StatusUnauthorized, common.ErrNotAuthenticated.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusBadGateway, "Error loading data: "+err.Error())
	}

	if !strings.HasPrefix(out, "<svg") {
		return c.String(http.StatusOK, out)
	}
	return c.Blob(http.StatusOK, "image/svg+xml", []byte(out))
}

func (s *Server) xpChart(c echo.Context) error {
	return s.chartResponse(c, func() (string, error) {
		txs, err := s.queryClient(s.store(c)).GetUserExperience(c.Request().Context())
		if err != nil {
			return "", err
		}
		return chart.RenderLine(txs, chart.Options{Location: s.deps.Location}), nil
	})
}

func (s *Server) ratioChart(c echo.Context) error {
	return s.chartResponse(c, func() (string, error) {
		records, err := s.queryClient(s.store(c)).GetPassFailRatio(c.Request().Context())
		if err != nil {
			return "", err
		}
		return chart.RenderPie(records), nil
	})
}

func (s *Server) health(c echo.Context) error {
	if s.deps.Ready != nil {
		if err := s.deps.Ready(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}
