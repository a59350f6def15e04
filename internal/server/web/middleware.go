package web

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/progressboard/internal/logging"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	cookieName = "pb_session"
	sidKey     = "sid"
)

// requestLogger logs every request through logger.
func requestLogger(logger logging.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				logger.Warn(c.Request().Context(), "request failed", append(args, "error", v.Error)...)
				return nil
			}
			logger.Info(c.Request().Context(), "request", args...)
			return nil
		},
	})
}

// noStore keeps pages out of every cache, the browser's back-forward cache
// included, so each visit re-runs the navigation guard.
func noStore(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
		return next(c)
	}
}

// sessionID binds the request to a browser session id, issuing a new one
// when the cookie is missing or not a UUID.
func sessionID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ck, err := c.Cookie(cookieName); err == nil {
			if id, err := uuid.Parse(ck.Value); err == nil {
				c.Set(sidKey, id.String())
				return next(c)
			}
		}
		setSessionCookie(c, uuid.NewString())
		return next(c)
	}
}

func setSessionCookie(c echo.Context, sid string) {
	c.Set(sidKey, sid)
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.Scheme() == "https",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}

func sid(c echo.Context) string {
	s, _ := c.Get(sidKey).(string)
	return s
}
