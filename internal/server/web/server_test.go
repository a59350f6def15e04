package web

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/progressboard/internal/dbx"
	"github.com/dmitrijs2005/progressboard/internal/session"
	"github.com/dmitrijs2005/progressboard/internal/storage"
	"github.com/dmitrijs2005/progressboard/internal/storage/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const token = "h.p.s"

const (
	userBody       = `{"data":{"user":[{"id":7,"login":"jdoe","campus":"bahrain","attrs":{"firstName":"Jane","lastName":"Doe","email":"j@x.io"}}]}}`
	experienceBody = `{"data":{"transaction":[
		{"id":2,"amount":2000,"createdAt":"2024-03-02T10:00:00Z","path":"/p/b","object":{"id":2,"name":"go-reloaded","type":"project"}},
		{"id":1,"amount":1000,"createdAt":"2024-03-01T10:00:00Z","path":"/p/a","object":{"id":1,"name":"ascii-art","type":"project"}}]}}`
	progressBody = `{"data":{"progress":[
		{"id":1,"grade":1,"createdAt":"2024-03-02T10:00:00Z","path":"/p/b","object":{"id":2,"name":"go-reloaded","type":"project"}},
		{"id":2,"grade":0,"createdAt":"2024-03-01T10:00:00Z","path":"/p/a","object":{"id":1,"name":"ascii-art","type":"project"}}]}}`
)

type backend struct {
	signin   *httptest.Server
	query    *httptest.Server
	rejected atomic.Bool
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{}
	b.signin = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "jdoe" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `"`+token+`"`)
	}))
	b.query = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.rejected.Load() || r.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		q := string(body)
		switch {
		case strings.Contains(q, "{ user"):
			_, _ = io.WriteString(w, userBody)
		case strings.Contains(q, "transaction("):
			_, _ = io.WriteString(w, experienceBody)
		case strings.Contains(q, "progress("):
			_, _ = io.WriteString(w, progressBody)
		default:
			_, _ = io.WriteString(w, `{"data":{}}`)
		}
	}))
	t.Cleanup(b.signin.Close)
	t.Cleanup(b.query.Close)
	return b
}

type harness struct {
	db      *sql.DB
	srv     *httptest.Server
	client  *http.Client
	backend *backend
	down    atomic.Bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db, err := storage.Open(context.Background(), dbx.SQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	h := &harness{db: db, backend: newBackend(t)}
	s, err := NewServer("", Deps{
		Sessions:       session.NewManager(kv.NewSQLiteRepository(db), session.WithCache(session.NewCache(16, 0))),
		SigninEndpoint: h.backend.signin.URL,
		QueryEndpoint:  h.backend.query.URL,
		Ready: func(context.Context) error {
			if h.down.Load() {
				return errors.New("db down")
			}
			return nil
		},
	})
	require.NoError(t, err)

	h.srv = httptest.NewServer(s.Handler())
	t.Cleanup(h.srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	h.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return h
}

func (h *harness) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := h.client.Get(h.srv.URL + path)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (h *harness) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := h.client.PostForm(h.srv.URL+path, form)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	resp, _ := h.post(t, "/login", url.Values{"username": {"jdoe"}, "password": {"secret"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/profile", resp.Header.Get("Location"))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestIndex_RedirectsByAuthState(t *testing.T) {
	h := newHarness(t)

	resp, _ := h.get(t, "/")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	h.login(t)
	resp, _ = h.get(t, "/")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/profile", resp.Header.Get("Location"))
}

func TestProfile_RequiresSession(t *testing.T) {
	h := newHarness(t)

	resp, _ := h.get(t, "/profile")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Contains(t, resp.Header.Get("Cache-Control"), "no-store")
}

func TestLoginPage_RendersForm(t *testing.T) {
	h := newHarness(t)

	resp, body := h.get(t, "/login")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="username"`)
	assert.Contains(t, body, `name="password"`)
	assert.NotEmpty(t, resp.Cookies())
}

func TestLogin_RejectsEmptyFields(t *testing.T) {
	h := newHarness(t)

	resp, body := h.post(t, "/login", url.Values{"username": {"  "}, "password": {"x"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Please enter username and password")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	h := newHarness(t)

	resp, body := h.post(t, "/login", url.Values{"username": {"jdoe"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid credentials (Status: 401)")
	assert.Contains(t, body, `value="jdoe"`)
}

func TestLogin_RotatesSessionID(t *testing.T) {
	h := newHarness(t)
	u, _ := url.Parse(h.srv.URL)

	h.get(t, "/login")
	before := h.client.Jar.Cookies(u)
	require.Len(t, before, 1)

	h.login(t)
	after := h.client.Jar.Cookies(u)
	require.Len(t, after, 1)
	assert.NotEqual(t, before[0].Value, after[0].Value)
}

func TestLoginPage_RedirectsWhenSignedIn(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	resp, _ := h.get(t, "/login")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/profile", resp.Header.Get("Location"))
}

func TestProfile_RendersDashboard(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	resp, body := h.get(t, "/profile")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Cache-Control"), "no-store")
	assert.Contains(t, body, "jdoe")
	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "go-reloaded")
	assert.Contains(t, body, "<svg")
	assert.Contains(t, body, `id="ratio-graph"`)
}

func TestPages_ReloadOnHistoryNavigation(t *testing.T) {
	h := newHarness(t)

	_, body := h.get(t, "/login")
	assert.Contains(t, body, `addEventListener("popstate"`)
	assert.Contains(t, body, "history.pushState")
	assert.Contains(t, body, `addEventListener("pageshow"`)

	h.login(t)
	_, body = h.get(t, "/profile")
	assert.Contains(t, body, `addEventListener("popstate"`)
}

func TestProfile_RejectedSessionSignsOut(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.backend.rejected.Store(true)

	resp, _ := h.get(t, "/profile")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, _ = h.get(t, "/profile")
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestProfile_StorageFailureIsNotALogout(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	require.NoError(t, h.db.Close())

	resp, _ := h.get(t, "/profile")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))

	resp, _ = h.get(t, "/charts/xp.svg")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestLogout_ClearsSession(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	resp, _ := h.post(t, "/logout", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, _ = h.get(t, "/profile")
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestCharts(t *testing.T) {
	h := newHarness(t)

	resp, _ := h.get(t, "/charts/xp.svg")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	h.login(t)
	for _, path := range []string{"/charts/xp.svg", "/charts/ratio.svg"} {
		resp, body := h.get(t, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"), path)
		assert.True(t, strings.HasPrefix(body, "<svg"), path)
	}
}

func TestHealth(t *testing.T) {
	h := newHarness(t)

	resp, body := h.get(t, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy"}`, body)

	h.down.Store(true)
	resp, _ = h.get(t, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestLoginFailure(t *testing.T) {
	status, msg := loginFailure(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotEmpty(t, msg)
}
