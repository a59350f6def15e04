// Package graphql talks to the query endpoint on behalf of the current
// session.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/progressboard/internal/common"
	"github.com/dmitrijs2005/progressboard/internal/logging"
	"github.com/dmitrijs2005/progressboard/internal/session"
	"golang.org/x/sync/singleflight"
)

// SessionSource yields the session requests are made for. *session.Store
// implements it.
type SessionSource interface {
	Current(ctx context.Context) (*session.Session, error)
}

// cacheSource is implemented by sources that carry an ephemeral result
// cache.
type cacheSource interface {
	Cache() session.ScopedCache
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	sessions   SessionSource
	cache      session.ScopedCache
	logger     logging.Logger
	users      singleflight.Group
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.httpClient = hc } }

func WithLogger(l logging.Logger) Option { return func(c *Client) { c.logger = l } }

// NewClient returns a client for endpoint. When src also exposes a Cache,
// results are cached there.
func NewClient(endpoint string, src SessionSource, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		sessions:   src,
		logger:     logging.Nop(),
	}
	if cs, ok := src.(cacheSource); ok {
		c.cache = cs.Cache()
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message    string `json:"message"`
		Extensions struct {
			Code string `json:"code"`
		} `json:"extensions"`
	} `json:"errors"`
}

// Execute runs query with variables and returns the data member of the
// answer.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	sess, err := c.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}

	if variables == nil {
		variables = map[string]any{}
	}
	payload, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	cacheKey := string(payload)
	if data, ok := c.cache.Get(cacheKey); ok {
		c.logger.Debug(ctx, "query served from cache")
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", sess.Authorization())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrServiceError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		class := common.ErrServiceError
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			class = common.ErrNotAuthenticated
		}
		return nil, common.NewStatusError("query", resp.StatusCode, class)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}

	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}
	if len(r.Errors) > 0 {
		first := r.Errors[0]
		c.logger.Warn(ctx, "query endpoint reported an error", "message", first.Message, "code", first.Extensions.Code)
		return nil, &common.ServiceError{Message: first.Message, Code: first.Extensions.Code}
	}

	c.cache.Add(cacheKey, r.Data)
	return r.Data, nil
}

func decode[T any](data json.RawMessage, out *T) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}
	return nil
}

var errNoUser = errors.New("no user returned")
