package auth

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/progressboard/internal/common"
	"github.com/dmitrijs2005/progressboard/internal/logging"
	"github.com/dmitrijs2005/progressboard/internal/session"
	"github.com/valyala/fastjson"
)

// TokenStore persists the session token. *session.Store implements it.
type TokenStore interface {
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	store      TokenStore
	logger     logging.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.httpClient = hc } }

func WithLogger(l logging.Logger) Option { return func(c *Client) { c.logger = l } }

func NewClient(endpoint string, store TokenStore, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		store:      store,
		logger:     logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func basicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

// Login exchanges the credentials for a token, stores it and returns the
// new session.
func (c *Client) Login(ctx context.Context, username, password string) (*session.Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader([]byte("{}")))
	if err != nil {
		return nil, fmt.Errorf("build signin request: %w", err)
	}
	req.Header.Set("Authorization", basicAuth(username, password))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAuthenticationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Info(ctx, "signin rejected", "status", resp.StatusCode)
		return nil, common.NewStatusError("signin", resp.StatusCode, common.ErrAuthenticationFailed)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}

	token, err := ExtractToken(body)
	if err != nil {
		return nil, err
	}

	sess, err := session.New(token)
	if err != nil {
		return nil, fmt.Errorf("%w: token has an invalid shape", common.ErrMalformedResponse)
	}

	if err := c.store.Set(ctx, token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	c.logger.Info(ctx, "signed in", "user_id", sess.UserID())
	return sess, nil
}

// Logout clears the stored token and the session's cached results.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	c.logger.Info(ctx, "signed out")
	return nil
}

// ExtractToken parses a credential endpoint response and runs the token
// decode chain over it.
func ExtractToken(body []byte) (string, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}

	token := findToken(v)
	if token == "" {
		return "", common.ErrNoToken
	}
	return token, nil
}
