package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/progressboard/internal/common"
	"github.com/dmitrijs2005/progressboard/internal/cryptox"
	"github.com/dmitrijs2005/progressboard/internal/logging"
	"github.com/dmitrijs2005/progressboard/internal/storage/kv"
)

const (
	// cliKey holds the token of the single CLI session.
	cliKey = "token"
	// webPrefix namespaces the tokens of web sessions.
	webPrefix = "session/"
)

// Manager vends Token Stores that share one repository, sealer and cache.
type Manager struct {
	repo   kv.Repository
	sealer *cryptox.Sealer
	cache  *Cache
	logger logging.Logger
}

type Option func(*Manager)

// WithSealer encrypts tokens at rest.
func WithSealer(s *cryptox.Sealer) Option { return func(m *Manager) { m.sealer = s } }

// WithCache enables the ephemeral query cache.
func WithCache(c *Cache) Option { return func(m *Manager) { m.cache = c } }

// WithLogger sets the logger used for self-healing events.
func WithLogger(l logging.Logger) Option { return func(m *Manager) { m.logger = l } }

func NewManager(repo kv.Repository, opts ...Option) *Manager {
	m := &Manager{repo: repo, logger: logging.Nop()}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Store returns the Token Store for scope. The empty scope is the single
// CLI session; any other scope is a web session id.
func (m *Manager) Store(scope string) *Store {
	key := cliKey
	if scope != "" {
		key = webPrefix + scope + "/token"
	}
	return &Store{m: m, key: key, scope: scope}
}

// Sweep removes stored web-session tokens that cannot be opened, have an
// invalid shape or claim an expiry before now. It returns how many were
// removed.
func (m *Manager) Sweep(ctx context.Context, now time.Time) (int, error) {
	pairs, err := m.repo.List(ctx, webPrefix)
	if err != nil {
		return 0, err
	}

	removed := 0
	for key, value := range pairs {
		token, err := m.open(value)
		if err == nil {
			if s, err := New(token); err == nil && !s.Expired(now) {
				continue
			}
		}
		if err := m.repo.Delete(ctx, key); err != nil {
			return removed, err
		}
		if m.cache != nil {
			m.cache.purge(scopeFromKey(key))
		}
		removed++
	}
	return removed, nil
}

func scopeFromKey(key string) string {
	return strings.TrimSuffix(strings.TrimPrefix(key, webPrefix), "/token")
}

func (m *Manager) seal(token string) ([]byte, error) {
	if m.sealer == nil {
		return []byte(token), nil
	}
	return m.sealer.Seal([]byte(token))
}

func (m *Manager) open(value []byte) (string, error) {
	if m.sealer == nil {
		return string(value), nil
	}
	plain, err := m.sealer.Open(value)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// Store persists the token of one session.
type Store struct {
	m     *Manager
	key   string
	scope string
}

// Get returns the stored token, if any. A value that can no longer be
// opened (the sealing secret changed) is removed and reported as absent.
func (s *Store) Get(ctx context.Context) (string, bool, error) {
	value, err := s.m.repo.Get(ctx, s.key)
	if err != nil {
		return "", false, err
	}
	if value == nil {
		return "", false, nil
	}

	token, err := s.m.open(value)
	if err != nil {
		if errors.Is(err, cryptox.ErrSealed) {
			s.m.logger.Warn(ctx, "stored token cannot be opened, removing", "scope", s.scope)
			return "", false, s.m.repo.Delete(ctx, s.key)
		}
		return "", false, err
	}
	return token, true, nil
}

// Set persists token and drops whatever the cache held for the previous
// session.
func (s *Store) Set(ctx context.Context, token string) error {
	value, err := s.m.seal(token)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	if err := s.m.repo.Set(ctx, s.key, value); err != nil {
		return err
	}
	s.Cache().Purge()
	return nil
}

// Clear removes the token and purges the session's cache entries.
func (s *Store) Clear(ctx context.Context) error {
	s.Cache().Purge()
	return s.m.repo.Delete(ctx, s.key)
}

// IsValid reports whether a well-shaped token is stored. A malformed token
// is cleared before returning false, so it never survives a check.
func (s *Store) IsValid(ctx context.Context) bool {
	_, err := s.Current(ctx)
	return err == nil
}

// Current returns the stored session, or an error matching
// common.ErrNotAuthenticated when there is none. Malformed tokens are
// cleared. Storage failures are returned as they are.
func (s *Store) Current(ctx context.Context) (*Session, error) {
	token, ok, err := s.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	if !ok {
		return nil, common.ErrNotAuthenticated
	}

	sess, err := New(token)
	if err != nil {
		s.m.logger.Warn(ctx, "stored token is malformed, clearing", "scope", s.scope)
		if cerr := s.Clear(ctx); cerr != nil {
			s.m.logger.Error(ctx, "clearing malformed token failed", "error", cerr)
		}
		return nil, err
	}
	return sess, nil
}

// Cache returns this session's view of the ephemeral cache.
func (s *Store) Cache() ScopedCache {
	return ScopedCache{cache: s.m.cache, scope: s.scope}
}

// Scope returns the session scope the store is bound to.
func (s *Store) Scope() string { return s.scope }
