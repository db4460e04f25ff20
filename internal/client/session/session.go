// Package session implements the login protocol of the terminal client.
//
// A login is reported as successful only after the server confirms the
// session on /auth/me. The token from the login body is persisted and
// replayed as a bearer header, so confirmation works even when the cookie
// channel does not.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	clientapi "github.com/iudanet/futbol/internal/client/api"
	"github.com/iudanet/futbol/internal/client/storage"
	"github.com/iudanet/futbol/pkg/api"
)

var (
	// ErrSessionUnconfirmed: credentials were accepted but /auth/me never
	// reported an identity within the retry budget.
	ErrSessionUnconfirmed = errors.New("session could not be confirmed")

	// ErrStorageUnavailable: the bearer token could not be persisted and the
	// client cannot rely on cookies.
	ErrStorageUnavailable = errors.New("token storage unavailable")

	// ErrNotAuthenticated: the server rejected both credential channels.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// API is the subset of the HTTP client the session needs.
type API interface {
	Register(ctx context.Context, req api.RegisterRequest) error
	Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)
	Me(ctx context.Context) (*api.MeResponse, error)
	Logout(ctx context.Context) error
	ClearCookies()
}

type State int

const (
	StateAnonymous State = iota
	StateLoggingIn
	StateConfirmingSession
	StateAuthenticated
	StateLoginFailed
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateLoggingIn:
		return "logging_in"
	case StateConfirmingSession:
		return "confirming_session"
	case StateAuthenticated:
		return "authenticated"
	case StateLoginFailed:
		return "login_failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Policy controls session confirmation after login.
type Policy struct {
	InitialDelay time.Duration
	RetryDelay   time.Duration
	MaxAttempts  int
}

// PolicyFor returns the confirmation policy for a client that can (or
// cannot) rely on cookies for credentialed requests.
func PolicyFor(cookiesReliable bool) Policy {
	if cookiesReliable {
		return Policy{InitialDelay: 300 * time.Millisecond, RetryDelay: 500 * time.Millisecond, MaxAttempts: 3}
	}
	return Policy{InitialDelay: 800 * time.Millisecond, RetryDelay: time.Second, MaxAttempts: 5}
}

func (p Policy) backoff() retry.Backoff {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.RetryDelay
	if delay <= 0 {
		// NewConstant паникует на нулевой задержке
		delay = time.Nanosecond
	}
	return retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(delay))
}

// Manager drives Anonymous -> LoggingIn -> ConfirmingSession -> Authenticated
// (or LoginFailed). Concurrent logins are not coordinated; the last token
// written to storage wins.
type Manager struct {
	api             API
	store           storage.AuthStorage
	logger          *slog.Logger
	now             func() time.Time
	policy          Policy
	mu              sync.Mutex
	state           State
	attempt         int
	cookiesReliable bool
}

type Option func(*Manager)

// WithPolicy overrides the policy derived from the cookie capability flag.
func WithPolicy(p Policy) Option {
	return func(m *Manager) { m.policy = p }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(logger *slog.Logger, client API, store storage.AuthStorage, cookiesReliable bool, opts ...Option) *Manager {
	m := &Manager{
		api:             client,
		store:           store,
		logger:          logger,
		now:             time.Now,
		policy:          PolicyFor(cookiesReliable),
		cookiesReliable: cookiesReliable,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Attempt returns the last confirmation attempt number (1-based, 0 if none).
func (m *Manager) Attempt() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempt
}

func (m *Manager) Policy() Policy {
	return m.policy
}

func (m *Manager) setState(s State, attempt int) {
	m.mu.Lock()
	m.state = s
	m.attempt = attempt
	m.mu.Unlock()
}

// Register creates an account. It does not log in.
func (m *Manager) Register(ctx context.Context, email, password string) error {
	return m.api.Register(ctx, api.RegisterRequest{Email: email, Password: password})
}

// Login verifies credentials, persists the token and confirms the session.
func (m *Manager) Login(ctx context.Context, email, password string) (*api.MeResponse, error) {
	m.setState(StateLoggingIn, 0)

	resp, err := m.api.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		m.setState(StateLoginFailed, 0)
		return nil, err
	}

	if err := m.persist(ctx, email, resp); err != nil {
		m.setState(StateLoginFailed, 0)
		return nil, err
	}

	// Подтверждаем свежим токеном: в хранилище может остаться старый,
	// а заголовок на сервере важнее cookie.
	me, err := m.confirm(clientapi.WithBearer(ctx, resp.Token))
	if err != nil {
		m.setState(StateLoginFailed, m.Attempt())
		m.discardToken(ctx, resp.Token)
		return nil, err
	}

	m.rememberUser(ctx, me, resp.Token)
	m.setState(StateAuthenticated, m.Attempt())

	m.logger.InfoContext(ctx, "Session confirmed",
		slog.String("user_id", me.ID),
		slog.Int("attempt", m.Attempt()))

	return me, nil
}

func (m *Manager) persist(ctx context.Context, email string, resp *api.LoginResponse) error {
	if resp.Token == "" {
		m.logger.WarnContext(ctx, "Login response carried no token, relying on cookie")
		if !m.cookiesReliable {
			return fmt.Errorf("%w: server returned no token", ErrStorageUnavailable)
		}
		return nil
	}

	auth := &storage.AuthData{Token: resp.Token, Email: email}
	if resp.ExpiresIn > 0 {
		auth.ExpiresAt = m.now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix()
	}

	if err := m.store.SaveAuth(ctx, auth); err != nil {
		m.logger.WarnContext(ctx, "Failed to persist session token", slog.Any("error", err))
		if !m.cookiesReliable {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}
	return nil
}

func (m *Manager) confirm(ctx context.Context) (*api.MeResponse, error) {
	if err := sleep(ctx, m.policy.InitialDelay); err != nil {
		return nil, err
	}

	var me *api.MeResponse
	attempt := 0

	err := retry.Do(ctx, m.policy.backoff(), func(ctx context.Context) error {
		attempt++
		m.setState(StateConfirmingSession, attempt)

		resp, err := m.api.Me(ctx)
		if err != nil {
			m.logger.DebugContext(ctx, "Session not confirmed yet",
				slog.Int("attempt", attempt),
				slog.Any("error", err))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return retry.RetryableError(err)
		}

		me = resp
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		m.logger.WarnContext(ctx, "Session confirmation exhausted",
			slog.Int("attempts", attempt),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w after %d attempts: %v", ErrSessionUnconfirmed, attempt, err)
	}

	return me, nil
}

func (m *Manager) rememberUser(ctx context.Context, me *api.MeResponse, token string) {
	auth, err := m.store.GetAuth(ctx)
	if err != nil || token == "" || auth.Token != token {
		return
	}
	auth.UserID = me.ID
	auth.Email = me.Email
	if err := m.store.SaveAuth(ctx, auth); err != nil {
		m.logger.WarnContext(ctx, "Failed to update stored session", slog.Any("error", err))
	}
}

// discardToken forgets an unconfirmed login. A stored token other than
// the one from this login is left alone.
func (m *Manager) discardToken(ctx context.Context, token string) {
	m.api.ClearCookies()

	// контекст мог быть отменен, удаление все равно выполняем
	ctx = context.WithoutCancel(ctx)
	auth, err := m.store.GetAuth(ctx)
	if err != nil || auth.Token != token {
		return
	}
	if err := m.store.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		m.logger.WarnContext(ctx, "Failed to discard unconfirmed token", slog.Any("error", err))
	}
}

// Status asks the server who the stored session belongs to.
func (m *Manager) Status(ctx context.Context) (*api.MeResponse, error) {
	me, err := m.api.Me(ctx)
	if err != nil {
		if errors.Is(err, clientapi.ErrUnauthorized) {
			m.setState(StateAnonymous, 0)
			return nil, fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
		}
		return nil, err
	}
	m.setState(StateAuthenticated, 0)
	return me, nil
}

// Logout asks the server to drop the cookie and always removes the local
// token. Only a local failure is returned; the server call is best effort.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.api.Logout(ctx); err != nil {
		m.logger.WarnContext(ctx, "Server logout failed", slog.Any("error", err))
	}
	m.api.ClearCookies()

	err := m.store.DeleteAuth(ctx)
	m.setState(StateAnonymous, 0)

	if err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete local session: %w", err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
