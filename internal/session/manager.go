// Package session owns the client-side authentication lifecycle: the
// current user and token pair, bootstrap from the persisted slot,
// login/register/logout transitions, and access-token refresh.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"

	slogctx "github.com/veqryn/slog-context"

	"github.com/jobwire/jobwire-go/pkg/jobwire"
)

// refreshWindow is how close to expiry an access token may get before
// the auto-refresher exchanges it.
const refreshWindow = 5 * time.Minute

// tokenSigAlgs are the signature algorithms the backend issues tokens
// with. The client only reads the expiry claim; verification is the
// backend's job.
var tokenSigAlgs = []jose.SignatureAlgorithm{jose.HS256}

// Manager holds the session state for one logical user. It implements
// jobwire.TokenSource, so the credential is threaded into every request
// from the current state instead of living as a mutable client header.
//
// Invariants:
//   - Authenticated() is true iff both user and tokens are non-nil.
//   - The persisted slot and the in-memory pair are written on the same
//     call stack, persisted side first, before any dependent request.
type Manager struct {
	mu     sync.RWMutex
	client *jobwire.Client
	store  Repository

	user   *jobwire.UserSummary
	tokens *jobwire.TokenPair
	state  State
}

// NewManager builds the session manager and its API client. The manager
// is installed as the client's token source, so every authenticated
// call picks up the current access token.
func NewManager(baseURL string, store Repository, opts ...jobwire.Option) (*Manager, error) {
	m := &Manager{
		store: store,
		state: StateAnonymous,
	}

	opts = append(opts, jobwire.WithTokenSource(m))
	client, err := jobwire.NewClient(baseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}
	m.client = client

	return m, nil
}

// Client returns the API client bound to this session.
func (m *Manager) Client() *jobwire.Client { return m.client }

// Token implements jobwire.TokenSource.
func (m *Manager) Token(_ context.Context) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.tokens == nil {
		return "", false
	}

	return m.tokens.AccessToken, true
}

// Current returns a snapshot of the session and its state.
func (m *Manager) Current() (Session, State) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Session{User: m.user, Tokens: m.tokens}, m.state
}

func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state == StateAuthenticated
}

// Bootstrap restores the session from the persisted token slot. An
// absent slot lands anonymous; a present slot that fails validation is
// cleared and lands anonymous. Bootstrap itself only errors when the
// persisted slot cannot be read.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.mu.Lock()
	m.state = StateBootstrapping
	m.mu.Unlock()

	pair, err := m.store.Load(ctx)
	if errors.Is(err, ErrNoTokens) {
		m.toAnonymous()
		return nil
	}
	if err != nil {
		m.toAnonymous()
		return fmt.Errorf("loading persisted tokens: %w", err)
	}

	// Arm the restored credential so the current-user call carries it.
	m.mu.Lock()
	m.tokens = &pair
	m.mu.Unlock()

	res, err := m.client.Auth().Me(ctx)
	if err != nil {
		slogctx.Debug(ctx, "Session bootstrap failed, clearing persisted tokens", "error", err)
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			slogctx.Warn(ctx, "Could not clear persisted tokens", "error", clearErr)
		}
		m.toAnonymous()

		return nil
	}

	m.mu.Lock()
	m.user = &res.Data
	m.state = StateAuthenticated
	m.mu.Unlock()

	slogctx.Info(ctx, "Session restored", "email", res.Data.Email)

	return nil
}

// Login authenticates with email and password. On failure the prior
// state is kept and the API error propagates.
func (m *Manager) Login(ctx context.Context, email, password string, userType jobwire.UserType) error {
	res, err := m.client.Auth().Login(ctx, email, password, userType)
	if err != nil {
		return err
	}

	return m.establish(ctx, res.Data)
}

// Register creates an account and enters the authenticated state.
func (m *Manager) Register(ctx context.Context, email, password string, userType jobwire.UserType) error {
	res, err := m.client.Auth().Register(ctx, email, password, userType)
	if err != nil {
		return err
	}

	return m.establish(ctx, res.Data)
}

// GoogleLogin signs in with a Google ID token.
func (m *Manager) GoogleLogin(ctx context.Context, idToken string, userType jobwire.UserType) error {
	res, err := m.client.Auth().GoogleAuth(ctx, idToken, userType)
	if err != nil {
		return err
	}

	return m.establish(ctx, res.Data)
}

// Logout calls the backend best-effort and always clears local state:
// the client wins, so the session is never stuck authenticated-looking
// after a failed server round-trip.
func (m *Manager) Logout(ctx context.Context) error {
	if m.Authenticated() {
		if _, err := m.client.Auth().Logout(ctx); err != nil {
			slogctx.Warn(ctx, "Backend logout failed, clearing local session anyway", "error", err)
		}
	}

	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing persisted tokens: %w", err)
	}
	m.toAnonymous()

	return nil
}

// Refresh exchanges the refresh token for a fresh pair and persists it
// in lockstep with the in-memory state.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.RLock()
	tokens := m.tokens
	m.mu.RUnlock()

	if tokens == nil || tokens.RefreshToken == "" {
		return errors.New("no refresh token")
	}

	res, err := m.client.Auth().Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		return err
	}

	pair := res.Data
	if pair.RefreshToken == "" {
		// Backend may rotate or keep the refresh token; keep the old
		// one when the response omits it.
		pair.RefreshToken = tokens.RefreshToken
	}

	if err := m.store.Store(ctx, pair); err != nil {
		return fmt.Errorf("persisting refreshed tokens: %w", err)
	}

	m.mu.Lock()
	m.tokens = &pair
	m.mu.Unlock()

	slogctx.Debug(ctx, "Access token refreshed")

	return nil
}

// RunAutoRefresh periodically refreshes the access token when it is
// within the refresh window. Blocks until ctx is done.
func (m *Manager) RunAutoRefresh(ctx context.Context, interval time.Duration) {
	c := time.Tick(interval)
	for {
		if m.shouldRefresh() {
			if err := m.Refresh(ctx); err != nil {
				slogctx.Warn(ctx, "Could not refresh access token", "error", err)
			}
		}

		select {
		case <-c:
			continue
		case <-ctx.Done():
			return
		}
	}
}

func (m *Manager) shouldRefresh() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state != StateAuthenticated || m.tokens == nil {
		return false
	}

	expiry, err := accessTokenExpiry(m.tokens.AccessToken)
	if err != nil {
		// Unparseable token: let the next authenticated call surface
		// the 401 rather than refreshing blindly.
		return false
	}

	return time.Until(expiry) < refreshWindow
}

// establish persists the token pair and sets user and tokens on the
// same call stack, store first.
func (m *Manager) establish(ctx context.Context, payload jobwire.AuthPayload) error {
	if err := m.store.Store(ctx, payload.Tokens); err != nil {
		return fmt.Errorf("persisting tokens: %w", err)
	}

	m.mu.Lock()
	user := payload.User
	tokens := payload.Tokens
	m.user = &user
	m.tokens = &tokens
	m.state = StateAuthenticated
	m.mu.Unlock()

	slogctx.Info(ctx, "Session established", "email", payload.User.Email, "user_type", payload.User.UserType)

	return nil
}

func (m *Manager) toAnonymous() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = nil
	m.tokens = nil
	m.state = StateAnonymous
}

// accessTokenExpiry reads the exp claim without verifying the
// signature; the client is not the token's verifier.
func accessTokenExpiry(token string) (time.Time, error) {
	parsed, err := jwt.ParseSigned(token, tokenSigAlgs)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing access token: %w", err)
	}

	var claims jwt.Claims
	if err := parsed.UnsafeClaimsWithoutVerification(&claims); err != nil {
		return time.Time{}, fmt.Errorf("reading token claims: %w", err)
	}
	if claims.Expiry == nil {
		return time.Time{}, errors.New("access token has no expiry claim")
	}

	return claims.Expiry.Time(), nil
}
