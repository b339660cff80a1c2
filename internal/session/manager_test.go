package session_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobwire/jobwire-go/internal/session"
	sessionmock "github.com/jobwire/jobwire-go/internal/session/mock"
	"github.com/jobwire/jobwire-go/pkg/jobwire"
)

// authBackend is a minimal /auth fixture. Handlers registered per path
// win; everything else gets a 404 envelope.
type authBackend struct {
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	calls    map[string]int
}

func newAuthBackend() *authBackend {
	return &authBackend{
		handlers: map[string]http.HandlerFunc{},
		calls:    map[string]int{},
	}
}

func (b *authBackend) on(path string, h http.HandlerFunc) {
	b.handlers[path] = h
}

func (b *authBackend) callCount(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.calls[path]
}

func (b *authBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.calls[r.URL.Path]++
	h, ok := b.handlers[r.URL.Path]
	b.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Not found"}`))
		return
	}
	h(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func authPayloadBody(email string, tokens jobwire.TokenPair) map[string]any {
	return map[string]any{
		"success": true,
		"message": "OK",
		"data": map[string]any{
			"user":   map[string]any{"id": "u1", "email": email, "user_type": "CANDIDATE"},
			"tokens": tokens,
		},
	}
}

func newManager(t *testing.T, baseURL string, store session.Repository) *session.Manager {
	t.Helper()

	manager, err := session.NewManager(baseURL, store, jobwire.WithRetries(0))
	require.NoError(t, err)

	return manager
}

func TestManager_Bootstrap(t *testing.T) {
	ctx := t.Context()

	t.Run("an empty slot lands anonymous without touching the backend", func(t *testing.T) {
		backend := newAuthBackend()
		ts := httptest.NewServer(backend)
		defer ts.Close()

		store := &sessionmock.Repository{}
		manager := newManager(t, ts.URL, store)

		require.NoError(t, manager.Bootstrap(ctx))

		sess, state := manager.Current()
		assert.Equal(t, session.StateAnonymous, state)
		assert.Nil(t, sess.User)
		assert.Nil(t, sess.Tokens)
		assert.Equal(t, 0, backend.callCount("/auth/me"))
	})

	t.Run("a valid persisted pair restores the user", func(t *testing.T) {
		backend := newAuthBackend()
		backend.on("/auth/me", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer persisted-access", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"message": "OK",
				"data":    map[string]any{"id": "u1", "email": "jane@example.com", "user_type": "CANDIDATE"},
			})
		})
		ts := httptest.NewServer(backend)
		defer ts.Close()

		store := &sessionmock.Repository{}
		store.Seed(jobwire.TokenPair{AccessToken: "persisted-access", RefreshToken: "persisted-refresh"})
		manager := newManager(t, ts.URL, store)

		require.NoError(t, manager.Bootstrap(ctx))

		sess, state := manager.Current()
		require.Equal(t, session.StateAuthenticated, state)
		assert.Equal(t, "jane@example.com", sess.User.Email)
		assert.Equal(t, "persisted-access", sess.Tokens.AccessToken)
		assert.True(t, manager.Authenticated())
	})

	t.Run("a rejected persisted pair is cleared and lands anonymous", func(t *testing.T) {
		backend := newAuthBackend()
		backend.on("/auth/me", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Token expired"})
		})
		ts := httptest.NewServer(backend)
		defer ts.Close()

		store := &sessionmock.Repository{}
		store.Seed(jobwire.TokenPair{AccessToken: "stale", RefreshToken: "stale"})
		manager := newManager(t, ts.URL, store)

		require.NoError(t, manager.Bootstrap(ctx))

		_, state := manager.Current()
		assert.Equal(t, session.StateAnonymous, state)
		assert.Equal(t, 1, store.Clears)
		assert.Nil(t, store.Tokens())
	})

	t.Run("an unreadable slot surfaces the error and lands anonymous", func(t *testing.T) {
		ts := httptest.NewServer(newAuthBackend())
		defer ts.Close()

		store := &sessionmock.Repository{LoadErr: errors.New("disk gone")}
		manager := newManager(t, ts.URL, store)

		err := manager.Bootstrap(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk gone")

		_, state := manager.Current()
		assert.Equal(t, session.StateAnonymous, state)
	})
}

func TestManager_Login(t *testing.T) {
	ctx := t.Context()

	t.Run("success persists the pair before exposing the session", func(t *testing.T) {
		backend := newAuthBackend()
		backend.on("/auth/login", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, authPayloadBody("jane@example.com",
				jobwire.TokenPair{AccessToken: "acc", RefreshToken: "ref"}))
		})
		ts := httptest.NewServer(backend)
		defer ts.Close()

		store := &sessionmock.Repository{}
		manager := newManager(t, ts.URL, store)

		require.NoError(t, manager.Login(ctx, "jane@example.com", "Sup3r$ecret", jobwire.UserTypeCandidate))

		assert.True(t, manager.Authenticated())
		assert.Equal(t, 1, store.Stores)
		require.NotNil(t, store.Tokens())
		assert.Equal(t, "acc", store.Tokens().AccessToken)

		token, ok := manager.Token(ctx)
		require.True(t, ok)
		assert.Equal(t, "acc", token)
	})

	t.Run("a 401 keeps the session anonymous", func(t *testing.T) {
		backend := newAuthBackend()
		backend.on("/auth/login", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid credentials"})
		})
		ts := httptest.NewServer(backend)
		defer ts.Close()

		store := &sessionmock.Repository{}
		manager := newManager(t, ts.URL, store)

		err := manager.Login(ctx, "jane@example.com", "Wrong$ecret1", jobwire.UserTypeCandidate)
		require.Error(t, err)
		assert.True(t, jobwire.IsUnauthorized(err))

		assert.False(t, manager.Authenticated())
		assert.Equal(t, 0, store.Stores)
		_, ok := manager.Token(ctx)
		assert.False(t, ok)
	})

	t.Run("a failed persist never exposes a half-established session", func(t *testing.T) {
		backend := newAuthBackend()
		backend.on("/auth/login", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, authPayloadBody("jane@example.com",
				jobwire.TokenPair{AccessToken: "acc", RefreshToken: "ref"}))
		})
		ts := httptest.NewServer(backend)
		defer ts.Close()

		store := &sessionmock.Repository{StoreErr: errors.New("slot read-only")}
		manager := newManager(t, ts.URL, store)

		err := manager.Login(ctx, "jane@example.com", "Sup3r$ecret", jobwire.UserTypeCandidate)
		require.Error(t, err)
		assert.False(t, manager.Authenticated())
	})
}

func TestManager_Logout(t *testing.T) {
	ctx := t.Context()

	login := func(t *testing.T, backend *authBackend, store *sessionmock.Repository, url string) *session.Manager {
		t.Helper()
		backend.on("/auth/login", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, authPayloadBody("jane@example.com",
				jobwire.TokenPair{AccessToken: "acc", RefreshToken: "ref"}))
		})
		manager := newManager(t, url, store)
		require.NoError(t, manager.Login(ctx, "jane@example.com", "Sup3r$ecret", jobwire.UserTypeCandidate))

		return manager
	}

	t.Run("clears local state and the persisted slot", func(t *testing.T) {
		backend := newAuthBackend()
		backend.on("/auth/logout", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Logged out"})
		})
		ts := httptest.NewServer(backend)
		defer ts.Close()

		store := &sessionmock.Repository{}
		manager := login(t, backend, store, ts.URL)

		require.NoError(t, manager.Logout(ctx))

		assert.False(t, manager.Authenticated())
		assert.Nil(t, store.Tokens())
		assert.Equal(t, 1, backend.callCount("/auth/logout"))
	})

	t.Run("a backend 500 still clears the local session", func(t *testing.T) {
		backend := newAuthBackend()
		backend.on("/auth/logout", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "boom"})
		})
		ts := httptest.NewServer(backend)
		defer ts.Close()

		store := &sessionmock.Repository{}
		manager := login(t, backend, store, ts.URL)

		require.NoError(t, manager.Logout(ctx))

		assert.False(t, manager.Authenticated())
		assert.Nil(t, store.Tokens())
		_, ok := manager.Token(ctx)
		assert.False(t, ok)
	})

	t.Run("logging out anonymous skips the backend call", func(t *testing.T) {
		backend := newAuthBackend()
		ts := httptest.NewServer(backend)
		defer ts.Close()

		store := &sessionmock.Repository{}
		manager := newManager(t, ts.URL, store)

		require.NoError(t, manager.Logout(ctx))
		require.NoError(t, manager.Logout(ctx))

		assert.Equal(t, 0, backend.callCount("/auth/logout"))
		assert.Equal(t, 2, store.Clears)
	})
}

func TestManager_Refresh(t *testing.T) {
	ctx := t.Context()

	setup := func(t *testing.T, backend *authBackend) (*session.Manager, *sessionmock.Repository) {
		t.Helper()
		backend.on("/auth/login", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, authPayloadBody("jane@example.com",
				jobwire.TokenPair{AccessToken: "old-acc", RefreshToken: "old-ref"}))
		})
		ts := httptest.NewServer(backend)
		t.Cleanup(ts.Close)

		store := &sessionmock.Repository{}
		manager := newManager(t, ts.URL, store)
		require.NoError(t, manager.Login(ctx, "jane@example.com", "Sup3r$ecret", jobwire.UserTypeCandidate))

		return manager, store
	}

	t.Run("a rotated pair replaces both tokens and is persisted", func(t *testing.T) {
		backend := newAuthBackend()
		backend.on("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			var req jobwire.RefreshRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "old-ref", req.RefreshToken)
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"message": "OK",
				"data":    jobwire.TokenPair{AccessToken: "new-acc", RefreshToken: "new-ref"},
			})
		})
		manager, store := setup(t, backend)

		require.NoError(t, manager.Refresh(ctx))

		token, _ := manager.Token(ctx)
		assert.Equal(t, "new-acc", token)
		assert.Equal(t, "new-ref", store.Tokens().RefreshToken)
	})

	t.Run("an omitted refresh token keeps the old one", func(t *testing.T) {
		backend := newAuthBackend()
		backend.on("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"message": "OK",
				"data":    jobwire.TokenPair{AccessToken: "new-acc"},
			})
		})
		manager, store := setup(t, backend)

		require.NoError(t, manager.Refresh(ctx))

		assert.Equal(t, "old-ref", store.Tokens().RefreshToken)
		assert.Equal(t, "new-acc", store.Tokens().AccessToken)
	})

	t.Run("a rejected refresh keeps the current pair", func(t *testing.T) {
		backend := newAuthBackend()
		backend.on("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Refresh token revoked"})
		})
		manager, store := setup(t, backend)

		err := manager.Refresh(ctx)
		require.Error(t, err)
		assert.True(t, jobwire.IsUnauthorized(err))

		token, ok := manager.Token(ctx)
		require.True(t, ok)
		assert.Equal(t, "old-acc", token)
		assert.Equal(t, "old-ref", store.Tokens().RefreshToken)
		assert.True(t, manager.Authenticated())
	})

	t.Run("refreshing without a session errors", func(t *testing.T) {
		ts := httptest.NewServer(newAuthBackend())
		defer ts.Close()

		manager := newManager(t, ts.URL, &sessionmock.Repository{})

		require.Error(t, manager.Refresh(ctx))
	})
}
