// Package sessionmock is an in-memory token slot for tests.
package sessionmock

import (
	"context"
	"sync"

	"github.com/jobwire/jobwire-go/internal/session"
	"github.com/jobwire/jobwire-go/pkg/jobwire"
)

type Repository struct {
	mu     sync.Mutex
	pair   *jobwire.TokenPair
	Stores int
	Clears int

	// LoadErr and StoreErr, when set, are returned verbatim.
	LoadErr  error
	StoreErr error
}

var _ = session.Repository(&Repository{})

func (r *Repository) Load(_ context.Context) (jobwire.TokenPair, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.LoadErr != nil {
		return jobwire.TokenPair{}, r.LoadErr
	}
	if r.pair == nil {
		return jobwire.TokenPair{}, session.ErrNoTokens
	}

	return *r.pair, nil
}

func (r *Repository) Store(_ context.Context, tokens jobwire.TokenPair) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.StoreErr != nil {
		return r.StoreErr
	}
	r.pair = &tokens
	r.Stores++

	return nil
}

func (r *Repository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pair = nil
	r.Clears++

	return nil
}

// Seed puts a pair into the slot without counting as a Store.
func (r *Repository) Seed(tokens jobwire.TokenPair) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pair = &tokens
}

// Tokens returns the current slot contents, nil when empty.
func (r *Repository) Tokens() *jobwire.TokenPair {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pair == nil {
		return nil
	}
	pair := *r.pair

	return &pair
}
