package session

import (
	"context"
	"errors"

	"github.com/jobwire/jobwire-go/pkg/jobwire"
)

// ErrNoTokens marks an empty persisted token slot.
var ErrNoTokens = errors.New("no persisted tokens")

// Repository is the single persisted token slot backing the session:
// the durable half of the lockstep invariant between in-memory and
// persisted tokens. Clear on an already-empty slot must succeed.
type Repository interface {
	Load(ctx context.Context) (jobwire.TokenPair, error)
	Store(ctx context.Context, tokens jobwire.TokenPair) error
	Clear(ctx context.Context) error
}
