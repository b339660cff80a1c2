// Package sessionvalkey persists the token pair in Valkey, for
// embedding the SDK in services that share one logical session across
// processes. The key carries the refresh-token lifetime as its TTL.
package sessionvalkey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/jobwire/jobwire-go/internal/session"
	"github.com/jobwire/jobwire-go/pkg/jobwire"
)

const tokensKey = "tokens"

var (
	ErrGetTokens   = errors.New("getting tokens from store")
	ErrStoreTokens = errors.New("setting tokens into storage")
	ErrClearTokens = errors.New("deleting tokens from storage")
)

type Repository struct {
	valkey valkey.Client
	prefix string
	ttl    time.Duration
}

var _ = session.Repository(&Repository{})

func NewRepository(valkeyClient valkey.Client, prefix string, ttl time.Duration) *Repository {
	prefix = strings.TrimSuffix(prefix, ":")

	return &Repository{
		valkey: valkeyClient,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *Repository) Load(ctx context.Context) (jobwire.TokenPair, error) {
	bytes, err := r.valkey.Do(ctx, r.valkey.B().Get().Key(r.key()).Build()).AsBytes()
	if err != nil {
		valkeyErr, ok := valkey.IsValkeyErr(err)
		if ok && valkeyErr.IsNil() {
			return jobwire.TokenPair{}, session.ErrNoTokens
		}

		return jobwire.TokenPair{}, errors.Join(ErrGetTokens, err)
	}

	var pair jobwire.TokenPair
	if err := json.Unmarshal(bytes, &pair); err != nil {
		return jobwire.TokenPair{}, fmt.Errorf("decoding tokens: %w", err)
	}

	return pair, nil
}

func (r *Repository) Store(ctx context.Context, tokens jobwire.TokenPair) error {
	bytes, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("encoding tokens: %w", err)
	}

	cmd := r.valkey.B().Set().Key(r.key()).Value(valkey.BinaryString(bytes)).Ex(r.ttl).Build()
	if err := r.valkey.Do(ctx, cmd).Error(); err != nil {
		return errors.Join(ErrStoreTokens, err)
	}

	return nil
}

func (r *Repository) Clear(ctx context.Context) error {
	if err := r.valkey.Do(ctx, r.valkey.B().Del().Key(r.key()).Build()).Error(); err != nil {
		return errors.Join(ErrClearTokens, err)
	}

	return nil
}

func (r *Repository) key() string {
	return fmt.Sprintf("%s:%s", r.prefix, tokensKey)
}
