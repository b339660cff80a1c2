// Package business holds the bodies of the CLI subcommands: session
// setup plus one Main function per command.
package business

import (
	"context"
	"fmt"
	"net"

	"github.com/valkey-io/valkey-go"

	slogctx "github.com/veqryn/slog-context"

	"github.com/jobwire/jobwire-go/internal/config"
	"github.com/jobwire/jobwire-go/internal/session"
	sessionfile "github.com/jobwire/jobwire-go/internal/session/file"
	sessionvalkey "github.com/jobwire/jobwire-go/internal/session/valkey"
	"github.com/jobwire/jobwire-go/pkg/jobwire"
)

// initSession builds the token store and the session manager, and
// restores any persisted session. The returned close function releases
// the store's resources.
func initSession(ctx context.Context, cfg *config.Config) (*session.Manager, func(), error) {
	store, closeFn, err := initTokenStore(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("initialising the token store: %w", err)
	}

	manager, err := session.NewManager(cfg.API.BaseURL, store,
		jobwire.WithTimeout(cfg.API.Timeout),
		jobwire.WithRetries(cfg.API.Retries),
		jobwire.WithRetryDelay(cfg.API.RetryDelay),
	)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("initialising the session manager: %w", err)
	}

	if err := manager.Bootstrap(ctx); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("bootstrapping the session: %w", err)
	}

	return manager, closeFn, nil
}

func initTokenStore(ctx context.Context, cfg *config.Config) (session.Repository, func(), error) {
	if cfg.Session.Valkey.Host == "" {
		return sessionfile.NewRepository(cfg.Session.File), func() {}, nil
	}

	host, port, err := net.SplitHostPort(cfg.Session.Valkey.Host)
	if err != nil {
		host = cfg.Session.Valkey.Host
		port = "6379"
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{net.JoinHostPort(host, port)},
		Password:    cfg.Session.Valkey.Password,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("initialising the valkey client: %w", err)
	}

	slogctx.Debug(ctx, "Using valkey token store", "host", cfg.Session.Valkey.Host)

	repo := sessionvalkey.NewRepository(client, cfg.Session.Valkey.Prefix, cfg.Session.Valkey.TTL)

	return repo, client.Close, nil
}

// requireAuth fails a command early when no session is established.
func requireAuth(manager *session.Manager) error {
	if !manager.Authenticated() {
		return fmt.Errorf("not logged in, run 'jobwire login' first")
	}

	return nil
}
