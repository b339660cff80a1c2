// Package valkeytest spins up a throwaway Valkey container for token
// store tests.
package valkeytest

import (
	"context"
	"net"

	"github.com/docker/go-connections/nat"
	"github.com/valkey-io/valkey-go"

	valkeycontainer "github.com/testcontainers/testcontainers-go/modules/valkey"
	slogctx "github.com/veqryn/slog-context"
)

// Start runs a Valkey container and returns a client connected to it
// plus a termination function.
func Start(ctx context.Context) (valkey.Client, func(ctx context.Context)) {
	container, err := valkeycontainer.Run(ctx, "valkey/valkey:8-alpine")
	if err != nil {
		slogctx.Error(ctx, "Failed to start Valkey container", "error", err)
		panic(err)
	}

	port, err := container.MappedPort(ctx, nat.Port("6379"))
	if err != nil {
		slogctx.Error(ctx, "Failed to map a port for the Valkey container", "error", err)
		panic(err)
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{net.JoinHostPort("localhost", port.Port())},
	})
	if err != nil {
		slogctx.Error(ctx, "Failed to initialise a Valkey client", "error", err)
		panic(err)
	}

	terminate := func(ctx context.Context) {
		if err := container.Terminate(ctx); err != nil {
			slogctx.Error(ctx, "Failed to terminate Valkey container", "error", err)
		}
	}

	return client, terminate
}
