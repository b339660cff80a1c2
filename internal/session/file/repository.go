// Package sessionfile persists the token pair as a JSON file, the CLI
// analog of the browser's single local-storage slot.
package sessionfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jobwire/jobwire-go/internal/session"
	"github.com/jobwire/jobwire-go/pkg/jobwire"
)

type Repository struct {
	path string
}

var _ = session.Repository(&Repository{})

func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

func (r *Repository) Load(_ context.Context) (jobwire.TokenPair, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return jobwire.TokenPair{}, session.ErrNoTokens
	}
	if err != nil {
		return jobwire.TokenPair{}, fmt.Errorf("reading session file: %w", err)
	}

	var pair jobwire.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return jobwire.TokenPair{}, fmt.Errorf("decoding session file: %w", err)
	}
	if pair.AccessToken == "" {
		return jobwire.TokenPair{}, session.ErrNoTokens
	}

	return pair, nil
}

func (r *Repository) Store(_ context.Context, tokens jobwire.TokenPair) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("encoding tokens: %w", err)
	}

	// Tokens are credentials: owner-only file, written atomically so a
	// crash never leaves a half-written slot.
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replacing session file: %w", err)
	}

	return nil
}

func (r *Repository) Clear(_ context.Context) error {
	err := os.Remove(r.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}

	return nil
}
