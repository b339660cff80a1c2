// Package cmdutils wires the pieces every subcommand shares: config
// loading, logger initialisation, and the cobra command shell.
package cmdutils

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	slogctx "github.com/veqryn/slog-context"

	"github.com/jobwire/jobwire-go/internal/config"
)

// BusinessFunc is the body of one subcommand.
type BusinessFunc func(ctx context.Context, cfg *config.Config, args []string) error

// CobraCommand builds a subcommand that loads config, initialises the
// logger, and hands off to the business function.
func CobraCommand(use, short, long string, fn BusinessFunc) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if err := InitLogger(cfg.Logger); err != nil {
				return oops.In("main").Wrapf(err, "Failed to initialise the logger")
			}

			ctx := cmd.Context()
			slogctx.Debug(ctx, "Starting", slog.String("command", use))

			if err := fn(ctx, cfg, args); err != nil {
				return oops.In(strings.Fields(use)[0]).Wrapf(err, "Command failed")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")

	return cmd
}

// InitLogger installs the process-wide slog default according to the
// logger config, wrapped so context attributes flow into every record.
func InitLogger(cfg config.Logger) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text", "":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}

	slog.SetDefault(slog.New(slogctx.NewHandler(handler, nil)))

	return nil
}
