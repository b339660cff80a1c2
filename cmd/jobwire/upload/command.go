package upload

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/jobwire/jobwire-go/internal/business"
	"github.com/jobwire/jobwire-go/internal/cmdutils"
	"github.com/jobwire/jobwire-go/internal/config"
)

func Cmd() *cobra.Command {
	return cmdutils.CobraCommand(
		"upload <resume|picture|logo> <path>",
		"Upload a file",
		"Upload a resume, profile picture, or organization logo for the logged-in user.",
		func(ctx context.Context, cfg *config.Config, args []string) error {
			if len(args) != 2 {
				return errors.New("expected a kind and a file path")
			}

			return business.UploadMain(ctx, cfg, business.UploadOptions{
				Kind: args[0],
				Path: args[1],
			})
		},
	)
}
