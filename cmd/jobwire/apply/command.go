package apply

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/jobwire/jobwire-go/internal/business"
	"github.com/jobwire/jobwire-go/internal/cmdutils"
	"github.com/jobwire/jobwire-go/internal/config"
)

func Cmd() *cobra.Command {
	var coverLetter string

	cmd := cmdutils.CobraCommand(
		"apply <job-id>",
		"Apply to a job",
		"Submit an application to a job as the logged-in candidate.",
		func(ctx context.Context, cfg *config.Config, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one job ID")
			}

			return business.ApplyMain(ctx, cfg, business.ApplyOptions{
				JobID:       args[0],
				CoverLetter: coverLetter,
			})
		},
	)

	cmd.Flags().StringVar(&coverLetter, "cover-letter", "", "cover letter text")

	return cmd
}
