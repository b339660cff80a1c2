package jobs

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/jobwire/jobwire-go/internal/business"
	"github.com/jobwire/jobwire-go/internal/cmdutils"
	"github.com/jobwire/jobwire-go/internal/config"
)

func Cmd() *cobra.Command {
	var opts business.JobsOptions

	cmd := cmdutils.CobraCommand(
		"jobs [job-id]",
		"Browse job postings",
		"List job postings matching the filters, or show one job by ID.",
		func(ctx context.Context, cfg *config.Config, args []string) error {
			if len(args) > 1 {
				return errors.New("expected at most one job ID")
			}
			if len(args) == 1 {
				return business.JobsGetMain(ctx, cfg, args[0])
			}

			return business.JobsListMain(ctx, cfg, opts)
		},
	)

	cmd.Flags().StringVar(&opts.Query, "query", "", "free-text search")
	cmd.Flags().StringVar(&opts.JobType, "job-type", "", "FULL_TIME, PART_TIME, CONTRACT, INTERNSHIP, or FREELANCE")
	cmd.Flags().StringVar(&opts.WorkMode, "work-mode", "", "REMOTE, ON_SITE, or HYBRID")
	cmd.Flags().StringVar(&opts.ExperienceLevel, "experience", "", "ENTRY, JUNIOR, MID, SENIOR, LEAD, or EXECUTIVE")
	cmd.Flags().StringVar(&opts.Location, "location", "", "location filter")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "result page")

	return cmd
}
