package register

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jobwire/jobwire-go/internal/business"
	"github.com/jobwire/jobwire-go/internal/cmdutils"
	"github.com/jobwire/jobwire-go/internal/config"
)

func Cmd() *cobra.Command {
	var opts business.RegisterOptions

	cmd := cmdutils.CobraCommand(
		"register",
		"Create a Jobwire account",
		"Create a candidate or employer account and persist the session.",
		func(ctx context.Context, cfg *config.Config, _ []string) error {
			return business.RegisterMain(ctx, cfg, opts)
		},
	)

	cmd.Flags().StringVar(&opts.Email, "email", "", "account email")
	cmd.Flags().StringVar(&opts.Password, "password", "", "account password (prompted when omitted)")
	cmd.Flags().StringVar(&opts.UserType, "type", "candidate", "account type: candidate or employer")

	return cmd
}
