package login

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jobwire/jobwire-go/internal/business"
	"github.com/jobwire/jobwire-go/internal/cmdutils"
	"github.com/jobwire/jobwire-go/internal/config"
)

func Cmd() *cobra.Command {
	var opts business.LoginOptions

	cmd := cmdutils.CobraCommand(
		"login",
		"Log in to Jobwire",
		"Log in with email and password, or with a Google ID token, and persist the session.",
		func(ctx context.Context, cfg *config.Config, _ []string) error {
			return business.LoginMain(ctx, cfg, opts)
		},
	)

	cmd.Flags().StringVar(&opts.Email, "email", "", "account email")
	cmd.Flags().StringVar(&opts.Password, "password", "", "account password (prompted when omitted)")
	cmd.Flags().StringVar(&opts.UserType, "type", "candidate", "account type: candidate or employer")
	cmd.Flags().StringVar(&opts.GoogleIDToken, "google-id-token", "", "sign in with a Google ID token instead of a password")

	return cmd
}
