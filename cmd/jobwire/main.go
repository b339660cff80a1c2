package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	slogctx "github.com/veqryn/slog-context"

	"github.com/jobwire/jobwire-go/cmd/jobwire/apply"
	"github.com/jobwire/jobwire-go/cmd/jobwire/chat"
	"github.com/jobwire/jobwire-go/cmd/jobwire/jobs"
	"github.com/jobwire/jobwire-go/cmd/jobwire/login"
	"github.com/jobwire/jobwire-go/cmd/jobwire/logout"
	"github.com/jobwire/jobwire-go/cmd/jobwire/refresher"
	"github.com/jobwire/jobwire-go/cmd/jobwire/register"
	"github.com/jobwire/jobwire-go/cmd/jobwire/upload"
	"github.com/jobwire/jobwire-go/cmd/jobwire/whoami"
)

// Version will be set by the build system
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Jobwire CLI version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(Version)
	},
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobwire",
		Short: "Jobwire CLI",
		Long:  "Command-line client for the Jobwire hiring platform.",
	}

	cmd.AddCommand(
		versionCmd,
		login.Cmd(),
		register.Cmd(),
		logout.Cmd(),
		whoami.Cmd(),
		refresher.Cmd(),
		jobs.Cmd(),
		apply.Cmd(),
		upload.Cmd(),
		chat.Cmd(),
	)

	return cmd
}

func execute() error {
	ctx, cancelOnSignal := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancelOnSignal()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		slogctx.Debug(ctx, "Command failed", "error", err)

		return err
	}

	return nil
}

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
