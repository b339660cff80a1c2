package chat

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
		"chat <conversation-id>",
		"Chat in a conversation",
		"Join a conversation over the realtime connection, print inbound messages, and send lines read from stdin.",
		func(ctx context.Context, cfg *config.Config, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one conversation ID")
			}

			return business.ChatMain(ctx, cfg, args[0])
		},
	)
}
