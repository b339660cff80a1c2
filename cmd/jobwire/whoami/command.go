package whoami

import (
	"github.com/spf13/cobra"

	"github.com/jobwire/jobwire-go/internal/business"
	"github.com/jobwire/jobwire-go/internal/cmdutils"
)

func Cmd() *cobra.Command {
	return cmdutils.CobraCommand(
		"whoami",
		"Show the current user",
		"Show the user of the persisted session, if any.",
		business.WhoamiMain,
	)
}
