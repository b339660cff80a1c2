package refresher

import (
	"github.com/spf13/cobra"

	"github.com/jobwire/jobwire-go/internal/business"
	"github.com/jobwire/jobwire-go/internal/cmdutils"
)

func Cmd() *cobra.Command {
	return cmdutils.CobraCommand(
		"refresher",
		"Keep the session's access token fresh",
		"Run a loop that refreshes the access token shortly before it expires. Useful when other processes share a valkey token slot.",
		business.RefresherMain,
	)
}
