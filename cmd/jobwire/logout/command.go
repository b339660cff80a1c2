package logout

import (
	"github.com/spf13/cobra"

	"github.com/jobwire/jobwire-go/internal/business"
	"github.com/jobwire/jobwire-go/internal/cmdutils"
)

func Cmd() *cobra.Command {
	return cmdutils.CobraCommand(
		"logout",
		"Log out of Jobwire",
		"Invalidate the backend session best-effort and clear the persisted tokens.",
		business.LogoutMain,
	)
}
