// Package cli implements the accountctl command tree.
package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// errReported marks failures whose details were already written for the user.
var errReported = errors.New("reported")

// Reported reports whether err was already printed by the failing command.
func Reported(err error) bool {
	return errors.Is(err, errReported)
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "accountctl",
		Short:         "Operate the account API",
		Long:          "Administrative tasks for the account API that must not be exposed over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newAdminCmd())

	return root
}
