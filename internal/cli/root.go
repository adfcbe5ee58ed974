// Package cli implements the ivar command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:     "ivar",
	Short:   "A terminal HTTP client built on a fluent request builder",
	Version: version,
	Long: `Ivar assembles HTTP requests through a fluent builder that handles
content negotiation for JSON, form, multipart, and raw bodies, then
dispatches them and renders the response with timing details.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(postCmd)
	RootCmd.AddCommand(putCmd)
	RootCmd.AddCommand(deleteCmd)
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(benchCmd)
}
