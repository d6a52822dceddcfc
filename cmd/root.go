// Package cmd wires the accountd command line interface: serve runs the HTTP
// service, chat runs an interactive terminal session against the agent.
package cmd

import "github.com/spf13/cobra"

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "accountd",
		Short:         "Apex Financial checking account agent",
		Long:          "accountd runs the Apex Financial account opening service: an AI banking assistant that collects and validates application data over a multi-turn dialogue, plus a direct REST endpoint for account creation.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().String("config", "", "path to config file (YAML or JSON)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(),
		newChatCmd(),
	)

	return rootCmd
}
