package main

import (
	"github.com/spf13/cobra"
)

const version = "0.4.4"

func newRootCommand() *cobra.Command {
	var configFlag string
	var daemonFlag bool
	var verboseFlag bool

	rootCmd := &cobra.Command{
		Use:           "sidewinderd",
		Short:         "Daemon for Microsoft SideWinder keyboards",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Unknown options are tolerated rather than fatal.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context(), daemonFlag, verboseFlag, configFlag)
		},
	}

	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().BoolVarP(&daemonFlag, "daemon", "d", false, "Accepted for compatibility; fork daemonization is not implemented")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Accepted for compatibility; verbosity gating is not implemented")

	rootCmd.AddCommand(newDevicesCommand())

	return rootCmd
}
