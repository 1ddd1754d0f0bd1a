package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "resolver",
		Short:         "BIP70/BIP72 payment address resolver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default ./config.yaml)")

	root.AddCommand(
		newServeCmd(&configPath),
		newBuildCacheCmd(&configPath),
		newCleanupCmd(&configPath),
		newHashPasswordCmd(),
	)
	return root
}
