package main

import (
	"devis/cmd"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:           "devis",
		Short:         "Quote requests for tyre orders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "env files loaded when present")

	loadConfig := func() (cmd.Config, error) {
		return cmd.LoadConfig(envFiles...)
	}
	root.AddCommand(newServeCmd(loadConfig), newMigrateCmd(loadConfig))
	return root
}
