package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/filebatch/fileproc"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "filebatch",
		Short:         "Process directories of files with a bounded worker pool",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newProcessorsCommand())

	return rootCmd
}

func newProcessorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "processors",
		Short: "List the available per-file processors",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range fileproc.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
