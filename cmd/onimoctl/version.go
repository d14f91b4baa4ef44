package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/onimo/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of onimoctl",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "onimoctl %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
