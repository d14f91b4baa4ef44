package main

import (
	"github.com/spf13/cobra"
)

var factCheckCmd = &cobra.Command{
	Use:     "factcheck <youtube-url-or-id>",
	Aliases: []string{"fact-check"},
	Short:   "Fact-check a YouTube video from its transcript",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		resp := client.FactCheckVideo(cmd.Context(), args[0])
		if err := printResponse(cmd.OutOrStdout(), resp); err != nil {
			return err
		}
		return exitCode(resp)
	},
}

func init() {
	rootCmd.AddCommand(factCheckCmd)
}
