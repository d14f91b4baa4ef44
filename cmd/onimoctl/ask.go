package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Answer one question",
	Long: `Ask classifies the question, looks it up and prints the answer. Language
switch commands ("talk bangla") only affect this one invocation; use chat
for a conversation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		resp := client.Ask(cmd.Context(), strings.Join(args, " "))
		if err := printResponse(cmd.OutOrStdout(), resp); err != nil {
			return err
		}
		return exitCode(resp)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
