package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/onimo"
)

// asker is the slice of the client the chat loop needs.
type asker interface {
	Ask(ctx context.Context, query string) onimo.Response
	FactCheckVideo(ctx context.Context, urlOrID string) onimo.Response
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive session",
	Long: `Chat reads one question per line until EOF or "exit". The reply language
carries over between lines. A line starting with "/video " is fact-checked
as a YouTube link.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		return chatLoop(cmd.Context(), client, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func chatLoop(ctx context.Context, a asker, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for {
		if _, err := fmt.Fprint(out, "> "); err != nil {
			return err
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case line == "exit" || line == "quit":
			return nil
		case strings.HasPrefix(line, "/video "):
			if err := printResponse(out, a.FactCheckVideo(ctx, strings.TrimPrefix(line, "/video "))); err != nil {
				return err
			}
		default:
			if err := printResponse(out, a.Ask(ctx, line)); err != nil {
				return err
			}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
