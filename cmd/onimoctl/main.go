// Package main is the onimoctl command line: the assistant run in-process.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kailas-cloud/onimo"
)

// errStatus makes the command exit non-zero after an error response was printed.
var errStatus = errors.New("assistant returned an error status")

// envKeyReplacer maps flag names to ONIMO_* variables (news-api-key -> ONIMO_NEWS_API_KEY).
var envKeyReplacer = strings.NewReplacer("-", "_")

var rootCmd = &cobra.Command{
	Use:   "onimoctl",
	Short: "Ask the onimo assistant from the terminal",
	Long: `onimoctl runs the onimo assistant in-process. It answers free-text questions
from Wikipedia and the news, fact-checks YouTube videos from their transcripts
and replies in English or Bangla.

Settings come from flags, ONIMO_* environment variables or an onimoctl.yaml
file in the working directory or ~/.config/onimo.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./onimoctl.yaml or ~/.config/onimo/onimoctl.yaml)")
	pf.String("language", "en", "reply language (en or bn)")
	pf.String("creator", "", "name given when asked who made the assistant")
	pf.String("news-api-key", "", "newsapi.org key; Google News is used when empty")
	pf.String("news-region", "US", "Google News region")
	pf.String("llm-api-key", "", "OpenAI-compatible key for entity recognition and translation fallback")
	pf.String("llm-base-url", "", "OpenAI-compatible base URL")
	pf.String("llm-model", "", "model name")
	pf.String("cache-addr", "", "Redis or Valkey address for the translation cache; in-process when empty")
	pf.Bool("sequential", false, "ask the encyclopedia before the news instead of racing them")
	pf.Duration("source-timeout", 8*time.Second, "per-source lookup deadline")
	pf.Bool("json", false, "print responses as JSON")
	pf.BoolP("verbose", "v", false, "log SDK operations to stderr")

	for _, name := range []string{
		"language", "creator", "news-api-key", "news-region", "llm-api-key", "llm-base-url",
		"llm-model", "cache-addr", "sequential", "source-timeout", "json", "verbose",
	} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("onimoctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "onimo"))
		}
	}

	viper.SetEnvPrefix("ONIMO")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newClient builds an SDK client from the resolved settings.
func newClient(ctx context.Context) (*onimo.Client, error) {
	opts := []onimo.Option{
		onimo.WithDefaultLanguage(onimo.Language(viper.GetString("language"))),
		onimo.WithSourceTimeout(viper.GetDuration("source-timeout")),
	}
	if name := viper.GetString("creator"); name != "" {
		opts = append(opts, onimo.WithCreatorName(name))
	}
	if key := viper.GetString("news-api-key"); key != "" {
		opts = append(opts, onimo.WithNewsAPI(key))
	} else {
		opts = append(opts, onimo.WithGoogleNews(viper.GetString("news-region")))
	}
	if key := viper.GetString("llm-api-key"); key != "" {
		opts = append(opts, onimo.WithLLM(key, viper.GetString("llm-base-url"), viper.GetString("llm-model")))
	}
	if addr := viper.GetString("cache-addr"); addr != "" {
		opts = append(opts, onimo.WithValkey(addr, ""))
	}
	if viper.GetBool("sequential") {
		opts = append(opts, onimo.WithSequentialSources())
	}
	if viper.GetBool("verbose") {
		opts = append(opts, onimo.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}

	client, err := onimo.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

// printResponse writes resp as JSON or as text with its source on a second line.
func printResponse(w io.Writer, resp onimo.Response) error {
	if viper.GetBool("json") {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	if _, err := fmt.Fprintf(w, "[%s] %s\n", resp.Status, resp.Text()); err != nil {
		return err
	}
	if resp.Source != "" {
		if _, err := fmt.Fprintf(w, "source: %s\n", resp.Source); err != nil {
			return err
		}
	}
	return nil
}

// exitCode maps an error status to a non-zero exit.
func exitCode(resp onimo.Response) error {
	if resp.Status == onimo.StatusError {
		return errStatus
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errStatus) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
