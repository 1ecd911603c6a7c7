// Package commands provides CLI commands for barbchat.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/barbchat/internal/config"
)

// Version info (set at build time)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// globalFlags are shared by the root command and its subcommands
type globalFlags struct {
	model     string
	relayURL  string
	maxTokens int
	verbose   bool

	// one-shot query only
	output   string
	file     string
	markdown bool
}

// NewRootCmd builds the command tree around deps
func NewRootCmd(deps *Dependencies) *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "barbchat [prompt]",
		Short: "Chat with Barb through a streaming relay",
		Long: `barbchat talks to Barb, a suburban mom persona served by a small relay
in front of the Anthropic Messages API. The relay holds the API key, injects
Barb's system prompt and streams the reply back as server-sent events.

Examples:
  barbchat serve                        Run the relay on :3000
  barbchat chat                         Start interactive chat
  barbchat "How is Linda's lawn?"       Send a single message
  barbchat -f prompt.md                 Read prompt from file
  cat prompt.md | barbchat              Read prompt from stdin
  barbchat "Hello" -o reply.md          Save the reply to a file`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "barbchat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			prompt, ok, err := readPrompt(deps, flags, args)
			if err != nil {
				return err
			}
			if !ok {
				return cmd.Help()
			}

			cfg := resolveConfig(deps, flags)
			return runQuery(deps, cfg, flags, prompt)
		},
	}
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	cmd.PersistentFlags().StringVarP(&flags.model, "model", "m", "", "Model to request (e.g., "+config.DefaultConfig().Model+")")
	cmd.PersistentFlags().StringVar(&flags.relayURL, "relay", "", "Relay base URL")
	cmd.PersistentFlags().IntVar(&flags.maxTokens, "max-tokens", 0, "Reply token limit")
	cmd.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "Enable debug logging")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Save reply to file")
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "Read prompt from file")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "Render the finished reply as markdown")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps, flags))
	cmd.AddCommand(NewServeCmd(deps, flags))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// Execute runs the root command
func Execute() {
	deps := NewDependencies()
	if err := NewRootCmd(deps).Execute(); err != nil {
		fmt.Fprintln(deps.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// readPrompt picks the prompt from --file, piped stdin or the positional
// argument, in that order. ok is false when there is no input at all.
func readPrompt(deps *Dependencies, flags *globalFlags, args []string) (string, bool, error) {
	if flags.file != "" {
		data, err := os.ReadFile(flags.file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if deps.StdinIsPipe() {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) != "" {
			return string(data), true, nil
		}
	}

	if len(args) > 0 {
		return args[0], true, nil
	}

	return "", false, nil
}

// resolveConfig loads the config file and environment, then applies flags.
// A broken config file falls back to defaults with a warning.
func resolveConfig(deps *Dependencies, flags *globalFlags) config.Config {
	config.LoadEnvFile()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Warning: %v, using defaults\n", err)
	}

	if flags.model != "" {
		cfg.Model = flags.model
	}
	if flags.relayURL != "" {
		cfg.RelayURL = strings.TrimRight(flags.relayURL, "/")
	}
	if flags.maxTokens > 0 {
		cfg.MaxTokens = flags.maxTokens
	}
	if flags.verbose {
		cfg.Verbose = true
	}
	if flags.markdown {
		cfg.Markdown.Enabled = true
	}
	return cfg
}
