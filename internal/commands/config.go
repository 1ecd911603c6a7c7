package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/barbchat/internal/config"
	"github.com/diogo/barbchat/internal/render"
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
		Long: `Inspect or create the barbchat configuration file.

Environment variables override file values: ` + strings.Join([]string{
			config.EnvPort, config.EnvMode, config.EnvRelayURL, config.EnvUpstreamURL, config.EnvStaticDir,
		}, ", ") + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(deps)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(deps)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(deps.Stdout, path)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(deps, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "themes",
		Short: "List the chat colour themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range render.Palettes() {
				fmt.Fprintf(deps.Stdout, "%-18s %s\n", p.Name, p.Description)
			}
			return nil
		},
	})

	return cmd
}

func runConfigShow(deps *Dependencies) error {
	config.LoadEnvFile()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Warning: %v, showing defaults\n", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprintln(deps.Stdout, string(data))

	fmt.Fprintf(deps.Stdout, "\npersona: %s (%s)\n", config.Barb.Name, config.Barb.Description)
	if _, err := config.LoadAPIKey(); err != nil {
		fmt.Fprintf(deps.Stdout, "%s: not set\n", config.APIKeyEnv)
	} else {
		fmt.Fprintf(deps.Stdout, "%s: set\n", config.APIKeyEnv)
	}
	return nil
}

func runConfigInit(deps *Dependencies, force bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	if err := config.SaveConfig(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, successStyle().Render("✓ Wrote "+path))
	return nil
}
