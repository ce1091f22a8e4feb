package cli

import (
	"github.com/example/nix-health/internal/config"
	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// Execute builds the root command tree and runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	loader := &config.Loader{ConfigPath: config.DefaultConfigPath, DotEnvPath: config.DefaultDotEnvPath}
	rootOpts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "nix-health",
		Short:         "Check the health of a Nix installation",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	rootCmd.SetVersionTemplate("nix-health version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&rootOpts.ConfigPath, "config", config.DefaultConfigPath, "Path to nix-health.yml or nix-health.toml (optional)")
	rootCmd.PersistentFlags().StringVar(&rootOpts.DotEnvPath, "env-file", config.DefaultDotEnvPath, "Path to a .env file with NIX_HEALTH_* variables (optional)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if rootOpts.ConfigPath != "" {
			loader.ConfigPath = rootOpts.ConfigPath
		}
		if rootOpts.DotEnvPath != "" {
			loader.DotEnvPath = rootOpts.DotEnvPath
		}
	}

	rootCmd.AddCommand(
		newInitCmd(loader),
		newCheckCmd(loader),
		newShowCmd(),
		newSnapshotCmd(loader),
	)

	return rootCmd
}

type rootOptions struct {
	ConfigPath string
	DotEnvPath string
}
