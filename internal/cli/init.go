package cli

import (
	"fmt"

	"github.com/example/nix-health/internal/config"
	"github.com/spf13/cobra"
)

func newInitCmd(loader *config.Loader) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter nix-health configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := loader.ConfigPath
			if path == "" {
				path = config.DefaultConfigPath
			}

			if err := config.WriteStarter(path, force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	return cmd
}
