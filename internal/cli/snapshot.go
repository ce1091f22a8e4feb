package cli

import (
	"fmt"

	"github.com/example/nix-health/internal/config"
	"github.com/example/nix-health/internal/export"
	"github.com/example/nix-health/internal/nixinfo"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(loader *config.Loader) *cobra.Command {
	flags := &runtimeFlagSet{}
	var outputPath string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture the Nix settings the checks read, for later use with check --snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRuntimeConfig(cmd, loader, flags)
			if err != nil {
				return err
			}

			info, err := acquireSnapshot(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if outputPath == "" {
				data, err := export.Marshal(export.FormatJSON, info)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if err := nixinfo.SaveSnapshot(outputPath, info); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot written to %s\n", outputPath)
			return nil
		},
	}

	bindSourceFlags(cmd, flags)
	cmd.Flags().StringVar(&outputPath, "output", "", "Write the snapshot to this path (.json/.yaml) instead of stdout")

	return cmd
}
