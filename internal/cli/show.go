package cli

import (
	"errors"

	"github.com/example/nix-health/internal/config"
	"github.com/example/nix-health/internal/export"
	"github.com/example/nix-health/internal/health"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var inputPath string
	var format string
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render a health record saved with check --save",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputPath == "" {
				return errors.New("--input is required")
			}
			if format != config.FormatText && format != config.FormatNDJSON {
				return errors.New("--format must be text or ndjson")
			}

			h := &health.NixHealth{}
			if err := export.ReadFile(inputPath, h); err != nil {
				return err
			}

			return writeHealth(cmd.OutOrStdout(), h, format, noColor)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to a saved health record (.json/.yaml)")
	cmd.Flags().StringVar(&format, "format", config.FormatText, "Output format: text or ndjson")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	if err := cmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}

	return cmd
}
