package cli

import (
	"fmt"
	"io"

	"github.com/example/nix-health/internal/config"
	"github.com/example/nix-health/internal/events"
	"github.com/example/nix-health/internal/export"
	"github.com/example/nix-health/internal/health"
	"github.com/example/nix-health/internal/logger"
	"github.com/example/nix-health/internal/render"
	"github.com/spf13/cobra"
)

func newCheckCmd(loader *config.Loader) *cobra.Command {
	flags := &runtimeFlagSet{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run health checks against the Nix installation",
		Long: `The check subcommand takes a snapshot of the Nix installation and checks:
- max-jobs allows parallel builds
- the required binary caches are configured
- the experimental features needed for flakes are enabled

The snapshot comes from --snapshot, --nix-conf, or by querying the nix binary.
The command exits non-zero when any check fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRuntimeConfig(cmd, loader, flags)
			if err != nil {
				return err
			}

			info, err := acquireSnapshot(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			h := health.CheckWithPolicy(info, cfg.Policy())
			for _, e := range h.Entries() {
				r := e.Check.Report()
				logger.Health.Debug().
					Str("kind", string(e.Kind)).
					Str("status", string(r.Status)).
					Int("remediations", len(r.Details())).
					Msg(e.Check.Name())
			}

			out := cmd.OutOrStdout()
			if err := writeHealth(out, h, cfg.Format, cfg.NoColor); err != nil {
				return err
			}

			if cfg.SavePath != "" {
				if err := export.WriteFile(cfg.SavePath, h); err != nil {
					return fmt.Errorf("save health record: %w", err)
				}
				if err := announceSaved(out, cfg.Format, cfg.SavePath); err != nil {
					return err
				}
			}

			if !h.Report().IsPass() {
				return ErrChecksFailed
			}
			return nil
		},
	}

	bindRuntimeFlags(cmd, flags)

	return cmd
}

func writeHealth(w io.Writer, h *health.NixHealth, format string, noColor bool) error {
	if format == config.FormatNDJSON {
		return events.NewEmitter(w).EmitHealth(h)
	}
	return render.Text(w, h, render.Options{NoColor: noColor})
}

func announceSaved(w io.Writer, format, path string) error {
	if format == config.FormatNDJSON {
		return events.NewEmitter(w).Emit(events.Event{
			Type:   events.TypeRecordSaved,
			Fields: map[string]any{"path": path},
		})
	}
	_, err := fmt.Fprintf(w, "Health record written to %s\n", path)
	return err
}
