package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/nix-health/internal/config"
	"github.com/example/nix-health/internal/logger"
	"github.com/example/nix-health/internal/nixinfo"
	"github.com/spf13/cobra"
)

// ErrChecksFailed is returned when at least one health check fails.
var ErrChecksFailed = errors.New("nix health checks failed")

func loadRuntimeConfig(cmd *cobra.Command, loader *config.Loader, flags *runtimeFlagSet) (config.RuntimeConfig, error) {
	cfg, err := loader.Load(flags.toOverrides(cmd))
	if err != nil {
		return cfg, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, Stderr: cmd.ErrOrStderr()})
	logger.CLI.Debug().
		Str("command", cmd.Name()).
		Str("config", loader.ConfigPath).
		Str("format", cfg.Format).
		Msg("configuration loaded")

	return cfg, nil
}

// acquireSnapshot reads the snapshot source selected by cfg: a saved
// snapshot, a nix.conf, or the live nix installation.
func acquireSnapshot(ctx context.Context, cfg config.RuntimeConfig) (nixinfo.Info, error) {
	switch {
	case cfg.SnapshotPath != "":
		logger.NixInfo.Debug().Str("path", cfg.SnapshotPath).Msg("loading saved snapshot")
		info, err := nixinfo.LoadSnapshot(cfg.SnapshotPath)
		if err != nil {
			return info, fmt.Errorf("load snapshot: %w", err)
		}
		return info, nil
	case cfg.NixConfPath != "":
		logger.NixInfo.Debug().Str("path", cfg.NixConfPath).Msg("reading nix.conf")
		return nixinfo.FromConfFile(cfg.NixConfPath)
	default:
		ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()

		info, err := nixinfo.NewCollector(nixinfo.NewRunner(cfg.NixBinary)).Collect(ctx)
		if err != nil {
			logger.NixInfo.Error().Err(err).Msg("snapshot collection failed")
			return info, fmt.Errorf("collect nix snapshot: %w", err)
		}
		return info, nil
	}
}
