package cli

import (
	"time"

	"github.com/example/nix-health/internal/config"
	"github.com/spf13/cobra"
)

// runtimeFlagSet tracks check/snapshot flags before they are converted into
// config overrides. Flags a command does not register are never Changed.
type runtimeFlagSet struct {
	nixBinary        string
	snapshot         string
	nixConf          string
	format           string
	save             string
	timeout          time.Duration
	minMaxJobs       int
	requiredCaches   string
	requiredFeatures string
	logLevel         string
	logFile          string
	noColor          bool
}

// bindSourceFlags registers the flags that choose and read a snapshot source.
func bindSourceFlags(cmd *cobra.Command, flags *runtimeFlagSet) {
	cmd.Flags().StringVar(&flags.nixBinary, "nix-binary", "", "nix binary used to collect a live snapshot")
	cmd.Flags().StringVar(&flags.snapshot, "snapshot", "", "Read a saved snapshot (.json/.yaml) instead of querying nix")
	cmd.Flags().StringVar(&flags.nixConf, "nix-conf", "", "Read settings from a nix.conf file instead of querying nix")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "Timeout for querying nix (e.g. 30s)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, off")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "Write logs to this file (rotated) instead of stderr")
}

// bindRuntimeFlags registers the source flags plus the policy and output flags of check.
func bindRuntimeFlags(cmd *cobra.Command, flags *runtimeFlagSet) {
	bindSourceFlags(cmd, flags)
	cmd.Flags().StringVar(&flags.format, "format", "", "Output format: text or ndjson")
	cmd.Flags().StringVar(&flags.save, "save", "", "Write the health record to this path (.json/.yaml)")
	cmd.Flags().IntVar(&flags.minMaxJobs, "min-max-jobs", 0, "Minimum acceptable max-jobs")
	cmd.Flags().StringVar(&flags.requiredCaches, "require-caches", "", "Comma-separated binary caches that must be configured")
	cmd.Flags().StringVar(&flags.requiredFeatures, "require-features", "", "Comma-separated experimental features that must be enabled")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
}

func (f runtimeFlagSet) toOverrides(cmd *cobra.Command) config.Overrides {
	ov := config.Overrides{}
	if cmd.Flags().Changed("nix-binary") {
		ov.NixBinary = f.nixBinary
	}

	if cmd.Flags().Changed("snapshot") {
		ov.SnapshotPath = f.snapshot
	}

	if cmd.Flags().Changed("nix-conf") {
		ov.NixConfPath = f.nixConf
	}

	if cmd.Flags().Changed("format") {
		ov.Format = f.format
	}

	if cmd.Flags().Changed("save") {
		ov.SavePath = f.save
	}

	if cmd.Flags().Changed("timeout") {
		ov.Timeout = f.timeout
	}

	if cmd.Flags().Changed("min-max-jobs") {
		ov.MinMaxJobs = f.minMaxJobs
		ov.MinMaxJobsSet = true
	}

	if cmd.Flags().Changed("require-caches") {
		ov.RequiredCaches = nonNil(config.ParseList(f.requiredCaches))
	}

	if cmd.Flags().Changed("require-features") {
		ov.RequiredFeatures = nonNil(config.ParseList(f.requiredFeatures))
	}

	if cmd.Flags().Changed("log-level") {
		ov.LogLevel = f.logLevel
	}

	if cmd.Flags().Changed("log-file") {
		ov.LogFile = f.logFile
	}

	if cmd.Flags().Changed("no-color") {
		ov.NoColor = &f.noColor
	}

	return ov
}

// nonNil keeps an explicitly empty list distinct from an unset one.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
