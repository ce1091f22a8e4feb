package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrConfigExists is returned by WriteStarter when the target already exists.
var ErrConfigExists = errors.New("config file already exists")

const starterConfig = `# nix-health configuration
#
# Every setting can also be given as a NIX_HEALTH_* environment variable
# or a command-line flag, which take precedence over this file.

# nix binary used to collect a live snapshot.
nixBinary: nix

# Read a saved snapshot or a nix.conf instead of querying nix.
# snapshot: snapshot.json
# nixConf: /etc/nix/nix.conf

# Output format: text or ndjson.
format: text

# Save the health record after each run (.json, .yaml or .yml).
# save: nix-health.json

timeout: 30s

minMaxJobs: 2
requiredCaches:
  - https://cache.nixos.org/
requiredFeatures:
  - flakes

logLevel: warn
# logFile: ~/.cache/nix-health/nix-health.log
`

// WriteStarter writes a commented starter config to path. It refuses to
// replace an existing file unless force is set.
func WriteStarter(path string, force bool) error {
	if path == "" {
		path = DefaultConfigPath
	}

	if fileExists(path) && !force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, []byte(starterConfig), 0o644)
}
