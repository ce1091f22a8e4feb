package nixinfo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNixNotFound means the nix binary could not be located.
var ErrNixNotFound = errors.New("nix binary not found")

// Runner defines the nix invocations needed to build a snapshot.
type Runner interface {
	EnsureBinary() error
	Version(ctx context.Context) (string, error)
	ShowConfig(ctx context.Context) ([]byte, error)
}

// CommandRunner executes the real nix binary.
type CommandRunner struct {
	Binary string
}

// NewRunner returns a command runner for binary, or "nix" when empty.
func NewRunner(binary string) Runner {
	if binary == "" {
		binary = "nix"
	}
	return &CommandRunner{Binary: binary}
}

// EnsureBinary verifies that the nix binary is discoverable on PATH.
func (r *CommandRunner) EnsureBinary() error {
	if _, err := exec.LookPath(r.Binary); err != nil {
		return fmt.Errorf("%w: %v", ErrNixNotFound, err)
	}
	return nil
}

// Version runs `nix --version` and returns the bare version number.
func (r *CommandRunner) Version(ctx context.Context) (string, error) {
	out, err := r.output(ctx, "--version")
	if err != nil {
		return "", err
	}
	return ParseVersion(string(out)), nil
}

// ShowConfig runs `nix show-config --json`. nix-command is enabled for this one
// invocation since show-config is gated behind it.
func (r *CommandRunner) ShowConfig(ctx context.Context) ([]byte, error) {
	return r.output(ctx, "--extra-experimental-features", "nix-command", "show-config", "--json")
}

func (r *CommandRunner) output(ctx context.Context, args ...string) ([]byte, error) {
	// Binary comes from configuration and args are constants.
	cmd := exec.CommandContext(ctx, r.Binary, args...) // #nosec G204
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrNixNotFound, err)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", r.Binary, strings.Join(args, " "), err, msg)
		}
		return nil, fmt.Errorf("%s %s: %w", r.Binary, strings.Join(args, " "), err)
	}
	return out, nil
}

// ParseVersion extracts the version from `nix --version` output such as
// "nix (Nix) 2.18.1".
func ParseVersion(output string) string {
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
