package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/nix-health/internal/config"
)

func TestInitCommandWritesStarterConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nix-health.yml")
	loader := &config.Loader{ConfigPath: path}

	run := func(args ...string) (string, error) {
		cmd := newInitCmd(loader)
		buf := &bytes.Buffer{}
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs(args)
		err := cmd.Execute()
		return buf.String(), err
	}

	out, err := run()
	if err != nil {
		t.Fatalf("init command failed: %v\nOutput: %s", err, out)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("expected config path in message, got: %s", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config was not created: %v", err)
	}

	if _, err := run(); !errors.Is(err, config.ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists on second run, got %v", err)
	}

	if _, err := run("--force"); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
}
