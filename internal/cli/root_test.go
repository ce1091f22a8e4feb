package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()

	want := map[string]bool{"init": false, "check": false, "show": false, "snapshot": false}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing %s subcommand", name)
		}
	}
}

func TestRootVersion(t *testing.T) {
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetArgs([]string{"--version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(buf.String(), "nix-health version "+version) {
		t.Fatalf("unexpected version output: %q", buf.String())
	}
}

func TestRootRunsCheckWithConfigFile(t *testing.T) {
	snapshot := writeFile(t, "snapshot.yaml", healthySnapshotYAML)
	configPath := writeFile(t, "nix-health.yml", "snapshot: "+snapshot+"\nnoColor: true\n")

	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", configPath, "--env-file", "", "check"})

	if err := root.Execute(); err != nil {
		t.Fatalf("check via root failed: %v\nOutput: %s", err, buf.String())
	}
	if !strings.Contains(buf.String(), "✓ Nix Health: 3 of 3 checks passed") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}
