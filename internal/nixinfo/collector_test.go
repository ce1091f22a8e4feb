package nixinfo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

type fakeRunner struct {
	binaryErr  error
	version    string
	versionErr error
	config     []byte
	configErr  error
}

func (f fakeRunner) EnsureBinary() error { return f.binaryErr }

func (f fakeRunner) Version(ctx context.Context) (string, error) {
	return f.version, f.versionErr
}

func (f fakeRunner) ShowConfig(ctx context.Context) ([]byte, error) {
	return f.config, f.configErr
}

const showConfigJSON = `{
  "max-jobs": {"aliases": [], "defaultValue": 1, "description": "jobs", "value": 8},
  "substituters": {"defaultValue": ["https://cache.nixos.org/"], "value": ["https://cache.nixos.org/"]},
  "experimental-features": {"defaultValue": [], "value": ["flakes", "nix-command"]}
}`

func TestCollect(t *testing.T) {
	c := &Collector{
		Runner: fakeRunner{version: "2.18.1", config: []byte(showConfigJSON)},
		CPUs:   func() int { return 4 },
	}

	info, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if info.Version != "2.18.1" || info.CPUs != 4 {
		t.Fatalf("unexpected info: %#v", info)
	}
	if v, _ := info.Config.String("max-jobs"); v != "8" {
		t.Fatalf("expected max-jobs 8, got %q", v)
	}
	features, _ := info.Config.List("experimental-features")
	if len(features) != 2 || features[0] != "flakes" {
		t.Fatalf("unexpected features: %#v", features)
	}
}

func TestCollectMissingBinary(t *testing.T) {
	c := NewCollector(fakeRunner{binaryErr: ErrNixNotFound})
	if _, err := c.Collect(context.Background()); !errors.Is(err, ErrNixNotFound) {
		t.Fatalf("expected ErrNixNotFound, got %v", err)
	}
}

func TestCollectPropagatesQueryErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name   string
		runner fakeRunner
	}{
		{name: "version fails", runner: fakeRunner{versionErr: boom, config: []byte(showConfigJSON)}},
		{name: "config fails", runner: fakeRunner{version: "2.18.1", configErr: boom}},
		{name: "config unparseable", runner: fakeRunner{version: "2.18.1", config: []byte("not json")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCollector(tt.runner).Collect(context.Background()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	in := Info{
		Version: "2.18.1",
		CPUs:    8,
		Config: Config{
			"max-jobs":     "auto",
			"substituters": []any{"https://cache.nixos.org/"},
		},
	}

	for _, name := range []string{"snapshot.json", "snapshot.yaml"} {
		path := filepath.Join(t.TempDir(), name)
		if err := SaveSnapshot(path, in); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}

		out, err := LoadSnapshot(path)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}

		if out.Version != in.Version || out.CPUs != in.CPUs {
			t.Fatalf("%s: unexpected info %#v", name, out)
		}
		if v, _ := out.Config.String("max-jobs"); v != "auto" {
			t.Fatalf("%s: expected max-jobs auto, got %q", name, v)
		}
		caches, _ := out.Config.List("substituters")
		if len(caches) != 1 || caches[0] != "https://cache.nixos.org/" {
			t.Fatalf("%s: unexpected substituters %#v", name, caches)
		}
	}
}
