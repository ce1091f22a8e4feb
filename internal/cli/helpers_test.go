package cli

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/nix-health/internal/config"
	"github.com/example/nix-health/internal/nixinfo"
)

func TestAcquireSnapshot(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*testing.T) config.RuntimeConfig
		wantJobs  string
		wantError bool
		errorMsg  string
	}{
		{
			name: "saved snapshot",
			setup: func(t *testing.T) config.RuntimeConfig {
				cfg := config.DefaultRuntimeConfig()
				cfg.SnapshotPath = writeFile(t, "snapshot.yaml", healthySnapshotYAML)
				return cfg
			},
			wantJobs: "8",
		},
		{
			name: "nix.conf",
			setup: func(t *testing.T) config.RuntimeConfig {
				cfg := config.DefaultRuntimeConfig()
				cfg.NixConfPath = writeFile(t, "nix.conf", "max-jobs = auto\n")
				return cfg
			},
			wantJobs: "auto",
		},
		{
			name: "snapshot with unknown extension",
			setup: func(t *testing.T) config.RuntimeConfig {
				cfg := config.DefaultRuntimeConfig()
				cfg.SnapshotPath = writeFile(t, "snapshot.txt", "max-jobs: 8\n")
				return cfg
			},
			wantError: true,
			errorMsg:  "load snapshot",
		},
		{
			name: "missing nix.conf",
			setup: func(t *testing.T) config.RuntimeConfig {
				cfg := config.DefaultRuntimeConfig()
				cfg.NixConfPath = filepath.Join(t.TempDir(), "nix.conf")
				return cfg
			},
			wantError: true,
		},
		{
			name: "live nix without binary",
			setup: func(t *testing.T) config.RuntimeConfig {
				cfg := config.DefaultRuntimeConfig()
				cfg.NixBinary = filepath.Join(t.TempDir(), "nix")
				cfg.Timeout = time.Second
				return cfg
			},
			wantError: true,
			errorMsg:  "collect nix snapshot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := acquireSnapshot(context.Background(), tt.setup(t))
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error")
				}
				if tt.errorMsg != "" && !strings.Contains(err.Error(), tt.errorMsg) {
					t.Fatalf("expected error containing %q, got %v", tt.errorMsg, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got, _ := info.Config.String("max-jobs"); got != tt.wantJobs {
				t.Fatalf("expected max-jobs %q, got %q", tt.wantJobs, got)
			}
		})
	}
}

func TestAcquireSnapshotMissingBinaryIsDistinct(t *testing.T) {
	cfg := config.DefaultRuntimeConfig()
	cfg.NixBinary = "nonexistent-nix-12345"

	_, err := acquireSnapshot(context.Background(), cfg)
	if !errors.Is(err, nixinfo.ErrNixNotFound) {
		t.Fatalf("expected ErrNixNotFound, got %v", err)
	}
}
