package nixinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/example/nix-health/internal/export"
	"github.com/example/nix-health/internal/logger"
	"golang.org/x/sync/errgroup"
)

// Collector builds a snapshot by querying a live nix installation.
type Collector struct {
	Runner Runner
	CPUs   func() int
}

// NewCollector returns a collector that reports the host CPU count.
func NewCollector(r Runner) *Collector {
	return &Collector{Runner: r, CPUs: runtime.NumCPU}
}

// Collect runs the nix queries concurrently and assembles an Info. Either
// query failing fails the whole collection.
func (c *Collector) Collect(ctx context.Context) (Info, error) {
	if err := c.Runner.EnsureBinary(); err != nil {
		return Info{}, err
	}

	start := time.Now()
	var (
		version string
		cfg     Config
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := c.Runner.Version(gctx)
		if err != nil {
			return fmt.Errorf("query nix version: %w", err)
		}
		version = v
		return nil
	})
	g.Go(func() error {
		raw, err := c.Runner.ShowConfig(gctx)
		if err != nil {
			return fmt.Errorf("query nix config: %w", err)
		}
		parsed, err := ParseShowConfig(raw)
		if err != nil {
			return err
		}
		cfg = parsed
		return nil
	})

	if err := g.Wait(); err != nil {
		return Info{}, err
	}

	info := Info{Version: version, Config: cfg}
	if c.CPUs != nil {
		info.CPUs = c.CPUs()
	}

	logger.NixInfo.Debug().
		Str("version", info.Version).
		Int("settings", len(info.Config)).
		Dur("elapsed", time.Since(start)).
		Msg("collected nix snapshot")

	return info, nil
}

// ParseShowConfig decodes `nix show-config --json` output, keeping each
// setting's current value.
func ParseShowConfig(data []byte) (Config, error) {
	var raw map[string]struct {
		Value any `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode nix show-config output: %w", err)
	}

	cfg := make(Config, len(raw))
	for key, setting := range raw {
		cfg[key] = setting.Value
	}
	return cfg, nil
}

// LoadSnapshot reads a snapshot previously written with SaveSnapshot.
func LoadSnapshot(path string) (Info, error) {
	var info Info
	if err := export.ReadFile(path, &info); err != nil {
		return Info{}, err
	}
	if info.Config == nil {
		info.Config = Config{}
	}
	return info, nil
}

// SaveSnapshot writes info to path as JSON or YAML.
func SaveSnapshot(path string, info Info) error {
	return export.WriteFile(path, info)
}
