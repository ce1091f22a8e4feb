package check

import (
	"fmt"
	"slices"
	"strings"

	"github.com/example/nix-health/internal/health/report"
	"github.com/example/nix-health/internal/nixinfo"
)

// FlakeEnabled checks that the experimental features needed for flakes are on.
type FlakeEnabled struct {
	Features []string `json:"features" yaml:"features"`
	Required []string `json:"required" yaml:"required"`
}

var _ Leaf = (*FlakeEnabled)(nil)

// NewFlakeEnabled extracts the effective experimental-features from info.
func NewFlakeEnabled(info nixinfo.Info, p Policy) *FlakeEnabled {
	return &FlakeEnabled{
		Features: info.Config.Effective("experimental-features", nil),
		Required: append([]string(nil), p.RequiredFeatures...),
	}
}

func (c FlakeEnabled) Name() string { return "Flakes Enabled" }

func (c FlakeEnabled) Report() report.DetailedOutcome {
	var missing []string
	for _, feature := range c.Required {
		if !slices.Contains(c.Features, feature) {
			missing = append(missing, feature)
		}
	}
	if len(missing) == 0 {
		return report.DetailedPass()
	}

	return report.DetailedFail(report.Remediation{
		Msg: fmt.Sprintf("Experimental feature(s) not enabled: %s", strings.Join(missing, ", ")),
		Suggestion: fmt.Sprintf(
			"Add `extra-experimental-features = %s` to ~/.config/nix/nix.conf or /etc/nix/nix.conf. See https://nixos.wiki/wiki/Flakes#Enable_flakes",
			strings.Join(missing, " "),
		),
	})
}

func (c FlakeEnabled) Describe() string {
	if len(c.Features) == 0 {
		return "experimental-features = (none)"
	}
	return "experimental-features = " + strings.Join(c.Features, " ")
}
