package check

import (
	"fmt"
	"strings"

	"github.com/example/nix-health/internal/health/report"
	"github.com/example/nix-health/internal/nixinfo"
)

// Caches checks that the required binary caches are configured as substituters.
type Caches struct {
	Configured []string `json:"configured" yaml:"configured"`
	Required   []string `json:"required" yaml:"required"`
}

var _ Leaf = (*Caches)(nil)

// NewCaches extracts the effective substituters from info. binary-caches is
// the pre-2.0 name for the same setting.
func NewCaches(info nixinfo.Info, p Policy) *Caches {
	key := "substituters"
	if _, ok := info.Config.Raw(key); !ok {
		if _, ok := info.Config.Raw("binary-caches"); ok {
			key = "binary-caches"
		}
	}

	return &Caches{
		Configured: info.Config.Effective(key, []string{NixOSCache}),
		Required:   append([]string(nil), p.RequiredCaches...),
	}
}

func (c Caches) Name() string { return "Nix Caches" }

// Missing lists the required caches absent from the configured substituters.
func (c Caches) Missing() []string {
	have := make(map[string]struct{}, len(c.Configured))
	for _, url := range c.Configured {
		have[normalizeCacheURL(url)] = struct{}{}
	}

	var missing []string
	for _, url := range c.Required {
		if _, ok := have[normalizeCacheURL(url)]; !ok {
			missing = append(missing, url)
		}
	}
	return missing
}

func (c Caches) Report() report.DetailedOutcome {
	missing := c.Missing()
	if len(missing) == 0 {
		return report.DetailedPass()
	}

	items := make([]report.Remediation, 0, len(missing))
	for _, url := range missing {
		items = append(items, report.Remediation{
			Msg:        fmt.Sprintf("Binary cache %s is not configured", url),
			Suggestion: fmt.Sprintf("Add %s to substituters (or extra-substituters) in /etc/nix/nix.conf and restart nix-daemon", url),
		})
	}
	return report.DetailedFail(items...)
}

func (c Caches) Describe() string {
	if len(c.Configured) == 0 {
		return "substituters = (none)"
	}
	return "substituters = " + strings.Join(c.Configured, " ")
}

func normalizeCacheURL(url string) string {
	return strings.TrimRight(strings.TrimSpace(url), "/")
}
