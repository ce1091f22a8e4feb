package check

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/nix-health/internal/health/report"
	"github.com/example/nix-health/internal/nixinfo"
)

// nix builds one derivation at a time unless told otherwise.
const defaultMaxJobs = 1

// MaxJobs checks that nix may run enough builds in parallel.
type MaxJobs struct {
	// Setting is the configured value, empty when max-jobs is unset.
	Setting string `json:"setting,omitempty" yaml:"setting,omitempty"`
	// Auto is set for max-jobs = auto, where Jobs is the CPU count.
	Auto bool `json:"auto,omitempty" yaml:"auto,omitempty"`
	// Jobs is the effective job count. Zero with Auto means the CPU count was unknown.
	Jobs int `json:"jobs" yaml:"jobs"`
	// Invalid is set when Setting could not be interpreted.
	Invalid bool `json:"invalid,omitempty" yaml:"invalid,omitempty"`
	Min     int  `json:"min" yaml:"min"`
}

var _ Leaf = (*MaxJobs)(nil)

// NewMaxJobs extracts max-jobs from info.
func NewMaxJobs(info nixinfo.Info, p Policy) *MaxJobs {
	c := &MaxJobs{Min: p.minMaxJobs()}

	setting, ok := info.Config.String("max-jobs")
	if !ok {
		c.Jobs = defaultMaxJobs
		return c
	}

	c.Setting = strings.TrimSpace(setting)
	if c.Setting == "auto" {
		c.Auto = true
		c.Jobs = info.CPUs
		return c
	}

	n, err := strconv.Atoi(c.Setting)
	if err != nil || n < 0 {
		c.Invalid = true
		return c
	}
	c.Jobs = n
	return c
}

func (c MaxJobs) Name() string { return "Max Jobs" }

// Report compares against Min, falling back to the default minimum when a
// decoded record carries none.
func (c MaxJobs) Report() report.DetailedOutcome {
	floor := Policy{MinMaxJobs: c.Min}.minMaxJobs()
	switch {
	case c.Invalid:
		return report.DetailedFail(report.Remediation{
			Msg:        fmt.Sprintf("max-jobs is set to %q, which is neither a number nor \"auto\"", c.Setting),
			Suggestion: "Set max-jobs = auto in /etc/nix/nix.conf and restart nix-daemon",
		})
	case c.Auto && c.Jobs == 0:
		return report.DetailedPass()
	case c.Jobs >= floor:
		return report.DetailedPass()
	default:
		return report.DetailedFail(report.Remediation{
			Msg:        fmt.Sprintf("nix builds use only %d job(s) at a time; at least %d is recommended", c.Jobs, floor),
			Suggestion: fmt.Sprintf("Set max-jobs = auto (or at least %d) in /etc/nix/nix.conf and restart nix-daemon", floor),
		})
	}
}

func (c MaxJobs) Describe() string {
	switch {
	case c.Setting == "" && !c.Invalid:
		return fmt.Sprintf("max-jobs unset (nix default %d)", defaultMaxJobs)
	case c.Auto && c.Jobs > 0:
		return fmt.Sprintf("max-jobs = auto (%d CPUs)", c.Jobs)
	default:
		return "max-jobs = " + c.Setting
	}
}
