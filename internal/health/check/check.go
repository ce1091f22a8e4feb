// Package check defines the health check contract and the individual checks
// run against a nix snapshot.
//
// Checks are built by pure constructors from a nixinfo.Info and a Policy.
// They keep only the values they extracted, never the snapshot itself, and
// never fail to construct: a missing or unparseable setting is recorded and
// surfaces as a failing report.
package check

import (
	"github.com/example/nix-health/internal/health/report"
)

// Check is satisfied by every individual check and by the aggregate record.
type Check[R report.Verdict] interface {
	// Name is a stable, human-readable identifier.
	Name() string
	// Report evaluates the check. It is a pure function of the check's state.
	Report() R
	// Describe summarizes what the check saw, e.g. "max-jobs = 8".
	Describe() string
}

// Leaf is an individual check reporting remediation details.
type Leaf = Check[report.DetailedOutcome]

const (
	DefaultMinMaxJobs = 2
	NixOSCache        = "https://cache.nixos.org/"
)

// Policy holds the thresholds the checks compare against.
type Policy struct {
	MinMaxJobs       int      `json:"minMaxJobs" yaml:"minMaxJobs"`
	RequiredCaches   []string `json:"requiredCaches" yaml:"requiredCaches"`
	RequiredFeatures []string `json:"requiredFeatures" yaml:"requiredFeatures"`
}

// DefaultPolicy returns the recommended policy.
func DefaultPolicy() Policy {
	return Policy{
		MinMaxJobs:       DefaultMinMaxJobs,
		RequiredCaches:   []string{NixOSCache},
		RequiredFeatures: []string{"flakes"},
	}
}

func (p Policy) minMaxJobs() int {
	if p.MinMaxJobs < 1 {
		return DefaultMinMaxJobs
	}
	return p.MinMaxJobs
}
