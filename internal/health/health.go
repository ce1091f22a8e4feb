// Package health runs every registered check against a nix snapshot and rolls
// the results up into a single verdict.
package health

import (
	"errors"
	"fmt"

	"github.com/example/nix-health/internal/health/check"
	"github.com/example/nix-health/internal/health/report"
	"github.com/example/nix-health/internal/nixinfo"
)

var (
	// ErrUnknownKind is returned when decoding a record with an unregistered check.
	ErrUnknownKind = errors.New("unknown check kind")
	// ErrInvalidRecord is returned when a decoded record does not hold exactly
	// one check of every kind.
	ErrInvalidRecord = errors.New("invalid health record")
)

// Name identifies the whole check suite.
const Name = "Nix Health"

// Entry is one check owned by a NixHealth, tagged with its kind.
type Entry struct {
	Kind  Kind
	Check check.Leaf
}

// NixHealth owns one instance of every registered check.
type NixHealth struct {
	entries []Entry
}

var _ check.Check[report.Outcome] = (*NixHealth)(nil)

// Summary counts check outcomes.
type Summary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// Check runs every registered check against info using the default policy.
func Check(info nixinfo.Info) *NixHealth {
	return CheckWithPolicy(info, check.DefaultPolicy())
}

// CheckWithPolicy runs every registered check against info.
func CheckWithPolicy(info nixinfo.Info, p check.Policy) *NixHealth {
	h := &NixHealth{entries: make([]Entry, 0, len(kinds))}
	for _, k := range kinds {
		h.entries = append(h.entries, Entry{Kind: k.kind, Check: k.build(info, p)})
	}
	return h
}

// Entries returns the owned checks with their kinds, in declaration order.
func (h *NixHealth) Entries() []Entry {
	return append([]Entry(nil), h.entries...)
}

// Checks returns the owned checks in declaration order.
func (h *NixHealth) Checks() []check.Leaf {
	out := make([]check.Leaf, 0, len(h.entries))
	for _, e := range h.entries {
		out = append(out, e.Check)
	}
	return out
}

// Get returns the check of the given kind, or nil if it is not registered.
func (h *NixHealth) Get(kind Kind) check.Leaf {
	for _, e := range h.entries {
		if e.Kind == kind {
			return e.Check
		}
	}
	return nil
}

func (h *NixHealth) Name() string { return Name }

// Report passes only when every check passes. Which check failed is not
// kept; inspect the individual checks for that.
func (h *NixHealth) Report() report.Outcome {
	for _, c := range h.Checks() {
		if !c.Report().IsPass() {
			return report.Fail()
		}
	}
	return report.Pass()
}

func (h *NixHealth) Describe() string {
	s := h.Summary()
	return fmt.Sprintf("%d of %d checks passed", s.Passed, s.Total)
}

// Summary counts passing and failing checks.
func (h *NixHealth) Summary() Summary {
	s := Summary{Total: len(h.entries)}
	for _, c := range h.Checks() {
		if c.Report().IsPass() {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}
