// Package report models the outcome of a health check.
//
// Leaf checks return a DetailedOutcome carrying remediation items. The
// aggregate health record returns an Outcome, which only knows whether the
// suite passed. Both satisfy Verdict.
package report

import (
	"fmt"
	"slices"
)

// Status is the binary verdict of a check.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// UnmarshalText rejects anything but the two known statuses.
func (s *Status) UnmarshalText(text []byte) error {
	switch v := Status(text); v {
	case StatusPass, StatusFail:
		*s = v
		return nil
	default:
		return fmt.Errorf("unknown report status %q", string(text))
	}
}

// Remediation describes one thing that is wrong and how to fix it.
type Remediation struct {
	Msg        string `json:"msg" yaml:"msg"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// Verdict is implemented by Outcome and DetailedOutcome.
type Verdict interface {
	IsPass() bool
	WithoutDetails() Outcome
	Details() []Remediation
}

var (
	_ Verdict = Outcome{}
	_ Verdict = DetailedOutcome{}
)

// Outcome is a pass/fail verdict without remediation detail.
type Outcome struct {
	Status Status `json:"status" yaml:"status"`
}

// Pass returns a passing Outcome.
func Pass() Outcome { return Outcome{Status: StatusPass} }

// Fail returns a failing Outcome.
func Fail() Outcome { return Outcome{Status: StatusFail} }

func (o Outcome) IsPass() bool { return o.Status == StatusPass }

func (o Outcome) WithoutDetails() Outcome { return o }

// Details is always empty for an Outcome.
func (o Outcome) Details() []Remediation { return nil }

func (o Outcome) String() string {
	if o.IsPass() {
		return "✓"
	}
	return "✗"
}

// DetailedOutcome is a pass/fail verdict where a failure lists remediation items.
type DetailedOutcome struct {
	Status Status        `json:"status" yaml:"status"`
	Items  []Remediation `json:"details,omitempty" yaml:"details,omitempty"`
}

// DetailedPass returns a passing DetailedOutcome.
func DetailedPass() DetailedOutcome { return DetailedOutcome{Status: StatusPass} }

// DetailedFail returns a failing DetailedOutcome with the given remediation items.
func DetailedFail(items ...Remediation) DetailedOutcome {
	return DetailedOutcome{Status: StatusFail, Items: items}
}

func (o DetailedOutcome) IsPass() bool { return o.Status == StatusPass }

// WithoutDetails keeps the verdict and drops the remediation items.
func (o DetailedOutcome) WithoutDetails() Outcome {
	if o.IsPass() {
		return Pass()
	}
	return Fail()
}

// Details returns the remediation items of a failure, or nil for a pass.
func (o DetailedOutcome) Details() []Remediation {
	if o.IsPass() {
		return nil
	}
	return o.Items
}

// Equal compares two verdicts. Passes are equal regardless of their concrete
// type; failures must share a type and payload.
func Equal(a, b Verdict) bool {
	if a.IsPass() || b.IsPass() {
		return a.IsPass() == b.IsPass()
	}
	switch x := a.(type) {
	case Outcome:
		_, ok := b.(Outcome)
		return ok
	case DetailedOutcome:
		y, ok := b.(DetailedOutcome)
		return ok && slices.Equal(x.Items, y.Items)
	default:
		return false
	}
}
