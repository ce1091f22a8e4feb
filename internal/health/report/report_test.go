package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWithoutDetails(t *testing.T) {
	tests := []struct {
		name string
		in   Verdict
		pass bool
	}{
		{name: "detailed pass", in: DetailedPass(), pass: true},
		{name: "detailed fail with items", in: DetailedFail(Remediation{Msg: "broken", Suggestion: "fix it"}), pass: false},
		{name: "detailed fail without items", in: DetailedFail(), pass: false},
		{name: "plain pass", in: Pass(), pass: true},
		{name: "plain fail", in: Fail(), pass: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.in.WithoutDetails()
			require.Equal(t, tt.pass, out.IsPass())
			require.Empty(t, out.Details())
			if tt.pass {
				require.Equal(t, Pass(), out)
			} else {
				require.Equal(t, Fail(), out)
			}
		})
	}
}

func TestDetails(t *testing.T) {
	item := Remediation{Msg: "max-jobs is 1", Suggestion: "set max-jobs = auto"}
	require.Equal(t, []Remediation{item}, DetailedFail(item).Details())
	require.Empty(t, DetailedPass().Details())
	require.Empty(t, Fail().Details())

	// a pass never exposes stray items
	stray := DetailedOutcome{Status: StatusPass, Items: []Remediation{item}}
	require.Empty(t, stray.Details())
}

func TestEqual(t *testing.T) {
	a := Remediation{Msg: "a"}
	b := Remediation{Msg: "b"}
	tests := []struct {
		name  string
		x, y  Verdict
		equal bool
	}{
		{name: "pass across types", x: Pass(), y: DetailedPass(), equal: true},
		{name: "pass across types reversed", x: DetailedPass(), y: Pass(), equal: true},
		{name: "pass vs fail", x: DetailedPass(), y: DetailedFail(a), equal: false},
		{name: "plain pass vs detailed fail", x: Pass(), y: DetailedFail(), equal: false},
		{name: "plain fails", x: Fail(), y: Fail(), equal: true},
		{name: "detailed fails same items", x: DetailedFail(a, b), y: DetailedFail(a, b), equal: true},
		{name: "detailed fails different items", x: DetailedFail(a), y: DetailedFail(b), equal: false},
		{name: "detailed fail vs plain fail", x: DetailedFail(), y: Fail(), equal: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.equal, Equal(tt.x, tt.y))
		})
	}
}

func TestDetailedOutcomeRoundTrip(t *testing.T) {
	in := DetailedFail(Remediation{Msg: "missing cache", Suggestion: "add https://cache.nixos.org/"})

	data, err := json.Marshal(in)
	require.NoError(t, err)
	var fromJSON DetailedOutcome
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	require.True(t, Equal(in, fromJSON))

	data, err = yaml.Marshal(in)
	require.NoError(t, err)
	var fromYAML DetailedOutcome
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	require.True(t, Equal(in, fromYAML))
}

func TestStatusRejectsUnknownValue(t *testing.T) {
	var out Outcome
	err := json.Unmarshal([]byte(`{"status":"green"}`), &out)
	require.Error(t, err)

	require.NoError(t, json.Unmarshal([]byte(`{"status":"pass"}`), &out))
	require.True(t, out.IsPass())
}
