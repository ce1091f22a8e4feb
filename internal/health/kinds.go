package health

import (
	"github.com/example/nix-health/internal/health/check"
	"github.com/example/nix-health/internal/nixinfo"
)

// Kind identifies one individual check. It tags each check in a serialized
// health record.
type Kind string

const (
	KindMaxJobs      Kind = "max-jobs"
	KindCaches       Kind = "caches"
	KindFlakeEnabled Kind = "flake-enabled"
)

// Factory builds a check from a snapshot.
type Factory func(info nixinfo.Info, p check.Policy) check.Leaf

type kindSpec struct {
	kind  Kind
	build Factory
	// empty returns a zero check for decoding into.
	empty func() check.Leaf
}

// kinds is the single list of registered checks. Construction, iteration
// and decoding order all follow it.
var kinds = []kindSpec{
	{
		kind:  KindMaxJobs,
		build: func(info nixinfo.Info, p check.Policy) check.Leaf { return check.NewMaxJobs(info, p) },
		empty: func() check.Leaf { return &check.MaxJobs{} },
	},
	{
		kind:  KindCaches,
		build: func(info nixinfo.Info, p check.Policy) check.Leaf { return check.NewCaches(info, p) },
		empty: func() check.Leaf { return &check.Caches{} },
	},
	{
		kind:  KindFlakeEnabled,
		build: func(info nixinfo.Info, p check.Policy) check.Leaf { return check.NewFlakeEnabled(info, p) },
		empty: func() check.Leaf { return &check.FlakeEnabled{} },
	},
}

// Kinds returns every registered kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, k.kind)
	}
	return out
}

func lookup(kind Kind) (kindSpec, bool) {
	for _, k := range kinds {
		if k.kind == kind {
			return k, true
		}
	}
	return kindSpec{}, false
}
