// Package nixinfo acquires a point-in-time snapshot of a Nix installation.
//
// Everything that touches the outside world (running nix, reading nix.conf,
// reading saved snapshots) lives here. The returned Info is treated as
// immutable by the health checks.
package nixinfo

import (
	"fmt"
	"strconv"
	"strings"
)

// Info is a snapshot of the managed Nix installation.
type Info struct {
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	CPUs    int    `json:"cpus,omitempty" yaml:"cpus,omitempty"`
	Config  Config `json:"config" yaml:"config"`
}

// Config maps a nix setting name to its raw value. Values are whatever the
// source produced: strings from nix.conf, numbers, bools and lists from
// `nix show-config --json` or a decoded snapshot file.
type Config map[string]any

// Raw returns the value stored for key.
func (c Config) Raw(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// String renders the value stored for key as a single string. Lists are
// joined with spaces, the way nix.conf writes them.
func (c Config) String(key string) (string, bool) {
	v, ok := c[key]
	if !ok || v == nil {
		return "", false
	}
	if list, ok := toList(v); ok {
		return strings.Join(list, " "), true
	}
	return scalar(v), true
}

// List returns the value stored for key as a list of strings. Scalars are
// split on whitespace.
func (c Config) List(key string) ([]string, bool) {
	v, ok := c[key]
	if !ok || v == nil {
		return nil, false
	}
	if list, ok := toList(v); ok {
		return list, true
	}
	return strings.Fields(scalar(v)), true
}

// Effective resolves a list setting the way nix does: the value of key (or
// def when key is unset) followed by anything from "extra-"+key.
func (c Config) Effective(key string, def []string) []string {
	base, ok := c.List(key)
	if !ok {
		base = def
	}
	out := append([]string(nil), base...)
	if extra, ok := c.List("extra-" + key); ok {
		out = append(out, extra...)
	}
	return out
}

func toList(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...), true
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, scalar(item))
		}
		return out, true
	default:
		return nil, false
	}
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
