package health

import (
	"encoding/json"
	"fmt"

	"github.com/example/nix-health/internal/health/check"
	"gopkg.in/yaml.v3"
)

// A record serializes as {"checks": [{"kind": ..., "check": {...}}, ...]}.

type encodedEntry struct {
	Kind  Kind       `json:"kind" yaml:"kind"`
	Check check.Leaf `json:"check" yaml:"check"`
}

type encodedRecord struct {
	Checks []encodedEntry `json:"checks" yaml:"checks"`
}

func (h *NixHealth) encode() encodedRecord {
	rec := encodedRecord{Checks: make([]encodedEntry, 0, len(h.entries))}
	for _, e := range h.entries {
		rec.Checks = append(rec.Checks, encodedEntry{Kind: e.Kind, Check: e.Check})
	}
	return rec
}

func (h *NixHealth) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.encode())
}

func (h *NixHealth) UnmarshalJSON(data []byte) error {
	var raw struct {
		Checks []struct {
			Kind  Kind            `json:"kind"`
			Check json.RawMessage `json:"check"`
		} `json:"checks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	decoded := make([]Entry, 0, len(raw.Checks))
	for _, item := range raw.Checks {
		spec, ok := lookup(item.Kind)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownKind, item.Kind)
		}
		c := spec.empty()
		if err := json.Unmarshal(item.Check, c); err != nil {
			return fmt.Errorf("decode %s check: %w", item.Kind, err)
		}
		decoded = append(decoded, Entry{Kind: item.Kind, Check: c})
	}

	return h.assemble(decoded)
}

func (h *NixHealth) MarshalYAML() (any, error) {
	return h.encode(), nil
}

func (h *NixHealth) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Checks []struct {
			Kind  Kind      `yaml:"kind"`
			Check yaml.Node `yaml:"check"`
		} `yaml:"checks"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	decoded := make([]Entry, 0, len(raw.Checks))
	for _, item := range raw.Checks {
		spec, ok := lookup(item.Kind)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownKind, item.Kind)
		}
		c := spec.empty()
		if err := item.Check.Decode(c); err != nil {
			return fmt.Errorf("decode %s check: %w", item.Kind, err)
		}
		decoded = append(decoded, Entry{Kind: item.Kind, Check: c})
	}

	return h.assemble(decoded)
}

// assemble checks that decoded holds every kind exactly once and stores the
// entries in declaration order.
func (h *NixHealth) assemble(decoded []Entry) error {
	byKind := make(map[Kind]check.Leaf, len(decoded))
	for _, e := range decoded {
		if _, dup := byKind[e.Kind]; dup {
			return fmt.Errorf("%w: duplicate %q check", ErrInvalidRecord, e.Kind)
		}
		byKind[e.Kind] = e.Check
	}

	entries := make([]Entry, 0, len(kinds))
	for _, k := range kinds {
		c, ok := byKind[k.kind]
		if !ok {
			return fmt.Errorf("%w: missing %q check", ErrInvalidRecord, k.kind)
		}
		entries = append(entries, Entry{Kind: k.kind, Check: c})
	}

	h.entries = entries
	return nil
}
