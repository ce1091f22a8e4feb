package events

import (
	"github.com/example/nix-health/internal/health"
	"github.com/example/nix-health/internal/health/report"
)

// EmitHealth streams a health record: a start event, one result per check in
// order, and a finished event carrying the aggregate verdict.
func (e *Emitter) EmitHealth(h *health.NixHealth) error {
	entries := h.Entries()
	if err := e.Emit(Event{
		Type:    TypeCheckStart,
		Message: "Running " + h.Name(),
		Fields:  map[string]any{"checks": len(entries)},
	}); err != nil {
		return err
	}

	for _, entry := range entries {
		r := entry.Check.Report()
		fields := map[string]any{
			"kind":        string(entry.Kind),
			"status":      string(r.Status),
			"description": entry.Check.Describe(),
		}
		if details := r.Details(); len(details) > 0 {
			fields["details"] = details
		}
		if err := e.Emit(Event{Type: TypeCheckResult, Message: entry.Check.Name(), Fields: fields}); err != nil {
			return err
		}
	}

	summary := h.Summary()
	return e.Emit(Event{
		Type:    TypeCheckFinished,
		Message: h.Describe(),
		Fields: map[string]any{
			"status": statusOf(h.Report()),
			"total":  summary.Total,
			"passed": summary.Passed,
			"failed": summary.Failed,
		},
	})
}

func statusOf(v report.Verdict) string {
	if v.IsPass() {
		return string(report.StatusPass)
	}
	return string(report.StatusFail)
}
