// Package render writes a human-readable view of a health record to a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/example/nix-health/internal/health"
	"github.com/example/nix-health/internal/health/report"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Options controls text rendering.
type Options struct {
	NoColor bool
}

type palette struct {
	pass, fail, name, dim, hint *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		pass: color.New(color.FgGreen, color.Bold),
		fail: color.New(color.FgRed, color.Bold),
		name: color.New(color.Bold),
		dim:  color.New(color.Faint),
		hint: color.New(color.FgYellow),
	}
	// Without noColor, fatih/color decides from the terminal and NO_COLOR.
	if noColor {
		for _, c := range []*color.Color{p.pass, p.fail, p.name, p.dim, p.hint} {
			c.DisableColor()
		}
	}
	return p
}

// Text writes one block per check followed by the aggregate verdict.
func Text(w io.Writer, h *health.NixHealth, opts Options) error {
	p := newPalette(opts.NoColor)
	checks := h.Checks()

	width := 0
	for _, c := range checks {
		width = max(width, runewidth.StringWidth(c.Name()))
	}

	var b strings.Builder
	for _, c := range checks {
		r := c.Report()
		b.WriteString(glyph(p, r))
		b.WriteString(" ")
		b.WriteString(p.name.Sprint(runewidth.FillRight(c.Name(), width)))
		b.WriteString("  ")
		b.WriteString(p.dim.Sprint(c.Describe()))
		b.WriteString("\n")

		for _, item := range r.Details() {
			fmt.Fprintf(&b, "    %s\n", item.Msg)
			if item.Suggestion != "" {
				fmt.Fprintf(&b, "    %s %s\n", p.hint.Sprint("→"), item.Suggestion)
			}
		}
	}

	verdict := h.Report()
	b.WriteString("\n")
	if verdict.IsPass() {
		fmt.Fprintf(&b, "%s %s: %s\n", p.pass.Sprint(verdict.String()), h.Name(), h.Describe())
	} else {
		fmt.Fprintf(&b, "%s %s: %s\n", p.fail.Sprint(verdict.String()), h.Name(), h.Describe())
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func glyph(p palette, v report.Verdict) string {
	o := v.WithoutDetails()
	if o.IsPass() {
		return p.pass.Sprint(o.String())
	}
	return p.fail.Sprint(o.String())
}
