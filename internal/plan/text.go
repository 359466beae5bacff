package plan

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vk/expgrid/internal/step"
)

// WriteText writes a human-readable plan. Styling is applied only when w is
// a terminal.
func (p *Plan) WriteText(w io.Writer) error {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true)
	id := r.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	faint := r.NewStyle().Faint(true)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", heading.Render(fmt.Sprintf("Plan: %d steps in %d levels", len(p.Steps), len(p.Levels))))

	for _, s := range p.Steps {
		d := s.Descriptor
		fmt.Fprintf(&sb, "\n%d. %s %s\n", s.Position+1, id.Render(s.ID), faint.Render(fmt.Sprintf("(level %d)", s.Level)))
		writeField(&sb, "source", labels(d.Source()))
		writeField(&sb, "target", labels(d.Target()))
		writeField(&sb, "features", labels(d.Features()))
		if len(d.ForEach()) > 0 {
			writeField(&sb, "for_each", labels(d.ForEach()))
		}
		if len(d.AggregateBy()) > 0 {
			writeField(&sb, "aggregate_by", labels(d.AggregateBy()))
		}
		if d.Rule() != "" {
			writeField(&sb, "rule", d.Rule())
		}
		writeField(&sb, "depends_on", orDash(strings.Join(s.DependsOn, ", ")))
		for i, ps := range d.Parameters() {
			name := ""
			if i == 0 {
				name = "parameters"
			}
			writeField(&sb, name, ps.String())
		}
	}

	if len(p.External) > 0 {
		fmt.Fprintf(&sb, "\n%s %s\n", heading.Render("External inputs:"), strings.Join(p.External, " "))
	}
	if len(p.Terminal) > 0 {
		fmt.Fprintf(&sb, "%s %s\n", heading.Render("Final outputs:"), strings.Join(p.Terminal, " "))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeField(sb *strings.Builder, name, value string) {
	if name != "" {
		name += ":"
	}
	fmt.Fprintf(sb, "   %-14s%s\n", name, value)
}

func labels(l step.Labels) string {
	return orDash(l.String())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
