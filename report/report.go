// Package report renders pipeline summaries as aligned text tables for
// terminal output.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pipelat/pipelat/pipeline"
)

// Render writes a human-readable table of the summary to w.
func Render(w io.Writer, s *pipeline.Summary) error {
	fmt.Fprintf(w, "Pipeline: %s\n", s.Pipeline)
	fmt.Fprintf(w, "Run:      %s\n", s.RunID)
	fmt.Fprintf(w, "Total:    %.2f us\n", s.TotalLatency)
	fmt.Fprintf(w, "Critical: %s\n\n", strings.Join(s.CriticalPath, " -> "))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COMPONENT\tTYPE\tRESOURCE\tGROUPS\tSTART (us)\tEND (us)\tLATENCY (us)\tCRITICAL")
	for _, c := range s.Components {
		marker := ""
		if c.OnCriticalPath {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2f\t%.2f\t%.2f\t%s\n",
			c.Name, c.Type, c.Resource, c.Groups, c.StartUs, c.EndUs, c.LatencyUs, marker)
	}
	return tw.Flush()
}

// RenderTimeline writes a coarse per-component timing diagram: one row per
// component, with a bar spanning its active window scaled to the total
// latency.
func RenderTimeline(w io.Writer, s *pipeline.Summary, width int) error {
	if width <= 0 {
		width = 60
	}
	if s.TotalLatency <= 0 {
		return nil
	}

	nameWidth := 0
	for _, c := range s.Components {
		if len(c.Name) > nameWidth {
			nameWidth = len(c.Name)
		}
	}

	scale := float64(width) / s.TotalLatency
	for _, c := range s.Components {
		lead := int(c.StartUs * scale)
		span := int(c.EndUs*scale) - lead
		if span < 1 {
			span = 1
		}
		fmt.Fprintf(w, "%-*s |%s%s\n", nameWidth, c.Name,
			strings.Repeat(" ", lead), strings.Repeat("#", span))
	}
	pad := width - len(fmt.Sprintf("%.2f us", s.TotalLatency)) + 6
	if pad < 1 {
		pad = 1
	}
	fmt.Fprintf(w, "%-*s  0%s%.2f us\n", nameWidth, "", strings.Repeat(" ", pad), s.TotalLatency)
	return nil
}
