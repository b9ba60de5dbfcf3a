package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/nvalerio/flowforge/pkg/score"
)

// renderReport writes the quality report to w. On a terminal it renders a
// styled markdown summary; piped output gets plain JSON so reports stay
// machine-readable in scripts.
func renderReport(w io.Writer, report score.Report) error {
	if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	out, err := r.Render(reportMarkdown(report))
	if err != nil {
		return err
	}
	fmt.Fprint(w, out)
	fmt.Fprintln(w, "  "+gradeAccent(report))
	return nil
}

func reportMarkdown(report score.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Quality Report\n\n")
	fmt.Fprintf(&b, "**Score:** %d/100 (threshold %d)\n\n", report.Score, report.Threshold)

	b.WriteString("| Check | Score | Detail |\n|---|---|---|\n")
	rows := []struct {
		name string
		cr   score.CheckResult
	}{
		{"Node count", report.Breakdown.NodeCount},
		{"Credentials", report.Breakdown.Credentials},
		{"Parameters", report.Breakdown.Parameters},
		{"Error handling", report.Breakdown.ErrorHandling},
		{"Connectivity", report.Breakdown.Connectivity},
		{"Documentation", report.Breakdown.Documentation},
		{"Flow features", report.Breakdown.FlowFeatures},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | %d/%d | %s |\n", row.name, row.cr.Score, row.cr.Max, row.cr.Message)
	}

	if len(report.Feedback) > 0 {
		b.WriteString("\n## Feedback\n\n")
		for _, d := range report.Feedback {
			fmt.Fprintf(&b, "- %s\n", d.String())
		}
	}
	return b.String()
}

// gradeAccent colors the grade line by band.
func gradeAccent(report score.Report) string {
	p := termenv.ColorProfile()
	color := "#ef4444" // D/F
	switch {
	case report.Score >= 80:
		color = "#22c55e"
	case report.Score >= 70:
		color = "#eab308"
	}
	return termenv.String("Grade: " + report.Grade).Foreground(p.Color(color)).Bold().String()
}
