package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/codecritic/codecritic/internal/review"
)

// TextWriter outputs a human-readable, colorized report.
type TextWriter struct{}

var (
	errColor     = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	suggestColor = color.New(color.FgCyan)
	infoColor    = color.New(color.FgWhite)
	gradeColor   = color.New(color.FgGreen, color.Bold)
)

func (t *TextWriter) Write(w io.Writer, result *review.Result) error {
	ew := &errWriter{w: w}

	ew.println("Code Review")
	ew.println(strings.Repeat("─", 60))
	writeMetric(ew, "Overall", result.Metrics.Overall)
	writeMetric(ew, "Maintainability", result.Metrics.Maintainability)
	writeMetric(ew, "Performance", result.Metrics.Performance)
	writeMetric(ew, "Security", result.Metrics.Security)
	ew.println(strings.Repeat("─", 60))

	ew.printf("Issues: %d critical, %d warnings, %d info\n",
		result.Issues.Critical, result.Issues.Warnings, result.Issues.Info)

	if len(result.Comments) == 0 {
		ew.println("\nNo issues found. Looks good!")
		return ew.err
	}

	ew.println("")
	for _, c := range result.Comments {
		ew.printf("%s line %d: %s\n", typeLabel(c.Type), c.Line, c.Text)
		if c.Suggestion != "" {
			ew.printf("    → %s\n", c.Suggestion)
		}
	}

	if len(result.KeyImprovements) > 0 {
		ew.println("\nKey improvements:")
		for _, k := range result.KeyImprovements {
			ew.printf("  - %s\n", k)
		}
	}

	if result.ImprovedCode != "" {
		ew.println("\nImproved code:")
		ew.println(strings.Repeat("─", 60))
		ew.println(result.ImprovedCode)
	}

	return ew.err
}

func writeMetric(ew *errWriter, name string, m review.MetricScore) {
	ew.printf("%-16s %s (%d/100)\n", name, gradeColor.Sprint(m.Grade), m.Score)
}

func typeLabel(t review.CommentType) string {
	switch t {
	case review.CommentError:
		return errColor.Sprint("[error]     ")
	case review.CommentWarning:
		return warnColor.Sprint("[warning]   ")
	case review.CommentSuggestion:
		return suggestColor.Sprint("[suggestion]")
	default:
		return infoColor.Sprint("[info]      ")
	}
}

// errWriter folds write errors so the happy path stays flat.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) println(s string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, s)
}
