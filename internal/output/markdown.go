package output

import (
	"fmt"
	"io"

	"github.com/codecritic/codecritic/internal/review"
)

// MarkdownWriter outputs an MR-comment-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, result *review.Result) error {
	fmt.Fprintf(w, "## Code Review\n\n")

	fmt.Fprintf(w, "| Metric | Grade | Score |\n")
	fmt.Fprintf(w, "|--------|-------|-------|\n")
	fmt.Fprintf(w, "| Overall | %s | %d |\n", result.Metrics.Overall.Grade, result.Metrics.Overall.Score)
	fmt.Fprintf(w, "| Maintainability | %s | %d |\n", result.Metrics.Maintainability.Grade, result.Metrics.Maintainability.Score)
	fmt.Fprintf(w, "| Performance | %s | %d |\n", result.Metrics.Performance.Grade, result.Metrics.Performance.Score)
	fmt.Fprintf(w, "| Security | %s | %d |\n\n", result.Metrics.Security.Grade, result.Metrics.Security.Score)

	if len(result.Comments) == 0 {
		fmt.Fprintln(w, "No issues found. :white_check_mark:")
		return nil
	}

	fmt.Fprintf(w, "### Findings (%d critical, %d warnings, %d info)\n\n",
		result.Issues.Critical, result.Issues.Warnings, result.Issues.Info)
	for _, c := range result.Comments {
		fmt.Fprintf(w, "- **Line %d** (%s): %s\n", c.Line, c.Type, c.Text)
		if c.Suggestion != "" {
			fmt.Fprintf(w, "  ```\n  %s\n  ```\n", c.Suggestion)
		}
	}

	if len(result.KeyImprovements) > 0 {
		fmt.Fprintf(w, "\n### Key Improvements\n\n")
		for _, k := range result.KeyImprovements {
			fmt.Fprintf(w, "- %s\n", k)
		}
	}

	if result.ImprovedCode != "" {
		fmt.Fprintf(w, "\n<details>\n<summary>Improved code</summary>\n\n```\n%s\n```\n\n</details>\n", result.ImprovedCode)
	}

	return nil
}
