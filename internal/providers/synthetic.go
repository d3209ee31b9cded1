package providers

import (
	"strings"

	"github.com/codecritic/codecritic/internal/review"
)

// Keyword buckets for classifying free-text lines into comment types. First
// matching bucket wins; everything else is info.
var (
	errorKeywords      = []string{"error", "critical", "severe"}
	warningKeywords    = []string{"warning", "caution", "consider"}
	suggestionKeywords = []string{"suggest", "recommend", "improvement"}
)

// codeTokens mark a response that is source code rather than prose.
var codeTokens = []string{"import ", "function ", "class ", "const ", "let "}

// syntheticLineCap bounds how much prose is turned into comments.
const syntheticLineCap = 20

var syntheticMetrics = review.Metrics{
	Overall:         review.MetricScore{Grade: "C+", Score: 75},
	Maintainability: review.MetricScore{Grade: "C+", Score: 75},
	Performance:     review.MetricScore{Grade: "C+", Score: 75},
	Security:        review.MetricScore{Grade: "C", Score: 70},
}

// SyntheticResult extracts a best-effort result from a response that was not
// valid JSON. When the text looks like source code it becomes the improved
// code wholesale; otherwise each non-empty line is classified into a comment
// type by keyword matching. The output is deliberately lossy — this path
// exists to produce a degraded result instead of failing outright — and is
// nil only when the text holds nothing usable.
func SyntheticResult(text string) *review.Result {
	text = StripFences(text)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	res := &review.Result{
		Metrics: syntheticMetrics,
		Issues: review.IssuesSummary{
			Types: []review.IssueType{{
				Name:        "Unstructured AI Response",
				Description: "The AI response was not valid JSON; this result was extracted heuristically from raw text.",
				Severity:    "low",
			}},
		},
	}

	if looksLikeCode(text) {
		res.ImprovedCode = text
		return res
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		res.Comments = append(res.Comments, review.Comment{
			Line: len(res.Comments) + 1,
			Text: line,
			Type: classifyLine(line),
		})
		if len(res.Comments) == syntheticLineCap {
			break
		}
	}

	res.Issues.Critical, res.Issues.Warnings, res.Issues.Info = review.CountComments(res.Comments)
	return res
}

func looksLikeCode(text string) bool {
	for _, token := range codeTokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}

func classifyLine(line string) review.CommentType {
	lower := strings.ToLower(line)
	for _, kw := range errorKeywords {
		if strings.Contains(lower, kw) {
			return review.CommentError
		}
	}
	for _, kw := range warningKeywords {
		if strings.Contains(lower, kw) {
			return review.CommentWarning
		}
	}
	for _, kw := range suggestionKeywords {
		if strings.Contains(lower, kw) {
			return review.CommentSuggestion
		}
	}
	return review.CommentInfo
}
