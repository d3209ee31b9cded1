package providers

import (
	"fmt"
	"strings"

	"github.com/codecritic/codecritic/internal/review"
)

// resultSchema is the canonical JSON shape embedded in every prompt. The
// model is told to emit only this object because downstream parsing has no
// structural fallback for prose-wrapped answers beyond a best-effort
// markdown-fence strip.
const resultSchema = `{
  "metrics": {
    "overall": {"grade": "A+ through F", "score": 0-100},
    "maintainability": {"grade": "A+ through F", "score": 0-100},
    "performance": {"grade": "A+ through F", "score": 0-100},
    "security": {"grade": "A+ through F", "score": 0-100}
  },
  "comments": [
    {"line": 1, "text": "what is wrong and why", "type": "error|warning|suggestion|info", "suggestion": "optional replacement code"}
  ],
  "improvedCode": "the full improved version of the file",
  "keyImprovements": ["up to 6 short bullet points"],
  "issues": {
    "critical": 0,
    "warnings": 0,
    "info": 0,
    "types": [{"name": "issue category", "description": "short description", "severity": "high|medium|low"}]
  }
}`

// BuildPrompt constructs the review prompt for a submission: the code fenced
// by its language tag, the canonical result schema, and a directive narrowed
// by review type.
func BuildPrompt(sub review.Submission) string {
	var b strings.Builder

	b.WriteString("You are an expert code reviewer. ")
	b.WriteString(directiveFor(sub.Type))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Review the following %s code:\n\n", sub.Language)
	fmt.Fprintf(&b, "```%s\n%s\n```\n\n", strings.ToLower(sub.Language), sub.Code)

	b.WriteString("Respond with a JSON object of exactly this shape:\n\n")
	b.WriteString(resultSchema)
	b.WriteString("\n\nComment line numbers are 1-based and must reference lines of the submitted code. ")
	b.WriteString("The issues counts must match the comments list. ")
	b.WriteString("Respond with ONLY the JSON object. No markdown, no explanation, no preamble.")

	return b.String()
}

func directiveFor(t review.ReviewType) string {
	switch t {
	case review.ReviewSyntaxOnly:
		return "Focus only on syntax errors, style problems, and obvious bugs. Do not comment on architecture or design."
	case review.ReviewSecurity:
		return "Focus primarily on security: injection risks, unsafe input handling, secrets, and unsafe APIs."
	case review.ReviewPerformance:
		return "Focus primarily on performance: algorithmic complexity, allocations, and unnecessary work."
	default:
		return "Provide a comprehensive review covering correctness, style, maintainability, performance, and security."
	}
}
