package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/codecritic/codecritic/internal/review"
)

// Analyze runs the heuristic ruleset for the submission's language over the
// code, one physical line at a time. It is a pure function of
// (language, code): no I/O, no randomness, and it cannot fail — the worst
// case is an empty list. Unrecognized languages fall back to a generic
// ruleset.
func Analyze(sub review.Submission) []review.Comment {
	if strings.TrimSpace(sub.Code) == "" {
		return []review.Comment{{
			Line: 1,
			Text: "Code is empty",
			Type: review.CommentError,
		}}
	}

	lines := strings.Split(sub.Code, "\n")
	rules := rulesFor(sub.Language)

	var findings []review.Comment
	for i, line := range lines {
		findings = append(findings, rules(i+1, line)...)
	}
	return findings
}

// ruleFunc inspects one physical line and emits zero or more findings.
type ruleFunc func(line int, text string) []review.Comment

func rulesFor(language string) ruleFunc {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "javascript", "js", "jsx", "typescript", "ts", "tsx":
		return javascriptRules
	case "python", "py":
		return pythonRules
	case "java":
		return javaRules
	case "c++", "cpp":
		return cppRules
	default:
		return genericRules
	}
}

var (
	jsVarRe         = regexp.MustCompile(`\bvar\s+\w`)
	pyMutableDefRe  = regexp.MustCompile(`def\s+\w+\s*\([^)]*=\s*\[\]`)
	pyLiteralConcat = regexp.MustCompile(`("[^"]*"|'[^']*')\s*\+\s*("|')`)
	cppRawPointerRe = regexp.MustCompile(`\w+\s*\*\s*\w+`)
)

func javascriptRules(n int, text string) []review.Comment {
	var out []review.Comment

	if strings.Contains(text, "console.log") {
		out = append(out, review.Comment{
			Line: n,
			Text: "Debug console.log statement found; remove before production",
			Type: review.CommentWarning,
		})
	}
	if jsVarRe.MatchString(text) {
		out = append(out, review.Comment{
			Line:       n,
			Text:       "Use block-scoped 'const' or 'let' instead of 'var'",
			Type:       review.CommentSuggestion,
			Suggestion: strings.Replace(text, "var ", "const ", 1),
		})
	}
	switch {
	case strings.Contains(text, "===") || strings.Contains(text, "!=="):
		// Already strict.
	case strings.Contains(text, "=="):
		out = append(out, review.Comment{
			Line:       n,
			Text:       "Use strict equality (===) instead of loose equality (==)",
			Type:       review.CommentWarning,
			Suggestion: strings.ReplaceAll(text, "==", "==="),
		})
	case strings.Contains(text, "!="):
		out = append(out, review.Comment{
			Line:       n,
			Text:       "Use strict inequality (!==) instead of loose inequality (!=)",
			Type:       review.CommentWarning,
			Suggestion: strings.ReplaceAll(text, "!=", "!=="),
		})
	}

	return out
}

func pythonRules(n int, text string) []review.Comment {
	var out []review.Comment

	if strings.Contains(text, "print(") {
		out = append(out, review.Comment{
			Line: n,
			Text: "Debug print call found; consider using the logging module",
			Type: review.CommentSuggestion,
		})
	}
	if pyMutableDefRe.MatchString(text) {
		out = append(out, review.Comment{
			Line: n,
			Text: "Mutable default argument; the default list is shared across calls",
			Type: review.CommentWarning,
		})
	}
	if pyLiteralConcat.MatchString(text) {
		out = append(out, review.Comment{
			Line: n,
			Text: "Prefer f-strings or str.join over concatenating string literals with +",
			Type: review.CommentSuggestion,
		})
	}

	return out
}

func javaRules(n int, text string) []review.Comment {
	var out []review.Comment

	if strings.Contains(text, "System.out.print") {
		out = append(out, review.Comment{
			Line: n,
			Text: "Use a logging framework instead of System.out",
			Type: review.CommentSuggestion,
		})
	}
	if strings.Contains(text, "== null") || strings.Contains(text, "!= null") {
		out = append(out, review.Comment{
			Line: n,
			Text: "Explicit null comparison; consider Optional or Objects.nonNull",
			Type: review.CommentSuggestion,
		})
	}

	return out
}

func cppRules(n int, text string) []review.Comment {
	var out []review.Comment

	if strings.Contains(text, "using namespace std") {
		out = append(out, review.Comment{
			Line: n,
			Text: "Avoid 'using namespace std' at global scope",
			Type: review.CommentWarning,
		})
	} else if cppRawPointerRe.MatchString(text) {
		out = append(out, review.Comment{
			Line: n,
			Text: "Raw pointer declaration; consider std::unique_ptr or std::shared_ptr",
			Type: review.CommentSuggestion,
		})
	}

	return out
}

const maxLineLength = 100

func genericRules(n int, text string) []review.Comment {
	var out []review.Comment

	if len(text) > maxLineLength {
		out = append(out, review.Comment{
			Line: n,
			Text: fmt.Sprintf("Line exceeds %d characters; consider wrapping", maxLineLength),
			Type: review.CommentSuggestion,
		})
	}
	if trimmed := strings.TrimRight(text, " \t"); trimmed != text {
		out = append(out, review.Comment{
			Line:       n,
			Text:       "Trailing whitespace",
			Type:       review.CommentInfo,
			Suggestion: trimmed,
		})
	}

	return out
}
