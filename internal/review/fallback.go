package review

import "sort"

// Fixed metrics for dimensions the pattern analyzer cannot assess.
var (
	fallbackPerformance = MetricScore{Grade: "C+", Score: 75}
	fallbackSecurity    = MetricScore{Grade: "C", Score: 70}
)

// fallbackImprovements is the generic advice attached to every static-only
// result.
var fallbackImprovements = []string{
	"Add unit tests covering the main code paths",
	"Add documentation comments for public functions",
	"Handle error and edge cases explicitly",
	"Break long functions into smaller, focused units",
}

// Synthesize builds a Result from static findings alone, used when every AI
// provider has failed. The overall grade/score pair is derived from the
// finding counts by fixed thresholds; performance and security are pinned at
// C+/75 and C/70 because the analyzer cannot assess those dimensions.
func Synthesize(findings []Comment) *Result {
	comments := make([]Comment, len(findings))
	copy(comments, findings)
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].Line < comments[j].Line
	})

	critical, warnings, info := CountComments(comments)
	overall := fallbackGrade(critical, warnings, len(comments))

	return &Result{
		Metrics: Metrics{
			Overall:         overall,
			Maintainability: overall,
			Performance:     fallbackPerformance,
			Security:        fallbackSecurity,
		},
		Comments:        comments,
		KeyImprovements: append([]string(nil), fallbackImprovements...),
		Issues: IssuesSummary{
			Critical: critical,
			Warnings: warnings,
			Info:     info,
			Types: []IssueType{
				{
					Name:        "Static Analysis Only",
					Description: "AI review was unavailable; this result was produced by built-in pattern analysis only.",
					Severity:    "medium",
				},
			},
		},
	}
}

// fallbackGrade maps static finding counts onto one of five fixed
// grade/score pairs. The checks are ordered; the first match wins.
func fallbackGrade(errors, warnings, total int) MetricScore {
	switch {
	case errors == 0 && warnings == 0:
		return MetricScore{Grade: "A-", Score: 90}
	case errors == 0 && warnings <= 2:
		return MetricScore{Grade: "B+", Score: 85}
	case errors <= 1 && total <= 5:
		return MetricScore{Grade: "B-", Score: 80}
	case errors >= 3:
		return MetricScore{Grade: "D+", Score: 65}
	default:
		return MetricScore{Grade: "C", Score: 70}
	}
}
