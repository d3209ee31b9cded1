package review

import "fmt"

// Validate checks a parsed provider result against the canonical shape.
// Schema-validation failure is treated by callers exactly like a JSON parse
// failure, so the checks are strict: all four metrics present with sane
// scores, and every comment carrying a positive line, non-empty text, and a
// known type.
func Validate(r *Result) error {
	if r == nil {
		return fmt.Errorf("nil result")
	}
	for name, m := range map[string]MetricScore{
		"overall":         r.Metrics.Overall,
		"maintainability": r.Metrics.Maintainability,
		"performance":     r.Metrics.Performance,
		"security":        r.Metrics.Security,
	} {
		if m.Grade == "" {
			return fmt.Errorf("metric %s: missing grade", name)
		}
		if m.Score < 0 || m.Score > 100 {
			return fmt.Errorf("metric %s: score %d out of range", name, m.Score)
		}
	}
	for i, c := range r.Comments {
		if c.Line < 1 {
			return fmt.Errorf("comment %d: line %d is not positive", i, c.Line)
		}
		if c.Text == "" {
			return fmt.Errorf("comment %d: empty text", i)
		}
		if !ValidCommentType(c.Type) {
			return fmt.Errorf("comment %d: unknown type %q", i, c.Type)
		}
	}
	if len(r.KeyImprovements) > 6 {
		r.KeyImprovements = r.KeyImprovements[:6]
	}
	return nil
}
