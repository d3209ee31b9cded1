package review

import "sort"

// Merge folds static analyzer findings into an AI-produced result and
// returns it. A static finding is skipped when an AI comment on the same
// line already carries byte-identical text; near-duplicate phrasing from
// both sources is kept on purpose — dedup is exact, not semantic.
//
// After insertion the summary buckets are recomputed from the merged comment
// list (provider-supplied counts are never trusted) and comments are sorted
// ascending by line. The sort is stable, so same-line comments keep
// insertion order with AI-sourced comments first.
func Merge(result *Result, static []Comment) *Result {
	if result == nil {
		return nil
	}

	seen := make(map[int]map[string]bool, len(result.Comments))
	for _, c := range result.Comments {
		if seen[c.Line] == nil {
			seen[c.Line] = make(map[string]bool)
		}
		seen[c.Line][c.Text] = true
	}

	for _, f := range static {
		if seen[f.Line][f.Text] {
			continue
		}
		if seen[f.Line] == nil {
			seen[f.Line] = make(map[string]bool)
		}
		seen[f.Line][f.Text] = true
		result.Comments = append(result.Comments, f)
	}

	result.Issues.Critical, result.Issues.Warnings, result.Issues.Info = CountComments(result.Comments)

	sort.SliceStable(result.Comments, func(i, j int) bool {
		return result.Comments[i].Line < result.Comments[j].Line
	})

	return result
}
