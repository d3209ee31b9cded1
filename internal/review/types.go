package review

// ReviewType narrows the emphasis of an AI review.
type ReviewType string

const (
	ReviewComprehensive ReviewType = "comprehensive"
	ReviewSyntaxOnly    ReviewType = "syntax-only"
	ReviewSecurity      ReviewType = "security-focus"
	ReviewPerformance   ReviewType = "performance-focus"
)

// ValidReviewType reports whether t is one of the supported review types.
func ValidReviewType(t ReviewType) bool {
	switch t {
	case ReviewComprehensive, ReviewSyntaxOnly, ReviewSecurity, ReviewPerformance:
		return true
	}
	return false
}

// CommentType classifies a single finding.
type CommentType string

const (
	CommentError      CommentType = "error"
	CommentWarning    CommentType = "warning"
	CommentSuggestion CommentType = "suggestion"
	CommentInfo       CommentType = "info"
)

// ValidCommentType reports whether t is a known comment type.
func ValidCommentType(t CommentType) bool {
	switch t {
	case CommentError, CommentWarning, CommentSuggestion, CommentInfo:
		return true
	}
	return false
}

// Submission is the immutable input to the review pipeline. The HTTP layer
// validates that Language, Type, and Code conform before handing it in.
type Submission struct {
	Language string     `json:"language"`
	Type     ReviewType `json:"reviewType"`
	Code     string     `json:"code"`

	// Optional linked merge-request identifiers.
	GitLabProjectID    int    `json:"gitlabProjectId,omitempty"`
	GitLabMergeRequest int    `json:"gitlabMergeRequestId,omitempty"`
	GitLabCommitSHA    string `json:"gitlabCommitSha,omitempty"`
}

// HasGitLabTarget reports whether the submission carries merge-request
// identifiers for the source-control collaborator.
func (s Submission) HasGitLabTarget() bool {
	return s.GitLabProjectID > 0 && s.GitLabMergeRequest > 0
}

// Comment is a single line-attributed finding. Line numbers are 1-based.
type Comment struct {
	Line       int         `json:"line"`
	Text       string      `json:"text"`
	Type       CommentType `json:"type"`
	Suggestion string      `json:"suggestion,omitempty"`
	File       string      `json:"file,omitempty"`
}

// MetricScore is a graded 0-100 score for one quality dimension. Grade and
// score arrive from the provider as-is; only the synthesized fallback path
// derives one from the other.
type MetricScore struct {
	Grade  string `json:"grade"`
	Score  int    `json:"score"`
	Change int    `json:"change,omitempty"`
}

// Metrics holds the four dimensions every result carries.
type Metrics struct {
	Overall         MetricScore `json:"overall"`
	Maintainability MetricScore `json:"maintainability"`
	Performance     MetricScore `json:"performance"`
	Security        MetricScore `json:"security"`
}

// IssueType describes one category of issue present in the review.
type IssueType struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Severity    string `json:"severity"` // high, medium, low
}

// IssuesSummary aggregates comment counts by bucket. The invariant
// critical+warnings+info == len(comments) is re-established by Merge after
// every insertion pass; provider-supplied sums are never trusted.
type IssuesSummary struct {
	Critical int         `json:"critical"`
	Warnings int         `json:"warnings"`
	Info     int         `json:"info"`
	Types    []IssueType `json:"types,omitempty"`
}

// GitLabIntegration is metadata attached when the submission targets a merge
// request. The engine only populates it; posting comments is done by the
// gitlab collaborator, which records what it posted here.
type GitLabIntegration struct {
	ProjectID      int      `json:"projectId"`
	MergeRequestID int      `json:"mergeRequestId"`
	CommitSHA      string   `json:"commitSha,omitempty"`
	ReviewURL      string   `json:"reviewUrl,omitempty"`
	CommentsPosted int      `json:"commentsPosted,omitempty"`
	DiscussionIDs  []string `json:"discussionIds,omitempty"`
}

// Result is the unit returned to the caller and persisted. It is constructed
// fresh per submission and treated as immutable once handed off, except for
// the GitLab block the posting collaborator fills in.
type Result struct {
	Metrics         Metrics            `json:"metrics"`
	Comments        []Comment          `json:"comments"`
	ImprovedCode    string             `json:"improvedCode,omitempty"`
	KeyImprovements []string           `json:"keyImprovements,omitempty"`
	Issues          IssuesSummary      `json:"issues"`
	GitLab          *GitLabIntegration `json:"gitlabIntegration,omitempty"`
}

// CountComments tallies comments into the three summary buckets:
// error -> critical, warning -> warnings, info and suggestion -> info.
func CountComments(comments []Comment) (critical, warnings, info int) {
	for _, c := range comments {
		switch c.Type {
		case CommentError:
			critical++
		case CommentWarning:
			warnings++
		case CommentInfo, CommentSuggestion:
			info++
		}
	}
	return critical, warnings, info
}
