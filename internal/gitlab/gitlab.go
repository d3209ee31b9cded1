package gitlab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/codecritic/codecritic/internal/review"
)

// Client provides access to the GitLab REST API for posting review comments
// to a merge request. It consumes a finished result's comments list; it has
// no part in producing the review itself.
type Client struct {
	token   string
	baseURL string
	httpCli *http.Client
	log     *zap.Logger
}

// NewClient creates a GitLab client. The token is required; baseURL defaults
// to gitlab.com's v4 API.
func NewClient(baseURL, token string, log *zap.Logger) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("gitlab: token is not set")
	}
	if baseURL == "" {
		baseURL = "https://gitlab.com/api/v4"
	}
	return &Client{
		token:   token,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCli: &http.Client{Timeout: 60 * time.Second},
		log:     log,
	}, nil
}

// PostReview posts each finding as a merge-request discussion plus one
// summary note, and records what was posted in the result's GitLab block.
// Individual comment failures are logged and skipped; the review itself is
// already complete by the time this runs.
func (c *Client) PostReview(ctx context.Context, result *review.Result) error {
	gl := result.GitLab
	if gl == nil {
		return fmt.Errorf("result has no gitlab integration metadata")
	}

	for _, comment := range result.Comments {
		id, err := c.createDiscussion(ctx, gl.ProjectID, gl.MergeRequestID, formatComment(comment))
		if err != nil {
			c.log.Warn("failed to post comment",
				zap.Int("line", comment.Line), zap.Error(err))
			continue
		}
		gl.CommentsPosted++
		gl.DiscussionIDs = append(gl.DiscussionIDs, id)
	}

	if err := c.createNote(ctx, gl.ProjectID, gl.MergeRequestID, formatSummary(result)); err != nil {
		return fmt.Errorf("posting summary note: %w", err)
	}
	return nil
}

func (c *Client) createDiscussion(ctx context.Context, projectID, mrIID int, body string) (string, error) {
	url := fmt.Sprintf("%s/projects/%d/merge_requests/%d/discussions", c.baseURL, projectID, mrIID)

	respBody, err := c.post(ctx, url, map[string]string{"body": body})
	if err != nil {
		return "", err
	}

	var discussion struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &discussion); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	return discussion.ID, nil
}

func (c *Client) createNote(ctx context.Context, projectID, mrIID int, body string) error {
	url := fmt.Sprintf("%s/projects/%d/merge_requests/%d/notes", c.baseURL, projectID, mrIID)
	_, err := c.post(ctx, url, map[string]string{"body": body})
	return err
}

func (c *Client) post(ctx context.Context, url string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("PRIVATE-TOKEN", c.token)

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == 401 || resp.StatusCode == 403 {
		return nil, fmt.Errorf("authentication failed: %s", string(respBody))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GitLab API error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

func formatComment(c review.Comment) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**Line %d** (%s): %s", c.Line, c.Type, c.Text)
	if c.Suggestion != "" {
		fmt.Fprintf(&sb, "\n\n```suggestion:-0+0\n%s\n```", c.Suggestion)
	}
	return sb.String()
}

func formatSummary(result *review.Result) string {
	var sb strings.Builder
	sb.WriteString("## Code Review Summary\n\n")
	fmt.Fprintf(&sb, "| Metric | Grade | Score |\n|--------|-------|-------|\n")
	fmt.Fprintf(&sb, "| Overall | %s | %d |\n", result.Metrics.Overall.Grade, result.Metrics.Overall.Score)
	fmt.Fprintf(&sb, "| Maintainability | %s | %d |\n", result.Metrics.Maintainability.Grade, result.Metrics.Maintainability.Score)
	fmt.Fprintf(&sb, "| Performance | %s | %d |\n", result.Metrics.Performance.Grade, result.Metrics.Performance.Score)
	fmt.Fprintf(&sb, "| Security | %s | %d |\n\n", result.Metrics.Security.Grade, result.Metrics.Security.Score)
	fmt.Fprintf(&sb, "Issues: %d critical, %d warnings, %d info\n",
		result.Issues.Critical, result.Issues.Warnings, result.Issues.Info)

	if len(result.KeyImprovements) > 0 {
		sb.WriteString("\n### Key Improvements\n\n")
		for _, k := range result.KeyImprovements {
			fmt.Fprintf(&sb, "- %s\n", k)
		}
	}
	return sb.String()
}
