package gitlab

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/codecritic/codecritic/internal/review"
)

func reviewWithGitLab() *review.Result {
	score := review.MetricScore{Grade: "B+", Score: 85}
	return &review.Result{
		Metrics: review.Metrics{Overall: score, Maintainability: score, Performance: score, Security: score},
		Comments: []review.Comment{
			{Line: 1, Text: "prefer const", Type: review.CommentSuggestion, Suggestion: "const x = 1;"},
			{Line: 2, Text: "loose equality", Type: review.CommentWarning},
		},
		Issues:          review.IssuesSummary{Warnings: 1, Info: 1},
		KeyImprovements: []string{"Add tests"},
		GitLab:          &review.GitLabIntegration{ProjectID: 42, MergeRequestID: 7},
	}
}

func TestNewClient_RequiresToken(t *testing.T) {
	if _, err := NewClient("", "", zap.NewNop()); err == nil {
		t.Error("NewClient without token = nil error, want error")
	}
}

func TestPostReview(t *testing.T) {
	var discussions, notes []string
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("PRIVATE-TOKEN")
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)

		switch {
		case strings.HasSuffix(r.URL.Path, "/discussions"):
			discussions = append(discussions, payload["body"])
			json.NewEncoder(w).Encode(map[string]string{"id": "disc-1"})
		case strings.HasSuffix(r.URL.Path, "/notes"):
			notes = append(notes, payload["body"])
			w.Write([]byte(`{}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "glpat-test", zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	result := reviewWithGitLab()
	if err := client.PostReview(context.Background(), result); err != nil {
		t.Fatalf("PostReview: %v", err)
	}

	if gotToken != "glpat-test" {
		t.Errorf("PRIVATE-TOKEN = %q, want glpat-test", gotToken)
	}
	if len(discussions) != 2 {
		t.Fatalf("got %d discussions, want 2", len(discussions))
	}
	if !strings.Contains(discussions[0], "**Line 1**") || !strings.Contains(discussions[0], "```suggestion:-0+0") {
		t.Errorf("discussion body = %q, want line header and suggestion block", discussions[0])
	}
	if len(notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(notes))
	}
	if !strings.Contains(notes[0], "Code Review Summary") || !strings.Contains(notes[0], "| Overall | B+ | 85 |") {
		t.Errorf("summary note = %q", notes[0])
	}

	if result.GitLab.CommentsPosted != 2 {
		t.Errorf("CommentsPosted = %d, want 2", result.GitLab.CommentsPosted)
	}
	if len(result.GitLab.DiscussionIDs) != 2 {
		t.Errorf("DiscussionIDs = %v, want two ids", result.GitLab.DiscussionIDs)
	}
}

func TestPostReview_CommentFailuresSkipped(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/discussions") {
			calls++
			if calls == 1 {
				w.WriteHeader(500)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"id": "disc-ok"})
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "glpat-test", zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	result := reviewWithGitLab()
	if err := client.PostReview(context.Background(), result); err != nil {
		t.Fatalf("PostReview: %v", err)
	}
	if result.GitLab.CommentsPosted != 1 {
		t.Errorf("CommentsPosted = %d, want 1 (first comment failed)", result.GitLab.CommentsPosted)
	}
}

func TestPostReview_SummaryFailureIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/notes") {
			w.WriteHeader(401)
			w.Write([]byte(`{"message": "401 Unauthorized"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "disc-1"})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "glpat-bad", zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if err := client.PostReview(context.Background(), reviewWithGitLab()); err == nil {
		t.Error("PostReview = nil error, want summary-note failure")
	}
}

func TestPostReview_NoMetadata(t *testing.T) {
	client, err := NewClient("https://gitlab.example.com", "glpat-test", zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if err := client.PostReview(context.Background(), &review.Result{}); err == nil {
		t.Error("PostReview without GitLab block = nil error, want error")
	}
}
