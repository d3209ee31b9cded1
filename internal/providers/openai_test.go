package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/codecritic/codecritic/internal/review"
)

const validResultJSON = `{
  "metrics": {
    "overall": {"grade": "B+", "score": 87},
    "maintainability": {"grade": "B", "score": 83},
    "performance": {"grade": "A-", "score": 90},
    "security": {"grade": "B", "score": 82}
  },
  "comments": [
    {"line": 2, "text": "Use strict equality", "type": "warning"}
  ],
  "issues": {"critical": 0, "warnings": 1, "info": 0}
}`

func openaiCompletion(content string) string {
	resp := openaiResponse{Choices: []openaiChoice{{Message: openaiMessage{Role: "assistant", Content: content}}}}
	data, _ := json.Marshal(resp)
	return string(data)
}

func testSubmission() review.Submission {
	return review.Submission{
		Language: "JavaScript",
		Type:     review.ReviewComprehensive,
		Code:     "var x = 1;\nif (x == 1) { console.log(x); }",
	}
}

func newTestOpenAI(t *testing.T, url string) *OpenAI {
	t.Helper()
	client, err := NewOpenAI(Options{
		APIKey:        "test-key",
		BaseURL:       url,
		Model:         "gpt-4o",
		FallbackModel: "gpt-4o-mini",
		MaxAttempts:   3,
		RetryDelay:    time.Millisecond,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewOpenAI: %v", err)
	}
	return client
}

func TestOpenAI_RequiresAPIKey(t *testing.T) {
	if _, err := NewOpenAI(Options{Model: "gpt-4o"}, zap.NewNop()); err == nil {
		t.Error("NewOpenAI without key = nil error, want error")
	}
}

func TestOpenAI_Success(t *testing.T) {
	var gotAuth string
	var gotReq openaiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(openaiCompletion(validResultJSON)))
	}))
	defer server.Close()

	res := newTestOpenAI(t, server.URL).RequestReview(context.Background(), testSubmission())
	if res == nil {
		t.Fatal("RequestReview returned nil")
	}
	if res.Metrics.Overall.Grade != "B+" || res.Metrics.Overall.Score != 87 {
		t.Errorf("Overall = %+v, want B+/87", res.Metrics.Overall)
	}
	if len(res.Comments) != 1 || res.Comments[0].Type != review.CommentWarning {
		t.Errorf("Comments = %+v", res.Comments)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want Bearer test-key", gotAuth)
	}
	if gotReq.Model != "gpt-4o" {
		t.Errorf("request model = %q, want gpt-4o", gotReq.Model)
	}
}

func TestOpenAI_RateLimitRetriedThenSucceeds(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.WriteHeader(429)
			w.Write([]byte(`{"error": {"code": "rate_limit_exceeded"}}`))
			return
		}
		w.Write([]byte(openaiCompletion(validResultJSON)))
	}))
	defer server.Close()

	res := newTestOpenAI(t, server.URL).RequestReview(context.Background(), testSubmission())
	if res == nil {
		t.Fatal("RequestReview returned nil")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestOpenAI_RateLimitExhaustsBudgetThenFallsBack(t *testing.T) {
	var models []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openaiRequest
		json.NewDecoder(r.Body).Decode(&req)
		models = append(models, req.Model)
		if req.Model == "gpt-4o" {
			w.WriteHeader(429)
			w.Write([]byte(`{"error": {"code": "rate_limit_exceeded"}}`))
			return
		}
		w.Write([]byte(openaiCompletion(validResultJSON)))
	}))
	defer server.Close()

	client, err := NewOpenAI(Options{
		APIKey:        "test-key",
		BaseURL:       server.URL,
		Model:         "gpt-4o",
		FallbackModel: "gpt-4o-mini",
		MaxAttempts:   2,
		RetryDelay:    time.Millisecond,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewOpenAI: %v", err)
	}

	res := client.RequestReview(context.Background(), testSubmission())
	if res == nil {
		t.Fatal("RequestReview returned nil, want fallback-model result")
	}
	want := []string{"gpt-4o", "gpt-4o", "gpt-4o-mini"}
	if len(models) != len(want) {
		t.Fatalf("models = %v, want %v", models, want)
	}
	for i := range want {
		if models[i] != want[i] {
			t.Fatalf("models = %v, want %v", models, want)
		}
	}
}

func TestOpenAI_QuotaSkipsStraightToFallback(t *testing.T) {
	var models []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openaiRequest
		json.NewDecoder(r.Body).Decode(&req)
		models = append(models, req.Model)
		if req.Model == "gpt-4o" {
			w.WriteHeader(429)
			w.Write([]byte(`{"error": {"code": "insufficient_quota", "message": "You exceeded your current quota"}}`))
			return
		}
		w.Write([]byte(openaiCompletion(validResultJSON)))
	}))
	defer server.Close()

	res := newTestOpenAI(t, server.URL).RequestReview(context.Background(), testSubmission())
	if res == nil {
		t.Fatal("RequestReview returned nil, want fallback-model result")
	}
	if len(models) != 2 || models[0] != "gpt-4o" || models[1] != "gpt-4o-mini" {
		t.Errorf("models = %v, want quota failure to skip retries", models)
	}
}

func TestOpenAI_AuthErrorNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(401)
		w.Write([]byte(`{"error": {"message": "Incorrect API key provided"}}`))
	}))
	defer server.Close()

	res := newTestOpenAI(t, server.URL).RequestReview(context.Background(), testSubmission())
	if res != nil {
		t.Fatalf("RequestReview = %+v, want nil", res)
	}
	// One attempt per model; an invalid key cannot be retried into validity.
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestOpenAI_NonJSONContentFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(openaiCompletion("Sure! Here are my thoughts on your code...")))
	}))
	defer server.Close()

	// Unlike the Hugging Face client, this backend has no synthetic-text
	// fallback: prose output exhausts the chain.
	res := newTestOpenAI(t, server.URL).RequestReview(context.Background(), testSubmission())
	if res != nil {
		t.Fatalf("RequestReview = %+v, want nil for prose response", res)
	}
}

func TestOpenAI_FencedJSONAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(openaiCompletion("```json\n" + validResultJSON + "\n```")))
	}))
	defer server.Close()

	res := newTestOpenAI(t, server.URL).RequestReview(context.Background(), testSubmission())
	if res == nil {
		t.Fatal("RequestReview returned nil, want fenced JSON to parse")
	}
}

func TestOpenAI_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	res := newTestOpenAI(t, server.URL).RequestReview(context.Background(), testSubmission())
	if res != nil {
		t.Fatalf("RequestReview = %+v, want nil", res)
	}
}
