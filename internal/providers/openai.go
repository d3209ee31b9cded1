package providers

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

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

// OpenAI reviews code through OpenAI's chat-completions API. Responses from
// this backend are expected to be JSON; a non-JSON response is a hard
// failure for the current model.
type OpenAI struct {
	opts   Options
	client *http.Client
	log    *zap.Logger
}

// NewOpenAI creates a new OpenAI provider client.
func NewOpenAI(opts Options, log *zap.Logger) (*OpenAI, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is not set")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultOpenAIURL
	}
	opts.applyDefaults()
	return &OpenAI{
		opts:   opts,
		client: &http.Client{Timeout: 120 * time.Second},
		log:    log,
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

// RequestReview runs the full attempt chain for a submission. It never
// returns an error: all failures collapse to nil once the primary and
// fallback models are exhausted.
func (o *OpenAI) RequestReview(ctx context.Context, sub review.Submission) *review.Result {
	prompt := BuildPrompt(sub)
	return runChain(ctx, o.log, o.Name(), o.opts.Model, o.opts.FallbackModel,
		o.opts.MaxAttempts, o.opts.RetryDelay,
		func(ctx context.Context, model string) (*review.Result, error) {
			return o.attempt(ctx, model, prompt)
		})
}

func (o *OpenAI) attempt(ctx context.Context, model, prompt string) (*review.Result, error) {
	body := openaiRequest{
		Model: model,
		Messages: []openaiMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens: 4096,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.opts.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.opts.APIKey)

	httpResp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode == 429 {
		// OpenAI reports exhausted quota with the same status as a rate
		// limit; only the error code in the body tells them apart.
		if strings.Contains(string(respBody), "insufficient_quota") {
			return nil, &quotaError{message: string(respBody)}
		}
		return nil, &rateLimitError{}
	}
	if httpResp.StatusCode == 401 || httpResp.StatusCode == 403 {
		return nil, &authError{message: string(respBody)}
	}
	if httpResp.StatusCode != 200 {
		return nil, fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(respBody))
	}

	var result openaiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}
	if result.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("empty text content in API response")
	}

	return ParseResult(result.Choices[0].Message.Content)
}

type openaiRequest struct {
	Model     string          `json:"model"`
	Messages  []openaiMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []openaiChoice `json:"choices"`
}

type openaiChoice struct {
	Message openaiMessage `json:"message"`
}
