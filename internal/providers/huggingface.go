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

const defaultHuggingFaceURL = "https://api-inference.huggingface.co/models"

// HuggingFace reviews code through the Hugging Face inference API. Hosted
// open-weight models routinely answer with prose or bare code instead of
// JSON, so a failed parse falls through to the synthetic text extraction
// before the attempt is written off.
type HuggingFace struct {
	opts   Options
	client *http.Client
	log    *zap.Logger
}

// NewHuggingFace creates a new Hugging Face provider client.
func NewHuggingFace(opts Options, log *zap.Logger) (*HuggingFace, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("huggingface: API token is not set")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultHuggingFaceURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	opts.applyDefaults()
	return &HuggingFace{
		opts:   opts,
		client: &http.Client{Timeout: 120 * time.Second},
		log:    log,
	}, nil
}

func (h *HuggingFace) Name() string { return "huggingface" }

// RequestReview runs the full attempt chain for a submission, collapsing
// every failure to nil.
func (h *HuggingFace) RequestReview(ctx context.Context, sub review.Submission) *review.Result {
	prompt := BuildPrompt(sub)
	return runChain(ctx, h.log, h.Name(), h.opts.Model, h.opts.FallbackModel,
		h.opts.MaxAttempts, h.opts.RetryDelay,
		func(ctx context.Context, model string) (*review.Result, error) {
			return h.attempt(ctx, model, prompt)
		})
}

func (h *HuggingFace) attempt(ctx context.Context, model, prompt string) (*review.Result, error) {
	body := hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens:   4096,
			ReturnFullText: false,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := h.opts.BaseURL + "/" + model
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+h.opts.APIKey)

	httpResp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case httpResp.StatusCode == 429, httpResp.StatusCode == 503:
		// 503 means the model is still loading on the inference host;
		// treated like a rate limit since waiting and retrying can succeed.
		return nil, &rateLimitError{}
	case httpResp.StatusCode == 402:
		return nil, &quotaError{message: string(respBody)}
	case httpResp.StatusCode == 401 || httpResp.StatusCode == 403:
		return nil, &authError{message: string(respBody)}
	case httpResp.StatusCode != 200:
		return nil, fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(respBody))
	}

	text, err := extractGeneratedText(respBody)
	if err != nil {
		return nil, err
	}

	res, err := ParseResult(text)
	if err == nil {
		return res, nil
	}

	h.log.Info("huggingface response was not valid JSON, extracting synthetically",
		zap.String("model", model), zap.Error(err))
	if synth := SyntheticResult(text); synth != nil {
		return synth, nil
	}
	return nil, fmt.Errorf("unusable response: %w", err)
}

// extractGeneratedText handles both response forms of the inference API: a
// list of generations or a single object.
func extractGeneratedText(body []byte) (string, error) {
	var list []hfGeneration
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		if list[0].GeneratedText == "" {
			return "", fmt.Errorf("empty generated text in API response")
		}
		return list[0].GeneratedText, nil
	}

	var single hfGeneration
	if err := json.Unmarshal(body, &single); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if single.GeneratedText == "" {
		return "", fmt.Errorf("empty generated text in API response")
	}
	return single.GeneratedText, nil
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int  `json:"max_new_tokens"`
	ReturnFullText bool `json:"return_full_text"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}
