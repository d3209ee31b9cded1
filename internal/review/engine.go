package review

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/codecritic/codecritic/internal/cache"
	"github.com/codecritic/codecritic/internal/redact"
)

// Provider is an AI backend capable of producing a complete review.
// RequestReview returns nil after exhausting its own retry/fallback policy;
// it never returns an error.
type Provider interface {
	Name() string
	RequestReview(ctx context.Context, sub Submission) *Result
}

// AnalyzeFunc produces static findings for a submission. It is injected so
// the engine can be exercised with fakes.
type AnalyzeFunc func(Submission) []Comment

// Engine is the top-level review policy. It holds an ordered provider chain
// and tries each in sequence — never concurrently, since fallback is a
// deliberate ordered policy and racing providers would double usage costs.
type Engine struct {
	providers []Provider
	analyze   AnalyzeFunc
	cache     *cache.Cache
	log       *zap.Logger

	redactSecrets bool
	gitlabBaseURL string
}

// EngineOptions configures a new Engine.
type EngineOptions struct {
	Providers     []Provider
	Analyze       AnalyzeFunc
	Cache         *cache.Cache
	Logger        *zap.Logger
	RedactSecrets bool
	GitLabBaseURL string
}

// NewEngine creates an Engine. Logger and Analyze are required; Cache may be
// nil to disable caching, and Providers may be empty, in which case every
// review is synthesized from static findings.
func NewEngine(opts EngineOptions) *Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		providers:     opts.Providers,
		analyze:       opts.Analyze,
		cache:         opts.Cache,
		log:           log,
		redactSecrets: opts.RedactSecrets,
		gitlabBaseURL: strings.TrimRight(opts.GitLabBaseURL, "/"),
	}
}

// Review runs the full pipeline for one submission. It always returns a
// well-formed result: provider failures, malformed output, and even a
// panicking analyzer all terminate in a valid, possibly degraded, result.
// Errors are logged for operability but never surfaced to the caller.
func (e *Engine) Review(ctx context.Context, sub Submission) *Result {
	static, analyzerOK := e.staticFindings(sub)

	if cached := e.cacheGet(sub); cached != nil {
		e.attachGitLab(cached, sub)
		return cached
	}

	result := e.tryProviders(ctx, sub)
	if result != nil {
		result = Merge(result, static)
	} else {
		if !analyzerOK {
			e.log.Error("pattern analyzer failed, synthesizing empty result")
		}
		result = Synthesize(static)
	}

	e.cachePut(sub, result)
	e.attachGitLab(result, sub)
	return result
}

// staticFindings runs the pattern analyzer, treating a panic as catastrophic
// and recovering with an empty findings list.
func (e *Engine) staticFindings(sub Submission) (findings []Comment, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("pattern analyzer panicked", zap.Any("panic", r))
			findings, ok = nil, false
		}
	}()
	if e.analyze == nil {
		return nil, true
	}
	return e.analyze(sub), true
}

// tryProviders walks the chain strictly in order and returns the first
// complete result, or nil when every provider fails.
func (e *Engine) tryProviders(ctx context.Context, sub Submission) *Result {
	if len(e.providers) == 0 {
		return nil
	}

	aiSub := sub
	if e.redactSecrets {
		aiSub.Code = redact.Secrets(sub.Code)
	}

	for _, p := range e.providers {
		res := p.RequestReview(ctx, aiSub)
		if res != nil {
			e.log.Info("provider produced review",
				zap.String("provider", p.Name()),
				zap.Int("comments", len(res.Comments)))
			return res
		}
		e.log.Warn("provider failed, trying next", zap.String("provider", p.Name()))
	}
	return nil
}

func (e *Engine) attachGitLab(result *Result, sub Submission) {
	if !sub.HasGitLabTarget() {
		return
	}
	result.GitLab = &GitLabIntegration{
		ProjectID:      sub.GitLabProjectID,
		MergeRequestID: sub.GitLabMergeRequest,
		CommitSHA:      sub.GitLabCommitSHA,
	}
	if e.gitlabBaseURL != "" {
		result.GitLab.ReviewURL = fmt.Sprintf("%s/projects/%d/merge_requests/%d",
			e.gitlabBaseURL, sub.GitLabProjectID, sub.GitLabMergeRequest)
	}
}

func (e *Engine) cacheKey(sub Submission) string {
	names := make([]string, len(e.providers))
	for i, p := range e.providers {
		names[i] = p.Name()
	}
	return cache.BuildKey(strings.Join(names, ","), string(sub.Type), sub.Language, sub.Code)
}

func (e *Engine) cacheGet(sub Submission) *Result {
	if e.cache == nil {
		return nil
	}
	raw, ok := e.cache.Get(e.cacheKey(sub))
	if !ok {
		return nil
	}
	var res Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		e.log.Warn("discarding undecodable cache entry", zap.Error(err))
		return nil
	}
	return &res
}

func (e *Engine) cachePut(sub Submission, result *Result) {
	if e.cache == nil {
		return
	}
	// The GitLab block is attached after caching: it is per-request
	// metadata, not part of the review itself.
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := e.cache.Put(e.cacheKey(sub), string(data)); err != nil {
		e.log.Warn("cache write failed", zap.Error(err))
	}
}
