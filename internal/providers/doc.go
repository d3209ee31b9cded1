// Package providers implements the review.Provider interface for each
// supported AI backend.
//
// Supported providers: OpenAI (chat completions) and Hugging Face (hosted
// open-weight models via the inference API).
//
// All providers share one retry/fallback policy: rate limits are retried in
// place with a fixed delay up to a per-model attempt budget, quota and other
// permanent errors skip straight to a designated cheaper fallback model, and
// exhausting both models yields nil. RequestReview never returns an error —
// a provider produces a complete well-formed result or nothing.
//
// The Hugging Face adapter additionally tolerates non-JSON answers through a
// lossy synthetic extraction (synthetic.go) that classifies prose lines into
// comment types, or treats code-shaped text as the improved code.
package providers
