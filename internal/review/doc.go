// Package review contains the core types and engine for AI-assisted code
// review of submitted snippets.
//
// It defines the Submission, Comment, Metrics, and Result types, merges
// AI-sourced comments with static pattern-analysis findings into a single
// de-duplicated result, and synthesizes a static-only result with
// deterministic grade thresholds when every provider fails.
//
// The Engine (engine.go) is the top-level policy: it runs the pattern
// analyzer, walks an ordered provider chain, and always returns a well-formed
// Result — provider failures, malformed model output, and even an analyzer
// panic all terminate in a valid, degraded result rather than an error.
package review
