// Package analyzer is a deterministic, language-aware heuristic scanner.
//
// It selects a ruleset by normalized language name (JavaScript/TypeScript,
// Python, Java, C++, or a generic fallback) and emits line-level findings for
// common trouble patterns: debug prints, loose equality, var declarations,
// mutable default arguments, raw pointers, over-long lines, and trailing
// whitespace. It performs no I/O and has no failure modes; an empty or
// whitespace-only submission short-circuits to a single "Code is empty"
// error finding.
package analyzer
