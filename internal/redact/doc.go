// Package redact scrubs secrets from submitted code before it is sent to an
// AI provider. Redaction is regex-heuristic and line-preserving.
package redact
