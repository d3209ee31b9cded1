// Package cache provides a file-based cache for finished review results.
//
// Entries are keyed by a SHA-256 hash of the provider chain, review type,
// language, and submitted code, so identical submissions skip the provider
// chain entirely. Each entry stores the serialized result with a creation
// timestamp and TTL; expired entries are skipped on read.
package cache
