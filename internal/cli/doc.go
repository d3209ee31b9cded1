// Package cli wires together the Cobra command tree for the codecritic
// binary.
//
// It defines the root command and subcommands (serve, review, version),
// constructs the process-wide zap logger, loads configuration, and assembles
// the review engine with its provider chain, cache, and analyzer.
package cli
