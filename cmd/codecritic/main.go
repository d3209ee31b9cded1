// Codecritic is a web service and CLI for AI-assisted code review.
//
// It accepts a source-code snippet, asks an ordered chain of AI providers
// for a structured quality review, and falls back to built-in static
// analysis so a well-formed review is always produced.
//
// Usage:
//
//	codecritic serve                 # start the HTTP API
//	codecritic review main.js        # review a file from the command line
package main

import (
	"os"

	"github.com/codecritic/codecritic/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
