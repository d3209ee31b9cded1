// Package output renders a finished review result for the CLI in text,
// JSON, or markdown form.
package output
