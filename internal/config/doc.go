// Package config loads codecritic configuration from a YAML file with
// sensible defaults. Credentials are taken from environment variables only,
// never from the file.
package config
